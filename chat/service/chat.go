package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/NadeeshaMedagama/modgoviya/internal/log"
)

// ChatService is the scripted FAQ widget: keyword matching against a fixed
// script, no remote calls and no learning.
type ChatService struct {
	script   []scriptedReply
	fallback string
}

type scriptedReply struct {
	keywords []string
	reply    string
}

func NewChatService() ChatService {
	return ChatService{
		fallback: "I'm not sure about that. Try asking about orders, delivery, payments, crops or your account.",
		script: []scriptedReply{
			{
				keywords: []string{"order", "cart", "checkout", "buy"},
				reply:    "Add products to your cart from the marketplace, then open the cart and press checkout. You'll enter shipping and payment details before the order is confirmed.",
			},
			{
				keywords: []string{"delivery", "shipping", "ship"},
				reply:    "Sellers arrange delivery after checkout. Shipping is free on all marketplace orders right now.",
			},
			{
				keywords: []string{"payment", "card", "pay"},
				reply:    "We accept 16-digit debit and credit cards at checkout. Your card details are never stored.",
			},
			{
				keywords: []string{"crop", "harvest", "planting", "grow"},
				reply:    "Use the crop tracker to record plantings and expected harvest dates; the progress bar shows how far along each season is.",
			},
			{
				keywords: []string{"weather", "rain", "season"},
				reply:    "Check the weather page for your district's forecast before planning field work.",
			},
			{
				keywords: []string{"account", "login", "register", "password"},
				reply:    "You can register with an email and password, or sign in with Google or Facebook. Use the profile page to manage your account.",
			},
			{
				keywords: []string{"sell", "listing", "seller"},
				reply:    "To sell on the marketplace, create a listing with a title, price, photo and your location.",
			},
		},
	}
}

// Reply picks the scripted answer whose keywords best match the message.
// Scoring counts matched keywords; ties go to the earlier script entry, and
// no match at all yields the fallback.
func (svc ChatService) Reply(c context.Context, message string) string {
	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ChatService Reply").Logger()

	normalized := strings.ToLower(message)
	bestScore := 0
	best := svc.fallback
	for _, entry := range svc.script {
		score := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(normalized, keyword) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.reply
		}
	}

	logger.Info().Int("score", bestScore).Msg("matched scripted reply")
	return best
}
