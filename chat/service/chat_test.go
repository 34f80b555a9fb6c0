package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatReply(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{
			name:     "order question",
			message:  "How do I place an order?",
			contains: "cart",
		},
		{
			name:     "delivery question",
			message:  "when will my delivery arrive",
			contains: "delivery",
		},
		{
			name:     "crop question",
			message:  "how do I track my harvest",
			contains: "crop tracker",
		},
		{
			name:     "case insensitive",
			message:  "PAYMENT options?",
			contains: "cards",
		},
		{
			name:     "most keyword hits wins",
			message:  "can I pay with a credit card",
			contains: "cards",
		},
		{
			name:     "no match falls back",
			message:  "tell me a joke",
			contains: "not sure",
		},
		{
			name:     "empty message falls back",
			message:  "",
			contains: "not sure",
		},
	}

	svc := NewChatService()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reply := svc.Reply(context.Background(), test.message)
			assert.True(
				t,
				strings.Contains(strings.ToLower(reply), test.contains),
				"expected reply %q to contain %q", reply, test.contains,
			)
		})
	}
}
