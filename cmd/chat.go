package cmd

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	chatService "github.com/NadeeshaMedagama/modgoviya/chat/service"
	"github.com/NadeeshaMedagama/modgoviya/internal/common"
	"github.com/NadeeshaMedagama/modgoviya/internal/log"
	"github.com/NadeeshaMedagama/modgoviya/internal/otel"
)

func runChat(c context.Context, args []string) {
	c, span := otel.Tracer.Start(c, "runChat")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, common.AppName).
		Str(log.KeyTag, "main runChat").
		Logger()
	c = logger.WithContext(c)

	message := strings.Join(args, " ")
	reply := chatService.NewChatService().Reply(c, message)
	logger.Info().Msgf("assistant: %s", reply)
}
