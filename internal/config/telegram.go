package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"TELEGRAM_TOKEN,required,notEmpty"`
	// AllowedChatID restricts the bot to one chat; zero allows every chat.
	AllowedChatID int64 `env:"TELEGRAM_ALLOWED_CHAT_ID" envDefault:"0"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}
