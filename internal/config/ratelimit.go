package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

type RateLimitConfig struct {
	AskMaxRequests int           `env:"ASK_RATE_LIMIT_REQUESTS" envDefault:"5"`
	AskWindow      time.Duration `env:"ASK_RATE_LIMIT_WINDOW" envDefault:"10m"`
}

func NewRateLimitConfig(ctx context.Context) *RateLimitConfig {
	c := &RateLimitConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RateLimit config")
	}
	return c
}
