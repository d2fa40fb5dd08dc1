package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

type AnthropicConfig struct {
	APIKey string `env:"ANTHROPIC_API_KEY,required,notEmpty"`
	Model  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-sonnet-20240620"`
}

func NewAnthropicConfig(ctx context.Context) *AnthropicConfig {
	c := &AnthropicConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Anthropic config")
	}
	return c
}
