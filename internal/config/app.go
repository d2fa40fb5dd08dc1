package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"PATHBOT_RUNTIME_PATH" envDefault:".pathbot"`

	// Transport flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"true"`

	// RAG retrieval
	SearchLimit int `env:"RULEBOOK_SEARCH_LIMIT" envDefault:"3"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "pathbot.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}
