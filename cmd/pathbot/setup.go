package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/config"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/dice"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/providers/llm"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/providers/rag"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/ratelimit"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/service/ask"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/service/command"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/storage/sqlite"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/transport/telegram"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	appCfg := config.NewAppConfig(ctx)
	if err := initEnv(ctx, appCfg.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	limitCfg := config.NewRateLimitConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	questionsRepo := sqlite.NewQuestionsRepo(db)
	rulebooksRepo := sqlite.NewRulebooksRepo(db)

	// 3. Providers
	qa := llm.NewAnthropic(config.NewAnthropicConfig(ctx))
	embedder := rag.NewOpenAIEmbedder(config.NewOpenAIConfig(ctx))

	// 4. Ask pipeline
	limiter := ratelimit.New(limitCfg.AskMaxRequests, limitCfg.AskWindow)
	askSvc := ask.New(limiter, qa, embedder, questionsRepo, rulebooksRepo, appCfg.SearchLimit)

	// 5. Commands
	router := command.New(command.NewCommands(dice.NewRoller(nil), askSvc))

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, router)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initTransports(ctx context.Context, cfg *config.AppConfig, router core.CmdRouter) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
