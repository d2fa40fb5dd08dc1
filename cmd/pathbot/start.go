package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PathfinderBot services",
	Long:  `Initializes storage and providers, then starts the chat transports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting pathbot")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("pathbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
