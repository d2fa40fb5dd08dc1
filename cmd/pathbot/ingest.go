package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/config"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/core"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/providers/rag"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/internal/storage/sqlite"
	"github.com/BigOleEnterprise/pathfinder-discord-bot/pkg/log"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Embed rulebook documents into the local database",
	Long: `Reads .txt and .md files from a directory, splits them into
token-bounded chunks, embeds each chunk and stores the vectors for /ask
retrieval. Re-ingesting a file replaces its previous chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		appCfg := config.NewAppConfig(ctx)
		if err := initEnv(ctx, appCfg.GetRuntimePath()); err != nil {
			return err
		}

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		rulebooks := sqlite.NewRulebooksRepo(db)
		embedder := rag.NewOpenAIEmbedder(config.NewOpenAIConfig(ctx))
		chunkerCfg := rag.DefaultChunkerConfig()

		entries, err := os.ReadDir(args[0])
		if err != nil {
			return fmt.Errorf("read directory: %w", err)
		}

		ingested := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext != ".txt" && ext != ".md" {
				continue
			}

			path := filepath.Join(args[0], entry.Name())
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			source := sourceName(entry.Name())
			chunks := rag.ChunkText(string(data), chunkerCfg)
			if len(chunks) == 0 {
				logger.Warn().Str("file", entry.Name()).Msg("skipping empty document")
				continue
			}

			removed, err := rulebooks.ClearSource(ctx, source)
			if err != nil {
				return fmt.Errorf("clear source %s: %w", source, err)
			}
			if removed > 0 {
				logger.Info().Str("source", source).Int64("removed", removed).Msg("replaced previous chunks")
			}

			records := make([]core.RulebookChunk, 0, len(chunks))
			for _, chunk := range chunks {
				vector, err := embedder.Embed(ctx, chunk.Text)
				if err != nil {
					return fmt.Errorf("embed chunk %d of %s: %w", chunk.Index, source, err)
				}
				records = append(records, core.RulebookChunk{
					Source:     source,
					ChunkIndex: chunk.Index,
					Text:       chunk.Text,
					TokenCount: chunk.TokenCount,
					Embedding:  vector,
				})
			}

			if err := rulebooks.SaveChunks(ctx, records); err != nil {
				return fmt.Errorf("save chunks for %s: %w", source, err)
			}

			logger.Info().Str("source", source).Int("chunks", len(records)).Msg("ingested document")
			ingested++
		}

		logger.Info().Int("documents", ingested).Msg("ingest complete")
		return nil
	},
}

// sourceName turns "Core Rulebook.md" into "core_rulebook".
func sourceName(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.ToLower(name)
	return strings.ReplaceAll(strings.Join(strings.Fields(name), " "), " ", "_")
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
