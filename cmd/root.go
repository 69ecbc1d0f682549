package cmd

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/anand-106/coursegen/internal/course"
	"github.com/anand-106/coursegen/internal/llm"
	"github.com/anand-106/coursegen/internal/store"
	"github.com/anand-106/coursegen/internal/videos"
)

var rootCmd = &cobra.Command{
	Use:   "coursegen",
	Short: "AI course generator",
	Long:  "Coursegen turns a one-line prompt into a complete course: modules, explanations, videos, flashcards, and quizzes.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COURSEGEN_DB env var)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// initEnv loads .env and configures logging. Logs go to stderr so the
// NDJSON stream on stdout stays clean.
func initEnv() {
	_ = godotenv.Load()

	level := zerolog.WarnLevel
	if s := os.Getenv("COURSEGEN_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			level = parsed
		}
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COURSEGEN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

// newRunner assembles the generation pipeline. A missing LLM key is not
// fatal: the pipeline runs on deterministic fallbacks.
func newRunner(ctx context.Context, events store.EventRepo) *course.Runner {
	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		log.Warn().Err(err).Msg("no LLM provider configured, running on fallbacks")
		provider = nil
	}
	client := llm.NewClient(provider)

	engine := videos.NewEngine(videos.NewYouTubeClientFromEnv(), videos.NewTimedTextClient())
	return course.NewRunner(client, course.NewAssembler(client, engine))
}
