package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nazrawi/tenabot/internal/artifacts"
	"github.com/nazrawi/tenabot/internal/auth"
	"github.com/nazrawi/tenabot/internal/config"
	"github.com/nazrawi/tenabot/internal/db"
	"github.com/nazrawi/tenabot/internal/delivery"
	"github.com/nazrawi/tenabot/internal/extraction"
	"github.com/nazrawi/tenabot/internal/ingestion"
	"github.com/nazrawi/tenabot/internal/llm"
	"github.com/nazrawi/tenabot/internal/pipeline"
	"github.com/nazrawi/tenabot/internal/rendering"
	"github.com/nazrawi/tenabot/internal/server"
	"github.com/nazrawi/tenabot/internal/validation"
)

var (
	serveConfigPath string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start the HTTP server that accepts resume uploads and processes them in the background.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (overridden by environment variables)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (e.g. :8080)")
	rootCmd.AddCommand(serveCmd)
}

// loadConfig merges file, environment, and defaults in ascending priority
// of env over file over defaults.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.Defaults()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	envCfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	cfg = envCfg.MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = serveAddr
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if cfg.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.Migrate(ctx); err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	store := artifacts.NewStore(cfg.MediaRoot)
	renderer := rendering.NewRenderer()
	if cfg.SummaryThreshold > 0 {
		renderer.SummaryThreshold = cfg.SummaryThreshold
	}
	if cfg.MaxSummaryBullets > 0 {
		renderer.MaxSummaryBullets = cfg.MaxSummaryBullets
	}

	orchestrator := &pipeline.Orchestrator{
		Texts:     ingestion.NewExtractor(cfg.MediaRoot),
		Gate:      validation.NewGate(cfg.MinTextLength, cfg.Keywords),
		Profiles:  extraction.NewOrchestrator(client),
		Store:     database,
		Renderer:  renderer,
		PDF:       rendering.NewChromePDFBackend(),
		Artifacts: store,
		Notifier:  delivery.NewNotifier(cfg.TelegramBotToken),
	}

	srv := server.New(server.Options{
		Store:            database,
		Uploads:          store,
		Runner:           orchestrator,
		Verifier:         auth.NewVerifier(cfg.TelegramBotToken),
		JWT:              server.NewJWTService(jwtConfig),
		ListenAddr:       cfg.ListenAddr,
		MaxUploadsPerDay: cfg.MaxUploadsPerDay,
	})

	return srv.Start()
}
