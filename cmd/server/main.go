// Package main provides the entry point for the CommendAI server
//
// @title CommendAI API
// @version 1.0.0
// @description Drafts YouTube comments with an LLM and posts them at most once per video
//
// @contact.name CommendAI Support
// @contact.url https://github.com/commendai/commendai
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api
//
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"commendai/internal/cache"
	"commendai/internal/config"
	"commendai/internal/handlers"
	"commendai/internal/i18n"
	"commendai/internal/llm"
	"commendai/internal/logger"
	"commendai/internal/models"
	"commendai/internal/server"
	"commendai/internal/service"
	"commendai/internal/storage"
	"commendai/internal/storage/postgres"
	"commendai/internal/storage/sqlite"
	"commendai/internal/youtube"

	"github.com/spf13/cobra"
)

// Build information (set by GoReleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "commendai",
		Short:        "AI comment generator for YouTube videos",
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default: CONFIG_PATH env or ./config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE:  runMigrate,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("CommendAI %s\n", version)
			fmt.Printf("  Commit: %s\n", commit)
			fmt.Printf("  Built:  %s\n", date)
			fmt.Printf("  By:     %s\n", builtBy)
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads the configuration and returns a context carrying the
// logger configured from it.
func bootstrap(cmd *cobra.Command) (context.Context, *config.Config, error) {
	if configPath != "" {
		os.Setenv("CONFIG_PATH", configPath)
	}

	// Setup base logger with INFO level initially
	ctx := logger.WithLogger(cmd.Context(), logger.New(slog.LevelInfo, "text"))

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to load configuration", "error", err)
		return nil, nil, err
	}

	// Reconfigure logger with the actual level and format from config
	ctx = logger.WithLogger(ctx, logger.New(cfg.GetSlogLevel(), cfg.LogFormat))
	ctx = logger.WithFields(ctx, "version", version)
	return ctx, cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cfg, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	log.Info("Starting CommendAI", "commit", commit, "port", cfg.Port, "db_driver", cfg.DBDriver)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("Closing storage connection")
		if err := store.Close(); err != nil {
			log.Error("Failed to close storage", "error", err)
		}
	}()

	yt, err := youtube.New(ctx, youtube.Options{
		APIKey:           cfg.YouTubeAPIKey,
		OAuthTokenFile:   cfg.YouTubeOAuthTokenFile,
		ClientSecretFile: cfg.YouTubeClientSecretFile,
		RequestsPerSec:   cfg.YouTubeRPS,
		Timeout:          cfg.RequestTimeout,
	})
	if err != nil {
		log.Error("Failed to initialize YouTube client", "error", err)
		return err
	}

	model, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ModelTimeout)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return err
	}

	summaries := cache.New(ctx, cfg.RedisURL, cache.DefaultTTL, cache.DefaultMaxEntries)
	defer summaries.Close()

	messages, err := i18n.New()
	if err != nil {
		log.Error("Failed to load translations", "error", err)
		return err
	}

	svc := service.New(store, yt, model, summaries, service.Options{
		MaxTopComments:     cfg.MaxTopComments,
		TranscriptMaxChars: cfg.TranscriptMaxChars,
	})

	commentHandler := handlers.NewCommentHandler(svc, messages, cfg.DebugErrors, cfg.DefaultLanguage)
	systemHandler := handlers.NewSystemHandler(store, models.ConfigStatusResponse{
		HasGeminiKey:  cfg.GeminiAPIKey != "",
		HasYouTubeKey: cfg.YouTubeAPIKey != "",
		HasOAuthToken: yt.CanPost(),
		GeminiModel:   cfg.GeminiModel,
		Version:       version,
	})

	srv := server.New(cfg, commentHandler, systemHandler, log)
	if err := srv.Start(ctx); err != nil {
		log.Error("Server failed", "error", err)
		return err
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx, cfg, err := bootstrap(cmd)
	if err != nil {
		return err
	}

	// Both drivers migrate on open
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Migrations applied", "db_driver", cfg.DBDriver)
	return store.Close()
}

func openStore(ctx context.Context, cfg *config.Config) (storage.CommentStore, error) {
	log := logger.FromContext(ctx)

	if cfg.DBDriver == config.DriverPostgres {
		log.Info("Initializing storage", "db_driver", cfg.DBDriver)
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("Failed to initialize storage", "error", err)
			return nil, err
		}
		return store, nil
	}

	if err := ensureDBDirectory(ctx, cfg.DBPath); err != nil {
		log.Error("Failed to create database directory", "error", err)
		return nil, err
	}

	log.Info("Initializing storage", "db_driver", cfg.DBDriver, "db_path", cfg.DBPath)
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		return nil, err
	}
	log.Info("Storage initialized successfully")
	return store, nil
}

func ensureDBDirectory(ctx context.Context, dbPath string) error {
	log := logger.FromContext(ctx)

	dir := filepath.Dir(dbPath)
	if dir == "." {
		log.Debug("Database in current directory, no directory creation needed")
		return nil
	}

	log.Info("Creating database directory", "directory", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Error("Failed to create database directory", "directory", dir, "error", err)
		return err
	}

	log.Debug("Database directory created successfully", "directory", dir)
	return nil
}
