package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/taxgo/internal/api"
	"github.com/rgehrsitz/taxgo/internal/assistant"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/document"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.LoadServerConfig(envFile)
			if err != nil {
				return err
			}
			if path, _ := cmd.Flags().GetString("regulatory-config"); path != "" {
				cfg.RegulatoryConfig = path
			}

			logger := newServerLogger(cfg)
			server, err := newServer(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, server, logger)
		},
	}
	cmd.Flags().String("env-file", ".env", "Environment file to load before reading settings")
	return cmd
}

func newServerLogger(cfg *config.ServerConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// newServer wires the tax tables, document parser and assistant behind the router
func newServer(cfg *config.ServerConfig, logger *logrus.Logger) (*http.Server, error) {
	registry, err := loadRegistryPath(cfg.RegulatoryConfig)
	if err != nil {
		return nil, err
	}
	if _, err := registry.SlabTable(domain.RegimeOld, cfg.DefaultAssessmentYear); err != nil {
		return nil, fmt.Errorf("DEFAULT_ASSESSMENT_YEAR: %w", err)
	}

	adapter := api.NewAdapter(registry, cfg.DefaultAssessmentYear)
	adapter.Comparator.CalcEngine.SetLogger(logger)

	parser := document.NewRuleBasedParser()
	parser.MaxSize = cfg.MaxUploadBytes
	parser.Logger = logger

	handler := api.NewTaxHandler(api.HandlerDeps{
		Adapter:        adapter,
		Parser:         parser,
		Assistant:      assistant.NewKnowledgeBase(),
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
	})

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	router := api.NewRouter(handler, api.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         api.NewRequestLogger(os.Stdout, cfg.Env),
		LogLevel:       logLevel,
	})

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// run serves until ctx is cancelled, then drains in-flight requests
func run(ctx context.Context, server *http.Server, logger logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", server.Addr).Info("starting tax API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
