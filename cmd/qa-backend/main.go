// Command qa-backend serves the questions and answers HTTP API.
//
//	@title						Q&A Backend API
//	@version					1.0
//	@description				CRUD service for questions and their answers.
//	@BasePath					/
//	@schemes					http https
//	@produce					json
//	@accept						json
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	_ "github.com/tbourn/go-qa-backend/docs"
	"github.com/tbourn/go-qa-backend/internal/config"
	httpapi "github.com/tbourn/go-qa-backend/internal/http"
	"github.com/tbourn/go-qa-backend/internal/observability"
	"github.com/tbourn/go-qa-backend/internal/repo"
	"github.com/tbourn/go-qa-backend/internal/store"
	"github.com/tbourn/go-qa-backend/internal/sysutil"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "qa-backend",
		Short:         "questions and answers API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "run the HTTP server",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "create or update the SQL schema and exit",
			RunE:  runMigrate,
		},
	)
	return root
}

// loadConfig reads an optional .env file, then the environment, and installs
// the global logger.
func loadConfig() (config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty)
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Error().Err(err).Msg("otel setup failed")
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownOTel(sctx)
	}()

	s, err := store.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.StoreBackend).Msg("store init failed")
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, s, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
	return serve(ctx, srv)
}

// serve runs srv until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return <-errCh
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := repo.Open(cmd.Context(), cfg.DB)
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close(db) }()

	if err := repo.AutoMigrate(db); err != nil {
		log.Error().Err(err).Msg("migrate failed")
		return err
	}
	log.Info().Str("driver", cfg.DB.Driver).Msg("schema up to date")
	return nil
}
