package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/bloglite/backend/internal/config"
	"github.com/emilythestrangee/bloglite/backend/internal/database"
	"github.com/emilythestrangee/bloglite/backend/internal/logger"
	"github.com/emilythestrangee/bloglite/backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "bloglite",
	})
	log := logger.L()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	srv := server.NewServer(cfg, db, log)

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("bloglite starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("HTTP server forced to shutdown")
	}
	log.Info().Msg("bloglite stopped")
}
