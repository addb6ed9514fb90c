package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yumyai/vogdb/internal/config"
	"github.com/yumyai/vogdb/logger"
	mydb "github.com/yumyai/vogdb/pkg/db"
	"github.com/yumyai/vogdb/pkg/handler"
	"github.com/yumyai/vogdb/pkg/middle"
	"github.com/yumyai/vogdb/pkg/service"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const VERSION = "0.1.0"

func main() {

	cfg, cfgErr := config.Load()

	// Establish logger, fall back to info so a bad level is still reported
	level, levelErr := zapcore.InfoLevel, error(nil)
	if cfg != nil {
		level, levelErr = logger.ParseLevel(cfg.LogLevel)
	}
	if err := logger.InitLogger(level); err != nil {
		panic(err)
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	if cfgErr != nil {
		logger.Fatal("Invalid configuration", zap.Error(cfgErr))
	}
	if levelErr != nil {
		logger.Warn("Unknown log level, using info", zap.String("level", cfg.LogLevel))
	}
	if !cfg.DotenvLoaded {
		logger.Warn("No .env found, using local environment")
	}

	logger.Info("Start:", zap.String("Version", VERSION))

	// Connect to db
	db, err := mydb.Open(cfg.DBPath, cfg.MaxOpenConns)
	if err != nil {
		logger.Fatal("Cannot open database", zap.String("DB_LOC", cfg.DBPath), zap.Error(err))
	}
	defer db.Close()
	logger.Info("Open database on", zap.String("DB_LOC", cfg.DBPath))

	// Raw data files are optional, /vfetch answers 404 without them
	files, err := mydb.NewVogFiles(cfg.DataDir)
	if err != nil {
		logger.Warn("Data directory not available, fetch routes disabled",
			zap.String("dir", cfg.DataDir), zap.Error(err))
		files = nil
	}

	dbctx := &handler.DBContext{
		Service: service.New(db, cfg.DataDir, files, cfg.QueryTimeout),
	}

	mux := handler.NewRouter(dbctx)

	// Apply middleware
	log := logger.L()
	root := middle.Chain(mux,
		middle.RequestIDMiddleware(log),
		middle.LoggingMiddleware(log),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.QueryTimeout + 30*time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server:", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
