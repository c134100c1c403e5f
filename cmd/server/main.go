package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shipmart-be/internal/config"
	"shipmart-be/internal/db"
	"shipmart-be/internal/draft"
	"shipmart-be/internal/httpserver"
	"shipmart-be/internal/kv"
	"shipmart-be/internal/logger"
	"shipmart-be/internal/metrics"
	"shipmart-be/internal/order"
	"shipmart-be/internal/payment"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer database.Close()

	draftDB, err := kv.NewPebbleStore(cfg.DraftDBPath)
	if err != nil {
		log.Fatal("draft store open failed",
			zap.String("path", cfg.DraftDBPath), zap.Error(err))
	}
	defer draftDB.Close()

	reg := metrics.NewRegistry()

	srv := httpserver.New(":"+cfg.AppPort, cfg.AppEnv, httpserver.Deps{
		Orders:          order.NewRepository(database),
		Drafts:          draft.NewStore(draftDB),
		Handoff:         payment.NewHandoff(draftDB),
		Metrics:         reg,
		PlatformFeeRate: cfg.PlatformFeeRate,
	})

	go func() {
		log.Info("server running", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown incomplete", zap.Error(err))
	}
	log.Info("server stopped")
}
