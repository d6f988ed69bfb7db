package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"hivewatch/internal/config"
	"hivewatch/internal/database"
	httpapi "hivewatch/internal/http"
	"hivewatch/internal/ingest"
	"hivewatch/internal/logger"
	"hivewatch/internal/mqtt"
	"hivewatch/internal/repository"
	"hivewatch/internal/service"
	"hivewatch/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "hivewatch")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting hivewatch", zap.String("env", cfg.Env))

	var (
		readingsRepo   repository.ReadingsRepository
		thresholdsRepo repository.ThresholdsRepository
	)
	if cfg.DBEnabled {
		db, err := database.NewPostgres(&cfg.Database)
		if err != nil {
			// The store is the source of truth; a server that cannot
			// reach it at startup must not come up half-alive.
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		readingsRepo = repository.NewPostgresReadingsRepository(db, log)
		thresholdsRepo = repository.NewPostgresThresholdsRepository(db, log)
	} else {
		log.Warn("DB_ENABLED=false, using in-memory store (data is not persisted)")
		readingsRepo = repository.NewMemoryReadingsRepository()
	}

	var cache store.KV
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable, latest-reading cache disabled", zap.Error(err))
		} else {
			cache = store.NewRedisKV(rdb)
			log.Info("Latest-reading cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()
	}

	readings := service.NewReadingsService(readingsRepo, cache, log)
	history := service.NewHistoryService(readingsRepo, log)
	status := service.NewStatusService(thresholdsRepo, log)
	status.LoadOverrides(context.Background())

	handler := httpapi.NewReadingsHandler(readings, history, status, log)
	router := httpapi.NewRouter(log)
	router.RegisterReadingRoutes(handler)

	corsHandler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)

	srv := service.NewServer(cfg.HTTP.Addr, corsHandler, log)

	var consumer *ingest.MQTTConsumer
	if cfg.MQTT.Broker != "" {
		client, err := mqtt.NewClient(mqtt.Options{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		}, log)
		if err != nil {
			log.Warn("MQTT broker unavailable, ingestion bridge disabled", zap.Error(err))
		} else {
			consumer = ingest.NewMQTTConsumer(client, readings, log)
			if err := consumer.Start(cfg.MQTT.Topic, cfg.MQTT.QoS); err != nil {
				log.Warn("MQTT subscription failed, ingestion bridge disabled", zap.Error(err))
				consumer.Stop()
				consumer = nil
			}
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
	}

	if consumer != nil {
		consumer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping server", zap.Error(err))
	}

	log.Info("hivewatch stopped")
}
