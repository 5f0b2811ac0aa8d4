package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"traveling-backend/config"
	"traveling-backend/controllers"
	"traveling-backend/repository"
	"traveling-backend/routes"
	"traveling-backend/services"
	"traveling-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	if err := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	logger.Info("database connection established", zap.Bool("auto_migrate", cfg.DBAutoMigrate))

	cache, err := config.ConnectRedis(cfg)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}
	if cache == nil {
		logger.Info("REDIS_ADDR not set, room type cache disabled")
	} else {
		defer cache.Close()
	}

	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	roomService := services.NewRoomService(roomRepo, cache, cfg.RoomTypesCacheTTL, cfg.MaxPhotoBytes, logger)
	bookingService := services.NewBookingService(bookingRepo, roomRepo, logger)

	roomController := controllers.NewRoomController(roomService, bookingService)

	router := routes.SetupRouter(roomController, cfg, logger)

	addr := ":" + cfg.AppPort
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped gracefully")
}
