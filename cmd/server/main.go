package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"brutus/internal/commons"
	"brutus/internal/config"
	"brutus/internal/customer"
	"brutus/internal/delivery"
	"brutus/internal/infrastructure/logger"
	"brutus/internal/infrastructure/mysql"
	"brutus/internal/notify"
	"brutus/internal/order"
	"brutus/internal/product"
	"brutus/internal/server"
	"brutus/internal/stats"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	publisher := notify.NewPublisher(cfg.Kafka, zapLogger)
	defer publisher.Close()

	quoteClient := delivery.NewClient(cfg.Delivery.QuoteURL, cfg.Delivery.Timeout, zapLogger)
	quoteCtrl := delivery.NewController(quoteClient, zapLogger)

	productCtrl := product.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, publisher, zapLogger)
	customerCtrl := customer.NewModule(db, zapLogger)
	statsCtrl := stats.NewModule(db, zapLogger)

	router := server.NewRouter(productCtrl, orderCtrl, quoteCtrl, customerCtrl, statsCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return commons.LoadConfigFile(path)
	}
	return config.Load()
}
