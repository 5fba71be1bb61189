package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/adminshop/pkg/audit"
	"github.com/example/adminshop/pkg/config"
	"github.com/example/adminshop/pkg/discovery"
	"github.com/example/adminshop/pkg/repository"
	"github.com/example/adminshop/pkg/store"
	"github.com/example/adminshop/server"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	memory := flag.Bool("memory", false, "use the in-memory store instead of MySQL")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting admin API",
		zap.String("name", cfg.Server.Name),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port))

	ctx := context.Background()

	// Canonical store
	var st interface {
		store.Store
		Seed(ctx context.Context) error
	}
	if *memory {
		logger.Info("Using in-memory store")
		st = store.NewMemoryStore()
	} else {
		mysqlStore, err := store.NewMySQLStore(&cfg.MySQL)
		if err != nil {
			logger.Fatal("Failed to connect to MySQL", zap.Error(err))
		}
		st = mysqlStore
	}
	if err := st.Seed(ctx); err != nil {
		logger.Fatal("Failed to seed demo data", zap.Error(err))
	}

	// Redis list cache
	cache := repository.NewRedisRepository(&cfg.Redis)
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed, continuing without list cache", zap.Error(err))
		cache = nil
	} else {
		logger.Info("Redis connected successfully")
	}

	// MongoDB audit trail
	var mongoRepo *repository.MongoRepository
	var recorder *audit.Recorder
	mongoRepo, err = repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil || mongoRepo.Ping(ctx) != nil {
		logger.Warn("MongoDB connection failed, continuing without audit trail", zap.Error(err))
		mongoRepo = nil
	} else {
		recorder, err = audit.NewRecorder(mongoRepo, logger)
		if err != nil {
			logger.Fatal("Failed to start audit actor", zap.Error(err))
		}
	}

	// Service discovery
	sd, err := discovery.NewServiceDiscovery(&cfg.Etcd)
	if err != nil {
		logger.Warn("Failed to connect to etcd, continuing without service discovery", zap.Error(err))
		sd = nil
	}
	instance := &discovery.ServiceInstance{
		Name: cfg.Server.Name,
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	}
	if sd != nil {
		if err := sd.Register(ctx, instance); err != nil {
			logger.Warn("Failed to register service", zap.Error(err))
		} else {
			logger.Info("Service registered in etcd",
				zap.String("name", cfg.Server.Name),
				zap.String("address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)))
		}
	}

	// Create server
	srv := server.New(cfg, logger, st, cache, mongoRepo, recorder)
	srv.SetupRoutes()

	// Start server in goroutine
	srvErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			srvErr <- err
		}
	}()

	logger.Info("Admin API started successfully")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-srvErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	if sd != nil {
		if err := sd.Deregister(ctx, instance); err != nil {
			logger.Error("Failed to deregister service", zap.Error(err))
		}
		sd.Close()
	}
	recorder.Stop()
	if cache != nil {
		cache.Close()
	}
	if mongoRepo != nil {
		mongoRepo.Close(ctx)
	}

	logger.Info("Admin API stopped")
}
