package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alicuotas-data/internal/config"
	httpapi "alicuotas-data/internal/http"
	"alicuotas-data/internal/logger"
	"alicuotas-data/internal/repository"
	"alicuotas-data/internal/service"
	"alicuotas-data/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "alicuotas-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	kv, closeKV, err := openKV(cfg, log)
	if err != nil {
		log.Fatal("Failed to open KV backend", zap.Error(err))
	}
	defer closeKV()

	st, err := repository.Open(context.Background(), kv, log)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}

	auth := service.NewAuthService(st, kv, log)
	dues := service.NewDuesService(st, log)
	payphone := service.NewPayPhoneClient(cfg.PayPhone.APIURL, cfg.PayPhone.Token, log)
	confirmer := service.NewPaymentConfirmService(payphone, dues, cfg.PayPhone.StoreID, log)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(auth, log))
	router.RegisterResidentRoutes(httpapi.NewResidentHandler(auth, dues, confirmer, log))
	router.RegisterAdminRoutes(httpapi.NewAdminHandler(auth, dues, log))
	router.RegisterSuperAdminRoutes(httpapi.NewSuperAdminHandler(auth, dues, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
}

// openKV selects the persistence backend: a JSON file by default, Redis or
// Postgres when configured.
func openKV(cfg *config.Config, log *zap.Logger) (store.KV, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Info("Using Redis KV backend", zap.String("addr", cfg.Redis.Addr))
		return store.NewRedisKV(client), func() { _ = client.Close() }, nil
	case "postgres":
		kv, err := store.OpenPostgresKV(
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Database,
			cfg.Database.SSLMode,
		)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using Postgres KV backend", zap.String("host", cfg.Database.Host))
		return kv, func() { _ = kv.Close() }, nil
	default:
		kv, err := store.OpenFileKV(cfg.Store.DataPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using file KV backend", zap.String("path", cfg.Store.DataPath))
		return kv, func() {}, nil
	}
}
