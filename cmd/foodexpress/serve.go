package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/foodexpress/delivery-api/internal/api"
	"github.com/foodexpress/delivery-api/internal/api/handler"
	"github.com/foodexpress/delivery-api/internal/core/service"
	"github.com/foodexpress/delivery-api/internal/infrastructure/catalog"
	"github.com/foodexpress/delivery-api/internal/infrastructure/config"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/redis"
	"github.com/foodexpress/delivery-api/internal/infrastructure/queue"
	"github.com/foodexpress/delivery-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := cfg.RequireSecret(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "foodexpress",
	})

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	users, closeUsers, err := openUserStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeUsers()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	sessions := redis.NewSessionRegistry(rdb, cfg.Redis.SessionTTL)

	carts := queue.NewDispatcher(cfg.Cart.Workers, func() service.Carts { return make(service.Carts) }, log)

	e := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(users, sessions, cfg.JWTSecret, cfg.TokenTTL, log),
		Cart:      service.NewCartService(carts, cat, log),
		Catalog:   cat,
		Readiness: map[string]handler.Pinger{cfg.UserStore: users, "redis": sessions},
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	// Carts outlive the signal context so requests still draining can finish.
	cartCtx, stopCarts := context.WithCancel(context.Background())
	defer stopCarts()
	carts.Start(cartCtx)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("user_store", cfg.UserStore).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down")
		return drain(e, func() {
			stopCarts()
			carts.Wait()
		})
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// drain stops the server from taking requests and waits for in-flight ones,
// then stops the workers they depend on.
func drain(srv shutdowner, stopWorkers func()) error {
	defer stopWorkers()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
