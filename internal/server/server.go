// Package server boots every subsystem and runs the HTTP and gRPC servers
// until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/foodshare/app/listeners"
	"github.com/shashiranjanraj/foodshare/app/routes"
	"github.com/shashiranjanraj/foodshare/config"
	"github.com/shashiranjanraj/foodshare/pkg/cache"
	"github.com/shashiranjanraj/foodshare/pkg/database"
	grpcserver "github.com/shashiranjanraj/foodshare/pkg/grpc"
	"github.com/shashiranjanraj/foodshare/pkg/logger"
	"github.com/shashiranjanraj/foodshare/pkg/metrics"
	"github.com/shashiranjanraj/foodshare/pkg/middleware"
	"github.com/shashiranjanraj/foodshare/pkg/queue"
	"github.com/shashiranjanraj/foodshare/pkg/reqid"
	"github.com/shashiranjanraj/foodshare/pkg/router"
	"github.com/shashiranjanraj/foodshare/pkg/schedule"
	"github.com/shashiranjanraj/foodshare/pkg/storage"
)

const shutdownGrace = 15 * time.Second

// Start boots the application and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	var mongoHandler *logger.MongoHandler
	if uri := config.LogMongoURI(); uri != "" {
		mh, err := logger.NewMongoHandler(uri, config.LogMongoDatabase(), "logs")
		if err != nil {
			logger.Warn("mongo log handler disabled", "error", err)
		} else {
			mongoHandler = mh
			logger.L = slog.New(logger.NewMultiHandler(logger.L.Handler(), mh))
			slog.SetDefault(logger.L)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	// Queue: redis driver when configured and reachable, memory otherwise.
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)

	listeners.Boot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue.StartWorkers(ctx, 4)
	schedule.Start(ctx)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r)

	httpSrv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("foodshare listening",
			"http_port", config.AppPort(), "grpc_port", config.GRPCPort())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	}

	cancel() // stop workers and scheduler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	grpcserver.Stop(grpcSrv)

	if mongoHandler != nil {
		mongoHandler.Close()
	}
	return nil
}
