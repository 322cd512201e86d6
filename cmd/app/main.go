package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/app"
	"github.com/chris/tailorshop-ledger/pkg/config"
	"github.com/chris/tailorshop-ledger/pkg/handlers"
	"github.com/chris/tailorshop-ledger/pkg/handlers/httpio"
	wshandlers "github.com/chris/tailorshop-ledger/pkg/handlers/websockets"
	"github.com/chris/tailorshop-ledger/pkg/middleware"
	"github.com/chris/tailorshop-ledger/pkg/payout"
	"github.com/chris/tailorshop-ledger/pkg/requests"
	"github.com/chris/tailorshop-ledger/pkg/scheduler"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
	"github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/chris/tailorshop-ledger/pkg/workflow"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	c, err := app.OpenCache(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to cache: %v", err)
	}
	core := app.NewCore(store, c)

	// Behind API Gateway messages go through the management API, otherwise
	// straight to the sockets this process holds.
	hub := websockets.NewHub()
	var publisher websockets.Publisher = hub
	if cfg.WebSocketEndpoint != "" {
		publisher, err = websockets.NewPublisher(ctx, store, store, cfg.WebSocketEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
	}

	// The memory driver has no queue, so payouts run inline.
	var sched scheduler.Scheduler
	if cfg.StorageDriver == config.DriverMemory {
		sched = scheduler.NewInlineScheduler(payout.New(store, core.Distributor, publisher))
	} else {
		if err := cfg.RequireQueue(); err != nil {
			log.Fatal(err)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL, cfg.SQSDelaySeconds)
	}

	handler := handlers.NewApiHandler(handlers.Services{
		Engine:    workflow.NewEngine(store, store, core.Writer, sched),
		Workers:   workers.New(store),
		Requests:  requests.New(store, core.Writer, core.Settings),
		Settings:  core.Settings,
		Rates:     core.Rates,
		Hierarchy: core.Hierarchy,
		Ledger:    store,
		Publisher: publisher,
	})

	router := chi.NewRouter()
	router.Use(middleware.Stack(middleware.Options{
		Logger:            logger,
		Production:        cfg.IsProduction(),
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
	})...)
	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/ws", wshandlers.NewLocalHandler(hub))

	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       router,
		Middlewares:      []api.MiddlewareFunc{middleware.Maintenance(core.Settings.Get, "/settings", "/rates")},
		ErrorHandlerFunc: httpio.ParamError,
	})

	logger.Info("starting server", "port", cfg.HTTPPort, "driver", cfg.StorageDriver)

	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
