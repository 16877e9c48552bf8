package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"

	"guestbook/internal/config"
	"guestbook/internal/db"
	"guestbook/internal/handlers"
	"guestbook/internal/observability"
	"guestbook/internal/rabbitmq"
	"guestbook/internal/repositories"
	"guestbook/internal/router"
	"guestbook/internal/telemetry"
	"guestbook/internal/ws"
)

const auditRoutingKey = "audit.logs"

func main() {
	cfg, err := config.LoadAPI()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logs.GetLoggerFromString(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()
	observability.SetPublisher(publisher)
	logger.Info("event publisher ready", "mode", rabbitmq.PublisherMode(publisher), "noop_reason", rabbitmq.PublisherNoopReason(publisher))

	audit := telemetry.NewAuditEmitter(publisher, auditRoutingKey, cfg.ServiceName, cfg.Environment)
	messageRepo := repositories.NewMessageRepo(database)
	hub := ws.NewHub()

	engine := router.NewAPIRouter(router.API{
		ServiceName: cfg.ServiceName,
		Log:         logger,
		CORSOrigins: cfg.AllowedOrigins(),
		DebugRoutes: cfg.DebugRoutes,
		Guestbook:   handlers.NewGuestbookHandler(messageRepo, hub, audit),
		Feed:        ws.NewFeedHandler(hub),
		Audit:       audit,
	})

	server := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Port),
		Handler: engine,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("guestbook api listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server closed")
}
