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
	"guestbook/internal/guestbook"
	"guestbook/internal/handlers"
	"guestbook/internal/observability"
	"guestbook/internal/router"
	"guestbook/internal/session"
)

const sessionSweepInterval = time.Minute

func main() {
	cfg, err := config.LoadWeb()
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

	// The endpoint is resolved once here and never re-read.
	client := guestbook.NewClient(cfg.GuestbookEndpoint(), http.DefaultClient)
	sessions := session.NewStore(func() *guestbook.View {
		return guestbook.NewView(client, logger)
	}, cfg.SessionLimit)
	go sessions.Run(ctx, sessionSweepInterval, cfg.SessionTTL)

	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	engine := router.NewWebRouter(router.Web{
		ServiceName: cfg.ServiceName,
		Log:         logger,
		Templates:   tmpl,
		Pages:       handlers.NewPageHandler(sessions, cfg.PageLang),
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

	logger.Info("guestbook page server listening", "port", cfg.Port, "api", client.Endpoint())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server closed")
}
