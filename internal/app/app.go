package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"portfolio-assistant/features/chat"
	"portfolio-assistant/internal/config"
	"portfolio-assistant/internal/middleware"
)

type App struct {
	Handler http.Handler
	port    int
}

func New(cfg *config.Config, chatService *chat.Service) *App {
	chatHandler := chat.NewHandler(chatService)

	mux := http.NewServeMux()
	mux.Handle("POST /chat", middleware.CorrelationID(middleware.CORS(chatHandler.Chat)))
	mux.Handle("OPTIONS /chat", middleware.CORS(func(w http.ResponseWriter, r *http.Request) {}))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &App{Handler: mux, port: cfg.ServerPort}
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
