package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bcvrates/internal/bootstrap"
	infraconfig "bcvrates/internal/infrastructure/config"
	httpserver "bcvrates/internal/infrastructure/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := bootstrap.ProvideLogger("api")
	cfg := bootstrap.ProvideConfig()
	addr := ":" + cfg.Port

	srv, cleanup, err := bootstrap.InitAPI(context.Background(), cfg, logger)
	defer cleanup()
	if err != nil {
		logger.Fatal("init api", zap.Error(err))
	}
	server := &http.Server{
		Addr:    addr,
		Handler: httpserver.NewRouter(srv),
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("data_dir", cfg.DataDir))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
