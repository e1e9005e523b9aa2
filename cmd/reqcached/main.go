package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	root, err := NewCompositionRoot()
	if err != nil {
		fmt.Printf("Failed to initialize daemon: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := root.Cleanup(); err != nil {
			root.Logger.Error("Failed to cleanup resources", zap.Error(err))
		}
	}()

	addr := root.Config.ListenAddr
	root.Logger.Info("Starting cache admin server", zap.String("addr", addr))
	go func() {
		if err := root.Server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			root.Logger.Error("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	root.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := root.Server.Stop(ctx); err != nil {
		root.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	root.Logger.Info("Server exited")
}
