package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-field-editor/internal/config"
	"pdf-field-editor/internal/handler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring
	container, err := config.NewContainer(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	// Handlers
	sessionHandler := handler.NewSessionHandler(
		container.SessionService,
		container.DocumentLoader,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)
	fieldHandler := handler.NewFieldHandler(
		container.SessionService,
		container.DragAdapter,
		container.Logger,
	)
	saveHandler := handler.NewSaveHandler(
		container.SessionService,
		container.SavePipeline,
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		sessionHandler,
		fieldHandler,
		saveHandler,
		container.Config.GetAllowedOrigins(),
		container.Logger,
	)

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	container.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown failed", err)
	}

	container.Logger.Info("Server exited")
}
