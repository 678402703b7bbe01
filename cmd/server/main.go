package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weatherupdate/weatherupdate/internal/api"
	"github.com/weatherupdate/weatherupdate/internal/config"
	"github.com/weatherupdate/weatherupdate/internal/session"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" || cfg.AppAccessToken == "" {
		log.Println("Warning: JWT_SECRET or APP_ACCESS_TOKEN not set; auth endpoints will respond 500")
	}
	if cfg.WeatherbitAPIKey == "" {
		log.Println("Warning: WEATHERBIT_API_KEY not set; weather endpoints will respond 500")
	}

	codec := session.NewCodec(cfg.JWTSecret)
	weather := weatherbit.NewClient(cfg.WeatherbitBaseURL, cfg.WeatherbitAPIKey)

	router := api.NewRouter(cfg, codec, weather)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
