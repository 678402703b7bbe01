package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/weatherupdate/weatherupdate/internal/api/handlers"
	"github.com/weatherupdate/weatherupdate/internal/api/middleware"
	"github.com/weatherupdate/weatherupdate/internal/config"
	"github.com/weatherupdate/weatherupdate/internal/session"
	"github.com/weatherupdate/weatherupdate/internal/weatherbit"
)

func NewRouter(cfg *config.Config, codec *session.Codec, weather *weatherbit.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg, codec)
	weatherHandler := handlers.NewWeatherHandler(cfg, weather)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/weather", func(r chi.Router) {
			// Legacy top-level current-conditions endpoint, coordinate or
			// city based, ungated.
			r.Get("/", weatherHandler.LegacyCurrent)

			// Alerts is ungated in the current version.
			r.Post("/weatherAlerts", weatherHandler.Alerts)

			// Session-gated weather operations
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(codec))
				r.Post("/currentWeather", weatherHandler.Current)
				r.Post("/dailyForecast", weatherHandler.DailyForecast)
				r.Post("/dailyHistory", weatherHandler.DailyHistory)
			})
		})
	})

	return r
}
