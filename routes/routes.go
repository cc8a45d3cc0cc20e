package routes

import (
	"net/http"

	_ "github.com/Dosada05/league-brackets/docs"
	"github.com/Dosada05/league-brackets/handlers"
	"github.com/Dosada05/league-brackets/middleware"
	"github.com/Dosada05/league-brackets/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func SetupRoutes(
	router *chi.Mux,
	bracketHandler *handlers.BracketHandler,
	wsHandler *handlers.WebSocketHandler,
	opts Options,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if wsHandler != nil {
		router.Get("/ws/seasons/{seasonID}", wsHandler.ServeWs)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/brackets", func(r chi.Router) {
			r.Post("/preview", bracketHandler.Preview)
			r.Get("/stats", bracketHandler.Stats)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(opts.JWTSecret))
				r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))
				r.Post("/generate", bracketHandler.Generate)
			})
		})

		r.Get("/seasons/{seasonID}/bracket", bracketHandler.GetBracket)
	})
}
