package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/flashdeck/internal/api"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/metrics"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routerDeps is everything the HTTP surface needs.
type routerDeps struct {
	config            *config.Config
	logger            *slog.Logger
	metrics           *metrics.Metrics
	metricsHandler    http.Handler
	jwtService        auth.JWTService
	cardReviewService card_review.CardReviewService
	deckService       service.DeckService
}

// setupRouter builds the router from the application's dependencies.
func (app *application) setupRouter() http.Handler {
	return newRouter(routerDeps{
		config:            app.config,
		logger:            app.logger,
		metrics:           app.metrics,
		metricsHandler:    promhttp.Handler(),
		jwtService:        app.jwtService,
		cardReviewService: app.cardReviewService,
		deckService:       app.deckService,
	})
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(deps.logger))
	r.Use(apiMiddleware.Metrics(deps.metrics))

	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.jwtService)
	reviewLimiter := apiMiddleware.NewRateLimiter(
		deps.config.RateLimit.ReviewsPerWindow,
		deps.config.RateLimit.Window(),
		apiMiddleware.WithRateLimitMetrics(deps.metrics),
	)

	cardHandler := api.NewCardHandler(deps.cardReviewService, deps.logger)
	deckHandler := api.NewDeckHandler(deps.cardReviewService, deps.deckService, deps.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/cards/{id}", func(r chi.Router) {
			r.With(reviewLimiter.Limit).Post("/answer", cardHandler.SubmitAnswer)
			r.Get("/preview", cardHandler.PreviewIntervals)
			r.Post("/postpone", cardHandler.PostponeCard)
		})

		r.Route("/decks/{deckID}", func(r chi.Router) {
			r.Get("/queue", deckHandler.GetQueue)
			r.Get("/stats", deckHandler.GetStats)
			r.Post("/reset", deckHandler.ResetDeck)
			r.Get("/quiz", deckHandler.GenerateQuiz)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			deps.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", deps.metricsHandler)

	return r
}
