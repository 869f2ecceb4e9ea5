package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain/queue"
	"github.com/phrazzld/flashdeck/internal/domain/srs"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/metrics"
	"github.com/phrazzld/flashdeck/internal/platform/postgres"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/service/auth"
	"github.com/phrazzld/flashdeck/internal/service/card_review"
	"github.com/phrazzld/flashdeck/internal/store"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	deckStore      store.DeckStore
	cardStore      store.CardStore
	reviewLogStore store.ReviewLogStore

	jwtService        auth.JWTService
	srsService        srs.Service
	cardReviewService card_review.CardReviewService
	deckService       service.DeckService

	metrics      *metrics.Metrics
	eventEmitter *events.InMemoryEventEmitter
}

// newApplication wires stores, services and the event pipeline on top of an
// already connected database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.Default(),
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.srsService, err = srs.NewServiceWithParams(cfg.SRS.Params())
	if err != nil {
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}

	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.reviewLogStore = postgres.NewPostgresReviewLogStore(db, logger)

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewMetricsHandler(app.metrics))
	app.eventEmitter.RegisterHandler(
		events.NewAuditHandler(logger.With("component", "audit")),
		events.TypeReviewSubmitted,
		events.TypeCardPostponed,
		events.TypeDeckReset,
	)

	app.cardReviewService = card_review.NewCardReviewService(
		db,
		card_review.NewCardRepositoryAdapter(app.cardStore),
		card_review.NewDeckRepositoryAdapter(app.deckStore),
		card_review.NewReviewLogRepositoryAdapter(app.reviewLogStore),
		app.srsService,
		logger,
		card_review.WithQueueOptions(queue.Options{LearningCap: cfg.Queue.LearningCap}),
		card_review.WithEventEmitter(app.eventEmitter),
	)

	app.deckService = service.NewDeckService(
		app.deckStore,
		app.cardStore,
		logger,
		service.WithDefaultQuizCount(cfg.Quiz.DefaultCount),
		service.WithMaxQuizCount(cfg.Quiz.MaxCount),
		service.WithSRSService(app.srsService),
		service.WithDeckEventEmitter(app.eventEmitter),
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
