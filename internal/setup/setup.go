package setup

import (
	"context"
	"log"

	"github.com/borda-dev/borda/internal/config"
	"github.com/borda-dev/borda/internal/events"
	"github.com/borda-dev/borda/internal/handler"
	"github.com/borda-dev/borda/internal/middleware"
	"github.com/borda-dev/borda/internal/service"
	"github.com/borda-dev/borda/internal/storage/pg"
	"github.com/borda-dev/borda/internal/utils/googleauth"
	"github.com/borda-dev/borda/internal/utils/jwt"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	AuthMiddleware *middleware.Auth
	Hub            *events.Hub
	Config         *config.Config
}

// SetupDependencies initializes everything the router needs.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	hub := events.NewHub()

	var google googleauth.Verifier
	if cfg.GoogleClientId() != "" {
		google, err = googleauth.New(ctx, cfg.GoogleClientId())
		if err != nil {
			// Federated login degrades, password login still works.
			log.Printf("google login disabled: %v", err)
			google = nil
		}
	}

	auth := service.NewAuth(storage, jwtService, google)
	board := service.NewBoard(storage, hub)
	user := service.NewUser(storage)

	h := handler.New(auth, board, user, hub, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Hub:            hub,
		Config:         cfg,
	}, nil
}
