package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/borda-dev/borda/internal/middleware"
	"github.com/borda-dev/borda/internal/setup"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New wires every route. Mutating board routes and messages require auth;
// single-board reads and the event stream are public like in the
// reference client flow.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/signup", h.Signup)
			r.Post("/logout", h.Logout)
			r.Post("/google", h.GoogleLogin)
		})

		r.Route("/board", func(r chi.Router) {
			r.Get("/{id}", h.GetBoard)
			r.Get("/{id}/events", h.BoardEvents)

			r.Group(func(r chi.Router) {
				r.Use(authMw.NeedAuth())
				r.Get("/", h.GetBoards)
				r.Post("/", h.CreateBoard)
				r.Put("/{id}", h.UpdateBoard)
				r.Delete("/{id}", h.DeleteBoard)
				r.Post("/{id}/msg", h.AddBoardMsg)
				r.Delete("/{id}/msg/{msgId}", h.DeleteBoardMsg)
			})
		})

		r.Route("/user", func(r chi.Router) {
			r.With(authMw.AdminOnly()).Get("/", h.GetUsers)
			r.With(authMw.NeedAuth()).Get("/{id}", h.GetUser)
		})
	})

	// SPA: serve static assets, fall back to index.html so the client
	// router owns unmatched paths.
	r.NotFound(spaHandler(deps.Config.Public.StaticDir))

	return r
}

func spaHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	}
}
