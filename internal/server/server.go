package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evergreen-power/apiserver/config"
	"github.com/evergreen-power/apiserver/internal/docstore"
	"github.com/evergreen-power/apiserver/internal/handlers"
	"github.com/evergreen-power/apiserver/internal/services"
	"github.com/evergreen-power/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
}

// New constructs a Server: document store per config, repositories loaded
// from it, services and routes on top. Store construction failures (including
// missing Firebase credentials) are fatal here, before the listener starts.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	docs, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	leadRepo, err := store.NewLeadRepository(ctx, docs)
	if err != nil {
		return nil, err
	}
	userRepo, err := store.NewUserRepository(ctx, docs)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(userRepo)
	leadService := services.NewLeadService(leadRepo, userRepo)
	userService := services.NewUserService(userRepo)
	reportService := services.NewReportService(leadService)

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	authHandler := handlers.NewAuthHandler(authService, jwtSecret)
	authMiddleware := authHandler.RequireAuth

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, jwtSecret)
	})
	router.Route("/leads", func(r chi.Router) {
		handlers.LeadRouter(r, leadService, authMiddleware)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware)
	})
	router.Route("/reports", func(r chi.Router) {
		handlers.ReportRouter(r, reportService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
	}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (docstore.Store, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return docstore.NewLocalStore(cfg.DataDir)
	case config.BackendFirebase:
		return docstore.NewFirebaseStore(ctx, cfg.Firebase)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}
