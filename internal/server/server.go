// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the one place where the dependency chain is
// assembled (config → sqlite → services → handlers → routes) and where each
// route's access policy is declared. Handlers never touch the database, and
// services never touch HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ekaracan/vetaris/internal/auth"
	"github.com/ekaracan/vetaris/internal/config"
	"github.com/ekaracan/vetaris/internal/handler"
	"github.com/ekaracan/vetaris/internal/middleware"
	sqliteRepo "github.com/ekaracan/vetaris/internal/repository/sqlite"
	"github.com/ekaracan/vetaris/internal/service"
)

// Server owns the router, the database connection, and the config. The DB
// is closed during graceful shutdown after in-flight requests drain.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New wires the whole application together.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes declares the route table. Routes are grouped by access
// policy — Public, RequiresSession, RequiresAdmin — so the policy of every
// endpoint is visible in one place rather than buried in handlers.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Services and handlers. The sqlite DB satisfies every repository
	// interface, so it is passed wherever a repository is expected.
	passwords := auth.NewPasswordService()
	authSvc := service.NewAuthService(s.db, s.db, passwords, s.logger)
	productSvc := service.NewProductService(s.db, s.logger)
	orderSvc := service.NewOrderService(s.db, s.logger)
	postSvc := service.NewPostService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.config.CookieSecure, s.logger)
	productHandler := handler.NewProductHandler(productSvc, s.logger)
	orderHandler := handler.NewOrderHandler(orderSvc, s.logger)
	postHandler := handler.NewPostHandler(postSvc, s.logger)

	requireSession := auth.RequireSession(authSvc)
	requireAdmin := auth.RequireAdmin(authSvc)

	s.router.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/products", productHandler.HandleList)
		r.Get("/posts", postHandler.HandleList)
		r.Get("/posts/{idOrSlug}", postHandler.HandleGet)

		// RequiresSession
		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/auth/me", authHandler.HandleMe)
			r.Get("/orders", orderHandler.HandleListMine)
			r.Post("/orders", orderHandler.HandleCreate)
		})

		// RequiresAdmin
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/products", productHandler.HandleCreate)
			r.Put("/products/{id}", productHandler.HandleUpdate)
			r.Delete("/products/{id}", productHandler.HandleDelete)
			r.Get("/admin/products", productHandler.HandleListAll)
			r.Get("/admin/orders", orderHandler.HandleListAll)
			r.Put("/admin/orders/{id}/status", orderHandler.HandleUpdateStatus)
			r.Get("/admin/posts", postHandler.HandleListAll)
			r.Post("/posts", postHandler.HandleCreate)
			r.Put("/posts/{id}", postHandler.HandleUpdate)
			r.Delete("/posts/{id}", postHandler.HandleDelete)
		})

		// Unmatched /api paths get a JSON 404, not the file server.
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		})
	})

	// Everything outside /api is the static storefront (public/), with
	// index.html served at /.
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/*", fileServer)
}

// Router exposes the configured router — used by httptest in tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the database. Start calls this itself; it exists for
// callers (tests) that never Start the listener.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server and blocks until shutdown.
//
// On SIGINT/SIGTERM: stop accepting connections, give in-flight requests
// 30 seconds to finish, then close the database so the WAL is flushed.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
