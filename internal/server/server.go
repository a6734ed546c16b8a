package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zinal-app/apiserver/config"
	"github.com/zinal-app/apiserver/internal/db"
	"github.com/zinal-app/apiserver/internal/handlers"
	"github.com/zinal-app/apiserver/internal/logger"
	"github.com/zinal-app/apiserver/internal/services"
	"github.com/zinal-app/apiserver/internal/session"
	"github.com/zinal-app/apiserver/internal/store"
	"github.com/zinal-app/apiserver/web"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	sessions   *session.RedisStore
	log        logger.ILogger
}

// New constructs a Server with its storage, session store, and routes.
func New(ctx context.Context, cfg config.Config, log logger.ILogger) (*Server, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions, err := session.NewRedisStore(ctx, cfg.Redis, sessionTTL)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	router, err := buildRouter(dbConn, sessions, cfg.SecretKey, sessionTTL, log)
	if err != nil {
		_ = sessions.Close()
		_ = dbConn.Close()
		return nil, err
	}

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
		db:         dbConn,
		sessions:   sessions,
		log:        log,
	}, nil
}

func buildRouter(dbConn *sql.DB, sessions session.Store, secretKey string, sessionTTL time.Duration, log logger.ILogger) (*chi.Mux, error) {
	userRepo := store.NewUserRepository(dbConn)
	clickRepo := store.NewClickLogRepository(dbConn)

	userService := services.NewUserService(userRepo)
	clickService := services.NewClickService(clickRepo)
	statsService := services.NewStatsService(clickRepo)
	analysisService := services.NewAnalysisService(sessions)

	authHandler := handlers.NewAuthHandler(userService, sessions, secretKey, sessionTTL)
	pageHandler, err := handlers.NewPageHandler(authHandler, userService, log)
	if err != nil {
		return nil, err
	}
	analysisHandler := handlers.NewAnalysisHandler(analysisService, userService)
	clickHandler := handlers.NewClickHandler(clickService)
	adminHandler := handlers.NewAdminHandler(userService, clickService, statsService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)

	router.Get("/healthz", handlers.Healthz)

	// Pages.
	router.Get("/", pageHandler.Landing)
	router.Get("/login", pageHandler.LoginForm)
	router.Post("/login", pageHandler.Login)
	router.Get("/logout", authHandler.Logout)
	router.Get("/dashboard", pageHandler.Dashboard)
	router.Get("/admin", pageHandler.Admin)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Session-gated JSON API.
	router.Route("/api", func(r chi.Router) {
		r.Get("/user/me", authHandler.Me)
		r.Group(func(r chi.Router) {
			r.Use(authHandler.RequireSession)
			r.Post("/start-analysis", analysisHandler.Start)
			r.Post("/registrar-clique", clickHandler.Register)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(authHandler.RequireSession, authHandler.RequireAdmin)
			handlers.AdminRouter(r, adminHandler)
		})
	})

	return router, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.Info("server listening", logger.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.sessions != nil {
		_ = s.sessions.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
