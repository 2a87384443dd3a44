package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/Yigit-Sert/library-portal/internal/config"
	"github.com/Yigit-Sert/library-portal/internal/handler"
	"github.com/Yigit-Sert/library-portal/internal/logging"
	"github.com/Yigit-Sert/library-portal/internal/middleware"
	"github.com/Yigit-Sert/library-portal/internal/model"
	"github.com/Yigit-Sert/library-portal/internal/relay"
	"github.com/Yigit-Sert/library-portal/internal/render"
	"github.com/Yigit-Sert/library-portal/internal/session"
	"github.com/Yigit-Sert/library-portal/internal/store"
	"github.com/Yigit-Sert/library-portal/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Library Portal - web front for the library service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SESSION_SECRET  Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_BACKEND_URL     Library service base URL (default: http://localhost:8081)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_DB_PATH         SQLite database path (default: ./data/portal.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ENV             Environment: development|production (default: development)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("library-portal %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Relay client for the library service
	client, err := relay.New(cfg.BackendURL, cfg.RelayTimeoutDuration())
	if err != nil {
		return fmt.Errorf("initializing relay client: %w", err)
	}
	slog.Info("relay client initialized", "backend", cfg.BackendURL, "timeout", cfg.RelayTimeoutDuration())

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	docsFS, err := fs.Sub(web.Docs, "docs")
	if err != nil {
		return fmt.Errorf("getting docs fs: %w", err)
	}

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized")

	// Public rate limiter for unauthenticated form routes
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	// Initialize handlers
	queries := store.New(db)
	homeHandler := handler.NewHomeHandler(client, renderer, sessionManager)
	authHandler := handler.NewAuthHandler(client, renderer, sessionManager)
	booksHandler := handler.NewBooksHandler(client, renderer, sessionManager)
	membersHandler := handler.NewMembersHandler(client, renderer, sessionManager)
	requestsHandler := handler.NewRequestsHandler(client, renderer, sessionManager)
	borrowingsHandler := handler.NewBorrowingsHandler(client, renderer, sessionManager)
	usersHandler := handler.NewUsersHandler(client, renderer, sessionManager)
	profileHandler := handler.NewProfileHandler(client, renderer, sessionManager)
	docsHandler := handler.NewDocsHandler(renderer, docsFS)
	eventsHandler := handler.NewEventsHandler(queries, renderer)
	healthHandler := handler.NewHealthHandler(db)

	// Health check route (public)
	r.Get(handler.RouteHealth, healthHandler.Check)

	// Every page resolves the caller's identity against the backend once
	resolveSession := middleware.ResolveSession(client)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.HTMLMiddleware())
		r.Use(resolveSession)
		r.Use(csrfMiddleware)
		r.Get(handler.RouteRoot, homeHandler.Home)
		r.Get(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)
		r.Get(handler.RouteForbidden, authHandler.Forbidden)
		r.Get(handler.RouteHelp, docsHandler.Index)
		r.Get(handler.RouteHelp+handler.RouteParamSlug, docsHandler.Guide)
	})

	// Signed-in routes (any role)
	r.Group(func(r chi.Router) {
		r.Use(resolveSession)
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireAuth())
		r.Get(handler.RouteProfile, profileHandler.Show)
		r.Post(handler.RouteProfile+"/picture", profileHandler.UploadPicture)
	})

	// Member routes - requesting books is a member ability, not a staff one
	r.Group(func(r chi.Router) {
		r.Use(resolveSession)
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireExactRole(model.RoleMember))
		r.Get("/books"+handler.RouteParamID+"/request", requestsHandler.ConfirmRequest)
		r.Post(handler.RouteRequests, requestsHandler.Create)
	})

	// Personnel routes (personnel + admin)
	r.Route("/staff", func(r chi.Router) {
		r.Use(resolveSession)
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireRole(model.RolePersonnel))

		r.Get("/books/new", booksHandler.NewForm)
		r.Post("/books", booksHandler.Create)
		r.Get("/books/{id}/edit", booksHandler.EditForm)
		r.Post("/books/{id}", booksHandler.Update)
		r.Get("/books/{id}/delete", booksHandler.ConfirmDelete)
		r.Post("/books/{id}/delete", booksHandler.Delete)

		r.Get("/members/new", membersHandler.NewForm)
		r.Post("/members", membersHandler.Create)
		r.Get("/members/{id}/edit", membersHandler.EditForm)
		r.Post("/members/{id}", membersHandler.Update)
		r.Get("/members/{id}/delete", membersHandler.ConfirmDelete)
		r.Post("/members/{id}/delete", membersHandler.Delete)

		r.Get("/requests/{id}/approve", requestsHandler.ConfirmApprove)
		r.Post("/requests/{id}/approve", requestsHandler.Approve)
		r.Get("/requests/{id}/reject", requestsHandler.ConfirmReject)
		r.Post("/requests/{id}/reject", requestsHandler.Reject)

		r.Post("/borrowings/issue", borrowingsHandler.Issue)
		r.Get("/borrowings/{id}/return", borrowingsHandler.ConfirmReturn)
		r.Post("/borrowings/{id}/return", borrowingsHandler.Return)
	})

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(resolveSession)
		r.Use(csrfMiddleware)
		r.Use(middleware.RequireRole(model.RoleAdmin))

		r.Post("/users/role/confirm", usersHandler.ConfirmChangeRole)
		r.Post("/users/role", usersHandler.ChangeRole)
		r.Get("/events", eventsHandler.List)
	})

	// Static assets from the embedded filesystem
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
