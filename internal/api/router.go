// Package api assembles the HTTP surface: routes, guards, and the
// middleware stack around them.
package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/internlink/server/internal/api/handlers"
	"github.com/internlink/server/internal/api/middleware"
	"github.com/internlink/server/internal/auth"
	"github.com/internlink/server/internal/config"
	"github.com/internlink/server/internal/domain/accounts"
	"github.com/internlink/server/internal/domain/applications"
	"github.com/internlink/server/internal/domain/internships"
	"github.com/internlink/server/internal/domain/stats"
	"github.com/internlink/server/internal/metrics"
	"github.com/internlink/server/internal/storage"
	"github.com/internlink/server/internal/uploads"
	"github.com/rs/zerolog"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// NewRouter wires routes, handlers, and the middleware stack. The repository
// is already open and migrated; dialect differences never reach this layer.
func NewRouter(cfg config.Config, logger zerolog.Logger, repo storage.Repository) http.Handler {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, "internlink")
	uploadStore := uploads.NewStore(cfg.Uploads.Dir)

	accountsService := accounts.NewService(repo.Accounts(), logger)
	internshipsService := internships.NewService(repo.Internships(), logger)
	applicationsService := applications.NewService(repo.Applications(), uploadStore, logger)
	statsService := stats.NewService(repo.Accounts(), repo.Internships(), repo.Applications())

	authHandler := handlers.NewAuthHandler(accountsService, jwtManager, cfg.Environment)
	internshipsHandler := handlers.NewInternshipsHandler(internshipsService, cfg.Environment)
	applicationsHandler := handlers.NewApplicationsHandler(applicationsService, cfg.Environment, cfg.Uploads.MaxBytes)
	statsHandler := handlers.NewStatsHandler(statsService, cfg.Environment)
	healthHandler := handlers.NewHealthHandler(repo, Version)

	requireAdmin := middleware.RequireRole(jwtManager, repo.Accounts(), auth.RoleAdmin, cfg.Environment)
	requireStudent := middleware.RequireRole(jwtManager, repo.Accounts(), auth.RoleStudent, cfg.Environment)
	authenticate := middleware.Authenticate(jwtManager, cfg.Environment)

	mux := http.NewServeMux()

	mux.Handle("/healthz", http.HandlerFunc(healthHandler.Healthz))
	mux.Handle("/readyz", http.HandlerFunc(healthHandler.Readyz))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/register/student", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.RegisterStudent),
	}))
	mux.Handle("/api/register/admin", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.RegisterAdmin),
	}))
	mux.Handle("/api/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))
	mux.Handle("/api/me", methodMux(map[string]http.Handler{
		http.MethodGet: authenticate(http.HandlerFunc(authHandler.Me)),
	}))

	mux.Handle("/api/internships", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(internshipsHandler.List),
		http.MethodPost: requireAdmin(http.HandlerFunc(internshipsHandler.Create)),
	}))

	mux.Handle("/api/apply", methodMux(map[string]http.Handler{
		http.MethodPost: requireStudent(http.HandlerFunc(applicationsHandler.Apply)),
	}))
	mux.Handle("/api/status", methodMux(map[string]http.Handler{
		http.MethodGet: requireStudent(http.HandlerFunc(applicationsHandler.Mine)),
	}))
	mux.Handle("/api/applications", methodMux(map[string]http.Handler{
		http.MethodGet: requireAdmin(http.HandlerFunc(applicationsHandler.All)),
	}))
	mux.Handle("/api/applications/{id}/approve", methodMux(map[string]http.Handler{
		http.MethodPost: requireAdmin(http.HandlerFunc(applicationsHandler.Approve)),
	}))
	mux.Handle("/api/applications/{id}/reject", methodMux(map[string]http.Handler{
		http.MethodPost: requireAdmin(http.HandlerFunc(applicationsHandler.Reject)),
	}))
	mux.Handle("/api/stats", methodMux(map[string]http.Handler{
		http.MethodGet: requireAdmin(http.HandlerFunc(statsHandler.Dashboard)),
	}))

	mux.Handle("/uploads/", handlers.UploadsHandler(cfg.Uploads.Dir))
	mux.Handle("/", handlers.NewSPAHandler(cfg.Frontend.Dir))

	var handler http.Handler = mux
	handler = middleware.RequestSize(cfg.Uploads.MaxBytes)(handler)
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = metrics.Middleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(routes))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(routes map[string]http.Handler) string {
	methods := make([]string, 0, len(routes))
	for method := range routes {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
