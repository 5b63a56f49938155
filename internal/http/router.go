package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/regutech/plataforma/internal/accion"
	"github.com/regutech/plataforma/internal/auditoria"
	"github.com/regutech/plataforma/internal/checklist"
	"github.com/regutech/plataforma/internal/config"
	"github.com/regutech/plataforma/internal/http/middleware"
	"github.com/regutech/plataforma/internal/politica"
	"github.com/regutech/plataforma/internal/riesgo"
	"github.com/regutech/plataforma/internal/service"
)

// Deps agrupa las dependencias del router.
type Deps struct {
	Config      *config.Config
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	Auth        *AuthHandler
	AuthService *service.AuthService
	Backoffice  *BackofficeHandler
	Auditorias  *auditoria.Handler
	Riesgos     *riesgo.Handler
	Acciones    *accion.Handler
	Checklists  *checklist.Handler
	Politicas   *politica.Handler
}

// NewRouter arma el router completo: middlewares globales, rutas
// públicas con límite por IP y rutas privadas con límite por usuario.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(deps.Config.AllowOrigins))
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := deps.Pool.Ping(ctx); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "base de datos no disponible")
			return
		}
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "redis no disponible")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	publicLimiter := middleware.NewRateLimiter(deps.Config.RateLimitPublic.RequestsPerSecond, deps.Config.RateLimitPublic.Burst)
	authLimiter := middleware.NewRateLimiter(deps.Config.RateLimitAuth.RequestsPerSecond, deps.Config.RateLimitAuth.Burst)

	r.Route("/api", func(r chi.Router) {
		// Rutas públicas, limitadas por IP.
		r.Group(func(r chi.Router) {
			r.Use(middleware.IPRateLimit(publicLimiter))

			r.Post("/login", deps.Auth.handleLogin)
			r.Post("/forgot-password", deps.Auth.handleForgotPassword)
			r.Post("/reset-password", deps.Auth.handleResetPassword)
		})

		// Rutas privadas, limitadas por usuario autenticado.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.AuthService.Tokens()))
			r.Use(middleware.UserRateLimit(authLimiter))

			r.Get("/me", deps.Auth.handleMe)
			r.Put("/me", deps.Auth.handleUpdateMe)
			r.Put("/change-password", deps.Auth.handleChangePassword)
			r.With(middleware.RequireSuperAdmin).Post("/create-admin-user", deps.Auth.handleCreateAdminUser)

			auditoria.Mount(r, deps.Auditorias)
			riesgo.Mount(r, deps.Riesgos)
			accion.Mount(r, deps.Acciones)
			checklist.Mount(r, deps.Checklists)
			politica.Mount(r, deps.Politicas)

			r.Route("/backoffice", func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)

				deps.Backoffice.RegisterRoutes(r)
				checklist.MountBackoffice(r, deps.Checklists)
				politica.MountBackoffice(r, deps.Politicas)
			})
		})
	})

	return r
}
