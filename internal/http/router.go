package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/temmaissaude/cotador/internal/chat"
	"github.com/temmaissaude/cotador/internal/config"
	"github.com/temmaissaude/cotador/internal/feed"
	httpmiddleware "github.com/temmaissaude/cotador/internal/http/middleware"
	"github.com/temmaissaude/cotador/internal/metrics"
	"github.com/temmaissaude/cotador/internal/plano"
	"github.com/temmaissaude/cotador/internal/service"
)

// Handler agrega as dependências dos endpoints da API.
type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	authService   *service.AuthService
	usuarios      *service.UsuarioService
	planos        *plano.Service
	conversas     *chat.Service
	hub           *feed.Hub
	metricas      *metrics.Metrics
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
	upgrader      websocket.Upgrader
}

// Deps agrupa as dependências injetadas no roteador.
type Deps struct {
	Config      *config.Config
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	AuthService *service.AuthService
	Usuarios    *service.UsuarioService
	Planos      *plano.Service
	Conversas   *chat.Service
	Hub         *feed.Hub
	Metricas    *metrics.Metrics
}

// NewRouter devolve roteador configurado.
func NewRouter(deps Deps) http.Handler {
	allowed := make(map[string]struct{}, len(deps.Config.AllowOrigins))
	for _, origin := range deps.Config.AllowOrigins {
		allowed[origin] = struct{}{}
	}

	h := &Handler{
		cfg:           deps.Config,
		pool:          deps.Pool,
		redis:         deps.Redis,
		authService:   deps.AuthService,
		usuarios:      deps.Usuarios,
		planos:        deps.Planos,
		conversas:     deps.Conversas,
		hub:           deps.Hub,
		metricas:      deps.Metricas,
		publicLimiter: httpmiddleware.NewRateLimiter(deps.Config.RateLimitPublic.RequestsPerSecond, deps.Config.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(deps.Config.RateLimitAuth.RequestsPerSecond, deps.Config.RateLimitAuth.Burst),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(deps.Config.AllowOrigins))

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)

		public.Route("/auth", func(auth chi.Router) {
			auth.Post("/cadastro", h.Cadastro)
			auth.Post("/login", h.Login)
			auth.Post("/refresh", h.Refresh)
			auth.Post("/logout", h.Logout)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(h.authService.JWT()))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Get("/me", h.Me)

		private.Route("/planos", func(p chi.Router) {
			p.Get("/", h.ListPlanos)
			p.Post("/cotacao", h.Cotar)
		})

		private.Route("/cotador/conversa/{id}", func(c chi.Router) {
			c.Get("/", h.ListarConversa)
			c.Post("/", h.AnexarConversa)
		})

		private.Group(func(admin chi.Router) {
			admin.Use(httpmiddleware.RequireAdmin)
			admin.Route("/admin/usuarios", func(u chi.Router) {
				u.Get("/", h.ListUsuarios)
				u.Post("/{id}/status", h.AtualizarStatus)
				u.Get("/feed", h.FeedSSE)
				u.Get("/ws", h.FeedWS)
			})
		})
	})

	return r
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready valida conexões com Postgres e Redis.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbErr := h.pool.Ping(ctx)
	redisErr := h.redis.Ping(ctx).Err()

	if dbErr != nil || redisErr != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", map[string]any{
			"db":    errorString(dbErr),
			"redis": errorString(redisErr),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
