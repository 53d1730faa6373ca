package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/avolkoff/moneymap/internal/transport/httpapi/handler"
	"github.com/avolkoff/moneymap/internal/transport/httpapi/middleware"
	"github.com/avolkoff/moneymap/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger           *logger.Logger
	AllowedOrigins   []string
	AuthHandler      *handler.AuthHandler
	SplitwiseHandler *handler.SplitwiseHandler
	ExpenseHandler   *handler.ExpenseHandler
	GroupHandler     *handler.GroupHandler
	IncomeHandler    *handler.IncomeHandler
	HealthHandler    *handler.HealthHandler
	JWTMiddleware    func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes (public)
		if cfg.AuthHandler != nil {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		// Protected routes (require JWT authentication)
		if cfg.JWTMiddleware != nil {
			r.Group(func(r chi.Router) {
				r.Use(cfg.JWTMiddleware)

				if cfg.AuthHandler != nil {
					r.Get("/auth/me", cfg.AuthHandler.Me)
				}

				if cfg.SplitwiseHandler != nil {
					r.Post("/splitwise/credentials", cfg.SplitwiseHandler.SaveCredentials)
					r.Post("/splitwise/import", cfg.SplitwiseHandler.Import)
				}

				if cfg.ExpenseHandler != nil {
					r.Route("/expenses", func(r chi.Router) {
						r.Get("/", cfg.ExpenseHandler.List)
						r.Post("/", cfg.ExpenseHandler.Create)
						r.Delete("/", cfg.ExpenseHandler.DeleteAll)
						r.Put("/{id}", cfg.ExpenseHandler.Update)
						r.Delete("/{id}", cfg.ExpenseHandler.Delete)
					})
				}

				if cfg.GroupHandler != nil {
					r.Route("/groups", func(r chi.Router) {
						r.Get("/", cfg.GroupHandler.List)
						r.Post("/", cfg.GroupHandler.Create)
						r.Put("/{id}", cfg.GroupHandler.Update)
						r.Delete("/{id}", cfg.GroupHandler.Delete)
					})
				}

				if cfg.IncomeHandler != nil {
					r.Route("/income", func(r chi.Router) {
						r.Get("/", cfg.IncomeHandler.List)
						r.Post("/", cfg.IncomeHandler.Create)
						r.Put("/{id}", cfg.IncomeHandler.Update)
						r.Delete("/{id}", cfg.IncomeHandler.Delete)
					})
				}
			})
		}
	})

	return r
}
