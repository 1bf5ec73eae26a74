package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/fameflow-backend/internal/api/handlers"
	"github.com/baharkarakas/fameflow-backend/internal/config"
	"github.com/baharkarakas/fameflow-backend/internal/metrics"
	"github.com/baharkarakas/fameflow-backend/internal/middleware"
	"github.com/baharkarakas/fameflow-backend/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	Log      *slog.Logger
	OrderSvc *services.OrderService
	Ledger   *services.LedgerService
	AdminSvc *services.AdminService
	AuthSvc  *services.AuthService
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	origins := d.Cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.RequestLogger(log),
		middleware.Recover,
		middleware.HTTPMetrics,
		middleware.RateLimit(d.Cfg.RateRPS),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	orders := handlers.NewOrderHandler(d.OrderSvc, d.Ledger)
	store := handlers.NewStorefrontHandler(d.AdminSvc)
	admin := handlers.NewAdminHandler(d.AdminSvc)
	login := handlers.NewAuthHandler(d.AuthSvc)

	r.Route("/api", func(r chi.Router) {
		// storefront
		r.Post("/order", orders.PlaceOrder)
		r.Post("/deposit", orders.Deposit)
		r.Get("/orders", orders.List)
		r.Get("/users/{id}/balance", orders.Balance)
		r.Get("/catalog", store.Catalog)
		r.Get("/settings/public", store.PublicSettings)

		// back-office
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", login.Login)
			r.Get("/stats", admin.Stats)
			r.Get("/users", admin.Users)
			r.Post("/users/{id}/status", admin.UpdateUserStatus)
			r.Get("/api-keys", admin.APIKeys)
			r.Post("/api-keys", admin.CreateAPIKey)
			r.Get("/settings", admin.Settings)
			r.Post("/settings", admin.UpdateSetting)
			r.Get("/activity", admin.Activity)
			r.Get("/plans", admin.Plans)
		})
	})

	return r
}
