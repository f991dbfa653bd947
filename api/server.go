/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client address behind a proxy
  3. Logger:     zap request logging (method, path, status, duration)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests from the app and widget web views

ROUTE GROUPS:
  /api/profile, /api/countdown, /api/pay, /api/widget, /api/stats
  /api/milestones/*     One-time milestone checks
  /api/budget/*         Expenses
  /api/leave/*          Leave days
  /api/checklists/*     Packing and preparation lists
  /api/equipment/*      Issued kit
  /api/cooper/*         Cooper test log

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// DefaultCORSOrigins are allowed when none are configured.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	if len(corsOrigins) == 0 {
		corsOrigins = DefaultCORSOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
		r.Get("/countdown", h.GetCountdown)
		r.Get("/pay", h.GetPay)
		r.Get("/pay/accruals", h.GetPayAccruals)
		r.Get("/widget", h.GetWidget)
		r.Get("/stats", h.GetStats)
		r.Post("/milestones/check", h.CheckMilestone)

		r.Route("/budget", func(r chi.Router) {
			r.Get("/", h.ListBudget)
			r.Post("/", h.CreateBudgetEntry)
			r.Get("/summary", h.GetBudgetSummary)
			r.Delete("/{id}", h.DeleteBudgetEntry)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Get("/", h.ListLeave)
			r.Post("/", h.CreateLeave)
			r.Get("/summary", h.GetLeaveSummary)
			r.Delete("/{id}", h.DeleteLeave)
		})

		r.Route("/checklists", func(r chi.Router) {
			r.Put("/items/{id}/toggle", h.ToggleChecklistItem)
			r.Delete("/items/{id}", h.DeleteChecklistItem)
			r.Get("/{kind}", h.GetChecklist)
			r.Post("/{kind}", h.CreateChecklistItem)
			r.Post("/{kind}/defaults", h.AddDefaultChecklist)
			r.Post("/{kind}/reset", h.ResetChecklist)
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", h.ListEquipment)
			r.Post("/", h.CreateEquipment)
			r.Post("/defaults", h.AddDefaultEquipment)
			r.Put("/{id}", h.UpdateEquipment)
			r.Delete("/{id}", h.DeleteEquipment)
		})

		r.Route("/cooper", func(r chi.Router) {
			r.Get("/", h.ListCooperTests)
			r.Post("/", h.CreateCooperTest)
			r.Delete("/{id}", h.DeleteCooperTest)
		})
	})

	return r
}

// RequestLogger logs one line per request with zap.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
