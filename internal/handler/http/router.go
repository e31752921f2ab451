package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/handler/http/middleware"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Site       SiteHandler
	Worker     WorkerHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Inventory  InventoryHandler
	Cashbook   CashbookHandler
	Events     EventsHandler
}

func NewRouter(jwtService jwt.Service, h Handlers, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "siteworks-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/events", h.Events.Stream)

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", h.Site.List)
				r.Get("/{id}", h.Site.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Site.Create)
					r.Put("/{id}", h.Site.Update)
					r.Delete("/{id}", h.Site.Delete)
				})
			})

			r.Route("/workers", func(r chi.Router) {
				r.Get("/", h.Worker.List)
				r.Get("/{id}", h.Worker.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSiteManager)
					r.Post("/", h.Worker.Create)
					r.Put("/{id}", h.Worker.Update)
					r.Delete("/{id}", h.Worker.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/summary", h.Attendance.Summary)
				r.Get("/{id}", h.Attendance.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSiteManager)
					r.Post("/reconcile", h.Attendance.Reconcile)
					r.Patch("/{id}", h.Attendance.Mark)
					r.Post("/{id}/checkout", h.Attendance.Checkout)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", h.Payroll.List)
				r.Get("/{id}", h.Payroll.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSiteManager)
					r.Post("/generate", h.Payroll.Generate)
					r.Post("/{id}/pay", h.Payroll.MarkPaid)
					r.Post("/{id}/cancel", h.Payroll.Cancel)
				})
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", h.Inventory.List)
				r.Get("/{id}", h.Inventory.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSiteManager)
					r.Post("/", h.Inventory.Create)
					r.Put("/{id}", h.Inventory.Update)
					r.Delete("/{id}", h.Inventory.Delete)
				})
			})

			r.Route("/cashbook", func(r chi.Router) {
				r.Get("/", h.Cashbook.List)
				r.Get("/{id}", h.Cashbook.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSiteManager)
					r.Post("/", h.Cashbook.Create)
					r.Delete("/{id}", h.Cashbook.Delete)
				})
			})
		})
	})
	return r
}
