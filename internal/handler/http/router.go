package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/eximdesk/exim-backend-go/internal/config"
	"github.com/eximdesk/exim-backend-go/internal/handler/http/middleware"
	"github.com/eximdesk/exim-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers bundles the route handlers for router construction.
type Handlers struct {
	Auth        AuthHandler
	User        UserHandler
	KPI         KPIHandler
	OpenPoint   OpenPointHandler
	Audit       AuditHandler
	Feedback    FeedbackHandler
	ReleaseNote ReleaseNoteHandler
	Operations  OperationsHandler
	Upload      UploadHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "exim-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Post("/login", h.Auth.Login)

	// Stored uploads are served straight off disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.Storage.BasePath))))

	// Requires a session
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

		r.Get("/verify-session", h.Auth.VerifySession)
		r.Post("/logout", h.Auth.Logout)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.User.List)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.User.Register)
				r.Put("/{id}/active", h.User.SetActive)
			})
		})

		r.Route("/kpi", func(r chi.Router) {
			r.Get("/templates", h.KPI.ListTemplates)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/template", h.KPI.CreateTemplate)
				r.Delete("/template/{id}", h.KPI.DeleteTemplate)
			})

			r.Get("/sheets", h.KPI.ListSheets)
			r.Route("/sheet", func(r chi.Router) {
				r.Post("/generate", h.KPI.GenerateSheet)
				r.Put("/entry", h.KPI.SetEntry)
				r.Post("/holiday", h.KPI.ToggleDay)
				r.Post("/row", h.KPI.AddRow)
				r.Delete("/row/{sheetId}/{rowId}", h.KPI.RemoveRow)
				r.Post("/submit", h.KPI.Submit)
				r.Post("/review", h.KPI.Review)
				r.Get("/{id}", h.KPI.GetSheet)
				r.With(middleware.AdminOnly).Delete("/{id}", h.KPI.DeleteSheet)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/stats", h.KPI.AdminStats)
				r.Get("/all-sheets", h.KPI.AllSheets)
			})

			r.Get("/reviewer/pending", h.KPI.PendingReviews)
		})

		r.Route("/open-points", func(r chi.Router) {
			r.Get("/my-projects", h.OpenPoint.MyProjects)
			r.Post("/projects", h.OpenPoint.CreateProject)
			r.Route("/project/{id}", func(r chi.Router) {
				r.Get("/", h.OpenPoint.GetProject)
				r.Get("/points", h.OpenPoint.ListPoints)
				r.Post("/add-member", h.OpenPoint.AddMember)
				r.Post("/remove-member", h.OpenPoint.RemoveMember)
			})
			r.Route("/points", func(r chi.Router) {
				r.Post("/", h.OpenPoint.CreatePoint)
				r.Put("/{id}", h.OpenPoint.UpdatePoint)
				r.Delete("/{id}", h.OpenPoint.DeletePoint)
			})
		})

		r.Route("/audit-trail", func(r chi.Router) {
			r.Get("/", h.Audit.List)
			r.Get("/job/{jobNo}/{year}", h.Audit.ListByJob)
			r.Get("/stats", h.Audit.Stats)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.With(middleware.AdminOnly).Get("/", h.Feedback.List)
			r.Post("/", h.Feedback.Create)
			r.Put("/{id}", h.Feedback.Update)
			r.Delete("/{id}", h.Feedback.Delete)
			r.Get("/user/{username}", h.Feedback.ListByUser)
		})

		r.Route("/release-notes", func(r chi.Router) {
			r.Get("/", h.ReleaseNote.ListPublished)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/all", h.ReleaseNote.ListAll)
				r.Post("/", h.ReleaseNote.Create)
				r.Put("/{id}", h.ReleaseNote.Update)
				r.Delete("/{id}", h.ReleaseNote.Delete)
			})
		})

		r.Get("/get-years", h.Operations.Years)
		r.Get("/get-completed-operations/{username}", h.Operations.Completed)
		r.Get("/get-operations-planning-jobs/{username}", h.Operations.PlanningJobs)
		r.Get("/get-operations-planning-list/{username}", h.Operations.PlanningList)

		r.Post("/upload", h.Upload.Upload)
	})

	return r
}
