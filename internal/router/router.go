package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/gwamegi-riders/internal/handlers"
	"github.com/GregMSThompson/gwamegi-riders/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	var verifier middleware.TokenVerifier
	if deps.Firebase != nil {
		verifier = deps.Firebase
	}
	am := middleware.NewMiddleware(verifier)

	sh := handlers.NewSiteHandlers(deps)
	aih := handlers.NewAIHandlers(deps)
	ch := handlers.NewContentHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Get("/healthz", hh.Healthz)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session)
		r.Get("/", sh.Page)
		r.Mount("/api/ai", aih.AIRoutes())
	})
	r.Get("/api/content", ch.Get)

	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)
		r.Use(am.RequireAdmin)
		r.Mount("/admin", ch.AdminRoutes())
	})
	return r
}
