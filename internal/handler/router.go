package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/passform/passform-go/internal/middleware"
	"github.com/passform/passform-go/internal/service"
	"github.com/passform/passform-go/internal/token"
)

// RouterDeps collects what the HTTP API needs. Presets may be nil, in which
// case the preset routes are not mounted.
type RouterDeps struct {
	Signer    *token.Signer
	Generator *service.GeneratorService
	Forms     *service.FormService
	Presets   *service.PresetService
}

// NewRouter wires every route of the API. Background work started for the
// router stops when ctx is done.
func NewRouter(ctx context.Context, d RouterDeps) http.Handler {
	genHandler := NewGeneratorHandler(d.Generator)
	formHandler := NewFormHandler(d.Forms)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, 20, 40))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/validate", genHandler.HandleValidate)
	})

	r.With(middleware.RateLimit(ctx, 5, 10)).Post("/api/v1/form", formHandler.HandleStart)

	r.Group(func(r chi.Router) {
		r.Use(middleware.FormSession(d.Signer))
		r.Get("/api/v1/form", formHandler.HandleGet)
		r.Post("/api/v1/form/classes/{class}/toggle", formHandler.HandleToggle)
		r.Put("/api/v1/form/length", formHandler.HandleSetLength)
		r.Post("/api/v1/form/submit", formHandler.HandleSubmit)
		r.Post("/api/v1/form/reset", formHandler.HandleReset)

		if d.Presets != nil {
			presetHandler := NewPresetHandler(d.Presets, d.Forms)
			r.Get("/api/v1/presets", presetHandler.HandleList)
			r.Post("/api/v1/presets", presetHandler.HandleSave)
			r.Delete("/api/v1/presets/{name}", presetHandler.HandleDelete)
			r.Post("/api/v1/form/presets/{name}/apply", presetHandler.HandleApply)
		}
	})

	return r
}
