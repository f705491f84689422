package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/passgen"
	"github.com/passform/passform-go/internal/service"
)

// PresetHandler handles HTTP requests for saved presets. Presets belong to
// the form session that created them.
type PresetHandler struct {
	presets *service.PresetService
	forms   *service.FormService
}

// NewPresetHandler creates a new PresetHandler.
func NewPresetHandler(presets *service.PresetService, forms *service.FormService) *PresetHandler {
	return &PresetHandler{presets: presets, forms: forms}
}

// HandleList handles GET /api/v1/presets requests.
func (h *PresetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}

	presets, err := h.presets.List(r.Context(), sess.ID)
	if err != nil {
		internalError(w, "listing presets", err)
		return
	}

	writeJSON(w, http.StatusOK, presets)
}

// HandleSave handles POST /api/v1/presets requests.
func (h *PresetHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req model.PresetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.presets.Save(r.Context(), sess.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPresetName):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrTooManyPresets):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		case passgen.IsUserError(err):
			writeJSON(w, http.StatusBadRequest, userErrorResponse(err))
		default:
			internalError(w, "saving preset", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleDelete handles DELETE /api/v1/presets/{name} requests.
func (h *PresetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}

	err := h.presets.Delete(r.Context(), sess.ID, chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, service.ErrPresetNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		internalError(w, "deleting preset", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleApply handles POST /api/v1/form/presets/{name}/apply requests.
func (h *PresetHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}

	p, err := h.presets.Get(r.Context(), sess.ID, chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, service.ErrPresetNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		internalError(w, "loading preset", err)
		return
	}

	resp, err := h.forms.ApplyPreset(sess, p)
	if err != nil {
		internalError(w, "applying preset", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
