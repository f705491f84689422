package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passform/passform-go/internal/middleware"
	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/passgen"
	"github.com/passform/passform-go/internal/service"
	"github.com/passform/passform-go/internal/token"
)

// FormHandler handles HTTP requests that drive a form session.
type FormHandler struct {
	service *service.FormService
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(svc *service.FormService) *FormHandler {
	return &FormHandler{service: svc}
}

// HandleStart handles POST /api/v1/form requests.
func (h *FormHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Start()
	if err != nil {
		internalError(w, "starting form session", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// HandleGet handles GET /api/v1/form requests.
func (h *FormHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}
	resp, err := h.service.Current(sess)
	h.write(w, resp, err)
}

// HandleToggle handles POST /api/v1/form/classes/{class}/toggle requests.
func (h *FormHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Toggle(sess, chi.URLParam(r, "class"))
	if errors.Is(err, passgen.ErrUnknownClass) {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	h.write(w, resp, err)
}

// HandleSetLength handles PUT /api/v1/form/length requests.
func (h *FormHandler) HandleSetLength(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req model.SetLengthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.service.SetLength(sess, req)
	if errors.Is(err, service.ErrLengthTextTooLong) {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	h.write(w, resp, err)
}

// HandleSubmit handles POST /api/v1/form/submit requests. A validation
// failure is reported as 422 with the updated form so the client can show
// the inline error.
func (h *FormHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Submit(sess)
	if err != nil && passgen.IsUserError(err) {
		writeJSON(w, http.StatusUnprocessableEntity, model.FormErrorResponse{
			Error: passgen.Message(err),
			Code:  passgen.Code(err),
			Token: resp.Token,
			Form:  resp.Form,
		})
		return
	}
	h.write(w, resp, err)
}

// HandleReset handles POST /api/v1/form/reset requests.
func (h *FormHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrUnauthorized(w, r)
	if !ok {
		return
	}
	resp, err := h.service.Reset(sess)
	h.write(w, resp, err)
}

func (h *FormHandler) write(w http.ResponseWriter, resp model.FormResponse, err error) {
	if err != nil {
		internalError(w, "updating form session", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func sessionOrUnauthorized(w http.ResponseWriter, r *http.Request) (token.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
	}
	return sess, ok
}

func internalError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}
