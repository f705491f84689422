package handler

import (
	"log/slog"
	"net/http"

	"github.com/passform/passform-go/internal/model"
	"github.com/passform/passform-go/internal/passgen"
	"github.com/passform/passform-go/internal/service"
)

// GeneratorHandler handles HTTP requests for stateless validation and
// password generation.
type GeneratorHandler struct {
	service *service.GeneratorService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.service.Generate(req)
	if err != nil {
		if passgen.IsUserError(err) {
			writeJSON(w, http.StatusBadRequest, userErrorResponse(err))
			return
		}
		slog.Error("password generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleValidate handles POST /api/v1/validate requests.
func (h *GeneratorHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.service.Validate(req))
}
