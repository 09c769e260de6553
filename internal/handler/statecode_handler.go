package handler

import (
	"github.com/gin-gonic/gin"

	"tallymap/internal/service"
)

// StateCodeHandler serves the GST jurisdiction reference table.
type StateCodeHandler struct {
	stateCodeService service.StateCodeService
}

// NewStateCodeHandler creates a new StateCodeHandler.
func NewStateCodeHandler(stateCodeService service.StateCodeService) *StateCodeHandler {
	return &StateCodeHandler{stateCodeService: stateCodeService}
}

// List handles GET /api/gstin-numbers
func (h *StateCodeHandler) List(c *gin.Context) {
	codes, err := h.stateCodeService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, codes)
}
