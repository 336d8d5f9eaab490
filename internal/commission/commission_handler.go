package commission

import (
	"net/http"

	"go-salescrm/internal/orgscope"
	"go-salescrm/internal/shared/apperror"
	"go-salescrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, apperror.InvalidField("id"))
		return uuid.Nil, false
	}
	return id, true
}

// List returns commissions visible to the caller; who that covers depends on
// the caller's role and position in the org tree.
func (h *Handler) List(c *gin.Context) {
	actor, err := orgscope.ActorFromContext(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.List(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateAmount(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	var req UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.UpdateAmount(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Pay(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	resp, err := h.service.Pay(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
