package salestarget

import (
	"net/http"
	"time"

	"go-salescrm/internal/orgscope"
	"go-salescrm/internal/shared/apperror"
	"go-salescrm/internal/shared/response"

	"github.com/gin-gonic/gin"
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

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

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

func (h *Handler) TeamStats(c *gin.Context) {
	actor, err := orgscope.ActorFromContext(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}

	resp, err := h.service.TeamStats(c.Request.Context(), actor, month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
