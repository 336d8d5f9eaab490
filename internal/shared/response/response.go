// Package response owns the JSON envelope every handler writes. Keeping the
// shape in one place means clients can rely on ok/data/meta/error regardless
// of which endpoint they hit.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	m := PaginationMeta{Total: total, Page: page, PageSize: limit}
	if limit > 0 {
		m.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return m
}

// Success writes the ok envelope. meta is optional and only set by list
// endpoints.
func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, envelope{Ok: true, Data: data, Meta: meta})
}

// Error writes the failure envelope. errorCode is one of the stable
// apperror codes, not an HTTP status.
func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, envelope{
		Ok: false,
		Error: &errorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}
