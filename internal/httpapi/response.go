package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangsam/timeline-detective/internal/timeline"
)

// Response represents a standard API response
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// success sends a successful response
func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// fail sends an error response
func fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// badRequest sends a 400 bad request response
func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

// loadFailed maps timeline load errors to 400 with their status, anything else to 500.
func loadFailed(c *gin.Context, err error) {
	status, ok := timeline.StatusOf(err)
	if !ok {
		fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
		Status:  string(status),
	})
}
