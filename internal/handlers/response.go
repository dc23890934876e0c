package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the generic failure shape: a human message plus the
// underlying error string for debugging.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func RespondError(c *gin.Context, status int, message string, err error) {
	body := ErrorBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	c.JSON(status, body)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
