package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context) {
	Write(c, http.StatusInternalServerError, "internal_error", "Internal server error.")
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes err as a JSON error. Business errors keep their code and
// message; anything else is reported as a generic internal error and
// Respond returns false so the caller can log the cause.
func Respond(c *gin.Context, err error) bool {
	if be, ok := AsBusiness(err); ok {
		message := be.Message
		if message == "" {
			message = be.Code
		}
		Write(c, be.Kind.Status(), be.Code, message)
		return true
	}

	Internal(c)
	return false
}
