package helpers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hakimfr/reservia/internal/services"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithServiceError maps a business error to its HTTP status.
// Anything that is not a services.Error is an unexpected failure and is
// logged, not leaked to the caller.
func RespondWithServiceError(c *gin.Context, err error) {
	if svcErr, ok := services.AsError(err); ok {
		switch svcErr.Kind {
		case services.KindNotFound:
			RespondWithError(c, http.StatusNotFound, svcErr.Message)
		case services.KindForbidden:
			RespondWithError(c, http.StatusForbidden, svcErr.Message)
		default:
			RespondWithError(c, http.StatusBadRequest, svcErr.Message)
		}
		return
	}
	log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	RespondWithError(c, http.StatusInternalServerError, "Unexpected error.")
}
