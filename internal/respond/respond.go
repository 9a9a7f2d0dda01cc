// Package respond writes the API's JSON envelopes.
package respond

import (
	"net/http"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Success writes a 200 envelope. extra fields are merged into the top level.
func Success(c *gin.Context, message string, data any, extra gin.H) {
	body := gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error maps err to its status code and writes an error envelope.
func Error(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}
	c.JSON(status, gin.H{
		"status":  "error",
		"message": apperrors.Message(err),
	})
}
