package jobs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewmudry/scriptcast-api/internal/respond"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) GetJobStatus(c *gin.Context) {
	status, err := h.Service.Status(c.Request.Context(), c.Query("job_id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Success(c, "Job status retrieved successfully", status, nil)
}

// Health is a liveness probe; it does not touch the database.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
