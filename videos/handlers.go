package videos

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/drewmudry/scriptcast-api/internal/respond"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

type TriggerRequest struct {
	ScriptID string `json:"script_id"`
}

func (h *Handler) TriggerVideoGen(c *gin.Context) {
	var req TriggerRequest
	// An empty body falls through to the script_id check.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, apperrors.Validation("Invalid JSON body: "+err.Error()))
		return
	}

	triggered, err := h.Service.Trigger(c.Request.Context(), req.ScriptID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	message := "Video generation triggered successfully"
	if !triggered.Created {
		message = "Video already exists for this script"
	}
	respond.Success(c, message, gin.H{
		"video_id":                triggered.VideoID,
		"script_id":               triggered.ScriptID,
		"video_processing_status": triggered.Status,
	}, nil)
}
