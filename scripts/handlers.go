package scripts

import (
	"github.com/gin-gonic/gin"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/drewmudry/scriptcast-api/internal/respond"
	"github.com/drewmudry/scriptcast-api/scriptgen"
)

type Handler struct {
	Service    *Service
	CookieName string
}

func NewHandler(svc *Service, cookieName string) *Handler {
	return &Handler{Service: svc, CookieName: cookieName}
}

// GenerateScript forwards the raw body, session cookie and content type to the generator.
func (h *Handler) GenerateScript(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		respond.Error(c, apperrors.Validation("Could not read request body"))
		return
	}

	req := scriptgen.Request{
		Payload:     payload,
		ContentType: c.GetHeader("Content-Type"),
	}
	// c.Cookie would unescape the value; the generator needs it as sent.
	if cookie, err := c.Request.Cookie(h.CookieName); err == nil {
		req.SessionCookie = cookie.Value
	}

	generated, err := h.Service.Generate(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Success(c, "Script generated successfully",
		gin.H{"script_id": generated.ScriptID},
		gin.H{"script": generated.Script},
	)
}
