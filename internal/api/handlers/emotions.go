package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/gin-gonic/gin"
)

type EmotionHandler struct {
	composer *services.Composer
}

func NewEmotionHandler(composer *services.Composer) *EmotionHandler {
	return &EmotionHandler{composer: composer}
}

type MatchRequest struct {
	Prompt string `json:"prompt"`
}

type MatchResponse struct {
	Bias        models.EmotionBias      `json:"bias"`
	Dominant    models.Emotion          `json:"dominant"`
	Diagnostics models.MatchDiagnostics `json:"diagnostics"`
}

// Match returns the emotion bias of a prompt with the phrases that produced it
func (h *EmotionHandler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Prompt) > maxPromptLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is too long"})
		return
	}

	bias, diagnostics := h.composer.Match(req.Prompt)
	c.JSON(http.StatusOK, MatchResponse{
		Bias:        bias,
		Dominant:    bias.Dominant(),
		Diagnostics: diagnostics,
	})
}
