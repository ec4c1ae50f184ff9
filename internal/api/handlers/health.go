package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	composer *services.Composer
}

func NewHealthHandler(composer *services.Composer) *HealthHandler {
	return &HealthHandler{composer: composer}
}

// HealthCheck returns the health status of the API and the size of the loaded data
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	stats := h.composer.Corpus().Summary()

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"corpus": gin.H{
			"patterns":     stats.Patterns,
			"key_profiles": stats.KeyProfiles,
			"sections":     stats.Sections,
		},
		"lexicon": gin.H{
			"phrases": h.composer.LexiconSize(),
		},
	})
}
