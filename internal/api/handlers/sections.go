package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/gin-gonic/gin"
)

type SectionHandler struct {
	composer *services.Composer
}

func NewSectionHandler(composer *services.Composer) *SectionHandler {
	return &SectionHandler{composer: composer}
}

// List returns the default section plan in order
func (h *SectionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": h.composer.Corpus().Sections()})
}
