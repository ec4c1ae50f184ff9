package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/magda-harmony/internal/logger"
	"github.com/Conceptual-Machines/magda-harmony/internal/models"
	"github.com/Conceptual-Machines/magda-harmony/internal/services"
	"github.com/gin-gonic/gin"
)

type ProgressionHandler struct {
	composer *services.Composer
	counters *Counters
}

func NewProgressionHandler(composer *services.Composer, counters *Counters) *ProgressionHandler {
	if counters == nil {
		counters = &Counters{}
	}
	return &ProgressionHandler{composer: composer, counters: counters}
}

// Generate composes a piece and returns it as JSON
func (h *ProgressionHandler) Generate(c *gin.Context) {
	comp, ok := h.compose(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, comp)
}

// GenerateMIDI composes a piece and returns it as a standard MIDI file
func (h *ProgressionHandler) GenerateMIDI(c *gin.Context) {
	comp, ok := h.compose(c)
	if !ok {
		return
	}

	data, err := h.composer.RenderMIDI(c.Request.Context(), comp)
	if err != nil {
		h.counters.Failures.Add(1)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to render MIDI",
			"request_id": c.GetString("request_id"),
		})
		return
	}
	h.counters.Renders.Add(1)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", comp.ID+".mid"))
	c.Header("X-Composition-ID", comp.ID)
	c.Header("X-Key", comp.Key.String())
	c.Header("X-BPM", strconv.Itoa(comp.BPM))
	c.Header("X-Seed", strconv.FormatInt(comp.Seed, 10))
	c.Data(http.StatusOK, midiContentType, data)
}

func (h *ProgressionHandler) compose(c *gin.Context) (*models.Composition, bool) {
	var req models.CompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if len(req.Prompt) > maxPromptLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is too long"})
		return nil, false
	}

	comp, err := h.composer.Compose(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUnknownSection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		h.counters.Failures.Add(1)
		logger.Error("Composition failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to generate progression",
			"request_id": c.GetString("request_id"),
		})
		return nil, false
	}

	h.counters.Compositions.Add(1)
	c.Set("composition_id", comp.ID)
	return comp, true
}
