package handlers

import (
	"net/http"

	"matchpoint-api/services"

	"github.com/gin-gonic/gin"
)

type SweepHandler struct {
	autoValidationService *services.AutoValidationService
}

func NewSweepHandler(autoValidationService *services.AutoValidationService) *SweepHandler {
	return &SweepHandler{autoValidationService: autoValidationService}
}

// RunSweep triggers an auto-validation pass
// @Summary Run the auto-validation sweep (internal)
// @Description Resolve every match past its confirmation deadline that is neither validated nor contested. Requires the X-Sweep-Token shared secret.
// @Tags internal
// @Produce json
// @Success 200 {object} services.SweepReport
// @Failure 401 {object} map[string]string
// @Router /internal/auto-validate [post]
func (h *SweepHandler) RunSweep(c *gin.Context) {
	report, err := h.autoValidationService.RunSweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// SweepStatus reports the pending/expired match counts
// @Summary Auto-validation queue status (internal)
// @Tags internal
// @Produce json
// @Success 200 {object} map[string]int64
// @Failure 401 {object} map[string]string
// @Router /internal/auto-validate/status [get]
func (h *SweepHandler) SweepStatus(c *gin.Context) {
	pending, err := h.autoValidationService.GetPendingMatchesCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending matches"})
		return
	}
	expired, err := h.autoValidationService.GetExpiredMatchesCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count expired matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pending": pending, "expired": expired})
}
