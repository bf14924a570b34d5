package handlers

import (
	"net/http"

	"matchpoint-api/auth"
	"matchpoint-api/models"
	"matchpoint-api/services"

	"github.com/gin-gonic/gin"
)

type ValidationHandler struct {
	validationService *services.ValidationService
}

func NewValidationHandler(validationService *services.ValidationService) *ValidationHandler {
	return &ValidationHandler{validationService: validationService}
}

// ConfirmMatch confirms a reported match
// @Summary Confirm a match
// @Description Confirm a match report as the non-reporting participant. Applies the frozen rating change to both players.
// @Tags validation
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/confirm [post]
func (h *ValidationHandler) ConfirmMatch(c *gin.Context) {
	matchID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	actorID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	match, err := h.validationService.Confirm(matchID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// RejectMatch rejects a reported match
// @Summary Reject a match
// @Description Reject a match report as the non-reporting participant. The match is deleted with no rating effect.
// @Tags validation
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/reject [post]
func (h *ValidationHandler) RejectMatch(c *gin.Context) {
	matchID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	actorID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.validationService.Reject(matchID, actorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ContestMatch files a dispute against a match
// @Summary Contest a match
// @Description Flag a match as disputed. The rating effect stays in place; an administrator reviews the dispute out-of-band.
// @Tags validation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param contest body models.ContestMatchRequest true "Contest reason"
// @Success 200 {object} models.Match
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /matches/{id}/contest [post]
func (h *ValidationHandler) ContestMatch(c *gin.Context) {
	matchID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	actorID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.ContestMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.validationService.Contest(matchID, actorID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetContestStatus returns the contest projection for a match
// @Summary Get contest status
// @Description Read-only projection of the contest state, including whether the caller can still contest.
// @Tags validation
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.ContestStatusResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/contest-status [get]
func (h *ValidationHandler) GetContestStatus(c *gin.Context) {
	matchID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	actorID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.validationService.GetContestStatus(matchID, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// ResolveContest records the administrative outcome of a dispute
// @Summary Resolve a contest (admin)
// @Description Record the administrative decision on a contested match. Does not reverse the rating effect.
// @Tags validation
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param resolution body models.ResolveContestRequest true "Resolution note"
// @Success 200 {object} models.Match
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/contest/resolve [post]
func (h *ValidationHandler) ResolveContest(c *gin.Context) {
	matchID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	var req models.ResolveContestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.validationService.ResolveContest(matchID, req.Resolution)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}
