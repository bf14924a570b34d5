package handlers

import (
	"net/http"
	"strconv"

	"matchpoint-api/auth"
	"matchpoint-api/models"
	"matchpoint-api/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// ReportMatch creates a new match report
// @Summary Report a match result
// @Description Report a match result on behalf of one of the participants. The rating change is computed and frozen immediately but only applied once the match is validated.
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.ReportMatchRequest true "Match report"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) ReportMatch(c *gin.Context) {
	var req models.ReportMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reporterID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	match, err := h.matchService.ReportMatch(req, reporterID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// GetMatch retrieves one match
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	match, err := h.matchService.GetMatch(matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// GetRecentMatches retrieves the N most recent matches
// @Summary Get recent matches
// @Description Get the N most recent matches ordered by creation date (newest first)
// @Tags matches
// @Produce json
// @Param limit query int false "Number of matches to retrieve (default: 10, max: 100)"
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Router /matches/recent [get]
func (h *MatchHandler) GetRecentMatches(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	matches, err := h.matchService.GetRecentMatches(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetMatches retrieves matches with pagination and filters
// @Summary Get matches with pagination and filters
// @Tags matches
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 10, max: 100)" default(10)
// @Param player_id query int false "Filter by participant"
// @Param validated query bool false "Filter by validation state"
// @Param contested query bool false "Filter by contest flag"
// @Success 200 {object} models.PaginatedMatchResponse
// @Failure 400 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	filters := services.MatchFilters{Page: page, PerPage: perPage}

	if playerIDStr := c.Query("player_id"); playerIDStr != "" {
		playerID, err := strconv.ParseUint(playerIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player_id parameter"})
			return
		}
		id := uint(playerID)
		filters.PlayerID = &id
	}
	if validatedStr := c.Query("validated"); validatedStr != "" {
		validated, err := strconv.ParseBool(validatedStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid validated parameter"})
			return
		}
		filters.Validated = &validated
	}
	if contestedStr := c.Query("contested"); contestedStr != "" {
		contested, err := strconv.ParseBool(contestedStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contested parameter"})
			return
		}
		filters.Contested = &contested
	}

	response, err := h.matchService.GetMatches(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRatingBreakdown returns the stored modifier snapshot of a match
// @Summary Get the rating breakdown of a match
// @Description Returns the ELO snapshot and modifier details frozen when the match was reported
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.RatingBreakdownResponse
// @Failure 404 {object} map[string]string
// @Router /matches/{id}/rating-breakdown [get]
func (h *MatchHandler) GetRatingBreakdown(c *gin.Context) {
	matchID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid match ID"})
		return
	}

	breakdown, err := h.matchService.GetRatingBreakdown(matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
