package handlers

import (
	"net/http"
	"strconv"

	"matchpoint-api/models"
	"matchpoint-api/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	playerService *services.PlayerService
	ledgerService *services.RatingLedgerService
	badgeService  *services.BadgeService
}

func NewPlayerHandler(playerService *services.PlayerService, ledgerService *services.RatingLedgerService, badgeService *services.BadgeService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		ledgerService: ledgerService,
		badgeService:  badgeService,
	}
}

// GetAllPlayers lists players by rating
// @Summary Get all players
// @Tags players
// @Produce json
// @Param page query int false "Page number (default: 1)" default(1)
// @Param per_page query int false "Items per page (default: 20, max: 100)" default(20)
// @Success 200 {object} models.PaginatedPlayersResponse
// @Router /players [get]
func (h *PlayerHandler) GetAllPlayers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page parameter"})
		return
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if err != nil || perPage < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid per_page parameter"})
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	response, err := h.playerService.GetAllPlayers(page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve players"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetTopPlayers returns the leaderboard
// @Summary Get top players
// @Tags players
// @Produce json
// @Param limit query int false "Number of players (default: 10, max: 100)"
// @Success 200 {array} models.Player
// @Router /players/top [get]
func (h *PlayerHandler) GetTopPlayers(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	players, err := h.playerService.GetTopPlayersByElo(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve players"})
		return
	}

	c.JSON(http.StatusOK, players)
}

// GetPlayer retrieves one player
// @Summary Get a player
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {object} models.Player
// @Failure 404 {object} map[string]string
// @Router /players/{id} [get]
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	player, err := h.playerService.GetPlayerByID(playerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// CreatePlayer registers a new player (admin)
// @Summary Create a player
// @Tags players
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player"
// @Success 201 {object} models.Player
// @Failure 400 {object} map[string]string
// @Router /players [post]
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.playerService.CreatePlayer(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create player"})
		return
	}

	c.JSON(http.StatusCreated, player)
}

// GetRatingHistory returns a player's rating ledger
// @Summary Get a player's rating history
// @Description Append-only ledger of the player's rating changes, oldest first
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.RatingLedgerEntry
// @Failure 404 {object} map[string]string
// @Router /players/{id}/rating-history [get]
func (h *PlayerHandler) GetRatingHistory(c *gin.Context) {
	playerID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	if _, err := h.playerService.GetPlayerByID(playerID); err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.ledgerService.GetPlayerHistory(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rating history"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetPlayerMatches returns a player's matches
// @Summary Get a player's matches
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Param limit query int false "Number of matches (default: 20, max: 100)"
// @Success 200 {array} models.Match
// @Failure 404 {object} map[string]string
// @Router /players/{id}/matches [get]
func (h *PlayerHandler) GetPlayerMatches(c *gin.Context) {
	playerID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
		return
	}
	if limit > 100 {
		limit = 100
	}

	if _, err := h.playerService.GetPlayerByID(playerID); err != nil {
		respondError(c, err)
		return
	}

	matches, err := h.playerService.GetPlayerMatches(playerID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

// GetPlayerBadges returns a player's earned badges
// @Summary Get a player's badges
// @Tags players
// @Produce json
// @Param id path int true "Player ID"
// @Success 200 {array} models.PlayerBadge
// @Failure 404 {object} map[string]string
// @Router /players/{id}/badges [get]
func (h *PlayerHandler) GetPlayerBadges(c *gin.Context) {
	playerID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid player ID"})
		return
	}

	if _, err := h.playerService.GetPlayerByID(playerID); err != nil {
		respondError(c, err)
		return
	}

	badges, err := h.badgeService.GetPlayerBadges(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve badges"})
		return
	}

	c.JSON(http.StatusOK, badges)
}
