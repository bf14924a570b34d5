package handlers

import (
	"errors"
	"net/http"

	"matchpoint-api/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the closed service error set onto HTTP statuses.
// Anything outside the set is a 500 with a generic body; details stay in
// the server log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyValidated),
		errors.Is(err, services.ErrAlreadyContested):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotParticipant),
		errors.Is(err, services.ErrIsReporter):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrContestWindowExpired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrContestQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
