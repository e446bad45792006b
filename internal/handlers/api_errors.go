package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"
	"cribbage-show/internal/models"

	"github.com/gin-gonic/gin"
)

func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if errors.Is(err, models.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	// Validation errors carry only caller input, so their text is safe to echo.
	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	case errors.Is(err, common.ErrInvalidCard):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, cribbage.ErrHandTooLarge):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case errors.Is(err, cribbage.ErrInvalidDiscardCount):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid discard count"})
		return
	case errors.Is(err, models.ErrInvalidShowID):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid show id"})
		return
	case errors.Is(err, models.ErrInvalidPlayers):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "players must be between 2 and 4"})
		return
	case errors.Is(err, models.ErrInvalidStrategy):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "strategy must be one of random, low, best"})
		return
	case errors.Is(err, errUnknownRuleSet):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown rule set"})
		return
	}

	// Unknown/internal errors: log details, return generic message.
	log.Printf("internal error: path=%s err=%v", c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
