package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"cribbage-show/internal/config"
	"cribbage-show/internal/models"
	"cribbage-show/internal/tracing"

	"github.com/gin-gonic/gin"
)

func ListShowsHandler(db *sql.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "handlers.ListShowsHandler")
		defer span.End()

		limit := cfg.HistoryLimit
		if v := c.Query("limit"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = n
		}
		minTotal := 0
		if v := c.Query("min_total"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_total"})
				return
			}
			minTotal = n
		}

		items, err := models.ListShows(ctx, db, limit, minTotal)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func GetShowHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "handlers.GetShowHandler")
		defer span.End()

		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			writeAPIError(c, models.ErrInvalidShowID)
			return
		}
		show, err := models.GetShow(ctx, db, id)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, show)
	}
}

func ShowStatsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "handlers.ShowStatsHandler")
		defer span.End()

		stats, err := models.GetShowStats(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
