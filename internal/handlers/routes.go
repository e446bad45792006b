package handlers

import (
	"database/sql"

	"cribbage-show/internal/config"
	"cribbage-show/internal/game"

	"github.com/gin-gonic/gin"
)

// RegisterShowRoutes wires the scoring and history endpoints.
func RegisterShowRoutes(rg *gin.RouterGroup, db *sql.DB, cfg config.Config, rules *game.Registry) {
	rg.GET("/rules", RulesHandler(rules))
	rg.POST("/score", ScoreHandler(db, cfg, rules))
	rg.POST("/deal", DealHandler(db, cfg))

	rg.GET("/shows", ListShowsHandler(db, cfg))
	rg.GET("/shows/stats", ShowStatsHandler(db))
	rg.GET("/shows/:id", GetShowHandler(db))
}
