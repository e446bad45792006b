package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"cribbage-show/internal/config"
	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"
	"cribbage-show/internal/models"
	"cribbage-show/internal/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type dealRequest struct {
	Players  int    `json:"players"`
	Strategy string `json:"strategy"`
}

type dealResponse struct {
	showResponse
	Dealt     []common.Card `json:"dealt"`
	Discarded []common.Card `json:"discarded"`
}

// DealHandler deals a fresh hand from a shuffled deck, discards down to the
// show size and scores what is kept. An empty body deals for two players.
// The kept hand must fit within cfg.MaxHandSize.
func DealHandler(db *sql.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "handlers.DealHandler")
		defer span.End()

		req := dealRequest{Players: 2}
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		if req.Players < 2 || req.Players > 4 {
			writeAPIError(c, models.ErrInvalidPlayers)
			return
		}
		strategy, err := cribbage.ParseDiscardStrategy(req.Strategy)
		if err != nil {
			writeAPIError(c, fmt.Errorf("%w: %v", models.ErrInvalidStrategy, err))
			return
		}
		rules := cribbage.DefaultRules(req.Players)
		if cfg.MaxHandSize > 0 && rules.KeepSize() > cfg.MaxHandSize {
			writeAPIError(c, fmt.Errorf("%w: keeps %d cards, limit %d", cribbage.ErrHandTooLarge, rules.KeepSize(), cfg.MaxHandSize))
			return
		}
		span.SetAttributes(attribute.Int("players", req.Players), attribute.String("strategy", string(strategy)))

		deck := common.NewStandardDeck()
		common.Shuffle(deck)
		dealt, _, err := common.Deal(deck, rules.HandSize())
		if err != nil {
			writeAPIError(c, err)
			return
		}
		keep, discarded, err := cribbage.ChooseDiscard(dealt, rules.DiscardCount(), strategy)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		sb, err := cribbage.ScoreShowParallel(ctx, cribbage.RulesForShow(), keep)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		show, err := models.InsertShow(ctx, db, keep, discarded, sb, models.SourceDeal)
		if err != nil {
			writeAPIError(c, fmt.Errorf("insert show: %w", err))
			return
		}
		log.Printf("show dealt: id=%d players=%d strategy=%s total=%d", show.ID, req.Players, strategy, sb.Total)
		broadcastShow(show)

		c.JSON(http.StatusOK, dealResponse{
			showResponse: newShowResponse(show, sb),
			Dealt:        dealt,
			Discarded:    discarded,
		})
	}
}
