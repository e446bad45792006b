package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"cribbage-show/internal/config"
	"cribbage-show/internal/game"
	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"
	"cribbage-show/internal/models"
	"cribbage-show/internal/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

var errUnknownRuleSet = errors.New("unknown rule set")

type scoreRequest struct {
	Cards   []string `json:"cards"`
	RuleSet string   `json:"rule_set"`
}

type showResponse struct {
	Show    *models.Show    `json:"show"`
	Lines   []cribbage.Line `json:"lines"`
	Display []string        `json:"display"`
	Hand    string          `json:"hand"`
}

func newShowResponse(show *models.Show, sb cribbage.ScoreBreakdown) showResponse {
	display := make([]string, len(sb.Lines))
	for i, l := range sb.Lines {
		display[i] = l.String()
	}
	return showResponse{Show: show, Lines: sb.Lines, Display: display, Hand: common.FormatHand(show.Cards)}
}

type ruleSetView struct {
	Name  string   `json:"name"`
	Rules []string `json:"rules"`
}

func RulesHandler(rules *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.RulesHandler")
		defer span.End()

		out := []ruleSetView{}
		for _, name := range rules.Names() {
			set, _ := rules.Get(name)
			v := ruleSetView{Name: name, Rules: []string{}}
			for _, r := range set {
				v.Rules = append(v.Rules, r.Name())
			}
			out = append(out, v)
		}
		c.JSON(http.StatusOK, gin.H{"rule_sets": out})
	}
}

// ScoreHandler scores the posted hand, stores it and broadcasts it to the feed.
func ScoreHandler(db *sql.DB, cfg config.Config, rules *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartSpan(c.Request.Context(), "handlers.ScoreHandler")
		defer span.End()

		var req scoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeAPIError(c, models.ErrInvalidJSON)
			return
		}
		hand, err := common.ParseHand(req.Cards)
		if err != nil {
			writeAPIError(c, err)
			return
		}
		if err := cribbage.ValidateHand(hand, cfg.MaxHandSize); err != nil {
			writeAPIError(c, err)
			return
		}

		name := strings.TrimSpace(req.RuleSet)
		if name == "" {
			name = cribbage.RuleSetShow
		}
		set, ok := rules.Get(name)
		if !ok {
			writeAPIError(c, fmt.Errorf("%w: %q", errUnknownRuleSet, name))
			return
		}
		span.SetAttributes(attribute.String("rule_set", name), attribute.Int("hand.size", len(hand)))

		sb, err := cribbage.ScoreShowParallel(ctx, set, hand)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		show, err := models.InsertShow(ctx, db, hand, nil, sb, models.SourceScore)
		if err != nil {
			writeAPIError(c, fmt.Errorf("insert show: %w", err))
			return
		}
		log.Printf("show scored: id=%d cards=%q total=%d", show.ID, strings.Join(req.Cards, " "), sb.Total)
		broadcastShow(show)

		c.JSON(http.StatusOK, newShowResponse(show, sb))
	}
}
