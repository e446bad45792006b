package cribbage

import (
	"context"
	"errors"
	"fmt"

	"cribbage-show/internal/game"
	"cribbage-show/internal/game/common"
	"cribbage-show/internal/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// MaxHandSize bounds hands accepted by ScoreShow. Fifteens enumerate 2^n subsets.
const MaxHandSize = 10

// RuleSetShow is the registry name of the show rule set.
const RuleSetShow = "show"

var ErrHandTooLarge = errors.New("hand too large")

type FifteensRule struct{}

func (FifteensRule) Name() string { return "15" }
func (FifteensRule) Score(hand []common.Card) int { return ScoreFifteens(hand) }

type PairsRule struct{}

func (PairsRule) Name() string { return "Pair" }
func (PairsRule) Score(hand []common.Card) int { return ScorePairs(hand) }

type RunsRule struct{}

func (RunsRule) Name() string { return "Run" }
func (RunsRule) Score(hand []common.Card) int { return ScoreRuns(hand) }

// RulesForShow returns the show rules in reporting order.
func RulesForShow() []game.Rule {
	return []game.Rule{FifteensRule{}, PairsRule{}, RunsRule{}}
}

func RegisterRules(r *game.Registry) {
	r.Register(RuleSetShow, RulesForShow)
}

// ValidateHand enforces the hand-size precondition. limit <= 0 means MaxHandSize.
func ValidateHand(hand []common.Card, limit int) error {
	if limit <= 0 || limit > MaxHandSize {
		limit = MaxHandSize
	}
	if len(hand) > limit {
		return fmt.Errorf("%w: %d cards, max %d", ErrHandTooLarge, len(hand), limit)
	}
	return nil
}

type Line struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// String renders the line the way the show is read aloud, e.g. "Score from Pairs: 2".
func (l Line) String() string {
	return fmt.Sprintf("Score from %ss: %d", l.Name, l.Points)
}

type ScoreBreakdown struct {
	Total    int    `json:"total"`
	Fifteens int    `json:"fifteens"`
	Pairs    int    `json:"pairs"`
	Runs     int    `json:"runs"`
	Lines    []Line `json:"lines"`
}

func newBreakdown(rules []game.Rule, points []int) ScoreBreakdown {
	sb := ScoreBreakdown{Lines: make([]Line, 0, len(rules))}
	for i, r := range rules {
		p := points[i]
		sb.Lines = append(sb.Lines, Line{Name: r.Name(), Points: p})
		sb.Total += p
		switch r.(type) {
		case FifteensRule:
			sb.Fifteens = p
		case PairsRule:
			sb.Pairs = p
		case RunsRule:
			sb.Runs = p
		}
	}
	return sb
}

// ScoreShow scores hand with the show rules.
func ScoreShow(hand []common.Card) (ScoreBreakdown, error) {
	if err := ValidateHand(hand, MaxHandSize); err != nil {
		return ScoreBreakdown{}, err
	}
	rules := RulesForShow()
	points := make([]int, len(rules))
	for i, r := range rules {
		points[i] = r.Score(hand)
	}
	return newBreakdown(rules, points), nil
}

// ScoreShowParallel evaluates each rule in its own goroutine and sums the results.
// Rules share no state, so the result matches the sequential evaluation.
func ScoreShowParallel(ctx context.Context, rules []game.Rule, hand []common.Card) (ScoreBreakdown, error) {
	ctx, span := tracing.StartSpan(ctx, "cribbage.ScoreShowParallel")
	defer span.End()
	span.SetAttributes(attribute.Int("hand.size", len(hand)), attribute.Int("rules", len(rules)))

	if err := ValidateHand(hand, MaxHandSize); err != nil {
		return ScoreBreakdown{}, err
	}

	points := make([]int, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range rules {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			points[i] = r.Score(hand)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScoreBreakdown{}, err
	}
	sb := newBreakdown(rules, points)
	span.SetAttributes(attribute.Int("score.total", sb.Total))
	return sb, nil
}
