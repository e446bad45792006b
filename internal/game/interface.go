package game

import "cribbage-show/internal/game/common"

// Rule is one scoring rule of a rule set (fifteens, pairs, runs for the show).
// Score must be a pure function of the hand and must not modify it.
type Rule interface {
	Name() string
	Score(hand []common.Card) int
}

// Total sums every rule's independent contribution.
func Total(rules []Rule, hand []common.Card) int {
	total := 0
	for _, r := range rules {
		total += r.Score(hand)
	}
	return total
}
