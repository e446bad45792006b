package cribbage

import (
	"cribbage-show/internal/game/common"
)

// ScoreFifteens counts every subset of cards whose values sum to 15, each worth 2 points.
// Subsets are enumerated with a bitmask, so callers should bound the hand (see ValidateHand).
func ScoreFifteens(cards []common.Card) int {
	n := len(cards)
	points := 0
	for mask := 1; mask < (1 << n); mask++ {
		sum := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += cards[i].Value15()
			}
		}
		if sum == 15 {
			points += 2
		}
	}
	return points
}

// ScorePairs scores 2 points for every unordered pair of cards sharing a rank.
func ScorePairs(cards []common.Card) int {
	points := 0
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Rank == cards[j].Rank {
				points += 2
			}
		}
	}
	return points
}

// ScoreRuns scores the run of consecutive ranks in the hand: run length times
// a multiplier that doubles for each duplicated rank.
//
// The walk over adjacent rank differences assumes the hand holds at most one
// run candidate. A gap strictly inside the difference sequence shortens the
// run by one; gaps at either end are ignored. Hands with two disjoint runs or
// more than five cards are outside what this detects reliably.
func ScoreRuns(cards []common.Card) int {
	if len(cards) < 3 {
		return 0
	}
	sorted := common.SortCards(cards)

	diffs := make([]int, 0, len(sorted)-1)
	for i := 0; i+1 < len(sorted); i++ {
		d := sorted[i].Rank.Ordinal() - sorted[i+1].Rank.Ordinal()
		if d < 0 {
			d = -d
		}
		diffs = append(diffs, d)
	}

	consecutive := 1
	multiplier := 1
	for i, d := range diffs {
		switch d {
		case 0:
			multiplier *= 2
		case 1:
			consecutive++
		default:
			if i > 0 && i < len(diffs)-1 {
				consecutive--
			}
		}
	}
	if consecutive < 3 {
		return 0
	}
	return consecutive * multiplier
}
