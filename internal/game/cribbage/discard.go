package cribbage

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"cribbage-show/internal/game"
	"cribbage-show/internal/game/common"
)

type DiscardStrategy string

const (
	DiscardRandom DiscardStrategy = "random"
	DiscardLow    DiscardStrategy = "low"
	DiscardBest   DiscardStrategy = "best"
)

var ErrInvalidDiscardCount = errors.New("invalid discard count")

var discardRandMu sync.Mutex
var discardRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func ParseDiscardStrategy(s string) (DiscardStrategy, error) {
	switch DiscardStrategy(s) {
	case "":
		return DiscardBest, nil
	case DiscardRandom, DiscardLow, DiscardBest:
		return DiscardStrategy(s), nil
	default:
		return "", fmt.Errorf("unknown discard strategy %q", s)
	}
}

// ChooseDiscard splits hand into the cards kept for the show and the cards thrown away.
func ChooseDiscard(hand []common.Card, count int, strategy DiscardStrategy) (keep, discard []common.Card, err error) {
	if count < 0 || count > len(hand) {
		return nil, nil, fmt.Errorf("%w: %d from %d cards", ErrInvalidDiscardCount, count, len(hand))
	}
	if err := ValidateHand(hand, MaxHandSize); err != nil {
		return nil, nil, err
	}

	// Always operate on a copy.
	cards := common.SortCards(hand)

	switch strategy {
	case DiscardRandom:
		discardRandMu.Lock()
		discardRand.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		discardRandMu.Unlock()
		return common.SortCards(cards[count:]), common.SortCards(cards[:count]), nil
	case DiscardLow:
		// Throw the lowest Value15 cards, breaking ties by rank then suit.
		sort.SliceStable(cards, func(i, j int) bool {
			vi, vj := cards[i].Value15(), cards[j].Value15()
			if vi != vj {
				return vi < vj
			}
			return cards[i].Less(cards[j])
		})
		return common.SortCards(cards[count:]), common.SortCards(cards[:count]), nil
	case DiscardBest, "":
		keep, discard = bestKeep(cards, count, RulesForShow())
		return keep, discard, nil
	default:
		return nil, nil, fmt.Errorf("unknown discard strategy %q", strategy)
	}
}

// bestKeep tries every discard combination over the sorted cards and keeps the
// one with the highest show total. Ties go to the lower sorted discard.
func bestKeep(cards []common.Card, count int, rules []game.Rule) (keep, discard []common.Card) {
	best := -1
	idx := make([]int, count)
	for i := range idx {
		idx[i] = i
	}
	for {
		k, d := splitByIndex(cards, idx)
		if score := game.Total(rules, k); score > best {
			best = score
			keep, discard = k, d
		}
		if !nextCombination(idx, len(cards)) {
			break
		}
	}
	return keep, discard
}

func splitByIndex(cards []common.Card, idx []int) (keep, discard []common.Card) {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	keep = make([]common.Card, 0, len(cards)-len(idx))
	discard = make([]common.Card, 0, len(idx))
	for i, c := range cards {
		if drop[i] {
			discard = append(discard, c)
		} else {
			keep = append(keep, c)
		}
	}
	return keep, discard
}

// nextCombination advances idx to the next k-combination of 0..n-1 in
// lexicographic order. It reports false once every combination was visited.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	for i := k - 1; i >= 0; i-- {
		if idx[i] < n-k+i {
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
			return true
		}
	}
	return false
}
