package cribbage

import (
	"fmt"
	"sort"
	"testing"

	"cribbage-show/internal/game/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(t *testing.T, cards ...string) []common.Card {
	t.Helper()
	h, err := common.ParseHand(cards)
	require.NoError(t, err)
	return h
}

func TestShowScenarios(t *testing.T) {
	testCases := []struct {
		name     string
		cards    []string
		fifteens int
		pairs    int
		runs     int
	}{
		{name: "five and ten", cards: []string{"5H", "10H"}, fifteens: 2},
		{name: "two fives and a ten", cards: []string{"5H", "5S", "10H"}, fifteens: 4, pairs: 2},
		{name: "five and three tens", cards: []string{"5H", "10H", "10S", "10C"}, fifteens: 6, pairs: 6},
		{name: "four and jack", cards: []string{"4H", "JH"}},
		{name: "run of three", cards: []string{"3H", "4H", "5H"}, runs: 3},
		{name: "double run", cards: []string{"3H", "3S", "4H", "5H"}, fifteens: 2, pairs: 2, runs: 6},
		{name: "double double run", cards: []string{"3H", "3S", "4H", "5H", "5H"}, fifteens: 4, pairs: 4, runs: 12},
		{name: "jack and king", cards: []string{"JH", "KS"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := hand(t, tc.cards...)
			assert.Equal(t, tc.fifteens, ScoreFifteens(h), "fifteens")
			assert.Equal(t, tc.pairs, ScorePairs(h), "pairs")
			assert.Equal(t, tc.runs, ScoreRuns(h), "runs")
		})
	}
}

func TestScoreFifteens(t *testing.T) {
	testCases := []struct {
		cards []string
		want  int
	}{
		{cards: nil, want: 0},
		{cards: []string{"5H"}, want: 0},
		{cards: []string{"KH"}, want: 0},
		{cards: []string{"AH", "4S", "QD"}, want: 2},
		{cards: []string{"7H", "8S"}, want: 2},
		// 5-5-5 makes 15, and each five pairs with the jack.
		{cards: []string{"5H", "5S", "5D", "JC"}, want: 8},
		// The classic 29 hand without its cut card.
		{cards: []string{"5H", "5S", "5D", "5C", "JC"}, want: 16},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.cards), func(t *testing.T) {
			assert.Equal(t, tc.want, ScoreFifteens(hand(t, tc.cards...)))
		})
	}
}

func TestScorePairs(t *testing.T) {
	testCases := []struct {
		cards []string
		want  int
	}{
		{cards: nil, want: 0},
		{cards: []string{"5H", "5S"}, want: 2},
		{cards: []string{"JH", "KS"}, want: 0},
		{cards: []string{"5H", "5S", "4H", "4S"}, want: 4},
		{cards: []string{"5H", "5S", "5C"}, want: 6},
		{cards: []string{"9H", "9S", "9C", "9D"}, want: 12},
		{cards: []string{"9H", "9S", "9C", "9D", "2H"}, want: 12},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.cards), func(t *testing.T) {
			assert.Equal(t, tc.want, ScorePairs(hand(t, tc.cards...)))
		})
	}
}

func TestScoreRuns(t *testing.T) {
	testCases := []struct {
		cards []string
		want  int
	}{
		{cards: nil, want: 0},
		{cards: []string{"3H"}, want: 0},
		{cards: []string{"3H", "4H"}, want: 0},
		{cards: []string{"3H", "4H", "5H"}, want: 3},
		{cards: []string{"5H", "3H", "4H"}, want: 3},
		{cards: []string{"3H", "3S", "4H"}, want: 0},
		{cards: []string{"3H", "3S", "4H", "5H"}, want: 6},
		{cards: []string{"5H", "8H", "9H", "9S", "10H"}, want: 6},
		{cards: []string{"3H", "4H", "5H", "6H"}, want: 4},
		{cards: []string{"AH", "2H", "3H", "4H", "5H"}, want: 5},
		{cards: []string{"9H", "10H", "JH", "QH", "KH"}, want: 5},
		{cards: []string{"3H", "4H", "5H", "9S", "10S"}, want: 3},
		{cards: []string{"QH", "KH", "AH"}, want: 0},
		{cards: []string{"2H", "4H", "6H", "8H"}, want: 0},
		{cards: []string{"5H", "10H", "10S", "10C"}, want: 0},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.cards), func(t *testing.T) {
			assert.Equal(t, tc.want, ScoreRuns(hand(t, tc.cards...)))
		})
	}
}

func TestScoreRunsDoesNotModifyHand(t *testing.T) {
	h := hand(t, "5H", "3S", "4D", "3H")
	before := append([]common.Card(nil), h...)
	ScoreRuns(h)
	assert.Equal(t, before, h)
}

// Hands whose runs walk the difference sequence in ways a single-run
// assumption cannot describe. These pin the current output so any change to
// the walk is noticed.
func TestScoreRunsOutsideSingleRunHands(t *testing.T) {
	testCases := []struct {
		cards []string
		want  int
	}{
		// Gap in the middle after a run that starts the hand.
		{cards: []string{"AH", "2H", "3H", "7H", "9H"}, want: 0},
		// A pair past an interior gap drops the run.
		{cards: []string{"3H", "4H", "5H", "7H", "7S"}, want: 0},
		// Three of a rank compound twice.
		{cards: []string{"3H", "3S", "3D", "4H", "5H"}, want: 12},
		// Six cards: every repeated rank doubles again.
		{cards: []string{"3H", "3S", "4H", "5H", "5C", "5D"}, want: 24},
		// Six cards: two runs split by an interior gap count as one.
		{cards: []string{"AH", "2H", "3H", "5H", "6H", "7H"}, want: 4},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.cards), func(t *testing.T) {
			assert.Equal(t, tc.want, ScoreRuns(hand(t, tc.cards...)))
		})
	}
}

// referenceRuns scores runs by looking for the longest window of distinct,
// consecutive ranks and multiplying by the count of each rank in the window.
func referenceRuns(cards []common.Card) int {
	count := map[int]int{}
	var ranks []int
	for _, c := range cards {
		r := c.Rank.Ordinal()
		if count[r] == 0 {
			ranks = append(ranks, r)
		}
		count[r]++
	}
	sort.Ints(ranks)

	bestLen, bestMult := 0, 0
	for start := 0; start < len(ranks); start++ {
		for end := start + 2; end < len(ranks); end++ {
			runLen := end - start + 1
			if ranks[end]-ranks[start] != runLen-1 {
				continue
			}
			mult := 1
			for i := start; i <= end; i++ {
				mult *= count[ranks[i]]
			}
			if runLen > bestLen {
				bestLen, bestMult = runLen, mult
			}
		}
	}
	return bestLen * bestMult
}

// rankMultisets yields every sorted rank multiset of the given size with at
// most maxPerRank copies of each rank.
func rankMultisets(size, maxPerRank int, yield func([]common.Rank)) {
	var rec func(start common.Rank, cur []common.Rank)
	rec = func(start common.Rank, cur []common.Rank) {
		if len(cur) == size {
			yield(cur)
			return
		}
		for r := start; r <= common.King; r++ {
			n := 0
			for _, x := range cur {
				if x == r {
					n++
				}
			}
			if n >= maxPerRank {
				continue
			}
			rec(r, append(cur, r))
		}
	}
	rec(common.Ace, nil)
}

func cardsFromRanks(ranks []common.Rank) []common.Card {
	out := make([]common.Card, len(ranks))
	for i, r := range ranks {
		out[i] = common.Card{Rank: r, Suit: common.Suits[i%len(common.Suits)]}
	}
	return out
}

func contiguousDistinct(ranks []common.Rank) bool {
	seen := map[common.Rank]bool{}
	lo, hi := common.King, common.Ace
	for _, r := range ranks {
		seen[r] = true
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return int(hi-lo)+1 == len(seen)
}

func TestScoreRunsMatchesReferenceForSingleBlockHands(t *testing.T) {
	checked := 0
	for size := 3; size <= 5; size++ {
		rankMultisets(size, 2, func(ranks []common.Rank) {
			if !contiguousDistinct(ranks) {
				return
			}
			cards := cardsFromRanks(ranks)
			checked++
			assert.Equal(t, referenceRuns(cards), ScoreRuns(cards), "ranks %v", ranks)
		})
	}
	require.Greater(t, checked, 0)
}

func TestScoreRunsMatchesReferenceForDistinctFourCardHands(t *testing.T) {
	// With four distinct ranks an interior gap splits the hand two and two,
	// which never holds a run.
	rankMultisets(4, 1, func(ranks []common.Rank) {
		cards := cardsFromRanks(ranks)
		assert.Equal(t, referenceRuns(cards), ScoreRuns(cards), "ranks %v", ranks)
	})
}

func TestScoringProperties(t *testing.T) {
	rankMultisets(5, 4, func(ranks []common.Rank) {
		cards := cardsFromRanks(ranks)

		f := ScoreFifteens(cards)
		assert.GreaterOrEqual(t, f, 0)
		assert.Equal(t, 0, f%2, "fifteens must be even for %v", ranks)

		groups := map[common.Rank]int{}
		for _, r := range ranks {
			groups[r]++
		}
		wantPairs := 0
		for _, k := range groups {
			wantPairs += 2 * (k * (k - 1) / 2)
		}
		assert.Equal(t, wantPairs, ScorePairs(cards), "pairs for %v", ranks)

		assert.GreaterOrEqual(t, ScoreRuns(cards), 0)
	})
}

func permutations(cards []common.Card, yield func([]common.Card)) {
	var rec func(k int)
	rec = func(k int) {
		if k == len(cards) {
			yield(append([]common.Card(nil), cards...))
			return
		}
		for i := k; i < len(cards); i++ {
			cards[k], cards[i] = cards[i], cards[k]
			rec(k + 1)
			cards[k], cards[i] = cards[i], cards[k]
		}
	}
	rec(0)
}

func TestScoringIsOrderInvariant(t *testing.T) {
	hands := [][]string{
		{"3H", "3S", "4H", "5H", "5C"},
		{"5H", "8H", "9H", "9S", "10H"},
		{"5H", "5S", "5D", "JC", "10H"},
		{"AH", "2H", "3H", "7H", "9H"},
		{"3H", "4H", "5H", "7H", "7S"},
	}
	for _, cards := range hands {
		h := hand(t, cards...)
		wantF, wantP, wantR := ScoreFifteens(h), ScorePairs(h), ScoreRuns(h)
		permutations(h, func(p []common.Card) {
			assert.Equal(t, wantF, ScoreFifteens(p), "fifteens %v", p)
			assert.Equal(t, wantP, ScorePairs(p), "pairs %v", p)
			assert.Equal(t, wantR, ScoreRuns(p), "runs %v", p)
		})
	}
}

func TestScoringIsIdempotent(t *testing.T) {
	h := hand(t, "3H", "3S", "4H", "5H", "5C")
	for _, r := range RulesForShow() {
		assert.Equal(t, r.Score(h), r.Score(h), r.Name())
	}
}
