package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCard is returned (wrapped) by ParseCard for unparseable input.
var ErrInvalidCard = errors.New("invalid card")

type Suit string

const (
	Spades   Suit = "S"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
)

// Suits lists every suit in sort order.
var Suits = []Suit{Diamonds, Hearts, Clubs, Spades}

// order is the position of the suit in Suits. Unknown suits sort last.
func (s Suit) order() int {
	switch s {
	case Diamonds:
		return 0
	case Hearts:
		return 1
	case Clubs:
		return 2
	case Spades:
		return 3
	default:
		return 4
	}
}

func (s Suit) Glyph() string {
	switch s {
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return string(s)
	}
}

func (s Suit) Valid() bool {
	return s.order() < 4
}

type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Ordinal is the rank's position, Ace low. Used for run adjacency and sorting.
func (r Rank) Ordinal() int {
	return int(r)
}

// Value15 is the cribbage value: face cards are 10, ace is 1.
func (r Rank) Value15() int {
	if r >= 10 {
		return 10
	}
	return int(r)
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return c.Rank.String() + string(c.Suit)
}

// Glyph renders the card for terminals, e.g. "♥5".
func (c Card) Glyph() string {
	return c.Suit.Glyph() + c.Rank.String()
}

func (c Card) Value15() int {
	return c.Rank.Value15()
}

// Compare orders cards by rank, then suit.
func Compare(a, b Card) int {
	if a.Rank != b.Rank {
		if a.Rank < b.Rank {
			return -1
		}
		return 1
	}
	ao, bo := a.Suit.order(), b.Suit.order()
	switch {
	case ao < bo:
		return -1
	case ao > bo:
		return 1
	default:
		return 0
	}
}

func (c Card) Less(o Card) bool {
	return Compare(c, o) < 0
}

// SortCards returns a sorted copy; the input is left untouched.
func SortCards(cards []Card) []Card {
	out := append([]Card(nil), cards...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	suit := Suit(s[len(s)-1:])
	rankStr := s[:len(s)-1]
	var r Rank
	switch rankStr {
	case "A":
		r = Ace
	case "J":
		r = Jack
	case "Q":
		r = Queen
	case "K":
		r = King
	default:
		var v int
		_, err := fmt.Sscanf(rankStr, "%d", &v)
		if err != nil || v < 2 || v > 10 {
			return Card{}, fmt.Errorf("%w: bad rank %q", ErrInvalidCard, rankStr)
		}
		r = Rank(v)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: bad suit %q", ErrInvalidCard, string(suit))
	}
	return Card{Rank: r, Suit: suit}, nil
}

// ParseHand parses every entry, failing on the first bad card.
func ParseHand(in []string) ([]Card, error) {
	out := make([]Card, 0, len(in))
	for i, s := range in {
		c, err := ParseCard(s)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func FormatHand(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Glyph()
	}
	return strings.Join(parts, ", ")
}
