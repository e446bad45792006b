package common

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

func NewStandardDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

func Shuffle(cards []Card) {
	// Crypto-secure Fisher–Yates shuffle.
	// If crypto/rand fails, we fall back to a time-seeded shuffle as a last resort.
	for i := len(cards) - 1; i > 0; i-- {
		nBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			fallbackShuffle(cards)
			return
		}
		j := int(nBig.Int64())
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func fallbackShuffle(cards []Card) {
	seed := time.Now().UnixNano()
	for i := len(cards) - 1; i > 0; i-- {
		seed = (seed*6364136223846793005 + 1) & 0x7fffffffffffffff
		j := int(seed % int64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Deal splits the last n cards off the deck. The returned hand does not alias
// the remaining deck.
func Deal(deck []Card, n int) (hand []Card, rest []Card, err error) {
	if n < 0 || n > len(deck) {
		return nil, deck, fmt.Errorf("deal %d cards from a deck of %d", n, len(deck))
	}
	cut := len(deck) - n
	hand = append([]Card(nil), deck[cut:]...)
	return hand, deck[:cut], nil
}
