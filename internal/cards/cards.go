package cards

import (
	"github.com/pitboss-bot/pitboss/internal/rng"
)

type Suit int

type Rank int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Card is a single playing card
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	r := map[Rank]string{
		Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K", Ace: "A",
	}[c.Rank]
	s := map[Suit]string{Spades: "♠", Hearts: "♥", Diamonds: "♦", Clubs: "♣"}[c.Suit]
	return r + s
}

// CountValue is the blackjack point value of the card with aces counted low
func (c Card) CountValue() int {
	switch {
	case c.Rank == Ace:
		return 1
	case c.Rank >= Jack:
		return 10
	default:
		return int(c.Rank)
	}
}

// Deck is a pile of cards dealt from the top without replacement
type Deck struct {
	cards []Card
}

// NewDeck builds a full 52-card deck shuffled once with the given source
func NewDeck(random rng.Random) *Deck {
	cards := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}

	random.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// NewStackedDeck builds a deck that deals the given cards in order. Used to
// set up known hands in tests and rehearsal games.
func NewStackedDeck(stacked []Card) *Deck {
	cards := make([]Card, len(stacked))
	copy(cards, stacked)
	return &Deck{cards: cards}
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Deal removes and returns the top card
func (d *Deck) Deal() Card {
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// Hand is an ordered sequence of drawn cards
type Hand []Card

// Value computes the blackjack total, counting one ace as 11 when that does
// not bust the hand.
func (h Hand) Value() int {
	total := 0
	aces := 0

	for _, c := range h {
		total += c.CountValue()
		if c.Rank == Ace {
			aces++
		}
	}

	// At most one ace can count as 11 without busting
	if aces > 0 && total+10 <= 21 {
		total += 10
	}

	return total
}

// IsSoft reports whether an ace is currently counted as 11
func (h Hand) IsSoft() bool {
	total := 0
	aces := 0

	for _, c := range h {
		total += c.CountValue()
		if c.Rank == Ace {
			aces++
		}
	}

	return aces > 0 && total+10 <= 21
}

// IsNatural reports whether the hand is a two-card 21
func (h Hand) IsNatural() bool {
	return len(h) == 2 && h.Value() == 21
}

// IsBust reports whether the hand exceeds 21
func (h Hand) IsBust() bool {
	return h.Value() > 21
}
