package blackjack

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/pitboss-bot/pitboss/internal/cards"
	clockMocks "github.com/pitboss-bot/pitboss/internal/common/clock/mocks"
	uuidMocks "github.com/pitboss-bot/pitboss/internal/common/uuid/mocks"
	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/registry"
	"github.com/pitboss-bot/pitboss/internal/rng"
	ledgerService "github.com/pitboss-bot/pitboss/internal/services/ledger"
	ledgerMocks "github.com/pitboss-bot/pitboss/internal/services/ledger/mocks"
	"github.com/pitboss-bot/pitboss/internal/turngate"
)

type BlackjackServiceTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockLedger *ledgerMocks.MockService
	mockClock  *clockMocks.MockClock
	mockUUID   *uuidMocks.MockUUID
	reg        *registry.Registry
	ctx        context.Context

	testTime   time.Time
	testPlayer models.Participant
}

func (s *BlackjackServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockLedger = ledgerMocks.NewMockService(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.reg = registry.New()
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.testPlayer = models.Participant{ID: "player-1", Name: "Player One"}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("test-session-id").AnyTimes()
}

func (s *BlackjackServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBlackjackServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BlackjackServiceTestSuite))
}

// newService builds a service dealing the given cards in order: two to the
// player, two to the dealer, then hits and dealer draws.
func (s *BlackjackServiceTestSuite) newService(stacked []cards.Card, timeout time.Duration, onTimeout func(*models.BlackjackSession)) Service {
	svc, err := New(&Config{
		TurnTimeout: timeout,
		NewDeck: func(_ rng.Random) *cards.Deck {
			return cards.NewStackedDeck(stacked)
		},
		OnTimeout:     onTimeout,
		Ledger:        s.mockLedger,
		Registry:      s.reg,
		Random:        rng.New(&rng.Config{Seed: 42}),
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *BlackjackServiceTestSuite) expectBalance(balance int64) {
	s.mockLedger.EXPECT().
		GetBalance(gomock.Any(), &ledgerService.GetBalanceInput{ParticipantID: "player-1"}).
		Return(&ledgerService.GetBalanceOutput{Balance: balance}, nil)
}

func (s *BlackjackServiceTestSuite) TestDealPlayerNaturalPaysThreeToTwo() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Ace, Suit: cards.Spades},
		{Rank: cards.King, Suit: cards.Hearts},
		{Rank: cards.Five, Suit: cards.Clubs},
		{Rank: cards.Nine, Suit: cards.Diamonds},
	}, time.Minute, nil)

	s.expectBalance(5000)
	s.mockLedger.EXPECT().
		Credit(gomock.Any(), &ledgerService.CreditInput{ParticipantID: "player-1", Amount: 750}).
		Return(&ledgerService.CreditOutput{Balance: 5750}, nil)

	output, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	s.Equal(models.BlackjackStateSettled, output.Session.State)
	s.Equal(models.BlackjackOutcomePlayerNatural, output.Session.Outcome)
	s.True(output.Session.PlayerHand.IsNatural())

	// Terminal deal must free the player for a new session
	_, active := s.reg.SessionFor("player-1")
	s.False(active)
}

func (s *BlackjackServiceTestSuite) TestDealDoubleNaturalIsPush() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Ace, Suit: cards.Spades},
		{Rank: cards.Queen, Suit: cards.Hearts},
		{Rank: cards.Ace, Suit: cards.Clubs},
		{Rank: cards.King, Suit: cards.Diamonds},
	}, time.Minute, nil)

	// Push moves no money: the only ledger call is the reserve check
	s.expectBalance(5000)

	output, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	s.Equal(models.BlackjackStateSettled, output.Session.State)
	s.Equal(models.BlackjackOutcomePush, output.Session.Outcome)
}

func (s *BlackjackServiceTestSuite) TestDealRejectsUncoveredWager() {
	svc := s.newService(nil, time.Minute, nil)

	s.expectBalance(400)

	_, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().ErrorIs(err, ledgerService.ErrInsufficientFunds)
}

func (s *BlackjackServiceTestSuite) TestDealRejectsSecondConcurrentSession() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Five, Suit: cards.Spades},
		{Rank: cards.Six, Suit: cards.Hearts},
		{Rank: cards.Ten, Suit: cards.Clubs},
		{Rank: cards.Seven, Suit: cards.Diamonds},
	}, time.Minute, nil)

	s.expectBalance(5000)

	_, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	s.expectBalance(5000)
	_, err = svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().ErrorIs(err, registry.ErrAlreadyActive)
}

func (s *BlackjackServiceTestSuite) TestHitBustDebitsWager() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Ten, Suit: cards.Spades},
		{Rank: cards.Six, Suit: cards.Hearts},
		{Rank: cards.Ten, Suit: cards.Clubs},
		{Rank: cards.Seven, Suit: cards.Diamonds},
		{Rank: cards.King, Suit: cards.Spades}, // hit -> 26, bust
	}, time.Minute, nil)

	s.expectBalance(5000)

	deal, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)
	s.Equal(models.BlackjackStatePlayerTurn, deal.Session.State)

	s.mockLedger.EXPECT().
		DebitUpTo(gomock.Any(), &ledgerService.DebitUpToInput{ParticipantID: "player-1", Amount: 500}).
		Return(&ledgerService.DebitUpToOutput{Debited: 500, Balance: 4500}, nil)

	output, err := svc.Hit(s.ctx, &HitInput{
		SessionID: deal.Session.ID,
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)

	s.Equal(models.BlackjackStateSettled, output.Session.State)
	s.Equal(models.BlackjackOutcomeDealerWin, output.Session.Outcome)
	s.True(output.Session.PlayerHand.IsBust())

	// The dealer never draws against a busted player
	s.Len(output.Session.DealerHand, 2)
}

func (s *BlackjackServiceTestSuite) TestStandDealerDrawsToSeventeen() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Ten, Suit: cards.Spades},
		{Rank: cards.Nine, Suit: cards.Hearts}, // player stands on 19
		{Rank: cards.Ten, Suit: cards.Clubs},
		{Rank: cards.Two, Suit: cards.Diamonds}, // dealer 12
		{Rank: cards.Six, Suit: cards.Spades},   // dealer 18, stands
	}, time.Minute, nil)

	s.expectBalance(5000)

	deal, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	s.mockLedger.EXPECT().
		Credit(gomock.Any(), &ledgerService.CreditInput{ParticipantID: "player-1", Amount: 500}).
		Return(&ledgerService.CreditOutput{Balance: 5500}, nil)

	output, err := svc.Stand(s.ctx, &StandInput{
		SessionID: deal.Session.ID,
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)

	s.Equal(models.BlackjackOutcomePlayerWin, output.Session.Outcome)
	s.Equal(18, output.Session.DealerHand.Value())
}

func (s *BlackjackServiceTestSuite) TestDoubleDoublesWagerAndDrawsOne() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Five, Suit: cards.Spades},
		{Rank: cards.Six, Suit: cards.Hearts}, // player 11
		{Rank: cards.Ten, Suit: cards.Clubs},
		{Rank: cards.Eight, Suit: cards.Diamonds}, // dealer 18
		{Rank: cards.Ten, Suit: cards.Spades},     // double draw -> 21
	}, time.Minute, nil)

	s.expectBalance(5000)

	deal, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	// Double requires the doubled wager to be covered
	s.expectBalance(5000)
	s.mockLedger.EXPECT().
		Credit(gomock.Any(), &ledgerService.CreditInput{ParticipantID: "player-1", Amount: 1000}).
		Return(&ledgerService.CreditOutput{Balance: 6000}, nil)

	output, err := svc.Double(s.ctx, &DoubleInput{
		SessionID: deal.Session.ID,
		PlayerID:  "player-1",
	})
	s.Require().NoError(err)

	s.Equal(int64(1000), output.Session.Wager)
	s.Len(output.Session.PlayerHand, 3)
	s.Equal(models.BlackjackOutcomePlayerWin, output.Session.Outcome)
}

func (s *BlackjackServiceTestSuite) TestDoubleRejectedAfterHit() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Two, Suit: cards.Spades},
		{Rank: cards.Three, Suit: cards.Hearts},
		{Rank: cards.Ten, Suit: cards.Clubs},
		{Rank: cards.Eight, Suit: cards.Diamonds},
		{Rank: cards.Four, Suit: cards.Spades}, // hit -> 9
	}, time.Minute, nil)

	s.expectBalance(5000)

	deal, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	_, err = svc.Hit(s.ctx, &HitInput{SessionID: deal.Session.ID, PlayerID: "player-1"})
	s.Require().NoError(err)

	_, err = svc.Double(s.ctx, &DoubleInput{SessionID: deal.Session.ID, PlayerID: "player-1"})
	s.Require().ErrorIs(err, ErrDoubleNotAllowed)
}

func (s *BlackjackServiceTestSuite) TestHitRejectsWrongActor() {
	svc := s.newService([]cards.Card{
		{Rank: cards.Ten, Suit: cards.Spades},
		{Rank: cards.Six, Suit: cards.Hearts},
		{Rank: cards.Ten, Suit: cards.Clubs},
		{Rank: cards.Seven, Suit: cards.Diamonds},
	}, time.Minute, nil)

	s.expectBalance(5000)

	deal, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	_, err = svc.Hit(s.ctx, &HitInput{
		SessionID: deal.Session.ID,
		PlayerID:  "player-2",
	})
	s.Require().ErrorIs(err, turngate.ErrWrongActor)
}

func (s *BlackjackServiceTestSuite) TestTurnTimeoutForcesImplicitStand() {
	settled := make(chan *models.BlackjackSession, 1)

	svc := s.newService([]cards.Card{
		{Rank: cards.Ten, Suit: cards.Spades},
		{Rank: cards.Nine, Suit: cards.Hearts}, // player 19
		{Rank: cards.Ten, Suit: cards.Clubs},
		{Rank: cards.Ten, Suit: cards.Diamonds}, // dealer 20
	}, 20*time.Millisecond, func(session *models.BlackjackSession) {
		settled <- session
	})

	s.expectBalance(5000)
	s.mockLedger.EXPECT().
		DebitUpTo(gomock.Any(), &ledgerService.DebitUpToInput{ParticipantID: "player-1", Amount: 500}).
		Return(&ledgerService.DebitUpToOutput{Debited: 500, Balance: 4500}, nil)

	deal, err := svc.Deal(s.ctx, &DealInput{
		ChannelID: "channel-1",
		Player:    s.testPlayer,
		Wager:     500,
	})
	s.Require().NoError(err)

	select {
	case session := <-settled:
		s.Equal(models.BlackjackStateSettled, session.State)
		s.Equal(models.BlackjackOutcomeDealerWin, session.Outcome)
	case <-time.After(time.Second):
		s.FailNow("timeout settlement never fired")
	}

	// A late stand after the timeout resolved finds no live session
	_, err = svc.Stand(s.ctx, &StandInput{
		SessionID: deal.Session.ID,
		PlayerID:  "player-1",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}
