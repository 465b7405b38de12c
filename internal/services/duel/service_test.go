package duel

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/pitboss-bot/pitboss/internal/common/clock/mocks"
	uuidMocks "github.com/pitboss-bot/pitboss/internal/common/uuid/mocks"
	"github.com/pitboss-bot/pitboss/internal/models"
	"github.com/pitboss-bot/pitboss/internal/registry"
	ledgerRepo "github.com/pitboss-bot/pitboss/internal/repositories/ledger"
	ledgerService "github.com/pitboss-bot/pitboss/internal/services/ledger"
	"github.com/pitboss-bot/pitboss/internal/turngate"
)

type DuelServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	mr        *miniredis.Miniredis
	client    *redis.Client
	ledger    ledgerService.Service
	reg       *registry.Registry
	ctx       context.Context

	now        time.Time
	challenger models.Participant
	challenged models.Participant
}

func (s *DuelServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.reg = registry.New()
	s.ctx = context.Background()

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	repo, err := ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.ledger, err = ledgerService.New(&ledgerService.Config{
		StartingBalance: 5000,
		LedgerRepo:      repo,
	})
	s.Require().NoError(err)

	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.challenger = models.Participant{ID: "challenger-1", Name: "Challenger"}
	s.challenged = models.Participant{ID: "challenged-1", Name: "Challenged"}

	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("test-duel-id").AnyTimes()
}

func (s *DuelServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestDuelServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DuelServiceTestSuite))
}

func (s *DuelServiceTestSuite) newService(timeout time.Duration, onTimeout func(*models.DuelSession)) Service {
	svc, err := New(&Config{
		ChallengeTimeout: timeout,
		OnTimeout:        onTimeout,
		Ledger:           s.ledger,
		Registry:         s.reg,
		Clock:            s.mockClock,
		UUIDGenerator:    s.mockUUID,
	})
	s.Require().NoError(err)
	return svc
}

func (s *DuelServiceTestSuite) balance(participantID string) int64 {
	output, err := s.ledger.GetBalance(s.ctx, &ledgerService.GetBalanceInput{
		ParticipantID: participantID,
	})
	s.Require().NoError(err)
	return output.Balance
}

func (s *DuelServiceTestSuite) challenge(svc Service, wager int64) *models.DuelSession {
	output, err := svc.Challenge(s.ctx, &ChallengeInput{
		ChannelID:  "channel-1",
		Challenger: s.challenger,
		Challenged: s.challenged,
		Wager:      wager,
	})
	s.Require().NoError(err)
	return output.Session
}

func (s *DuelServiceTestSuite) TestChallengeDebitsChallengerImmediately() {
	svc := s.newService(time.Minute, nil)

	session := s.challenge(svc, 1000)

	s.Equal(models.DuelStateChallengePending, session.State)
	s.Equal(int64(4000), s.balance(s.challenger.ID))
	s.Equal(int64(5000), s.balance(s.challenged.ID))
}

func (s *DuelServiceTestSuite) TestDeclineRefundsChallenger() {
	svc := s.newService(time.Minute, nil)
	session := s.challenge(svc, 1000)

	output, err := svc.Decline(s.ctx, &DeclineInput{
		SessionID: session.ID,
		PlayerID:  s.challenged.ID,
	})
	s.Require().NoError(err)

	s.Equal(models.DuelStateDeclined, output.Session.State)
	s.Equal(int64(5000), s.balance(s.challenger.ID))
	s.Equal(int64(5000), s.balance(s.challenged.ID))

	// Terminal duel frees the challenger
	_, active := s.reg.SessionFor(s.challenger.ID)
	s.False(active)
}

func (s *DuelServiceTestSuite) TestOnlyChallengedMayAcceptOrDecline() {
	svc := s.newService(time.Minute, nil)
	session := s.challenge(svc, 1000)

	_, err := svc.Accept(s.ctx, &AcceptInput{
		SessionID: session.ID,
		PlayerID:  "bystander-1",
	})
	s.Require().ErrorIs(err, turngate.ErrWrongActor)

	_, err = svc.Decline(s.ctx, &DeclineInput{
		SessionID: session.ID,
		PlayerID:  s.challenger.ID,
	})
	s.Require().ErrorIs(err, turngate.ErrWrongActor)
}

func (s *DuelServiceTestSuite) TestAcceptDebitsChallenged() {
	svc := s.newService(time.Minute, nil)
	session := s.challenge(svc, 1000)

	output, err := svc.Accept(s.ctx, &AcceptInput{
		SessionID: session.ID,
		PlayerID:  s.challenged.ID,
	})
	s.Require().NoError(err)

	s.Equal(models.DuelStateChoicesPending, output.Session.State)
	s.Equal(int64(4000), s.balance(s.challenger.ID))
	s.Equal(int64(4000), s.balance(s.challenged.ID))
}

func (s *DuelServiceTestSuite) TestWinnerTakesPot() {
	svc := s.newService(time.Minute, nil)
	session := s.challenge(svc, 1000)

	_, err := svc.Accept(s.ctx, &AcceptInput{SessionID: session.ID, PlayerID: s.challenged.ID})
	s.Require().NoError(err)

	first, err := svc.SubmitChoice(s.ctx, &SubmitChoiceInput{
		SessionID: session.ID,
		PlayerID:  s.challenger.ID,
		Choice:    models.DuelChoiceRock,
	})
	s.Require().NoError(err)
	s.False(first.Resolved)

	second, err := svc.SubmitChoice(s.ctx, &SubmitChoiceInput{
		SessionID: session.ID,
		PlayerID:  s.challenged.ID,
		Choice:    models.DuelChoiceScissors,
	})
	s.Require().NoError(err)
	s.True(second.Resolved)

	s.Equal(models.DuelStateSettled, second.Session.State)
	s.Equal(s.challenger.ID, second.Session.WinnerID)
	s.Equal(int64(6000), s.balance(s.challenger.ID))
	s.Equal(int64(4000), s.balance(s.challenged.ID))
}

func (s *DuelServiceTestSuite) TestTieRefundsBoth() {
	svc := s.newService(time.Minute, nil)
	session := s.challenge(svc, 1000)

	_, err := svc.Accept(s.ctx, &AcceptInput{SessionID: session.ID, PlayerID: s.challenged.ID})
	s.Require().NoError(err)

	_, err = svc.SubmitChoice(s.ctx, &SubmitChoiceInput{
		SessionID: session.ID,
		PlayerID:  s.challenger.ID,
		Choice:    models.DuelChoicePaper,
	})
	s.Require().NoError(err)

	output, err := svc.SubmitChoice(s.ctx, &SubmitChoiceInput{
		SessionID: session.ID,
		PlayerID:  s.challenged.ID,
		Choice:    models.DuelChoicePaper,
	})
	s.Require().NoError(err)

	s.True(output.Resolved)
	s.Empty(output.Session.WinnerID)
	s.Equal(int64(5000), s.balance(s.challenger.ID))
	s.Equal(int64(5000), s.balance(s.challenged.ID))
}

func (s *DuelServiceTestSuite) TestSecondChoiceFromSameParticipantRejected() {
	svc := s.newService(time.Minute, nil)
	session := s.challenge(svc, 1000)

	_, err := svc.Accept(s.ctx, &AcceptInput{SessionID: session.ID, PlayerID: s.challenged.ID})
	s.Require().NoError(err)

	_, err = svc.SubmitChoice(s.ctx, &SubmitChoiceInput{
		SessionID: session.ID,
		PlayerID:  s.challenger.ID,
		Choice:    models.DuelChoiceRock,
	})
	s.Require().NoError(err)

	// The recorded choice is never overwritten and nothing resolves
	_, err = svc.SubmitChoice(s.ctx, &SubmitChoiceInput{
		SessionID: session.ID,
		PlayerID:  s.challenger.ID,
		Choice:    models.DuelChoicePaper,
	})
	s.Require().ErrorIs(err, ErrChoiceAlreadyMade)

	output, err := svc.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(models.DuelChoiceRock, output.Session.Choices[s.challenger.ID])
	s.Equal(models.DuelStateChoicesPending, output.Session.State)
}

func (s *DuelServiceTestSuite) TestChallengeTimeoutRefundsChallenger() {
	timedOut := make(chan *models.DuelSession, 1)
	svc := s.newService(20*time.Millisecond, func(session *models.DuelSession) {
		timedOut <- session
	})

	session := s.challenge(svc, 1000)
	s.Equal(int64(4000), s.balance(s.challenger.ID))

	select {
	case expired := <-timedOut:
		s.Equal(models.DuelStateTimedOut, expired.State)
	case <-time.After(time.Second):
		s.FailNow("challenge timeout never fired")
	}

	s.Equal(int64(5000), s.balance(s.challenger.ID))

	// A late accept finds no live session
	_, err := svc.Accept(s.ctx, &AcceptInput{
		SessionID: session.ID,
		PlayerID:  s.challenged.ID,
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *DuelServiceTestSuite) TestChallengeRejectsUncoveredWager() {
	svc := s.newService(time.Minute, nil)

	_, err := svc.Challenge(s.ctx, &ChallengeInput{
		ChannelID:  "channel-1",
		Challenger: s.challenger,
		Challenged: s.challenged,
		Wager:      6000,
	})
	s.Require().ErrorIs(err, ledgerService.ErrInsufficientFunds)

	// The failed challenge must not leave the challenger registered
	_, active := s.reg.SessionFor(s.challenger.ID)
	s.False(active)
}

func (s *DuelServiceTestSuite) TestReapIdleRefundsStalledDuel() {
	svc := s.newService(time.Minute, nil)
	session := s.challenge(svc, 1000)

	_, err := svc.Accept(s.ctx, &AcceptInput{SessionID: session.ID, PlayerID: s.challenged.ID})
	s.Require().NoError(err)

	// Fresh duels survive the sweep
	s.now = s.now.Add(29 * time.Minute)
	output, err := svc.ReapIdle(s.ctx, &ReapIdleInput{})
	s.Require().NoError(err)
	s.Empty(output.Reaped)

	s.now = s.now.Add(2 * time.Minute)
	output, err = svc.ReapIdle(s.ctx, &ReapIdleInput{})
	s.Require().NoError(err)

	s.Require().Len(output.Reaped, 1)
	s.Equal(models.DuelStateTimedOut, output.Reaped[0].State)
	s.Equal(int64(5000), s.balance(s.challenger.ID))
	s.Equal(int64(5000), s.balance(s.challenged.ID))

	// Both duelists are free to wager again
	_, active := s.reg.SessionFor(s.challenger.ID)
	s.False(active)
	_, active = s.reg.SessionFor(s.challenged.ID)
	s.False(active)

	_, err = svc.GetSession(s.ctx, &GetSessionInput{SessionID: session.ID})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *DuelServiceTestSuite) TestSelfChallengeRejected() {
	svc := s.newService(time.Minute, nil)

	_, err := svc.Challenge(s.ctx, &ChallengeInput{
		ChannelID:  "channel-1",
		Challenger: s.challenger,
		Challenged: s.challenger,
		Wager:      1000,
	})
	s.Require().ErrorIs(err, ErrSelfChallenge)
}
