package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	ledgerRepo "github.com/pitboss-bot/pitboss/internal/repositories/ledger"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	service Service
	ctx     context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	svc, err := New(&Config{
		StartingBalance: 5000,
		LedgerRepo:      repo,
	})
	s.Require().NoError(err)
	s.service = svc

	s.ctx = context.Background()
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestGetBalanceOpensAccountOnFirstTouch() {
	output, err := s.service.GetBalance(s.ctx, &GetBalanceInput{
		ParticipantID: "player-1",
	})
	s.Require().NoError(err)
	s.Equal(int64(5000), output.Balance)

	// The opening balance is durable, not just a default
	stored, err := s.client.Get(s.ctx, "balance:player-1").Result()
	s.Require().NoError(err)
	s.Equal("5000", stored)
}

func (s *LedgerServiceTestSuite) TestCreditIncrementsAndPersists() {
	output, err := s.service.Credit(s.ctx, &CreditInput{
		ParticipantID: "player-1",
		Amount:        1500,
	})
	s.Require().NoError(err)
	s.Equal(int64(6500), output.Balance)

	stored, err := s.client.Get(s.ctx, "balance:player-1").Result()
	s.Require().NoError(err)
	s.Equal("6500", stored)
}

func (s *LedgerServiceTestSuite) TestDebitRejectsOverdraw() {
	_, err := s.service.Debit(s.ctx, &DebitInput{
		ParticipantID: "player-1",
		Amount:        5001,
	})
	s.Require().ErrorIs(err, ErrInsufficientFunds)

	// Balance unchanged by the rejected debit
	output, err := s.service.GetBalance(s.ctx, &GetBalanceInput{
		ParticipantID: "player-1",
	})
	s.Require().NoError(err)
	s.Equal(int64(5000), output.Balance)
}

func (s *LedgerServiceTestSuite) TestDebitExactBalanceReachesZero() {
	output, err := s.service.Debit(s.ctx, &DebitInput{
		ParticipantID: "player-1",
		Amount:        5000,
	})
	s.Require().NoError(err)
	s.Equal(int64(0), output.Balance)

	_, err = s.service.Debit(s.ctx, &DebitInput{
		ParticipantID: "player-1",
		Amount:        1,
	})
	s.Require().ErrorIs(err, ErrInsufficientFunds)
}

func (s *LedgerServiceTestSuite) TestDebitUpToFloorsAtZero() {
	output, err := s.service.DebitUpTo(s.ctx, &DebitUpToInput{
		ParticipantID: "player-1",
		Amount:        8000,
	})
	s.Require().NoError(err)
	s.Equal(int64(5000), output.Debited)
	s.Equal(int64(0), output.Balance)
}

func (s *LedgerServiceTestSuite) TestRejectsNonPositiveAmounts() {
	_, err := s.service.Credit(s.ctx, &CreditInput{
		ParticipantID: "player-1",
		Amount:        0,
	})
	s.Require().ErrorIs(err, ErrInvalidAmount)

	_, err = s.service.Debit(s.ctx, &DebitInput{
		ParticipantID: "player-1",
		Amount:        -100,
	})
	s.Require().ErrorIs(err, ErrInvalidAmount)
}

func (s *LedgerServiceTestSuite) TestBalanceNeverNegativeUnderMixedSequence() {
	ops := []struct {
		credit bool
		amount int64
	}{
		{false, 3000},
		{false, 3000}, // rejected: only 2000 left
		{true, 500},
		{false, 2500},
		{false, 1}, // rejected: zero balance
		{true, 100},
	}

	for _, op := range ops {
		if op.credit {
			_, err := s.service.Credit(s.ctx, &CreditInput{
				ParticipantID: "player-1",
				Amount:        op.amount,
			})
			s.Require().NoError(err)
		} else {
			_, err := s.service.Debit(s.ctx, &DebitInput{
				ParticipantID: "player-1",
				Amount:        op.amount,
			})
			if err != nil {
				s.Require().ErrorIs(err, ErrInsufficientFunds)
			}
		}

		output, err := s.service.GetBalance(s.ctx, &GetBalanceInput{
			ParticipantID: "player-1",
		})
		s.Require().NoError(err)
		s.GreaterOrEqual(output.Balance, int64(0))
	}

	output, err := s.service.GetBalance(s.ctx, &GetBalanceInput{
		ParticipantID: "player-1",
	})
	s.Require().NoError(err)
	s.Equal(int64(100), output.Balance)
}

func (s *LedgerServiceTestSuite) TestConcurrentDebitsSerializePerParticipant() {
	// 5000 starting balance, 50 concurrent debits of 100: every debit
	// should succeed exactly once and land on zero
	const workers = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Debit(s.ctx, &DebitInput{
				ParticipantID: "player-1",
				Amount:        100,
			})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	output, err := s.service.GetBalance(s.ctx, &GetBalanceInput{
		ParticipantID: "player-1",
	})
	s.Require().NoError(err)
	s.Equal(int64(0), output.Balance)
}
