package rotation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveRunAndGetLastSelected() {
	ctx := context.Background()

	err := s.repo.SaveRun(ctx, &SaveRunInput{
		SelectedIDs: []string{"cand-1", "cand-2", "cand-3"},
		RunAt:       s.testNow,
	})
	s.Require().NoError(err)

	output, err := s.repo.GetLastSelected(ctx, &GetLastSelectedInput{
		CandidateIDs: []string{"cand-1", "cand-2", "cand-3", "cand-4"},
	})
	s.Require().NoError(err)

	s.Len(output.LastSelected, 3)
	s.Equal(s.testNow.Unix(), output.LastSelected["cand-1"].Unix())
	s.Equal(s.testNow.Unix(), output.LastSelected["cand-2"].Unix())
	s.Equal(s.testNow.Unix(), output.LastSelected["cand-3"].Unix())

	// never selected: absent
	_, ok := output.LastSelected["cand-4"]
	s.False(ok)
}

func (s *RedisRepositoryTestSuite) TestGetPreviousSelectees() {
	ctx := context.Background()

	// No run yet
	output, err := s.repo.GetPreviousSelectees(ctx, &GetPreviousSelecteesInput{})
	s.Require().NoError(err)
	s.Empty(output.SelectedIDs)

	err = s.repo.SaveRun(ctx, &SaveRunInput{
		SelectedIDs: []string{"cand-2", "cand-5", "cand-9"},
		RunAt:       s.testNow,
	})
	s.Require().NoError(err)

	output, err = s.repo.GetPreviousSelectees(ctx, &GetPreviousSelecteesInput{})
	s.Require().NoError(err)
	s.Equal([]string{"cand-2", "cand-5", "cand-9"}, output.SelectedIDs)
}

func (s *RedisRepositoryTestSuite) TestGetLastRun() {
	ctx := context.Background()

	// No run yet: zero time
	output, err := s.repo.GetLastRun(ctx, &GetLastRunInput{})
	s.Require().NoError(err)
	s.True(output.RunAt.IsZero())

	err = s.repo.SaveRun(ctx, &SaveRunInput{
		SelectedIDs: []string{"cand-1"},
		RunAt:       s.testNow,
	})
	s.Require().NoError(err)

	output, err = s.repo.GetLastRun(ctx, &GetLastRunInput{})
	s.Require().NoError(err)
	s.Equal(s.testNow.Unix(), output.RunAt.Unix())
}

func (s *RedisRepositoryTestSuite) TestSaveRunOverwritesPreviousSelectees() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SaveRun(ctx, &SaveRunInput{
		SelectedIDs: []string{"cand-1", "cand-2", "cand-3"},
		RunAt:       s.testNow,
	}))
	s.Require().NoError(s.repo.SaveRun(ctx, &SaveRunInput{
		SelectedIDs: []string{"cand-4", "cand-5", "cand-6"},
		RunAt:       s.testNow.Add(7 * 24 * time.Hour),
	}))

	output, err := s.repo.GetPreviousSelectees(ctx, &GetPreviousSelecteesInput{})
	s.Require().NoError(err)
	s.Equal([]string{"cand-4", "cand-5", "cand-6"}, output.SelectedIDs)

	// First run's timestamps survive
	selected, err := s.repo.GetLastSelected(ctx, &GetLastSelectedInput{
		CandidateIDs: []string{"cand-1", "cand-4"},
	})
	s.Require().NoError(err)
	s.Equal(s.testNow.Unix(), selected.LastSelected["cand-1"].Unix())
	s.Equal(s.testNow.Add(7*24*time.Hour).Unix(), selected.LastSelected["cand-4"].Unix())
}
