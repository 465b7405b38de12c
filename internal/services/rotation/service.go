package rotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	rotationRepo "github.com/pitboss-bot/pitboss/internal/repositories/rotation"
)

const (
	defaultSelectionCount = 3
	defaultRecoveryWeeks  = 8
	defaultMinProbability = 0.01

	week = 7 * 24 * time.Hour
)

// service implements the Service interface
type service struct {
	config *Config
}

// New creates a new rotation service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RotationRepo == nil {
		return nil, errors.New("rotation repository cannot be nil")
	}

	if cfg.RoleAssigner == nil {
		return nil, errors.New("role assigner cannot be nil")
	}

	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.SelectionCount == 0 {
		cfg.SelectionCount = defaultSelectionCount
	}

	if cfg.RecoveryWeeks == 0 {
		cfg.RecoveryWeeks = defaultRecoveryWeeks
	}

	if cfg.MinProbability == 0 {
		cfg.MinProbability = defaultMinProbability
	}

	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if len(cfg.CandidateIDs) < cfg.SelectionCount {
		return nil, ErrNotEnoughCandidates
	}

	return &service{config: cfg}, nil
}

// Run executes one selection round. The run is persisted before any role
// side effect so a role failure never loses a completed selection.
func (s *service) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	now := s.config.Clock.Now()

	lastOutput, err := s.config.RotationRepo.GetLastSelected(ctx, &rotationRepo.GetLastSelectedInput{
		CandidateIDs: s.config.CandidateIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load last-selected times: %w", err)
	}

	selected := s.draw(lastOutput.LastSelected, now)

	previousOutput, err := s.config.RotationRepo.GetPreviousSelectees(ctx, &rotationRepo.GetPreviousSelecteesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to load previous selectees: %w", err)
	}

	if err := s.config.RotationRepo.SaveRun(ctx, &rotationRepo.SaveRunInput{
		SelectedIDs: selected,
		RunAt:       now,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist rotation run: %w", err)
	}

	if len(previousOutput.SelectedIDs) > 0 {
		if err := s.config.RoleAssigner.RemoveRole(ctx, previousOutput.SelectedIDs); err != nil {
			log.Error().Err(err).Strs("participants", previousOutput.SelectedIDs).
				Msg("failed to revoke rotation role")
		}
	}

	if err := s.config.RoleAssigner.ApplyRole(ctx, selected); err != nil {
		log.Error().Err(err).Strs("participants", selected).
			Msg("failed to grant rotation role")
	}

	log.Info().Strs("selected", selected).Time("run_at", now).Msg("rotation run complete")

	return &RunOutput{
		SelectedIDs: selected,
		PreviousIDs: previousOutput.SelectedIDs,
		RunAt:       now,
	}, nil
}

// RunIfDue runs a round only when the most recent period boundary has no
// recorded run
func (s *service) RunIfDue(ctx context.Context, input *RunIfDueInput) (*RunIfDueOutput, error) {
	now := s.config.Clock.Now()

	lastRunOutput, err := s.config.RotationRepo.GetLastRun(ctx, &rotationRepo.GetLastRunInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to load last run time: %w", err)
	}

	if !lastRunOutput.RunAt.Before(s.previousAnchor(now)) {
		return &RunIfDueOutput{Ran: false}, nil
	}

	runOutput, err := s.Run(ctx, &RunInput{})
	if err != nil {
		return nil, err
	}

	return &RunIfDueOutput{
		Ran: true,
		Run: runOutput,
	}, nil
}

// Start catches up a missed period, then runs at every weekly anchor until
// the context is cancelled
func (s *service) Start(ctx context.Context) error {
	if _, err := s.RunIfDue(ctx, &RunIfDueInput{}); err != nil {
		log.Error().Err(err).Msg("rotation catch-up failed")
	}

	for {
		wait := s.nextAnchor(s.config.Clock.Now()).Sub(s.config.Clock.Now())
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			if _, err := s.RunIfDue(ctx, &RunIfDueInput{}); err != nil {
				log.Error().Err(err).Msg("rotation run failed")
			}
		}
	}
}

// draw selects without replacement using weights fixed at the start of the
// run
func (s *service) draw(lastSelected map[string]time.Time, now time.Time) []string {
	type entry struct {
		id     string
		weight float64
	}

	pool := make([]entry, 0, len(s.config.CandidateIDs))
	for _, id := range s.config.CandidateIDs {
		pool = append(pool, entry{
			id:     id,
			weight: s.weightFor(lastSelected[id], now),
		})
	}

	selected := make([]string, 0, s.config.SelectionCount)
	for len(selected) < s.config.SelectionCount {
		total := 0.0
		for _, e := range pool {
			total += e.weight
		}

		x := s.config.Random.Float64() * total
		chosen := len(pool) - 1
		for i, e := range pool {
			x -= e.weight
			if x < 0 {
				chosen = i
				break
			}
		}

		selected = append(selected, pool[chosen].id)
		pool = append(pool[:chosen], pool[chosen+1:]...)
	}

	return selected
}

// weightFor computes a candidate's selection weight. A candidate never
// selected, or selected at least the recovery window ago, carries full
// weight; a just-selected candidate carries the probability floor.
func (s *service) weightFor(lastSelected time.Time, now time.Time) float64 {
	if lastSelected.IsZero() {
		return 1.0
	}

	recovery := time.Duration(s.config.RecoveryWeeks) * week
	elapsed := now.Sub(lastSelected)

	fraction := float64(elapsed) / float64(recovery)
	if fraction > 1 {
		fraction = 1
	}
	if fraction < 0 {
		fraction = 0
	}

	floor := s.floor()
	return floor + (1-floor)*fraction
}

// floor is the minimum weight, derived so a just-selected candidate's
// chance against a fully recovered pool never drops below MinProbability
func (s *service) floor() float64 {
	n := float64(len(s.config.CandidateIDs))
	return s.config.MinProbability * (n - 1) / (1 - s.config.MinProbability)
}

// nextAnchor returns the first weekly boundary strictly after now
func (s *service) nextAnchor(now time.Time) time.Time {
	local := now.In(s.config.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.config.Location)

	days := (int(s.config.Weekday) - int(midnight.Weekday()) + 7) % 7
	anchor := midnight.AddDate(0, 0, days)
	if !anchor.After(now) {
		anchor = anchor.AddDate(0, 0, 7)
	}
	return anchor
}

// previousAnchor returns the most recent weekly boundary at or before now
func (s *service) previousAnchor(now time.Time) time.Time {
	return s.nextAnchor(now).AddDate(0, 0, -7)
}
