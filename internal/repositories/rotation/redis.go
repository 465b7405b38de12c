package rotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Keys for Redis
	lastSelectedKey      = "rotation:last_selected"
	previousSelecteesKey = "rotation:previous_selectees"
	lastRunKey           = "rotation:last_run"
)

// Config holds configuration for the Redis rotation repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed rotation repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// GetLastSelected retrieves last-selected times for the given candidates
func (r *redisRepository) GetLastSelected(ctx context.Context, input *GetLastSelectedInput) (*GetLastSelectedOutput, error) {
	if input == nil || len(input.CandidateIDs) == 0 {
		return nil, errors.New("input and candidate IDs cannot be empty")
	}

	values, err := r.client.HMGet(ctx, lastSelectedKey, input.CandidateIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get last-selected times: %w", err)
	}

	lastSelected := make(map[string]time.Time, len(input.CandidateIDs))
	for i, value := range values {
		if value == nil {
			continue
		}

		raw, ok := value.(string)
		if !ok {
			continue
		}

		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last-selected time for %s: %w", input.CandidateIDs[i], err)
		}

		lastSelected[input.CandidateIDs[i]] = time.Unix(unix, 0).UTC()
	}

	return &GetLastSelectedOutput{
		LastSelected: lastSelected,
	}, nil
}

// SaveRun durably records a completed run in a single transaction
func (r *redisRepository) SaveRun(ctx context.Context, input *SaveRunInput) error {
	if input == nil || len(input.SelectedIDs) == 0 {
		return errors.New("input and selected IDs cannot be empty")
	}

	if input.RunAt.IsZero() {
		return errors.New("run time cannot be zero")
	}

	selecteesJSON, err := json.Marshal(input.SelectedIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal selectees: %w", err)
	}

	fields := make(map[string]interface{}, len(input.SelectedIDs))
	for _, id := range input.SelectedIDs {
		fields[id] = strconv.FormatInt(input.RunAt.Unix(), 10)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, lastSelectedKey, fields)
	pipe.Set(ctx, previousSelecteesKey, selecteesJSON, 0)
	pipe.Set(ctx, lastRunKey, strconv.FormatInt(input.RunAt.Unix(), 10), 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save rotation run: %w", err)
	}

	return nil
}

// GetPreviousSelectees retrieves the previous run's selectees
func (r *redisRepository) GetPreviousSelectees(ctx context.Context, input *GetPreviousSelecteesInput) (*GetPreviousSelecteesOutput, error) {
	value, err := r.client.Get(ctx, previousSelecteesKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &GetPreviousSelecteesOutput{}, nil
		}
		return nil, fmt.Errorf("failed to get previous selectees: %w", err)
	}

	var selectees []string
	if err := json.Unmarshal([]byte(value), &selectees); err != nil {
		return nil, fmt.Errorf("failed to unmarshal previous selectees: %w", err)
	}

	return &GetPreviousSelecteesOutput{
		SelectedIDs: selectees,
	}, nil
}

// GetLastRun retrieves when the scheduler last completed a run
func (r *redisRepository) GetLastRun(ctx context.Context, input *GetLastRunInput) (*GetLastRunOutput, error) {
	value, err := r.client.Get(ctx, lastRunKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &GetLastRunOutput{}, nil
		}
		return nil, fmt.Errorf("failed to get last run time: %w", err)
	}

	unix, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last run time: %w", err)
	}

	return &GetLastRunOutput{
		RunAt: time.Unix(unix, 0).UTC(),
	}, nil
}
