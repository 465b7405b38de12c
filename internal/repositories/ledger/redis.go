package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	balanceKeyPrefix = "balance:"
)

// ErrBalanceNotFound is returned when a participant has no stored balance
var ErrBalanceNotFound = errors.New("balance not found")

// Config holds configuration for the Redis ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ledger repository
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

// GetBalance retrieves a participant's balance
func (r *redisRepository) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	key := balanceKeyPrefix + input.ParticipantID
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to get balance for %s: %w", input.ParticipantID, err)
	}

	balance, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance for %s: %w", input.ParticipantID, err)
	}

	return &GetBalanceOutput{
		Balance: balance,
	}, nil
}

// SaveBalance durably writes a participant's balance
func (r *redisRepository) SaveBalance(ctx context.Context, input *SaveBalanceInput) error {
	if input == nil || input.ParticipantID == "" {
		return errors.New("input and participant ID cannot be empty")
	}

	if input.Balance < 0 {
		return errors.New("balance cannot be negative")
	}

	key := balanceKeyPrefix + input.ParticipantID
	if err := r.client.Set(ctx, key, strconv.FormatInt(input.Balance, 10), 0).Err(); err != nil {
		return fmt.Errorf("failed to save balance for %s: %w", input.ParticipantID, err)
	}

	return nil
}
