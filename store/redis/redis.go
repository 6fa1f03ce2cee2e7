package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/agentgraph/store"
)

// RedisStore implements store.Store on Redis. Runs are stored as JSON
// values and indexed per session with a set.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ store.Store = (*RedisStore)(nil)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "agentgraph:"
	TTL      time.Duration // Expiration for runs, default 0 (no expiration)
}

// NewRedisStore creates a Redis-backed run store.
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "agentgraph:"
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisStore) runKey(id string) string {
	return fmt.Sprintf("%srun:%s", s.prefix, id)
}

func (s *RedisStore) sessionKey(id string) string {
	return fmt.Sprintf("%ssession:%s:runs", s.prefix, id)
}

// Save stores a run and indexes it under its session.
func (s *RedisStore) Save(ctx context.Context, run *store.Run) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("run must have an ID")
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.runKey(run.ID), data, s.ttl)
	if run.SessionID != "" {
		sessionKey := s.sessionKey(run.SessionID)
		pipe.SAdd(ctx, sessionKey, run.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, sessionKey, s.ttl)
		}
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save run to redis: %w", err)
	}
	return nil
}

// Load retrieves a run by ID.
func (s *RedisStore) Load(ctx context.Context, runID string) (*store.Run, error) {
	data, err := s.client.Get(ctx, s.runKey(runID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to load run from redis: %w", err)
	}

	var run store.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

// List returns all runs of a session, oldest first. Runs whose keys have
// expired are skipped and pruned from the index.
func (s *RedisStore) List(ctx context.Context, sessionID string) ([]*store.Run, error) {
	ids, err := s.client.SMembers(ctx, s.sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list session runs: %w", err)
	}

	runs := make([]*store.Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.Load(ctx, id)
		if err != nil {
			s.client.SRem(ctx, s.sessionKey(sessionID), id)
			continue
		}
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}

// Delete removes a run and its session index entry.
func (s *RedisStore) Delete(ctx context.Context, runID string) error {
	run, err := s.Load(ctx, runID)
	if err != nil {
		// Already gone.
		return nil
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.runKey(runID))
	if run.SessionID != "" {
		pipe.SRem(ctx, s.sessionKey(run.SessionID), runID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete run from redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
