// Package redis holds the remedy-history store: when a remedy was last shown
// to a subject, so selection can deprioritize repeats within the recency
// window.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/astrosetu/astrosetu-backend/internal/platform/envutil"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

// RemedyHistory records and reads shown-remedy timestamps.
type RemedyHistory interface {
	MarkShown(ctx context.Context, subjectID uuid.UUID, remedyKey string, at time.Time) error
	LastShown(ctx context.Context, subjectID uuid.UUID) (map[string]time.Time, error)
}

type remedyHistory struct {
	client *goredis.Client
	log    *logger.Logger
	ttl    time.Duration
}

// NewClient dials redis from the environment.
func NewClient() (*goredis.Client, error) {
	addr := envutil.String("REDIS_ADDR", "localhost:6379")
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: envutil.String("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewRemedyHistory wraps a redis client. Entries expire with ttl so history
// stays bounded; a ttl at least the recency window keeps selection correct.
func NewRemedyHistory(client *goredis.Client, baseLog *logger.Logger, ttl time.Duration) RemedyHistory {
	return &remedyHistory{
		client: client,
		log:    baseLog.With("client", "RemedyHistory"),
		ttl:    ttl,
	}
}

func historyKey(subjectID uuid.UUID) string {
	return "remedy:shown:" + subjectID.String()
}

func (h *remedyHistory) MarkShown(ctx context.Context, subjectID uuid.UUID, remedyKey string, at time.Time) error {
	key := historyKey(subjectID)
	pipe := h.client.TxPipeline()
	pipe.HSet(ctx, key, remedyKey, at.Unix())
	pipe.Expire(ctx, key, h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark remedy shown: %w", err)
	}
	return nil
}

func (h *remedyHistory) LastShown(ctx context.Context, subjectID uuid.UUID) (map[string]time.Time, error) {
	raw, err := h.client.HGetAll(ctx, historyKey(subjectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read remedy history: %w", err)
	}
	out := make(map[string]time.Time, len(raw))
	for remedyKey, v := range raw {
		unix, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.log.Warn("dropping malformed history entry", "remedy", remedyKey, "value", v)
			continue
		}
		out[remedyKey] = time.Unix(unix, 0).UTC()
	}
	return out, nil
}
