package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/growthdash/internal/constants"
	"github.com/julianstephens/growthdash/internal/logger"
	"github.com/julianstephens/growthdash/internal/models"
)

// Ledger remembers which (date, kind, channel) sends already succeeded
type Ledger interface {
	Sent(ctx context.Context, date, kind, channel string) (bool, error)
	Record(ctx context.Context, date, kind, channel string, sentAt time.Time) error
}

// NotificationStore is the subset of storage.Provider the store ledger needs
type NotificationStore interface {
	HasNotification(ctx context.Context, date, kind, channel string) (bool, error)
	RecordNotification(ctx context.Context, record models.NotificationRecord) error
}

// StoreLedger keeps the ledger in the notifications table
type StoreLedger struct {
	store NotificationStore
}

func NewStoreLedger(store NotificationStore) *StoreLedger {
	return &StoreLedger{store: store}
}

func (l *StoreLedger) Sent(ctx context.Context, date, kind, channel string) (bool, error) {
	return l.store.HasNotification(ctx, date, kind, channel)
}

func (l *StoreLedger) Record(ctx context.Context, date, kind, channel string, sentAt time.Time) error {
	return l.store.RecordNotification(ctx, models.NotificationRecord{
		ID:      uuid.NewString(),
		Date:    date,
		Kind:    kind,
		Channel: channel,
		SentAt:  sentAt.UTC(),
	})
}

const redisOpTimeout = 2 * time.Second

// RedisLedger answers from Redis so several machines running notify share one ledger.
// Every record is also written to the durable ledger, which answers whenever Redis is unreachable.
type RedisLedger struct {
	client  *redis.Client
	durable Ledger
	ttl     time.Duration
}

// NewRedisClient builds a client with short timeouts so a dead Redis never stalls a notify run
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  redisOpTimeout,
		WriteTimeout: redisOpTimeout,
	})
}

func NewRedisLedger(client *redis.Client, durable Ledger) *RedisLedger {
	return &RedisLedger{client: client, durable: durable, ttl: constants.LedgerTTL}
}

func ledgerKey(date, kind, channel string) string {
	return fmt.Sprintf("%s:notify:%s:%s:%s", constants.AppName, date, kind, channel)
}

func (l *RedisLedger) Sent(ctx context.Context, date, kind, channel string) (bool, error) {
	rctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	n, err := l.client.Exists(rctx, ledgerKey(date, kind, channel)).Result()
	if err != nil {
		logger.Warn("redis ledger unavailable, using database ledger", "error", err)
		return l.durable.Sent(ctx, date, kind, channel)
	}
	if n > 0 {
		return true, nil
	}
	// Redis may have been flushed or started after earlier sends
	return l.durable.Sent(ctx, date, kind, channel)
}

func (l *RedisLedger) Record(ctx context.Context, date, kind, channel string, sentAt time.Time) error {
	if err := l.durable.Record(ctx, date, kind, channel, sentAt); err != nil {
		return err
	}

	rctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := l.client.SetNX(rctx, ledgerKey(date, kind, channel), sentAt.UTC().Format(time.RFC3339), l.ttl).Err(); err != nil {
		logger.Warn("failed to record notification in redis", "key", ledgerKey(date, kind, channel), "error", err)
	}
	return nil
}

// Close releases the Redis connection pool
func (l *RedisLedger) Close() error {
	return l.client.Close()
}
