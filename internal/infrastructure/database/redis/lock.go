package redis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/DeNovo-Designer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

var (
	ErrLockNotAcquired  = errors.New(errors.ErrCodeConflict, "failed to acquire lock")
	ErrLockNotHeld      = errors.New(errors.ErrCodeConflict, "lock not held by this owner")
	ErrLockExtendFailed = errors.New(errors.ErrCodeConflict, "failed to extend lock")
)

const (
	unlockScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
	extendScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("pexpire", KEYS[1], ARGV[2]) else return 0 end`
)

// DistributedLock is a single-owner lock with a lease.  The worker takes one
// per run so that a redelivered event does not archive the same run twice.
type DistributedLock interface {
	Lock(ctx context.Context) error
	TryLock(ctx context.Context) (bool, error)
	Unlock(ctx context.Context) error
	// Extend resets the lease.  It fails with ErrLockExtendFailed once the
	// lease has been lost to expiry or another owner.
	Extend(ctx context.Context, ttl time.Duration) (bool, error)
}

type LockFactory interface {
	NewMutex(name string, opts ...LockOption) DistributedLock
}

type LockOption func(*lockConfig)

func WithLockTTL(ttl time.Duration) LockOption {
	return func(c *lockConfig) { c.ttl = ttl }
}

// WithRetryDelay and WithRetryCount bound how long Lock waits.  A retry
// count of zero makes Lock a single attempt.
func WithRetryDelay(delay time.Duration) LockOption {
	return func(c *lockConfig) { c.retryDelay = delay }
}

func WithRetryCount(count int) LockOption {
	return func(c *lockConfig) { c.retryCount = max(count, 0) }
}

// WithWatchdog keeps extending the lease every interval until Unlock.
func WithWatchdog(interval time.Duration) LockOption {
	return func(c *lockConfig) { c.watchdogInterval = interval }
}

type lockConfig struct {
	ttl              time.Duration
	retryDelay       time.Duration
	retryCount       int
	watchdogInterval time.Duration
}

type redisLockFactory struct {
	client *Client
	prefix string
	logger logging.Logger
}

// NewLockFactory returns a factory whose lock keys are prefix+"lock:"+name.
func NewLockFactory(client *Client, prefix string, log logging.Logger) LockFactory {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &redisLockFactory{client: client, prefix: prefix, logger: log.Named("lock")}
}

func (f *redisLockFactory) NewMutex(name string, opts ...LockOption) DistributedLock {
	cfg := lockConfig{
		ttl:        30 * time.Second,
		retryDelay: 100 * time.Millisecond,
		retryCount: 10,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &redisMutex{
		client: f.client,
		key:    f.prefix + "lock:" + name,
		value:  uuid.NewString(),
		cfg:    cfg,
		logger: f.logger,
	}
}

type redisMutex struct {
	client *Client
	key    string
	value  string
	cfg    lockConfig
	logger logging.Logger
	done   chan struct{}
}

func (m *redisMutex) Lock(ctx context.Context) error {
	for i := 0; i <= m.cfg.retryCount; i++ {
		ok, err := m.TryLock(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if i == m.cfg.retryCount {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.cfg.retryDelay):
		}
	}
	return ErrLockNotAcquired.WithDetail("key=" + m.key)
}

func (m *redisMutex) TryLock(ctx context.Context) (bool, error) {
	ok, err := m.client.SetNX(ctx, m.key, m.value, m.cfg.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to acquire lock")
	}
	if ok && m.cfg.watchdogInterval > 0 {
		m.startWatchdog()
	}
	return ok, nil
}

func (m *redisMutex) Unlock(ctx context.Context) error {
	m.stopWatchdog()
	n, err := m.client.Eval(ctx, unlockScript, []string{m.key}, m.value).Int64()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to release lock")
	}
	if n == 0 {
		return ErrLockNotHeld.WithDetail("key=" + m.key)
	}
	return nil
}

func (m *redisMutex) Extend(ctx context.Context, ttl time.Duration) (bool, error) {
	n, err := m.client.Eval(ctx, extendScript, []string{m.key}, m.value, ttl.Milliseconds()).Int64()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeCacheError, "failed to extend lock")
	}
	if n == 0 {
		return false, ErrLockExtendFailed.WithDetail("key=" + m.key)
	}
	return true, nil
}

func (m *redisMutex) startWatchdog() {
	m.done = make(chan struct{})
	go func(done chan struct{}) {
		ticker := time.NewTicker(m.cfg.watchdogInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), m.cfg.watchdogInterval)
				ok, err := m.Extend(ctx, m.cfg.ttl)
				cancel()
				if err != nil || !ok {
					m.logger.Warn("lock watchdog stopped", logging.String("key", m.key), logging.Err(err))
					return
				}
			}
		}
	}(m.done)
}

func (m *redisMutex) stopWatchdog() {
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}

//Personal.AI order the ending
