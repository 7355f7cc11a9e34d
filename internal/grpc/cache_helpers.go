package grpc

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

const (
	defaultFetchTimeout  = 15 * time.Second
	defaultSetTimeout    = 5 * time.Second
	defaultRefreshWindow = time.Minute
)

// readThrough bundles the state shared by every cached call.
type readThrough struct {
	cache  Cacher
	sf     singleflight.Group
	ttl    time.Duration
	logger *zap.Logger

	// refreshWindow bounds background refreshes to one per key per window.
	refreshWindow time.Duration
	mu            sync.Mutex
	refreshed     map[string]time.Time
}

func newReadThrough(c Cacher, ttl time.Duration, logger *zap.Logger) *readThrough {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &readThrough{
		cache:         c,
		ttl:           ttl,
		logger:        logger,
		refreshWindow: defaultRefreshWindow,
		refreshed:     make(map[string]time.Time),
	}
}

// addTTLJitter spreads expiry by up to ±15s so keys written together do not expire together.
func addTTLJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	jitter := time.Duration(rand.IntN(30)-15) * time.Second
	if ttl+jitter <= 0 {
		return ttl
	}
	return ttl + jitter
}

func (rt *readThrough) claimRefresh(key string) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	now := time.Now()
	if last, ok := rt.refreshed[key]; ok && now.Sub(last) < rt.refreshWindow {
		return false
	}
	rt.refreshed[key] = now
	return true
}

func (rt *readThrough) store(key string, value any, reason string) {
	setCtx, cancel := context.WithTimeout(context.Background(), defaultSetTimeout)
	defer cancel()

	ttl := addTTLJitter(rt.ttl)
	if err := rt.cache.Set(setCtx, key, value, ttl); err != nil {
		rt.logger.Warn("failed to write cache", zap.String("key", key), zap.String("reason", reason), zap.Error(err))
		return
	}
	rt.logger.Debug("cache written", zap.String("key", key), zap.String("reason", reason), zap.Duration("ttl", ttl))
}

func triggerBackgroundRefresh[T any](rt *readThrough, key string, fn FetchFunc[T]) {
	if !rt.claimRefresh(key) {
		return
	}
	go func() {
		time.Sleep(time.Duration(rand.IntN(1000)) * time.Millisecond)

		_, _, _ = rt.sf.Do(key+":refresh", func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), defaultFetchTimeout)
			defer cancel()

			value, err := fn(ctx)
			if err != nil {
				rt.logger.Warn("background refresh failed", zap.String("key", key), zap.Error(err))
				return nil, err
			}
			rt.store(key, value, "refresh")
			return value, nil
		})
	}()
}

// FindAndCache serves key from the cache, falling back to fn on a miss.
// Concurrent misses for one key share a single fn call, and hits schedule
// a background refresh. A nil cache calls fn directly.
func FindAndCache[T any](ctx context.Context, rt *readThrough, key string, fn FetchFunc[T]) (T, error) {
	var zero T
	if rt.cache == nil {
		return fn(ctx)
	}

	var cached T
	err := rt.cache.Get(ctx, key, &cached)
	switch {
	case err == nil:
		rt.logger.Debug("cache hit", zap.String("key", key))
		triggerBackgroundRefresh(rt, key, fn)
		return cached, nil

	case errors.Is(err, redis.Nil):
		rt.logger.Debug("cache miss", zap.String("key", key))

	default:
		rt.logger.Warn("cache get error (treating as miss)", zap.String("key", key), zap.Error(err))
	}

	v, err, shared := rt.sf.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		go rt.store(key, value, "miss")
		return value, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := v.(T)
	if !ok {
		rt.logger.Error("singleflight type mismatch", zap.String("key", key))
		return zero, fmt.Errorf("type mismatch for key %q", key)
	}

	if shared {
		rt.logger.Debug("singleflight shared result", zap.String("key", key))
	}

	return value, nil
}
