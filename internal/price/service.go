package price

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fetcher resolves a token's USD unit price at a unix second from the
// remote oracle.
type Fetcher interface {
	HistoricalPrice(ctx context.Context, token string, unixTime int64) (float64, error)
}

// Service memoizes price lookups in a token -> timestamp -> price map backed
// by a durable store. A remote failure resolves to price zero and the zero
// is remembered, so a failed key is not asked again within the run.
type Service struct {
	fetcher Fetcher
	store   Store
	logger  *zap.Logger
	now     func() time.Time

	mu     sync.Mutex
	prices map[string]map[string]float64
}

// NewService builds a Service seeded from the durable store.
func NewService(ctx context.Context, fetcher Fetcher, store Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	prices := make(map[string]map[string]float64)
	if store != nil {
		loaded, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load price cache: %w", err)
		}
		if loaded != nil {
			prices = loaded
		}
	}

	return &Service{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		now:     time.Now,
		prices:  prices,
	}, nil
}

// HistoricalPrice returns the cached price for (token, unixTime) or resolves
// it remotely. Only context cancellation is returned as an error; every
// other failure degrades to zero.
func (s *Service) HistoricalPrice(ctx context.Context, token string, unixTime int64) (float64, error) {
	key := strconv.FormatInt(unixTime, 10)

	s.mu.Lock()
	cached, ok := s.prices[token][key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	value, err := s.fetcher.HistoricalPrice(ctx, token, unixTime)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		s.logger.Debug("price unavailable", zap.String("token", token), zap.String("ts", key), zap.Error(err))
		value = 0
	}

	s.remember(ctx, token, key, value)
	return value, nil
}

// CurrentPrice returns the token's price at the clock's current second. The
// lookup shares the cache with historical lookups.
func (s *Service) CurrentPrice(ctx context.Context, token string) (float64, error) {
	return s.HistoricalPrice(ctx, token, s.now().Unix())
}

// remember inserts a resolved price and rewrites the durable snapshot. The
// insert and the write happen under one lock so concurrent misses cannot
// corrupt the persisted document.
func (s *Service) remember(ctx context.Context, token, key string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.prices[token]
	if bucket == nil {
		bucket = make(map[string]float64)
		s.prices[token] = bucket
	}
	bucket[key] = value

	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.prices); err != nil {
		s.logger.Warn("persist price cache", zap.Error(err))
	}
}
