package stats

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"invoicehub/internal/apperr"
	"invoicehub/internal/auth"
	"invoicehub/internal/cache"
	"invoicehub/internal/models"
	"invoicehub/internal/pkg/clock"
)

// cacheKey stores the serialized report.
const cacheKey = "invoices:stats:report"

// Lister is the slice of the record store the aggregator needs.
type Lister interface {
	List() ([]models.Invoice, error)
}

// Service gates stats requests on identity and serves reports, caching
// them for a short TTL. The cache is dropped on every invoice mutation so a
// client never reads a report staler than its own acknowledged write.
type Service struct {
	store    Lister
	cache    cache.Store
	cacheTTL time.Duration
	clock    clock.Clock
	logger   *zap.Logger
}

func NewService(store Lister, reportCache cache.Store, cacheTTL time.Duration, clk clock.Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		cache:    reportCache,
		cacheTTL: cacheTTL,
		clock:    clk,
		logger:   logger,
	}
}

// ComputeStats returns the aggregate report for a verified identity.
func (s *Service) ComputeStats(ctx context.Context, identity *auth.Identity) (*Report, error) {
	if !identity.ValidAt(s.clock.Now()) {
		return nil, apperr.ErrUnauthorized
	}
	return s.Report(ctx)
}

// Report computes (or serves from cache) the aggregate report without an
// authorization gate. Internal consumers such as the daily summary job use
// it directly.
func (s *Service) Report(ctx context.Context) (*Report, error) {
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			var cached Report
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	invoices, err := s.store.List()
	if err != nil {
		return nil, apperr.Store("list", err)
	}
	report := Aggregate(invoices)

	if s.cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
				s.logger.Warn("Failed to cache stats report", zap.Error(err))
			}
		}
	}
	return report, nil
}

// Invalidate drops the cached report. Called after every invoice mutation.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		s.logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}
}
