// Package dashboard aggregates the admin statistics. Unbounded results are
// cached; any write to users, services or appointments invalidates them.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/barberia-api/internal/cache"
	"github.com/BruksfildServices01/barberia-api/internal/domain/reporting"
	"github.com/BruksfildServices01/barberia-api/internal/logger"
	"github.com/BruksfildServices01/barberia-api/internal/metrics"
)

const (
	keySummary   = "stats:summary"
	keyUsers     = "stats:total_usuarios"
	keyServices  = "stats:total_servicios"
	keyAppts     = "stats:total_citas"
	keyByStatus  = "stats:citas_por_estado"
	keyByDay     = "stats:citas_por_dia"
	keyByMonth   = "stats:citas_por_mes"
	dayLayout    = "2006-01-02"
	monthLayout  = "2006-01"
	defaultTTL   = time.Minute
	cacheTimeout = 200 * time.Millisecond
)

var allKeys = []string{keySummary, keyUsers, keyServices, keyAppts, keyByStatus, keyByDay, keyByMonth}

type Summary struct {
	TotalUsers        int64                   `json:"total_usuarios"`
	TotalAppointments int64                   `json:"total_citas"`
	TotalServices     int64                   `json:"total_servicios"`
	ByStatus          []reporting.StatusCount `json:"citas_por_estado"`
}

type Stats struct {
	repo    reporting.Repository
	cache   cache.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewStats wires the aggregator. A nil cache disables caching.
func NewStats(repo reporting.Repository, c cache.Cache, ttl time.Duration, m *metrics.Metrics) *Stats {
	if c == nil {
		c = cache.Noop{}
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Stats{repo: repo, cache: c, ttl: ttl, metrics: m}
}

// ======================================================
// Totals
// ======================================================

func (s *Stats) Summary(ctx context.Context) (*Summary, error) {
	return cached(ctx, s, keySummary, func() (*Summary, error) {
		var (
			out Summary
			err error
		)
		if out.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
			return nil, err
		}
		if out.TotalAppointments, err = s.repo.CountAppointments(ctx); err != nil {
			return nil, err
		}
		if out.TotalServices, err = s.repo.CountServices(ctx); err != nil {
			return nil, err
		}
		if out.ByStatus, err = s.repo.CountAppointmentsByStatus(ctx); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (s *Stats) TotalUsers(ctx context.Context) (int64, error) {
	return cached(ctx, s, keyUsers, func() (int64, error) { return s.repo.CountUsers(ctx) })
}

func (s *Stats) TotalServices(ctx context.Context) (int64, error) {
	return cached(ctx, s, keyServices, func() (int64, error) { return s.repo.CountServices(ctx) })
}

func (s *Stats) TotalAppointments(ctx context.Context) (int64, error) {
	return cached(ctx, s, keyAppts, func() (int64, error) { return s.repo.CountAppointments(ctx) })
}

func (s *Stats) ByStatus(ctx context.Context) ([]reporting.StatusCount, error) {
	return cached(ctx, s, keyByStatus, func() ([]reporting.StatusCount, error) {
		return s.repo.CountAppointmentsByStatus(ctx)
	})
}

// ======================================================
// Time series
// ======================================================

// ByDay counts appointments per UTC day, oldest first. Only the unbounded
// series is cached.
func (s *Stats) ByDay(ctx context.Context, w reporting.Window) ([]reporting.PeriodCount, error) {
	return s.series(ctx, w, keyByDay, dayLayout)
}

func (s *Stats) ByMonth(ctx context.Context, w reporting.Window) ([]reporting.PeriodCount, error) {
	return s.series(ctx, w, keyByMonth, monthLayout)
}

func (s *Stats) series(ctx context.Context, w reporting.Window, key, layout string) ([]reporting.PeriodCount, error) {
	load := func() ([]reporting.PeriodCount, error) {
		times, err := s.repo.AppointmentTimes(ctx, w)
		if err != nil {
			return nil, err
		}
		return bucket(times, layout), nil
	}

	if w.From != nil || w.To != nil {
		return load()
	}
	return cached(ctx, s, key, load)
}

func bucket(times []time.Time, layout string) []reporting.PeriodCount {
	counts := make(map[string]int64)
	for _, t := range times {
		counts[t.UTC().Format(layout)]++
	}

	out := make([]reporting.PeriodCount, 0, len(counts))
	for period, total := range counts {
		out = append(out, reporting.PeriodCount{Period: period, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// ======================================================
// Cache
// ======================================================

// Invalidate drops every cached aggregate. Errors are logged only.
func (s *Stats) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()

	if err := s.cache.Delete(ctx, allKeys...); err != nil {
		logger.WithContext(ctx).Warn("stats cache invalidation failed", "error", err)
	}
}

// cached serves key from the cache or loads and stores it. The cache is
// best effort: its failures fall through to load.
func cached[T any](ctx context.Context, s *Stats, key string, load func() (T, error)) (T, error) {
	var hit T

	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	ok, err := s.cache.Get(cctx, key, &hit)
	cancel()
	if err != nil {
		logger.WithContext(ctx).Warn("stats cache read failed", "key", key, "error", err)
	}
	s.metrics.RecordCacheLookup(ok)
	if ok {
		return hit, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	cctx, cancel = context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := s.cache.Set(cctx, key, v, s.ttl); err != nil {
		logger.WithContext(ctx).Warn("stats cache write failed", "key", key, "error", err)
	}
	return v, nil
}
