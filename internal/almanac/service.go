package almanac

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zapponejosh/nakshatra-api/internal/database"
)

// =============================================================================
// Prometheus Metrics
// =============================================================================

var (
	// cacheDays counts almanac days served, by whether they came from the
	// store. Labels: result (hit, miss)
	cacheDays = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nakshatra",
		Subsystem: "almanac",
		Name:      "cache_days_total",
		Help:      "Almanac days served from the store (hit) or computed (miss)",
	}, []string{"result"})

	// storeErrors counts failed reads and writes against the store.
	// Labels: op (read, write)
	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nakshatra",
		Subsystem: "almanac",
		Name:      "store_errors_total",
		Help:      "Almanac store operations that failed",
	}, []string{"op"})
)

// Store is the persistence the Service reads through. *database.DB
// satisfies it.
type Store interface {
	GetAlmanacRange(ctx context.Context, start, end string, offsetMinutes int) ([]database.AlmanacDay, error)
	UpsertAlmanacDays(ctx context.Context, days []database.AlmanacDay) error
}

// Service serves almanac ranges, computing and storing days the store does
// not have yet.
type Service struct {
	store   Store
	builder *Builder
	logger  *slog.Logger
	maxDays int
}

// NewService returns a Service over store. A nil store computes every
// request. maxDays caps a single range; zero means no cap.
func NewService(store Store, builder *Builder, logger *slog.Logger, maxDays int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if builder == nil {
		builder = NewBuilder(logger, 0)
	}
	return &Service{
		store:   store,
		builder: builder,
		logger:  logger,
		maxDays: maxDays,
	}
}

// MaxDays is the largest range Range accepts, or zero for no cap.
func (s *Service) MaxDays() int {
	return s.maxDays
}

// Range returns one row per date from start to end inclusive, in date order.
//
// Store failures are logged and the rows computed instead; only invalid
// ranges and cancellation are returned as errors.
func (s *Service) Range(ctx context.Context, start, end time.Time, offsetMinutes int) ([]database.AlmanacDay, error) {
	dates, err := Dates(start, end, s.maxDays)
	if err != nil {
		return nil, err
	}

	cached := s.read(ctx, dates, offsetMinutes)

	var missing []time.Time
	for _, d := range dates {
		if _, ok := cached[d.Format(database.DateLayout)]; !ok {
			missing = append(missing, d)
		}
	}
	cacheDays.WithLabelValues("hit").Add(float64(len(dates) - len(missing)))
	cacheDays.WithLabelValues("miss").Add(float64(len(missing)))

	if len(missing) > 0 {
		built, err := s.builder.Days(ctx, missing, offsetMinutes)
		if err != nil {
			return nil, err
		}
		s.write(ctx, built)
		for _, row := range built {
			cached[row.Date] = row
		}
	}

	rows := make([]database.AlmanacDay, len(dates))
	for i, d := range dates {
		rows[i] = cached[d.Format(database.DateLayout)]
	}
	return rows, nil
}

// Rebuild recomputes the range and overwrites whatever the store holds.
func (s *Service) Rebuild(ctx context.Context, start, end time.Time, offsetMinutes int) (int, error) {
	dates, err := Dates(start, end, s.maxDays)
	if err != nil {
		return 0, err
	}
	rows, err := s.builder.Days(ctx, dates, offsetMinutes)
	if err != nil {
		return 0, err
	}
	if s.store == nil {
		return len(rows), nil
	}
	if err := s.store.UpsertAlmanacDays(ctx, rows); err != nil {
		storeErrors.WithLabelValues("write").Inc()
		return 0, err
	}

	s.logger.Info("almanac rebuilt",
		slog.String("start", rows[0].Date),
		slog.String("end", rows[len(rows)-1].Date),
		slog.Int("utc_offset_minutes", offsetMinutes),
		slog.Int("days", len(rows)),
	)
	return len(rows), nil
}

func (s *Service) read(ctx context.Context, dates []time.Time, offsetMinutes int) map[string]database.AlmanacDay {
	out := make(map[string]database.AlmanacDay, len(dates))
	if s.store == nil {
		return out
	}

	first := dates[0].Format(database.DateLayout)
	last := dates[len(dates)-1].Format(database.DateLayout)
	rows, err := s.store.GetAlmanacRange(ctx, first, last, offsetMinutes)
	if err != nil {
		storeErrors.WithLabelValues("read").Inc()
		s.logger.Warn("almanac store read failed",
			slog.String("start", first),
			slog.String("end", last),
			slog.Any("error", err),
		)
		return out
	}
	for _, row := range rows {
		out[row.Date] = row
	}
	return out
}

func (s *Service) write(ctx context.Context, rows []database.AlmanacDay) {
	if s.store == nil {
		return
	}
	if err := s.store.UpsertAlmanacDays(ctx, rows); err != nil {
		storeErrors.WithLabelValues("write").Inc()
		s.logger.Warn("almanac store write failed",
			slog.Int("days", len(rows)),
			slog.Any("error", err),
		)
	}
}
