// Package shop is the admin and store facade over the catalog, reservation,
// pricing and search packages. It owns the single catalog, the open sessions
// and the lock that serialises every operation on them.
package shop

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/toko-sim/internal/catalog"
	"github.com/noah-isme/toko-sim/internal/events"
	"github.com/noah-isme/toko-sim/internal/obs"
)

// DefaultCurrencySuffix is appended to rendered invoice totals.
const DefaultCurrencySuffix = "T"

// Options configures a Service. Every field is optional.
type Options struct {
	Logger         zerolog.Logger
	Metrics        *obs.ShopMetrics
	Events         *events.Bus
	CurrencySuffix string
	Now            func() time.Time
}

// Service serialises admin and store operations over one catalog.
type Service struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	sessions map[string]*Session

	logger  zerolog.Logger
	metrics *obs.ShopMetrics
	bus     *events.Bus
	suffix  string
	now     func() time.Time
}

// NewService wraps c. A nil catalog starts empty.
func NewService(c *catalog.Catalog, opts Options) *Service {
	if c == nil {
		c = catalog.New()
	}
	suffix := opts.CurrencySuffix
	if suffix == "" {
		suffix = DefaultCurrencySuffix
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		catalog:  c,
		sessions: make(map[string]*Session),
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		bus:      opts.Events,
		suffix:   suffix,
		now:      now,
	}
}

// begin opens a span for op and returns a finisher that records the outcome
// in the span, the operation counter and, for failures, the log.
func (s *Service) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := otel.Tracer("shop.Service").Start(ctx, "ShopService."+op, trace.WithAttributes(attrs...))
	start := time.Now()
	return ctx, func(err error) {
		result := "ok"
		if err != nil {
			result = ClassifyError(err).Code
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
			s.logger.Warn().Err(err).
				Str("operation", op).
				Str("result", result).
				Str("session_id", obs.SessionIDFromContext(ctx)).
				Msg("shop_operation_rejected")
		} else {
			s.logger.Debug().Str("operation", op).Msg("shop_operation")
		}
		span.SetAttributes(
			attribute.String("shop.result", result),
			attribute.Float64("shop.duration_ms", obs.DurationMillis(time.Since(start))),
		)
		s.metrics.Observe(op, result)
		span.End()
	}
}

// emit records a domain event. Event failures never fail the operation.
func (s *Service) emit(ctx context.Context, topic, aggregate string, payload any) {
	if s.bus == nil {
		return
	}
	if _, err := s.bus.Emit(ctx, topic, aggregate, payload); err != nil {
		s.logger.Error().Err(err).Str("topic", topic).Msg("emit domain event")
	}
}

// session looks up an open session. Callers hold s.mu.
func (s *Service) session(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// reservedBy returns the id of an open session holding product, if any.
// Callers hold s.mu.
func (s *Service) reservedBy(product string) (string, bool) {
	for id, sess := range s.sessions {
		if sess.list.Contains(product) {
			return id, true
		}
	}
	return "", false
}

func (s *Service) reservedUnits() int {
	total := 0
	for _, sess := range s.sessions {
		for _, entry := range sess.list.Entries() {
			total += entry.Quantity
		}
	}
	return total
}

func (s *Service) syncGauges() {
	if s.metrics == nil {
		return
	}
	s.metrics.OpenSessions.Set(float64(len(s.sessions)))
	s.metrics.ReservedUnits.Set(float64(s.reservedUnits()))
}

func newSessionID() string {
	return uuid.NewString()
}
