package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/SscSPs/loot_ledger_app/internal/core/ports"
	"github.com/SscSPs/loot_ledger_app/internal/middleware"
	"github.com/google/uuid"
)

const (
	defaultListLimit      = 50
	maxListLimit          = 500
	defaultPublishTimeout = 3 * time.Second
)

// BaseService provides common functionality for all services
type BaseService struct {
	Clock          func() time.Time
	Events         ports.EventPublisher
	PublishTimeout time.Duration
}

// ServiceOption is a functional option shared by all services
type ServiceOption func(*BaseService)

// WithClock overrides the time source, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

// WithEventPublisher sets where post-commit domain events are sent.
func WithEventPublisher(p ports.EventPublisher) ServiceOption {
	return func(b *BaseService) {
		b.Events = p
	}
}

// WithPublishTimeout bounds how long one event publish may take.
func WithPublishTimeout(d time.Duration) ServiceOption {
	return func(b *BaseService) {
		b.PublishTimeout = d
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	b := BaseService{PublishTimeout: defaultPublishTimeout}
	for _, opt := range options {
		opt(&b)
	}
	return b
}

// Now returns the current time in UTC
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Publish sends a domain event. The ledger is the source of truth, so a failed
// publish is logged and otherwise ignored.
func (s *BaseService) Publish(ctx context.Context, eventType domain.EventType, actor domain.Actor, payload any) {
	if s.Events == nil {
		return
	}
	event := domain.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: s.Now(),
		Actor:      actor.UserID,
		Payload:    payload,
	}
	publishCtx, cancel := context.WithTimeout(ctx, s.PublishTimeout)
	defer cancel()
	if err := s.Events.Publish(publishCtx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish domain event",
			slog.String("event_type", string(eventType)),
			slog.String("event_id", event.ID))
	}
}

// uniqueSortedIDs removes duplicates and sorts ascending, which is also the
// order rows are locked in.
func uniqueSortedIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
