package events

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/SscSPs/loot_ledger_app/internal/core/ports"
	"github.com/SscSPs/loot_ledger_app/internal/events/kafka"
	"github.com/SscSPs/loot_ledger_app/internal/events/sqs"
	"github.com/SscSPs/loot_ledger_app/internal/middleware"
	"github.com/SscSPs/loot_ledger_app/internal/platform/config"
)

// LogPublisher writes events to the request logger. It is the default sink.
type LogPublisher struct{}

var _ ports.EventPublisher = LogPublisher{}

func (LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	middleware.GetLoggerFromCtx(ctx).Info("Domain event",
		slog.String("event_id", event.ID),
		slog.String("event_type", string(event.Type)),
		slog.String("actor", event.Actor),
		slog.Time("occurred_at", event.OccurredAt))
	return nil
}

func (LogPublisher) Close() error { return nil }

// NewPublisher returns the publisher selected by cfg.EventSink.
func NewPublisher(ctx context.Context, cfg *config.Config) (ports.EventPublisher, error) {
	switch cfg.EventSink {
	case "", config.SinkLog:
		return LogPublisher{}, nil
	case config.SinkKafka:
		return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case config.SinkSQS:
		return sqs.NewPublisher(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
	default:
		return nil, fmt.Errorf("unsupported event sink %q", cfg.EventSink)
	}
}
