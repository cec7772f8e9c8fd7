package sqs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/SscSPs/loot_ledger_app/internal/core/ports"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// sendMessageAPI is the part of *sqs.Client the publisher uses.
type sendMessageAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Publisher sends domain events to an SQS queue.
type Publisher struct {
	client   sendMessageAPI
	queueURL string
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher loads the default AWS configuration for region and returns a
// publisher for queueURL.
func NewPublisher(ctx context.Context, region, queueURL string) (*Publisher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Publisher{client: sqs.NewFromConfig(cfg), queueURL: queueURL}, nil
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s for SQS: %w", event.ID, err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(string(event.Type)),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send event %s to SQS: %w", event.ID, err)
	}
	return nil
}

// Close is a no-op; the SQS client holds no connections that need releasing.
func (p *Publisher) Close() error {
	return nil
}
