package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
)

// SQSAPI is the part of the SQS client the scheduler needs.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
	// DelaySeconds holds messages back before the payout worker sees them.
	DelaySeconds int32
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string, delaySeconds int32) *SQSScheduler {
	return &SQSScheduler{
		Client:       client,
		QueueURL:     queueURL,
		DelaySeconds: delaySeconds,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

// SchedulePayout sends the event to the payout queue.
func (s *SQSScheduler) SchedulePayout(ctx context.Context, ev *models.PayoutEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal payout event for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(s.QueueURL),
		MessageBody:  aws.String(string(body)),
		DelaySeconds: s.DelaySeconds,
		MessageAttributes: map[string]types.MessageAttributeValue{
			"order_id": {DataType: aws.String("String"), StringValue: aws.String(ev.OrderId)},
			"stage":    {DataType: aws.String("String"), StringValue: aws.String(string(ev.Stage))},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
