package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSQS struct {
	mock.Mock
}

func (m *mockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sqs.SendMessageOutput)
	return out, args.Error(1)
}

type recordingProcessor struct {
	events []models.PayoutEvent
	err    error
}

func (p *recordingProcessor) Process(ctx context.Context, ev models.PayoutEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func payoutEvent() *models.PayoutEvent {
	return &models.PayoutEvent{
		OrderId:  "o1",
		Stage:    models.StageCutting,
		WorkerId: "w1",
		Price:    decimal.RequireFromString("1000.5"),
	}
}

func TestSQSSchedulePayout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := new(mockSQS)
		s := NewSQSScheduler(client, "https://queue", 5)

		client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
			var ev models.PayoutEvent
			if err := json.Unmarshal([]byte(*in.MessageBody), &ev); err != nil {
				return false
			}
			return *in.QueueUrl == "https://queue" &&
				in.DelaySeconds == 5 &&
				ev.Price.String() == "1000.5" &&
				*in.MessageAttributes["order_id"].StringValue == "o1"
		})).Return(&sqs.SendMessageOutput{}, nil)

		require.NoError(t, s.SchedulePayout(context.Background(), payoutEvent()))
		client.AssertExpectations(t)
	})

	t.Run("Send Fails", func(t *testing.T) {
		client := new(mockSQS)
		s := NewSQSScheduler(client, "https://queue", 0)

		client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("sqs down"))

		err := s.SchedulePayout(context.Background(), payoutEvent())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send message to SQS")
	})
}

func TestInlineScheduler(t *testing.T) {
	p := &recordingProcessor{}
	s := NewInlineScheduler(p)

	require.NoError(t, s.SchedulePayout(context.Background(), payoutEvent()))
	assert.Len(t, p.events, 1)

	p.err = errors.New("cascade failed")
	assert.Error(t, s.SchedulePayout(context.Background(), payoutEvent()))
}
