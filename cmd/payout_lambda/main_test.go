package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	events []models.PayoutEvent
	err    error
}

func (p *recordingProcessor) Process(ctx context.Context, ev models.PayoutEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func TestHandleRequest(t *testing.T) {
	body := `{"order_id":"o1","bill_number":"B-1","stage":"Cutting","worker_id":"W","price":"1000","quality":"VIP"}`

	t.Run("Success", func(t *testing.T) {
		p := &recordingProcessor{}
		processor = p

		err := HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{{MessageId: "m1", Body: body}}})
		require.NoError(t, err)
		require.Len(t, p.events, 1)
		assert.Equal(t, "o1#Cutting#W", p.events[0].Key())
	})

	t.Run("Bad Body", func(t *testing.T) {
		p := &recordingProcessor{}
		processor = p

		err := HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{{MessageId: "m1", Body: "nope"}}})
		assert.Error(t, err)
		assert.Empty(t, p.events)
	})

	t.Run("Processor Error", func(t *testing.T) {
		processor = &recordingProcessor{err: errors.New("dynamo down")}

		err := HandleRequest(context.Background(), events.SQSEvent{Records: []events.SQSMessage{{MessageId: "m1", Body: body}}})
		assert.Error(t, err)
	})
}
