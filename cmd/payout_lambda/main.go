package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/tailorshop-ledger/pkg/app"
	"github.com/chris/tailorshop-ledger/pkg/config"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/payout"
	"github.com/chris/tailorshop-ledger/pkg/scheduler"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
)

var processor scheduler.Processor

// setup runs once per cold start.
func setup() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	c, err := app.OpenCache(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to cache: %v", err)
	}
	core := app.NewCore(store, c)

	var publisher websockets.Publisher
	if cfg.WebSocketEndpoint != "" {
		publisher, err = websockets.NewPublisher(ctx, store, store, cfg.WebSocketEndpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
	}

	processor = payout.New(store, core.Distributor, publisher)
}

// HandleRequest processes queued handovers and pays them out.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var ev models.PayoutEvent
		if err := json.Unmarshal([]byte(message.Body), &ev); err != nil {
			log.Printf("ERROR: failed to unmarshal payout event from SQS message %s: %v", message.MessageId, err)
			return err
		}

		log.Printf("Paying out %s", ev.Key())

		// A returned error makes SQS redeliver. Handovers already paid are
		// skipped by the payout lock.
		if err := processor.Process(ctx, ev); err != nil {
			log.Printf("ERROR: failed to pay out %s: %v", ev.Key(), err)
			return err
		}

		log.Printf("Successfully paid out %s", ev.Key())
	}

	return nil
}

func main() {
	setup()
	lambda.Start(HandleRequest)
}
