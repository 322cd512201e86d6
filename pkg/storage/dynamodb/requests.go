package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

const statusCreatedAtIndex = "status-created_at-index"

// CreateRequest stores a new request.
func (s *Store) CreateRequest(ctx context.Context, r *models.Request) error {
	item, err := attributevalue.MarshalMap(toRequestItem(r))
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Requests),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put request: %w", err)
	}
	return nil
}

// GetRequest retrieves a request by id.
func (s *Store) GetRequest(ctx context.Context, id string) (*models.Request, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Requests),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, storage.ErrNotFound
	}
	var item requestItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	r := item.toModel()
	return &r, nil
}

// ListPendingRequests retrieves PENDING requests created before cutoff.
func (s *Store) ListPendingRequests(ctx context.Context, cutoff time.Time) ([]models.Request, error) {
	cutoffAV, err := attributevalue.Marshal(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff: %w", err)
	}
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Requests),
		IndexName:              aws.String(statusCreatedAtIndex),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":cutoff": cutoffAV,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}

	var rows []requestItem
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requests: %w", err)
	}
	requests := make([]models.Request, len(rows))
	for i, row := range rows {
		requests[i] = row.toModel()
	}
	return requests, nil
}

// DecideRequest flips a PENDING request to its final status and, for an
// approval, appends the ledger record in the same transaction.
func (s *Store) DecideRequest(ctx context.Context, r *models.Request, tx *models.Transaction) error {
	decidedAt := time.Now()
	if r.DecidedAt != nil {
		decidedAt = *r.DecidedAt
	}
	decidedAV, err := attributevalue.Marshal(decidedAt)
	if err != nil {
		return fmt.Errorf("failed to marshal decided_at: %w", err)
	}

	update := types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.Requests),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: r.Id},
			},
			UpdateExpression:    aws.String("SET #status = :new_status, decided_at = :decided_at, transaction_id = :tx_id"),
			ConditionExpression: aws.String("#status = :pending"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":new_status": &types.AttributeValueMemberS{Value: string(r.Status)},
				":pending":    &types.AttributeValueMemberS{Value: string(models.PENDING)},
				":decided_at": decidedAV,
				":tx_id":      &types.AttributeValueMemberS{Value: r.TransactionId},
			},
		},
	}
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{update},
	}

	if tx != nil {
		txAV, err := attributevalue.MarshalMap(toLedgerItem(tx))
		if err != nil {
			return fmt.Errorf("failed to marshal transaction: %w", err)
		}
		input.TransactItems = append(input.TransactItems, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Ledger),
				Item:                txAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		})
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 {
			if code := tce.CancellationReasons[0].Code; code != nil && *code == "ConditionalCheckFailed" {
				return storage.ErrRequestNotPending
			}
			if len(tce.CancellationReasons) > 1 {
				if code := tce.CancellationReasons[1].Code; code != nil && *code == "ConditionalCheckFailed" {
					return storage.ErrDuplicateEntry
				}
			}
		}
		return fmt.Errorf("failed to decide request %s: %w", r.Id, err)
	}

	r.DecidedAt = &decidedAt
	return nil
}
