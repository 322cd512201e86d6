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
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

// AcquirePayoutLock claims a handover key with a conditional put.
func (s *Store) AcquirePayoutLock(ctx context.Context, key, orderID string) error {
	now := time.Now()
	item, err := attributevalue.MarshalMap(storage.PayoutLock{
		Key:       key,
		OrderId:   orderID,
		Status:    storage.WORKING,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payout lock: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.PayoutLocks),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#key)"),
		ExpressionAttributeNames: map[string]string{
			"#key": "key",
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return storage.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire payout lock %s: %w", key, err)
	}
	return nil
}

// ReleasePayoutLock deletes a claim that is still WORKING.
func (s *Store) ReleasePayoutLock(ctx context.Context, key string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.Tables.PayoutLocks),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
		ConditionExpression: aws.String("#status = :working"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":working": &types.AttributeValueMemberS{Value: string(storage.WORKING)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil
		}
		return fmt.Errorf("failed to release payout lock %s: %w", key, err)
	}
	return nil
}

// CompletePayoutLock marks a claimed key as DONE.
func (s *Store) CompletePayoutLock(ctx context.Context, key string) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.PayoutLocks),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
		UpdateExpression: aws.String("SET #status = :done, updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":done": &types.AttributeValueMemberS{Value: string(storage.DONE)},
			":now":  nowAV,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to complete payout lock %s: %w", key, err)
	}
	return nil
}

// ListStuckPayoutLocks retrieves WORKING locks claimed before cutoff.
func (s *Store) ListStuckPayoutLocks(ctx context.Context, cutoff time.Time) ([]storage.PayoutLock, error) {
	cutoffAV, err := attributevalue.Marshal(cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cutoff: %w", err)
	}
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.PayoutLocks),
		IndexName:              aws.String(statusCreatedAtIndex),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(storage.WORKING)},
			":cutoff": cutoffAV,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query stuck payout locks: %w", err)
	}

	var locks []storage.PayoutLock
	if err := attributevalue.UnmarshalListOfMaps(items, &locks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payout locks: %w", err)
	}
	return locks, nil
}
