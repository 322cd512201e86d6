package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

const (
	uplineIndex      = "upline_id-index"
	magicUplineIndex = "magic_upline_id-index"
	roleIndex        = "role-index"
)

// GetWorker retrieves a worker by id.
func (s *Store) GetWorker(ctx context.Context, id string) (*models.Worker, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Workers),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get worker %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, storage.ErrNotFound
	}

	var w models.Worker
	if err := attributevalue.UnmarshalMap(out.Item, &w); err != nil {
		return nil, fmt.Errorf("failed to unmarshal worker: %w", err)
	}
	return &w, nil
}

// ListDirects retrieves the workers sponsored by sponsorID.
func (s *Store) ListDirects(ctx context.Context, sponsorID string) ([]models.Worker, error) {
	return s.queryWorkers(ctx, uplineIndex, "upline_id", sponsorID)
}

// ListMagicDirects retrieves the workers whose magic upline is sponsorID.
func (s *Store) ListMagicDirects(ctx context.Context, sponsorID string) ([]models.Worker, error) {
	return s.queryWorkers(ctx, magicUplineIndex, "magic_upline_id", sponsorID)
}

// PutWorker creates or replaces a worker.
func (s *Store) PutWorker(ctx context.Context, w *models.Worker) error {
	item, err := attributevalue.MarshalMap(w)
	if err != nil {
		return fmt.Errorf("failed to marshal worker: %w", err)
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Workers),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put worker: %w", err)
	}
	return nil
}

// ListWorkersByRole retrieves every worker holding role.
func (s *Store) ListWorkersByRole(ctx context.Context, role models.Role) ([]models.Worker, error) {
	return s.queryWorkers(ctx, roleIndex, "role", string(role))
}

func (s *Store) queryWorkers(ctx context.Context, index, attr, value string) ([]models.Worker, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Workers),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query workers by %s: %w", attr, err)
	}

	var workers []models.Worker
	if err := attributevalue.UnmarshalListOfMaps(items, &workers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workers: %w", err)
	}
	return workers, nil
}
