package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

const (
	ownerCreatedAtIndex  = "owner_id-created_at-index"
	recentCreatedAtIndex = "gsi1pk-created_at-index"
)

// AppendTransaction writes a ledger record. The id must not exist yet.
func (s *Store) AppendTransaction(ctx context.Context, tx *models.Transaction) error {
	item, err := attributevalue.MarshalMap(toLedgerItem(tx))
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Ledger),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return storage.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to put transaction: %w", err)
	}

	return nil
}

// ListTransactionsByOwner retrieves every transaction owned by a worker, oldest first.
func (s *Store) ListTransactionsByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Ledger),
		IndexName:              aws.String(ownerCreatedAtIndex),
		KeyConditionExpression: aws.String("owner_id = :owner_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner_id": &types.AttributeValueMemberS{Value: ownerID},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for %s: %w", ownerID, err)
	}
	return unmarshalLedger(items)
}

// ListRecentTransactions retrieves the newest transactions across all owners.
func (s *Store) ListRecentTransactions(ctx context.Context, limit int32) ([]models.Transaction, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Ledger),
		IndexName:              aws.String(recentCreatedAtIndex),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: recentLedgerPK},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	return unmarshalLedger(out.Items)
}

func unmarshalLedger(items []map[string]types.AttributeValue) ([]models.Transaction, error) {
	var rows []ledgerItem
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}
	txs := make([]models.Transaction, len(rows))
	for i, r := range rows {
		txs[i] = r.toModel()
	}
	return txs, nil
}

// queryAll follows LastEvaluatedKey until the query is exhausted.
func (s *Store) queryAll(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		out, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}
