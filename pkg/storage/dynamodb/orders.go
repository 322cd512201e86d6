package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

const (
	holderIndex = "assigned_worker_id-index"
	billIndex   = "bill_number-index"
)

// GetOrder retrieves an order by id.
func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Orders),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, storage.ErrNotFound
	}

	var item orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	o := item.toModel()
	return &o, nil
}

// CreateOrder stores a new order.
func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	item, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Orders),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to put order: %w", err)
	}
	return nil
}

// UpdateOrder replaces the order when the stored version still matches.
func (s *Store) UpdateOrder(ctx context.Context, o *models.Order) error {
	expected := o.Version
	next := *o
	next.Version = expected + 1

	item, err := attributevalue.MarshalMap(toOrderItem(&next))
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Orders),
		Item:                item,
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to update order %s: %w", o.Id, err)
	}

	o.Version = next.Version
	return nil
}

// ListOrdersByHolder retrieves the orders currently assigned to workerID.
func (s *Store) ListOrdersByHolder(ctx context.Context, workerID string) ([]models.Order, error) {
	return s.queryOrders(ctx, holderIndex, "assigned_worker_id", workerID)
}

// ListOrdersByBill retrieves the orders booked under billNumber.
func (s *Store) ListOrdersByBill(ctx context.Context, billNumber string) ([]models.Order, error) {
	return s.queryOrders(ctx, billIndex, "bill_number", billNumber)
}

func (s *Store) queryOrders(ctx context.Context, index, attr, value string) ([]models.Order, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Orders),
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
		return nil, fmt.Errorf("failed to query orders by %s: %w", attr, err)
	}

	var rows []orderItem
	if err := attributevalue.UnmarshalListOfMaps(items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
	}
	orders := make([]models.Order, len(rows))
	for i, r := range rows {
		orders[i] = r.toModel()
	}
	return orders, nil
}
