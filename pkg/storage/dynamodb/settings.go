package dynamodb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
)

const settingsID = "global"

// settingsItem keeps the settings singleton as one JSON document.
type settingsItem struct {
	Id       string `dynamodbav:"id"`
	Document string `dynamodbav:"document"`
}

// GetSettings reads the settings singleton.
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Settings),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: settingsID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if out.Item == nil {
		return nil, storage.ErrNotFound
	}

	var item settingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings item: %w", err)
	}
	var settings models.Settings
	if err := json.Unmarshal([]byte(item.Document), &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings document: %w", err)
	}
	return &settings, nil
}

// PutSettings replaces the settings singleton.
func (s *Store) PutSettings(ctx context.Context, settings *models.Settings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	item, err := attributevalue.MarshalMap(settingsItem{Id: settingsID, Document: string(doc)})
	if err != nil {
		return fmt.Errorf("failed to marshal settings item: %w", err)
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Settings),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put settings: %w", err)
	}
	return nil
}

// ListRates scans the rate table. It is small and read through a cache.
func (s *Store) ListRates(ctx context.Context) ([]models.Rate, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.Tables.Rates)}
	var rates []models.Rate
	for {
		out, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rates: %w", err)
		}
		var rows []rateItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rates: %w", err)
		}
		for _, r := range rows {
			rates = append(rates, r.toModel())
		}
		if len(out.LastEvaluatedKey) == 0 {
			return rates, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// PutRate creates or replaces a rate.
func (s *Store) PutRate(ctx context.Context, r *models.Rate) error {
	item, err := attributevalue.MarshalMap(toRateItem(r))
	if err != nil {
		return fmt.Errorf("failed to marshal rate: %w", err)
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.Tables.Rates),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put rate: %w", err)
	}
	return nil
}
