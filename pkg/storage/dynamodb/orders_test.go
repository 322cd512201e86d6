package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/chris/tailorshop-ledger/pkg/storage/dynamodb/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrder() *models.Order {
	return &models.Order{
		Id:               "o1",
		BillNumber:       "B-100",
		GarmentType:      "Shirt",
		Price:            decimal.NewFromInt(1000),
		Quality:          models.QualityRegular,
		Stage:            models.StageCutting,
		AssignedWorkerId: "w1",
		SecurityCode:     "1234",
		Version:          3,
	}
}

func TestGetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Orders: "orders"}}

		av, err := attributevalue.MarshalMap(toOrderItem(testOrder()))
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: av}, nil)

		o, err := store.GetOrder(context.Background(), "o1")

		require.NoError(t, err)
		assert.Equal(t, "B-100", o.BillNumber)
		assert.Equal(t, "1234", o.SecurityCode)
		assert.True(t, decimal.NewFromInt(1000).Equal(o.Price))
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Orders: "orders"}}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetOrder(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}

func TestUpdateOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Orders: "orders"}}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
			expected := in.ExpressionAttributeValues[":version"].(*types.AttributeValueMemberN)
			stored := in.Item["version"].(*types.AttributeValueMemberN)
			return expected.Value == "3" && stored.Value == "4"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		o := testOrder()
		err := store.UpdateOrder(context.Background(), o)

		require.NoError(t, err)
		assert.Equal(t, int64(4), o.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Orders: "orders"}}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		o := testOrder()
		err := store.UpdateOrder(context.Background(), o)

		assert.ErrorIs(t, err, storage.ErrConflict)
		assert.Equal(t, int64(3), o.Version)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Orders: "orders"}}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))

		err := store.UpdateOrder(context.Background(), testOrder())

		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrConflict)
		mockClient.AssertExpectations(t)
	})
}

func TestGetWorker(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Workers: "workers"}}

		av, err := attributevalue.MarshalMap(models.Worker{Id: "w1", Role: models.RoleCutting, UplineId: "w0"})
		require.NoError(t, err)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: av}, nil)

		w, err := store.GetWorker(context.Background(), "w1")

		require.NoError(t, err)
		assert.Equal(t, "w0", w.UplineId)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, Tables: Tables{Workers: "workers"}}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetWorker(context.Background(), "w1")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestListOrdersByBill(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, Tables: Tables{Orders: "orders"}}

	av, err := attributevalue.MarshalMap(toOrderItem(testOrder()))
	require.NoError(t, err)
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		v, ok := in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS)
		return *in.IndexName == billIndex && in.ExpressionAttributeNames["#k"] == "bill_number" && ok && v.Value == "B-100"
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{av}}, nil)

	orders, err := store.ListOrdersByBill(context.Background(), "B-100")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].Id)
	assert.Equal(t, "1000", orders[0].Price.String())
	mockClient.AssertExpectations(t)
}

func TestListMagicDirects(t *testing.T) {
	mockClient := new(mocks.DynamoDBAPI)
	store := &Store{Client: mockClient, Tables: Tables{Workers: "workers"}}

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.IndexName == magicUplineIndex && in.ExpressionAttributeNames["#k"] == "magic_upline_id"
	})).Return(nil, errors.New("db error"))

	_, err := store.ListMagicDirects(context.Background(), "m1")

	assert.ErrorContains(t, err, "failed to query workers by magic_upline_id")
	mockClient.AssertExpectations(t)
}
