package dynamodb

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/shopspring/decimal"
)

// number stores a decimal as an exact DynamoDB number attribute.
type number struct {
	decimal.Decimal
}

var (
	_ attributevalue.Marshaler   = number{}
	_ attributevalue.Unmarshaler = (*number)(nil)
)

func (n number) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: n.String()}, nil
}

func (n *number) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	var raw string
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		raw = v.Value
	case *types.AttributeValueMemberS:
		raw = v.Value
	case *types.AttributeValueMemberNULL:
		n.Decimal = decimal.Zero
		return nil
	default:
		return fmt.Errorf("unexpected attribute type %T for number", av)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("failed to parse number %q: %w", raw, err)
	}
	n.Decimal = d
	return nil
}

// recentLedgerPK partitions every ledger record into one GSI for the global feed.
const recentLedgerPK = "LEDGER_ENTRIES"

type ledgerItem struct {
	Id              string            `dynamodbav:"id"`
	OwnerId         string            `dynamodbav:"owner_id"`
	Amount          number            `dynamodbav:"amount"`
	Direction       models.Direction  `dynamodbav:"direction"`
	WalletType      models.WalletType `dynamodbav:"wallet_type"`
	Description     string            `dynamodbav:"description"`
	RelatedOrderId  string            `dynamodbav:"related_order_id,omitempty"`
	RelatedWorkerId string            `dynamodbav:"related_worker_id,omitempty"`
	Level           string            `dynamodbav:"level,omitempty"`
	CreatedAt       time.Time         `dynamodbav:"created_at"`
	GSI1PK          string            `dynamodbav:"gsi1pk"`
}

func toLedgerItem(tx *models.Transaction) ledgerItem {
	return ledgerItem{
		Id:              tx.Id,
		OwnerId:         tx.OwnerId,
		Amount:          number{tx.Amount},
		Direction:       tx.Direction,
		WalletType:      tx.WalletType,
		Description:     tx.Description,
		RelatedOrderId:  tx.RelatedOrderId,
		RelatedWorkerId: tx.RelatedWorkerId,
		Level:           tx.Level,
		CreatedAt:       tx.CreatedAt,
		GSI1PK:          recentLedgerPK,
	}
}

func (i ledgerItem) toModel() models.Transaction {
	return models.Transaction{
		Id:              i.Id,
		OwnerId:         i.OwnerId,
		Amount:          i.Amount.Decimal,
		Direction:       i.Direction,
		WalletType:      i.WalletType,
		Description:     i.Description,
		RelatedOrderId:  i.RelatedOrderId,
		RelatedWorkerId: i.RelatedWorkerId,
		Level:           i.Level,
		CreatedAt:       i.CreatedAt,
	}
}

type orderItem struct {
	Id               string                 `dynamodbav:"id"`
	BillNumber       string                 `dynamodbav:"bill_number"`
	CustomerId       string                 `dynamodbav:"customer_id"`
	CustomerName     string                 `dynamodbav:"customer_name"`
	GarmentType      string                 `dynamodbav:"garment_type"`
	Category         models.GarmentCategory `dynamodbav:"category"`
	Price            number                 `dynamodbav:"price"`
	Quality          models.Quality         `dynamodbav:"quality"`
	Stage            models.Stage           `dynamodbav:"stage"`
	AssignedWorkerId string                 `dynamodbav:"assigned_worker_id"`
	PreviousWorkerId string                 `dynamodbav:"previous_worker_id,omitempty"`
	CreatorId        string                 `dynamodbav:"creator_id"`
	Folder           models.Folder          `dynamodbav:"folder"`
	HandoverStatus   models.HandoverStatus  `dynamodbav:"handover_status"`
	SecurityCode     string                 `dynamodbav:"security_code"`
	WorkerHistory    []string               `dynamodbav:"worker_history"`
	IsPaid           bool                   `dynamodbav:"is_paid"`
	Measurements     map[string]string      `dynamodbav:"measurements,omitempty"`
	DeliveryDate     string                 `dynamodbav:"delivery_date,omitempty"`
	Version          int64                  `dynamodbav:"version"`
	CreatedAt        time.Time              `dynamodbav:"created_at"`
	UpdatedAt        time.Time              `dynamodbav:"updated_at"`
}

func toOrderItem(o *models.Order) orderItem {
	return orderItem{
		Id:               o.Id,
		BillNumber:       o.BillNumber,
		CustomerId:       o.CustomerId,
		CustomerName:     o.CustomerName,
		GarmentType:      o.GarmentType,
		Category:         o.Category,
		Price:            number{o.Price},
		Quality:          o.Quality,
		Stage:            o.Stage,
		AssignedWorkerId: o.AssignedWorkerId,
		PreviousWorkerId: o.PreviousWorkerId,
		CreatorId:        o.CreatorId,
		Folder:           o.Folder,
		HandoverStatus:   o.HandoverStatus,
		SecurityCode:     o.SecurityCode,
		WorkerHistory:    o.WorkerHistory,
		IsPaid:           o.IsPaid,
		Measurements:     o.Measurements,
		DeliveryDate:     o.DeliveryDate,
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func (i orderItem) toModel() models.Order {
	return models.Order{
		Id:               i.Id,
		BillNumber:       i.BillNumber,
		CustomerId:       i.CustomerId,
		CustomerName:     i.CustomerName,
		GarmentType:      i.GarmentType,
		Category:         i.Category,
		Price:            i.Price.Decimal,
		Quality:          i.Quality,
		Stage:            i.Stage,
		AssignedWorkerId: i.AssignedWorkerId,
		PreviousWorkerId: i.PreviousWorkerId,
		CreatorId:        i.CreatorId,
		Folder:           i.Folder,
		HandoverStatus:   i.HandoverStatus,
		SecurityCode:     i.SecurityCode,
		WorkerHistory:    i.WorkerHistory,
		IsPaid:           i.IsPaid,
		Measurements:     i.Measurements,
		DeliveryDate:     i.DeliveryDate,
		Version:          i.Version,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

type rateItem struct {
	Id          string          `dynamodbav:"id"`
	GarmentType string          `dynamodbav:"garment_type"`
	Role        models.Role     `dynamodbav:"role,omitempty"`
	Normal      number          `dynamodbav:"normal"`
	Medium      number          `dynamodbav:"medium"`
	Regular     number          `dynamodbav:"regular"`
	VIP         number          `dynamodbav:"vip"`
	RateType    models.RateType `dynamodbav:"rate_type"`
}

func toRateItem(r *models.Rate) rateItem {
	return rateItem{
		Id:          r.Id,
		GarmentType: r.GarmentType,
		Role:        r.Role,
		Normal:      number{r.Normal},
		Medium:      number{r.Medium},
		Regular:     number{r.Regular},
		VIP:         number{r.VIP},
		RateType:    r.RateType,
	}
}

func (i rateItem) toModel() models.Rate {
	return models.Rate{
		Id:          i.Id,
		GarmentType: i.GarmentType,
		Role:        i.Role,
		Normal:      i.Normal.Decimal,
		Medium:      i.Medium.Decimal,
		Regular:     i.Regular.Decimal,
		VIP:         i.VIP.Decimal,
		RateType:    i.RateType,
	}
}

type requestItem struct {
	Id             string               `dynamodbav:"id"`
	UserId         string               `dynamodbav:"user_id"`
	Type           models.RequestType   `dynamodbav:"type"`
	Amount         number               `dynamodbav:"amount"`
	Status         models.RequestStatus `dynamodbav:"status"`
	UTR            string               `dynamodbav:"utr,omitempty"`
	Method         string               `dynamodbav:"method,omitempty"`
	PaymentDetails string               `dynamodbav:"payment_details,omitempty"`
	TransactionId  string               `dynamodbav:"transaction_id,omitempty"`
	CreatedAt      time.Time            `dynamodbav:"created_at"`
	DecidedAt      *time.Time           `dynamodbav:"decided_at,omitempty"`
}

func toRequestItem(r *models.Request) requestItem {
	return requestItem{
		Id:             r.Id,
		UserId:         r.UserId,
		Type:           r.Type,
		Amount:         number{r.Amount},
		Status:         r.Status,
		UTR:            r.UTR,
		Method:         r.Method,
		PaymentDetails: r.PaymentDetails,
		TransactionId:  r.TransactionId,
		CreatedAt:      r.CreatedAt,
		DecidedAt:      r.DecidedAt,
	}
}

func (i requestItem) toModel() models.Request {
	return models.Request{
		Id:             i.Id,
		UserId:         i.UserId,
		Type:           i.Type,
		Amount:         i.Amount.Decimal,
		Status:         i.Status,
		UTR:            i.UTR,
		Method:         i.Method,
		PaymentDetails: i.PaymentDetails,
		TransactionId:  i.TransactionId,
		CreatedAt:      i.CreatedAt,
		DecidedAt:      i.DecidedAt,
	}
}
