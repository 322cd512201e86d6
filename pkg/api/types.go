// Package api holds the HTTP contract of the ledger service: request and
// response bodies, the server interface and its chi routing.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewOrder is the body of POST /orders.
type NewOrder struct {
	BillNumber   string            `json:"bill_number" validate:"required"`
	CustomerId   string            `json:"customer_id" validate:"required"`
	CustomerName string            `json:"customer_name"`
	GarmentType  string            `json:"garment_type" validate:"required"`
	Category     *string           `json:"category,omitempty" validate:"omitempty,oneof=Shirt Pant Coat"`
	Price        decimal.Decimal   `json:"price" validate:"gt=0"`
	Quality      string            `json:"quality" validate:"required,oneof=Normal Medium Regular VIP"`
	CreatorId    string            `json:"creator_id" validate:"required"`
	Measurements map[string]string `json:"measurements,omitempty"`
	DeliveryDate *string           `json:"delivery_date,omitempty"`
}

// Order is a work unit as returned by the API.
type Order struct {
	Id               string            `json:"id"`
	BillNumber       string            `json:"bill_number"`
	CustomerId       string            `json:"customer_id"`
	CustomerName     string            `json:"customer_name,omitempty"`
	GarmentType      string            `json:"garment_type"`
	Category         string            `json:"category"`
	Price            decimal.Decimal   `json:"price"`
	Quality          string            `json:"quality"`
	Stage            string            `json:"stage"`
	AssignedWorkerId string            `json:"assigned_worker_id"`
	PreviousWorkerId *string           `json:"previous_worker_id,omitempty"`
	CreatorId        string            `json:"creator_id"`
	Folder           string            `json:"folder"`
	HandoverStatus   string            `json:"handover_status"`
	SecurityCode     *string           `json:"security_code,omitempty"`
	WorkerHistory    []string          `json:"worker_history"`
	IsPaid           bool              `json:"is_paid"`
	Measurements     map[string]string `json:"measurements,omitempty"`
	DeliveryDate     *string           `json:"delivery_date,omitempty"`
	Version          int64             `json:"version"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// SendOrderRequest is the body of POST /orders/{orderId}/send.
type SendOrderRequest struct {
	WorkerId     string `json:"worker_id" validate:"required"`
	NextHolderId string `json:"next_holder_id" validate:"required"`
}

// WorkerAction is the body of accept and return calls.
type WorkerAction struct {
	WorkerId string `json:"worker_id" validate:"required"`
}

// DeliverOrderRequest is the body of POST /orders/{orderId}/deliver.
type DeliverOrderRequest struct {
	WorkerId     string           `json:"worker_id" validate:"required"`
	SecurityCode string           `json:"security_code" validate:"required,len=4,numeric"`
	CodAmount    *decimal.Decimal `json:"cod_amount,omitempty"`
}

// Transaction is a ledger record as returned by the API.
type Transaction struct {
	Id              string          `json:"id"`
	OwnerId         string          `json:"owner_id"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       string          `json:"direction"`
	WalletType      string          `json:"wallet_type"`
	Description     string          `json:"description"`
	RelatedOrderId  *string         `json:"related_order_id,omitempty"`
	RelatedWorkerId *string         `json:"related_worker_id,omitempty"`
	Level           *string         `json:"level,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Stats are a worker's wallet balances.
type Stats struct {
	WorkerId          string          `json:"worker_id"`
	BookingWallet     decimal.Decimal `json:"booking_wallet"`
	UplineWallet      decimal.Decimal `json:"upline_wallet"`
	DownlineWallet    decimal.Decimal `json:"downline_wallet"`
	MagicIncome       decimal.Decimal `json:"magic_income"`
	TodaysWallet      decimal.Decimal `json:"todays_wallet"`
	PerformanceWallet decimal.Decimal `json:"performance_wallet"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	Directs           int             `json:"directs"`
}

// GetWorkerStatsParams defines parameters for GetWorkerStats.
type GetWorkerStatsParams struct {
	// AsOf folds only records written at or before this instant.
	AsOf *time.Time `form:"as_of,omitempty" json:"as_of,omitempty"`
}

// ListLedgerEntriesParams defines parameters for ListLedgerEntries.
type ListLedgerEntriesParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// RequestType is the kind of approval request.
type RequestType string

const (
	AddFunds RequestType = "ADD_FUNDS"
	Withdraw RequestType = "WITHDRAW"
)

// NewRequest is the body of POST /requests.
type NewRequest struct {
	UserId string          `json:"user_id" validate:"required"`
	Type   RequestType     `json:"type" validate:"required,oneof=ADD_FUNDS WITHDRAW"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Utr    *string         `json:"utr,omitempty" validate:"required_if=Type ADD_FUNDS"`
	Method *string         `json:"method,omitempty" validate:"required_if=Type WITHDRAW"`
}

// Request is an approval request as returned by the API.
type Request struct {
	Id             string          `json:"id"`
	UserId         string          `json:"user_id"`
	Type           RequestType     `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	Utr            *string         `json:"utr,omitempty"`
	Method         *string         `json:"method,omitempty"`
	PaymentDetails *string         `json:"payment_details,omitempty"`
	TransactionId  *string         `json:"transaction_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty"`
}

// NewTransfer is the body of POST /transfers.
type NewTransfer struct {
	FromUserId string          `json:"from_user_id" validate:"required"`
	ToUserId   string          `json:"to_user_id" validate:"required,nefield=FromUserId"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
}

// TransferResult lists the two records a transfer wrote.
type TransferResult struct {
	TransactionIds []string `json:"transaction_ids"`
}

// NewRelease is the body of POST /releases.
type NewRelease struct {
	UserId     string          `json:"user_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
	WalletType string          `json:"wallet_type" validate:"required,oneof=Booking Upline Downline Magic Daily Performance"`
	Note       *string         `json:"note,omitempty"`
}

// ReleaseResult is the id of the written record.
type ReleaseResult struct {
	TransactionId string `json:"transaction_id"`
}

// Rate is a stitching rate as exchanged by the API.
type Rate struct {
	Id          string          `json:"id"`
	GarmentType string          `json:"garment_type" validate:"required"`
	Role        *string         `json:"role,omitempty"`
	Normal      decimal.Decimal `json:"normal" validate:"gte=0"`
	Medium      decimal.Decimal `json:"medium" validate:"gte=0"`
	Regular     decimal.Decimal `json:"regular" validate:"gte=0"`
	Vip         decimal.Decimal `json:"vip" validate:"gte=0"`
	RateType    string          `json:"rate_type" validate:"required,oneof=Fixed Percentage"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Bill string `form:"bill" json:"bill"`
}

// BankDetails is a worker's bank payout destination.
type BankDetails struct {
	AccountName   string `json:"account_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,numeric"`
	IfscCode      string `json:"ifsc_code" validate:"required,len=11"`
	BankName      string `json:"bank_name" validate:"required"`
}

// NewWorker is the body of POST /workers.
type NewWorker struct {
	Name          string       `json:"name" validate:"required"`
	Mobile        string       `json:"mobile" validate:"required,numeric,len=10"`
	Role          string       `json:"role" validate:"required"`
	UplineId      *string      `json:"upline_id,omitempty"`
	MagicUplineId *string      `json:"magic_upline_id,omitempty"`
	UpiId         *string      `json:"upi_id,omitempty"`
	BankDetails   *BankDetails `json:"bank_details,omitempty" validate:"omitempty"`
}

// WorkerUpdate is the body of PUT /workers/{workerId}.
type WorkerUpdate struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=Active Blocked"`
	MagicUplineId *string `json:"magic_upline_id,omitempty"`
	CanWithdraw   *bool   `json:"can_withdraw,omitempty"`
}

// Worker is a staff member as returned by the API. Payout details are not included.
type Worker struct {
	Id            string    `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Mobile        string    `json:"mobile"`
	Status        string    `json:"status"`
	JoinDate      time.Time `json:"join_date"`
	UplineId      *string   `json:"upline_id,omitempty"`
	MagicUplineId *string   `json:"magic_upline_id,omitempty"`
	CanWithdraw   bool      `json:"can_withdraw"`
}

// ListWorkersParams defines parameters for ListWorkers.
type ListWorkersParams struct {
	Role string `form:"role" json:"role"`
	// Active leaves out blocked workers when true.
	Active *bool `form:"active,omitempty" json:"active,omitempty"`
}

// TeamKind selects the sponsorship link a team follows.
type TeamKind string

const (
	TeamUpline TeamKind = "upline"
	TeamMagic  TeamKind = "magic"
)

// GetWorkerTeamParams defines parameters for GetWorkerTeam.
type GetWorkerTeamParams struct {
	Kind *TeamKind `form:"kind,omitempty" json:"kind,omitempty"`
}

// TeamLevel is one depth of a team with the commission the root earned from it.
type TeamLevel struct {
	Level      int             `json:"level"`
	Members    []*Worker       `json:"members"`
	Commission decimal.Decimal `json:"commission"`
}

// Team is the response of GET /workers/{workerId}/team.
type Team struct {
	WorkerId        string          `json:"worker_id"`
	Kind            TeamKind        `json:"kind"`
	Levels          []*TeamLevel    `json:"levels"`
	MemberCount     int             `json:"member_count"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
