package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is a staff role. Routing and rate lookup are keyed by it.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleManager     Role = "Manager"
	RoleShowroom    Role = "Showroom"
	RoleMeasurement Role = "Measurement"
	RoleCutting     Role = "Cutting"
	RoleShirtMaker  Role = "Shirt Maker"
	RolePantMaker   Role = "Pant Maker"
	RoleCoatMaker   Role = "Coat Maker"
	RoleFinishing   Role = "Finishing (Kaaj/Button)"
	RolePress       Role = "Press (Paresh)"
	RoleDelivery    Role = "Delivery"
	RoleCustomer    Role = "Customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleShowroom, RoleMeasurement, RoleCutting,
		RoleShirtMaker, RolePantMaker, RoleCoatMaker, RoleFinishing, RolePress,
		RoleDelivery, RoleCustomer:
		return true
	}
	return false
}

// Stage is a production stage of a work unit.
type Stage string

const (
	StageOrderPlaced Stage = "Order Placed"
	StageMeasurement Stage = "Measurement"
	StageCutting     Stage = "Cutting"
	StageSewing      Stage = "Sewing"
	StageFinishing   Stage = "Finishing (Kaaj/Button)"
	StagePress       Stage = "Press (Paresh)"
	StageReady       Stage = "Ready for Delivery"
	StageDelivered   Stage = "Delivered"
	StageReturned    Stage = "Returned to Showroom"
)

// stageOrder is the forward production sequence. Returned sits outside it.
var stageOrder = []Stage{
	StageOrderPlaced,
	StageMeasurement,
	StageCutting,
	StageSewing,
	StageFinishing,
	StagePress,
	StageReady,
	StageDelivered,
}

// Next returns the forward successor of s. It returns false for Delivered,
// Returned and unknown stages.
func (s Stage) Next() (Stage, bool) {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return "", false
}

// Terminal reports whether no further transition is allowed from s.
func (s Stage) Terminal() bool {
	return s == StageDelivered
}

// Quality selects the rate column for a work unit.
type Quality string

const (
	QualityNormal  Quality = "Normal"
	QualityMedium  Quality = "Medium"
	QualityRegular Quality = "Regular"
	QualityVIP     Quality = "VIP"
)

// Valid reports whether q is one of the four tiers.
func (q Quality) Valid() bool {
	switch q {
	case QualityNormal, QualityMedium, QualityRegular, QualityVIP:
		return true
	}
	return false
}

// GarmentCategory picks the sewing role for a garment.
type GarmentCategory string

const (
	CategoryShirt GarmentCategory = "Shirt"
	CategoryPant  GarmentCategory = "Pant"
	CategoryCoat  GarmentCategory = "Coat"
)

// Valid reports whether c is a known category.
func (c GarmentCategory) Valid() bool {
	return c == CategoryShirt || c == CategoryPant || c == CategoryCoat
}

// Folder is the coarse workflow location of a work unit.
type Folder string

const (
	FolderSelf      Folder = "Self"
	FolderInbox     Folder = "Inbox"
	FolderSave      Folder = "Save"
	FolderReturn    Folder = "Return"
	FolderCompleted Folder = "Completed"
)

// HandoverStatus tracks whether the current holder has taken the unit.
type HandoverStatus string

const (
	HandoverPending  HandoverStatus = "Pending"
	HandoverAccepted HandoverStatus = "Accepted"
)

// WalletType partitions a worker's ledger into independently summed balances.
type WalletType string

const (
	WalletBooking     WalletType = "Booking"
	WalletUpline      WalletType = "Upline"
	WalletDownline    WalletType = "Downline"
	WalletMagic       WalletType = "Magic"
	WalletDaily       WalletType = "Daily"
	WalletPerformance WalletType = "Performance"
)

// WalletTypes lists every wallet type in display order.
var WalletTypes = []WalletType{
	WalletBooking,
	WalletUpline,
	WalletDownline,
	WalletMagic,
	WalletDaily,
	WalletPerformance,
}

// Valid reports whether w is a known wallet type.
func (w WalletType) Valid() bool {
	for _, t := range WalletTypes {
		if t == w {
			return true
		}
	}
	return false
}

// Direction is the sign of a ledger transaction.
type Direction string

const (
	Credit Direction = "Credit"
	Debit  Direction = "Debit"
)

// Valid reports whether d is Credit or Debit.
func (d Direction) Valid() bool {
	return d == Credit || d == Debit
}

// Signed applies the direction's sign to amount.
func (d Direction) Signed(amount decimal.Decimal) decimal.Decimal {
	if d == Debit {
		return amount.Neg()
	}
	return amount
}

// WorkerStatus is the account state of a worker.
type WorkerStatus string

const (
	WorkerActive  WorkerStatus = "Active"
	WorkerBlocked WorkerStatus = "Blocked"
)

// BankDetails holds a worker's bank payout destination.
type BankDetails struct {
	AccountName   string `json:"account_name" dynamodbav:"account_name"`
	AccountNumber string `json:"account_number" dynamodbav:"account_number"`
	IFSCCode      string `json:"ifsc_code" dynamodbav:"ifsc_code"`
	BankName      string `json:"bank_name" dynamodbav:"bank_name"`
}

// Worker is a staff identity together with its two sponsorship links.
type Worker struct {
	Id            string       `json:"id" dynamodbav:"id"`
	Name          string       `json:"name" dynamodbav:"name"`
	Role          Role         `json:"role" dynamodbav:"role"`
	Mobile        string       `json:"mobile" dynamodbav:"mobile"`
	Status        WorkerStatus `json:"status" dynamodbav:"status"`
	JoinDate      time.Time    `json:"join_date" dynamodbav:"join_date"`
	UplineId      string       `json:"upline_id,omitempty" dynamodbav:"upline_id,omitempty"`
	MagicUplineId string       `json:"magic_upline_id,omitempty" dynamodbav:"magic_upline_id,omitempty"`
	CanWithdraw   bool         `json:"can_withdraw" dynamodbav:"can_withdraw"`
	UpiId         string       `json:"upi_id,omitempty" dynamodbav:"upi_id,omitempty"`
	BankDetails   *BankDetails `json:"bank_details,omitempty" dynamodbav:"bank_details,omitempty"`
}

// Active reports whether the worker may take part in workflow and payouts.
func (w *Worker) Active() bool {
	return w.Status != WorkerBlocked
}

// Order is one physical garment moving through production.
type Order struct {
	Id               string            `json:"id"`
	BillNumber       string            `json:"bill_number"`
	CustomerId       string            `json:"customer_id"`
	CustomerName     string            `json:"customer_name"`
	GarmentType      string            `json:"garment_type"`
	Category         GarmentCategory   `json:"category"`
	Price            decimal.Decimal   `json:"price"`
	Quality          Quality           `json:"quality"`
	Stage            Stage             `json:"stage"`
	AssignedWorkerId string            `json:"assigned_worker_id"`
	PreviousWorkerId string            `json:"previous_worker_id,omitempty"`
	CreatorId        string            `json:"creator_id"`
	Folder           Folder            `json:"folder"`
	HandoverStatus   HandoverStatus    `json:"handover_status"`
	SecurityCode     string            `json:"-"`
	WorkerHistory    []string          `json:"worker_history"`
	IsPaid           bool              `json:"is_paid"`
	Measurements     map[string]string `json:"measurements,omitempty"`
	DeliveryDate     string            `json:"delivery_date,omitempty"`
	Version          int64             `json:"version"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Closed reports whether the order has been delivered and archived.
func (o *Order) Closed() bool {
	return o.Stage == StageDelivered && o.Folder == FolderCompleted
}

// Transaction is an immutable ledger fact. A wallet balance is the signed
// sum of its transactions; there is no stored balance.
type Transaction struct {
	Id              string          `json:"id"`
	OwnerId         string          `json:"owner_id"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       Direction       `json:"direction"`
	WalletType      WalletType      `json:"wallet_type"`
	Description     string          `json:"description"`
	RelatedOrderId  string          `json:"related_order_id,omitempty"`
	RelatedWorkerId string          `json:"related_worker_id,omitempty"`
	Level           string          `json:"level,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Signed returns the amount with the direction's sign applied.
func (t *Transaction) Signed() decimal.Decimal {
	return t.Direction.Signed(t.Amount)
}

// Stats are the per-wallet balances of a single worker.
type Stats struct {
	WorkerId          string          `json:"worker_id"`
	BookingWallet     decimal.Decimal `json:"booking_wallet"`
	UplineWallet      decimal.Decimal `json:"upline_wallet"`
	DownlineWallet    decimal.Decimal `json:"downline_wallet"`
	MagicIncome       decimal.Decimal `json:"magic_income"`
	TodaysWallet      decimal.Decimal `json:"todays_wallet"`
	PerformanceWallet decimal.Decimal `json:"performance_wallet"`
	TotalIncome       decimal.Decimal `json:"total_income"`
}

// RateType selects how a rate column is interpreted.
type RateType string

const (
	RateFixed      RateType = "Fixed"
	RatePercentage RateType = "Percentage"
)

// Rate is a stitching rate record for a garment type or role.
type Rate struct {
	Id          string          `json:"id"`
	GarmentType string          `json:"garment_type"`
	Role        Role            `json:"role,omitempty"`
	Normal      decimal.Decimal `json:"normal"`
	Medium      decimal.Decimal `json:"medium"`
	Regular     decimal.Decimal `json:"regular"`
	VIP         decimal.Decimal `json:"vip"`
	RateType    RateType        `json:"rate_type"`
}

// For returns the column of the rate that applies to quality q.
func (r *Rate) For(q Quality) decimal.Decimal {
	switch q {
	case QualityNormal:
		return r.Normal
	case QualityMedium:
		return r.Medium
	case QualityVIP:
		return r.VIP
	default:
		return r.Regular
	}
}

// RequestType is the kind of approval request.
type RequestType string

const (
	ADD_FUNDS RequestType = "ADD_FUNDS"
	WITHDRAW  RequestType = "WITHDRAW"
)

// RequestStatus defines the possible states of an approval request.
type RequestStatus string

const (
	PENDING  RequestStatus = "PENDING"
	APPROVED RequestStatus = "APPROVED"
	REJECTED RequestStatus = "REJECTED"
)

// Request is a fund-add or withdrawal awaiting an administrator.
type Request struct {
	Id             string          `json:"id"`
	UserId         string          `json:"user_id"`
	Type           RequestType     `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Status         RequestStatus   `json:"status"`
	UTR            string          `json:"utr,omitempty"`
	Method         string          `json:"method,omitempty"`
	PaymentDetails string          `json:"payment_details,omitempty"`
	TransactionId  string          `json:"transaction_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	DecidedAt      *time.Time      `json:"decided_at,omitempty"`
}

// PayoutEvent is emitted when a worker hands a unit to the next stage.
type PayoutEvent struct {
	OrderId     string          `json:"order_id"`
	BillNumber  string          `json:"bill_number"`
	Stage       Stage           `json:"stage"`
	WorkerId    string          `json:"worker_id"`
	WorkerRole  Role            `json:"worker_role"`
	GarmentType string          `json:"garment_type"`
	Price       decimal.Decimal `json:"price"`
	Quality     Quality         `json:"quality"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// Key identifies the handover the event belongs to.
func (e *PayoutEvent) Key() string {
	return e.OrderId + "#" + string(e.Stage) + "#" + e.WorkerId
}
