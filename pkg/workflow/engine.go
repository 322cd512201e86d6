// Package workflow moves work units between stages and holders and emits
// the payout event for every completed handover.
package workflow

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/scheduler"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOrder        = errors.New("invalid order")
	ErrNotHolder           = errors.New("worker does not hold this order")
	ErrHandoverPending     = errors.New("handover has not been accepted")
	ErrInvalidTransition   = errors.New("transition not allowed from current stage")
	ErrWrongRole           = errors.New("target worker cannot work this stage")
	ErrWorkerBlocked       = errors.New("worker is blocked")
	ErrInvalidSecurityCode = errors.New("security code does not match")
	ErrOrderClosed         = errors.New("order is delivered and closed")
)

const deliveryLeadTime = 7 * 24 * time.Hour

// NewOrder is the input of Create.
type NewOrder struct {
	BillNumber   string
	CustomerId   string
	CustomerName string
	GarmentType  string
	// Category overrides the category derived from GarmentType.
	Category     models.GarmentCategory
	Price        decimal.Decimal
	Quality      models.Quality
	CreatorId    string
	Measurements map[string]string
	DeliveryDate string
}

// Engine runs the order state machine.
type Engine struct {
	orders    storage.OrderStore
	workers   storage.WorkerReader
	ledger    ledger.Recorder
	scheduler scheduler.Scheduler
	now       func() time.Time
	code      func() (string, error)
}

// NewEngine creates an Engine.
func NewEngine(orders storage.OrderStore, workers storage.WorkerReader, rec ledger.Recorder, s scheduler.Scheduler) *Engine {
	return &Engine{
		orders:    orders,
		workers:   workers,
		ledger:    rec,
		scheduler: s,
		now:       time.Now,
		code:      securityCode,
	}
}

// Get returns an order by id.
func (e *Engine) Get(ctx context.Context, orderID string) (*models.Order, error) {
	return e.orders.GetOrder(ctx, orderID)
}

// ListByHolder returns the orders currently held by workerID.
func (e *Engine) ListByHolder(ctx context.Context, workerID string) ([]models.Order, error) {
	return e.orders.ListOrdersByHolder(ctx, workerID)
}

// ListByBill returns every garment booked on a bill, for customer tracking.
func (e *Engine) ListByBill(ctx context.Context, billNumber string) ([]models.Order, error) {
	billNumber = strings.TrimSpace(billNumber)
	if billNumber == "" {
		return nil, fmt.Errorf("%w: bill number is required", ErrInvalidOrder)
	}
	return e.orders.ListOrdersByBill(ctx, billNumber)
}

// Create books a new unit in the creator's Self folder.
func (e *Engine) Create(ctx context.Context, in NewOrder) (*models.Order, error) {
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidOrder)
	}
	if in.BillNumber == "" || in.GarmentType == "" {
		return nil, fmt.Errorf("%w: bill number and garment type are required", ErrInvalidOrder)
	}
	category := in.Category
	if category == "" {
		c, ok := CategoryOf(in.GarmentType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown garment type %q, a category is required", ErrInvalidOrder, in.GarmentType)
		}
		category = c
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidOrder, category)
	}
	quality := in.Quality
	if quality == "" {
		quality = models.QualityRegular
	}
	if !quality.Valid() {
		return nil, fmt.Errorf("%w: quality %q", ErrInvalidOrder, quality)
	}

	if _, err := e.activeWorker(ctx, in.CreatorId); err != nil {
		return nil, err
	}

	code, err := e.code()
	if err != nil {
		return nil, fmt.Errorf("failed to generate security code: %w", err)
	}

	now := e.now()
	delivery := in.DeliveryDate
	if delivery == "" {
		delivery = now.Add(deliveryLeadTime).Format(time.DateOnly)
	}

	o := &models.Order{
		Id:               uuid.NewString(),
		BillNumber:       in.BillNumber,
		CustomerId:       in.CustomerId,
		CustomerName:     in.CustomerName,
		GarmentType:      in.GarmentType,
		Category:         category,
		Price:            in.Price,
		Quality:          quality,
		Stage:            models.StageOrderPlaced,
		AssignedWorkerId: in.CreatorId,
		CreatorId:        in.CreatorId,
		Folder:           models.FolderSelf,
		HandoverStatus:   models.HandoverAccepted,
		SecurityCode:     code,
		WorkerHistory:    []string{in.CreatorId},
		Measurements:     in.Measurements,
		DeliveryDate:     delivery,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := e.orders.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	slog.Info("order created", "order_id", o.Id, "bill_number", o.BillNumber, "creator_id", o.CreatorId)
	return o, nil
}

// Send hands the order to the next stage. The sender's payout is queued
// unless this is the creator's first send out of Order Placed.
func (e *Engine) Send(ctx context.Context, orderID, fromWorkerID, toWorkerID string) (*models.Order, error) {
	o, err := e.actionable(ctx, orderID, fromWorkerID)
	if err != nil {
		return nil, err
	}

	next, ok := o.Stage.Next()
	if !ok || next == models.StageDelivered {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, o.Stage)
	}
	role, ok := RoleFor(next, o.Category)
	if !ok {
		return nil, fmt.Errorf("%w: no route to %s for %s", ErrInvalidTransition, next, o.Category)
	}

	sender, err := e.activeWorker(ctx, fromWorkerID)
	if err != nil {
		return nil, err
	}
	target, err := e.activeWorker(ctx, toWorkerID)
	if err != nil {
		return nil, err
	}
	if target.Role != role && target.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: %s needs %s, %s is %s", ErrWrongRole, next, role, target.Id, target.Role)
	}

	completed := o.Stage
	now := e.now()
	o.PreviousWorkerId = fromWorkerID
	o.AssignedWorkerId = toWorkerID
	o.Stage = next
	o.Folder = models.FolderInbox
	o.HandoverStatus = models.HandoverPending
	o.WorkerHistory = append(o.WorkerHistory, toWorkerID)
	o.UpdatedAt = now
	if err := e.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", o.Id, err)
	}

	if completed == models.StageOrderPlaced {
		return o, nil
	}

	e.schedulePayout(ctx, o, completed, sender, now)
	return o, nil
}

// Accept takes a pending handover. Accepting the Cutting stage of an unpaid
// order debits the creator's Booking wallet by the price.
func (e *Engine) Accept(ctx context.Context, orderID, workerID string) (*models.Order, error) {
	o, err := e.open(ctx, orderID, workerID)
	if err != nil {
		return nil, err
	}
	if o.HandoverStatus == models.HandoverAccepted {
		return nil, fmt.Errorf("%w: already accepted", ErrInvalidTransition)
	}

	if o.Stage == models.StageCutting && !o.IsPaid {
		if err := e.chargeBooking(ctx, o); err != nil {
			return nil, err
		}
		o.IsPaid = true
	}

	o.HandoverStatus = models.HandoverAccepted
	o.Folder = models.FolderSelf
	o.UpdatedAt = e.now()
	if err := e.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", o.Id, err)
	}
	return o, nil
}

// Deliver closes the order after checking the customer's code. A positive
// cod amount is credited to the creator's Booking wallet before the order is
// closed. Delivering from Ready for Delivery queues the deliverer's payout;
// a returned order is delivered by its creator and pays nothing.
func (e *Engine) Deliver(ctx context.Context, orderID, workerID, code string, cod decimal.Decimal) (*models.Order, error) {
	o, err := e.actionable(ctx, orderID, workerID)
	if err != nil {
		return nil, err
	}
	if o.Stage != models.StageReady && o.Stage != models.StageReturned {
		return nil, fmt.Errorf("%w: cannot deliver from %s", ErrInvalidTransition, o.Stage)
	}
	if cod.IsNegative() {
		return nil, fmt.Errorf("%w: negative cash on delivery", ErrInvalidOrder)
	}
	if code != o.SecurityCode {
		return nil, ErrInvalidSecurityCode
	}
	deliverer, err := e.activeWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if cod.IsPositive() {
		_, err := e.ledger.Record(ctx, ledger.Entry{
			Id:              "cod-" + o.Id,
			OwnerId:         o.CreatorId,
			Amount:          cod,
			Direction:       models.Credit,
			WalletType:      models.WalletBooking,
			Description:     "COD Collected: " + o.BillNumber,
			RelatedOrderId:  o.Id,
			RelatedWorkerId: workerID,
		})
		if err != nil && !errors.Is(err, storage.ErrDuplicateEntry) {
			return nil, fmt.Errorf("failed to record cash on delivery for order %s: %w", o.Id, err)
		}
	}

	completed := o.Stage
	now := e.now()
	o.Stage = models.StageDelivered
	o.Folder = models.FolderCompleted
	o.UpdatedAt = now
	if err := e.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", o.Id, err)
	}

	if completed == models.StageReady {
		e.schedulePayout(ctx, o, completed, deliverer, now)
	}
	return o, nil
}

// Return sends a ready order back to its creator.
func (e *Engine) Return(ctx context.Context, orderID, workerID string) (*models.Order, error) {
	o, err := e.actionable(ctx, orderID, workerID)
	if err != nil {
		return nil, err
	}
	if o.Stage != models.StageReady {
		return nil, fmt.Errorf("%w: cannot return from %s", ErrInvalidTransition, o.Stage)
	}

	o.PreviousWorkerId = workerID
	o.AssignedWorkerId = o.CreatorId
	o.Stage = models.StageReturned
	o.Folder = models.FolderReturn
	o.HandoverStatus = models.HandoverPending
	o.WorkerHistory = append(o.WorkerHistory, o.CreatorId)
	o.UpdatedAt = e.now()
	if err := e.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", o.Id, err)
	}
	return o, nil
}

// Save parks an order in the holder's Save folder.
func (e *Engine) Save(ctx context.Context, orderID, workerID string) (*models.Order, error) {
	o, err := e.actionable(ctx, orderID, workerID)
	if err != nil {
		return nil, err
	}
	o.Folder = models.FolderSave
	o.UpdatedAt = e.now()
	if err := e.orders.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", o.Id, err)
	}
	return o, nil
}

// schedulePayout queues the payout for worker's completed stage. The
// handover is already saved, so a queue failure is logged, not returned.
func (e *Engine) schedulePayout(ctx context.Context, o *models.Order, completed models.Stage, worker *models.Worker, now time.Time) {
	ev := &models.PayoutEvent{
		OrderId:     o.Id,
		BillNumber:  o.BillNumber,
		Stage:       completed,
		WorkerId:    worker.Id,
		WorkerRole:  worker.Role,
		GarmentType: o.GarmentType,
		Price:       o.Price,
		Quality:     o.Quality,
		OccurredAt:  now,
	}
	if err := e.scheduler.SchedulePayout(ctx, ev); err != nil {
		slog.Error("CRITICAL: handover saved but payout not queued",
			"order_id", o.Id,
			"stage", completed,
			"worker_id", worker.Id,
			"error", err,
		)
	}
}

func (e *Engine) chargeBooking(ctx context.Context, o *models.Order) error {
	_, err := e.ledger.Record(ctx, ledger.Entry{
		Id:             "booking-" + o.Id,
		OwnerId:        o.CreatorId,
		Amount:         o.Price,
		Direction:      models.Debit,
		WalletType:     models.WalletBooking,
		Description:    "Order Booking: " + o.BillNumber,
		RelatedOrderId: o.Id,
	})
	if errors.Is(err, storage.ErrDuplicateEntry) {
		// charged by an earlier attempt whose order update lost a race
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to debit booking for order %s: %w", o.Id, err)
	}
	return nil
}

// open loads an order that is not closed and is held by workerID.
func (e *Engine) open(ctx context.Context, orderID, workerID string) (*models.Order, error) {
	o, err := e.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Stage.Terminal() {
		return nil, ErrOrderClosed
	}
	if o.AssignedWorkerId != workerID {
		return nil, ErrNotHolder
	}
	return o, nil
}

// actionable is open plus an accepted handover.
func (e *Engine) actionable(ctx context.Context, orderID, workerID string) (*models.Order, error) {
	o, err := e.open(ctx, orderID, workerID)
	if err != nil {
		return nil, err
	}
	if o.HandoverStatus != models.HandoverAccepted {
		return nil, ErrHandoverPending
	}
	return o, nil
}

func (e *Engine) activeWorker(ctx context.Context, id string) (*models.Worker, error) {
	w, err := e.workers.GetWorker(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker %s: %w", id, err)
	}
	if !w.Active() {
		return nil, fmt.Errorf("%w: %s", ErrWorkerBlocked, id)
	}
	return w, nil
}

func securityCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
