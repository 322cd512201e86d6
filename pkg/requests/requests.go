// Package requests handles fund adds, withdrawals, transfers and manual
// releases. Every balance change still goes through the ledger writer.
package requests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrWithdrawalsDisabled  = errors.New("withdrawals are disabled")
	ErrWithdrawalNotAllowed = errors.New("worker may not withdraw")
	ErrBelowMinimum         = errors.New("amount is below the withdrawal minimum")
	ErrInsufficientFunds    = errors.New("insufficient booking balance")
	ErrMissingPayoutDetails = errors.New("payout details missing for method")
	ErrSelfTransfer         = errors.New("cannot transfer to yourself")
	ErrWorkerBlocked        = errors.New("worker is blocked")
)

// Withdrawal methods.
const (
	MethodUPI  = "UPI"
	MethodBank = "BANK"
)

// Store is the persistence the service needs.
type Store interface {
	storage.RequestStore
	storage.WorkerReader
	storage.LedgerReader
}

// Service runs approval requests and direct wallet moves.
type Service struct {
	store    Store
	writer   *ledger.Writer
	settings *settings.Service
	now      func() time.Time
}

// New creates a Service.
func New(store Store, writer *ledger.Writer, s *settings.Service) *Service {
	return &Service{store: store, writer: writer, settings: s, now: time.Now}
}

// RequestAddFunds records a pending fund add backed by a payment reference.
func (s *Service) RequestAddFunds(ctx context.Context, userID string, amount decimal.Decimal, utr string) (*models.Request, error) {
	if !amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	utr = strings.TrimSpace(utr)
	if utr == "" {
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidRequest)
	}
	if _, err := s.activeWorker(ctx, userID); err != nil {
		return nil, err
	}

	return s.create(ctx, &models.Request{
		UserId: userID,
		Type:   models.ADD_FUNDS,
		Amount: amount,
		UTR:    utr,
	})
}

// RequestWithdrawal records a pending withdrawal from the Booking wallet.
func (s *Service) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, method string) (*models.Request, error) {
	if !amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !st.IsWithdrawalEnabled {
		return nil, ErrWithdrawalsDisabled
	}
	if amount.LessThan(st.WithdrawalMinimum) {
		return nil, fmt.Errorf("%w: minimum is %s", ErrBelowMinimum, st.WithdrawalMinimum)
	}

	w, err := s.activeWorker(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !w.CanWithdraw {
		return nil, ErrWithdrawalNotAllowed
	}
	details, err := payoutDetails(w, method)
	if err != nil {
		return nil, err
	}
	if err := s.requireBooking(ctx, userID, amount); err != nil {
		return nil, err
	}

	return s.create(ctx, &models.Request{
		UserId:         userID,
		Type:           models.WITHDRAW,
		Amount:         amount,
		Method:         strings.ToUpper(method),
		PaymentDetails: details,
	})
}

// Decide approves or rejects a pending request. Approval writes exactly one
// ledger record together with the status change.
func (s *Service) Decide(ctx context.Context, requestID string, approve bool) (*models.Request, error) {
	r, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if r.Status != models.PENDING {
		return nil, storage.ErrRequestNotPending
	}

	now := s.now()
	r.DecidedAt = &now

	if !approve {
		r.Status = models.REJECTED
		if err := s.store.DecideRequest(ctx, r, nil); err != nil {
			return nil, fmt.Errorf("failed to reject request %s: %w", r.Id, err)
		}
		return r, nil
	}

	entry := ledger.Entry{
		OwnerId:    r.UserId,
		Amount:     r.Amount,
		WalletType: models.WalletBooking,
	}
	switch r.Type {
	case models.ADD_FUNDS:
		entry.Direction = models.Credit
		entry.Description = "Funds Added (UTR: " + r.UTR + ")"
	case models.WITHDRAW:
		if err := s.requireBooking(ctx, r.UserId, r.Amount); err != nil {
			return nil, err
		}
		entry.Direction = models.Debit
		entry.Description = "Withdrawal via " + r.Method
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidRequest, r.Type)
	}

	tx, err := s.writer.Build(entry)
	if err != nil {
		return nil, err
	}
	r.Status = models.APPROVED
	r.TransactionId = tx.Id
	if err := s.store.DecideRequest(ctx, r, tx); err != nil {
		return nil, fmt.Errorf("failed to approve request %s: %w", r.Id, err)
	}
	s.writer.Committed(tx)

	slog.Info("request approved", "request_id", r.Id, "type", r.Type, "user_id", r.UserId, "transaction_id", tx.Id)
	return r, nil
}

// Transfer moves Booking balance between two workers. If the credit fails
// after the debit, a reversal credit is written back to the sender.
func (s *Service) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) ([]string, error) {
	if !amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSelfTransfer
	}
	if _, err := s.activeWorker(ctx, fromID); err != nil {
		return nil, err
	}
	if _, err := s.activeWorker(ctx, toID); err != nil {
		return nil, err
	}
	if err := s.requireBooking(ctx, fromID, amount); err != nil {
		return nil, err
	}

	ref := uuid.NewString()
	debitID, err := s.writer.Record(ctx, ledger.Entry{
		Id:              ref + "-out",
		OwnerId:         fromID,
		Amount:          amount,
		Direction:       models.Debit,
		WalletType:      models.WalletBooking,
		Description:     "Transfer to " + toID,
		RelatedWorkerId: toID,
	})
	if err != nil {
		return nil, err
	}

	creditID, err := s.writer.Record(ctx, ledger.Entry{
		Id:              ref + "-in",
		OwnerId:         toID,
		Amount:          amount,
		Direction:       models.Credit,
		WalletType:      models.WalletBooking,
		Description:     "Transfer from " + fromID,
		RelatedWorkerId: fromID,
	})
	if err != nil {
		_, rerr := s.writer.Record(ctx, ledger.Entry{
			Id:              ref + "-reversal",
			OwnerId:         fromID,
			Amount:          amount,
			Direction:       models.Credit,
			WalletType:      models.WalletBooking,
			Description:     "Transfer reversal: " + toID,
			RelatedWorkerId: toID,
		})
		if rerr != nil {
			slog.Error("CRITICAL: transfer debit not reversed", "transfer", ref, "from", fromID, "error", rerr)
		}
		return nil, fmt.Errorf("failed to credit %s: %w", toID, err)
	}

	return []string{debitID, creditID}, nil
}

// ManualRelease credits any wallet of a worker on an administrator's behalf.
func (s *Service) ManualRelease(ctx context.Context, userID string, amount decimal.Decimal, wallet models.WalletType, note string) (string, error) {
	if _, err := s.store.GetWorker(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to get worker %s: %w", userID, err)
	}
	if note == "" {
		note = "Admin Manual Release"
	}
	return s.writer.Record(ctx, ledger.Entry{
		OwnerId:     userID,
		Amount:      amount,
		Direction:   models.Credit,
		WalletType:  wallet,
		Description: note,
	})
}

// BookingBalance is the current Booking wallet of a worker.
func (s *Service) BookingBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	txs, err := s.store.ListTransactionsByOwner(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list transactions of %s: %w", userID, err)
	}
	return ledger.Balances(txs, userID)[models.WalletBooking], nil
}

func (s *Service) requireBooking(ctx context.Context, userID string, amount decimal.Decimal) error {
	balance, err := s.BookingBalance(ctx, userID)
	if err != nil {
		return err
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s, needed %s", ErrInsufficientFunds, balance, amount)
	}
	return nil
}

func (s *Service) create(ctx context.Context, r *models.Request) (*models.Request, error) {
	r.Id = uuid.NewString()
	r.Status = models.PENDING
	r.CreatedAt = s.now()
	if err := s.store.CreateRequest(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return r, nil
}

func (s *Service) activeWorker(ctx context.Context, id string) (*models.Worker, error) {
	w, err := s.store.GetWorker(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker %s: %w", id, err)
	}
	if !w.Active() {
		return nil, fmt.Errorf("%w: %s", ErrWorkerBlocked, id)
	}
	return w, nil
}

func payoutDetails(w *models.Worker, method string) (string, error) {
	switch strings.ToUpper(method) {
	case MethodUPI:
		if w.UpiId == "" {
			return "", fmt.Errorf("%w: UPI id", ErrMissingPayoutDetails)
		}
		return "UPI: " + w.UpiId, nil
	case MethodBank:
		b := w.BankDetails
		if b == nil || b.AccountNumber == "" {
			return "", fmt.Errorf("%w: bank account", ErrMissingPayoutDetails)
		}
		return fmt.Sprintf("Bank:%s A/C:%s IFSC:%s", b.BankName, b.AccountNumber, b.IFSCCode), nil
	default:
		return "", fmt.Errorf("%w: method %q", ErrInvalidRequest, method)
	}
}
