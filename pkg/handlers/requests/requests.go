package requests

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/handlers/httpio"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/mapping"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/requests"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
	"github.com/shopspring/decimal"
)

// RequestsHandler holds the dependencies for fund movement handlers.
type RequestsHandler struct {
	Service   *requests.Service
	Ledger    storage.LedgerReader
	Publisher websockets.Publisher
}

// NewRequestsHandler creates a new RequestsHandler.
func NewRequestsHandler(svc *requests.Service, reader storage.LedgerReader, publisher websockets.Publisher) *RequestsHandler {
	if publisher == nil {
		publisher = &websockets.NoOpPublisher{}
	}
	return &RequestsHandler{Service: svc, Ledger: reader, Publisher: publisher}
}

// CreateRequest files a fund add or a withdrawal for approval.
func (h *RequestsHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var body api.NewRequest
	if !httpio.Decode(w, r, &body) {
		return
	}

	var (
		req *models.Request
		err error
	)
	switch body.Type {
	case api.AddFunds:
		req, err = h.Service.RequestAddFunds(r.Context(), body.UserId, body.Amount, *body.Utr)
	case api.Withdraw:
		req, err = h.Service.RequestWithdrawal(r.Context(), body.UserId, body.Amount, *body.Method)
	}
	if err != nil {
		httpio.Error(w, r, "create request", err)
		return
	}
	httpio.JSON(w, http.StatusCreated, mapping.ToApiRequest(req))
}

// ApproveRequest approves a pending request and writes its ledger record.
func (h *RequestsHandler) ApproveRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	h.decide(w, r, requestId, true)
}

// RejectRequest rejects a pending request.
func (h *RequestsHandler) RejectRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	h.decide(w, r, requestId, false)
}

func (h *RequestsHandler) decide(w http.ResponseWriter, r *http.Request, requestId string, approve bool) {
	req, err := h.Service.Decide(r.Context(), requestId, approve)
	if err != nil {
		httpio.Error(w, r, "decide request", err)
		return
	}

	if req.Status == models.APPROVED {
		change := req.Amount
		if req.Type == models.WITHDRAW {
			change = change.Neg()
		}
		h.notify(r.Context(), req.UserId, req.TransactionId, models.WalletBooking, change)
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiRequest(req))
}

// CreateTransfer moves Booking balance between two workers.
func (h *RequestsHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var body api.NewTransfer
	if !httpio.Decode(w, r, &body) {
		return
	}

	ids, err := h.Service.Transfer(r.Context(), body.FromUserId, body.ToUserId, body.Amount)
	if err != nil {
		httpio.Error(w, r, "transfer", err)
		return
	}

	h.notify(r.Context(), body.FromUserId, ids[0], models.WalletBooking, body.Amount.Neg())
	h.notify(r.Context(), body.ToUserId, ids[1], models.WalletBooking, body.Amount)
	httpio.JSON(w, http.StatusCreated, api.TransferResult{TransactionIds: ids})
}

// CreateRelease credits a wallet on an administrator's behalf.
func (h *RequestsHandler) CreateRelease(w http.ResponseWriter, r *http.Request) {
	var body api.NewRelease
	if !httpio.Decode(w, r, &body) {
		return
	}
	note := ""
	if body.Note != nil {
		note = *body.Note
	}

	wallet := models.WalletType(body.WalletType)
	id, err := h.Service.ManualRelease(r.Context(), body.UserId, body.Amount, wallet, note)
	if err != nil {
		httpio.Error(w, r, "release funds", err)
		return
	}

	h.notify(r.Context(), body.UserId, id, wallet, body.Amount)
	httpio.JSON(w, http.StatusCreated, api.ReleaseResult{TransactionId: id})
}

// notify publishes a wallet update. The write has already happened, so
// failures are only logged.
func (h *RequestsHandler) notify(ctx context.Context, userID, txID string, wallet models.WalletType, change decimal.Decimal) {
	txs, err := h.Ledger.ListTransactionsByOwner(ctx, userID)
	if err != nil {
		slog.Error("failed to get balance for websocket message", "user_id", userID, "error", err)
		return
	}

	msg := websockets.Message{
		Type: websockets.MessageTypeWalletUpdate,
		Payload: websockets.WalletUpdatePayload{
			UserID:        userID,
			TransactionID: txID,
			WalletType:    string(wallet),
			Change:        change,
			NewBalance:    ledger.Balances(txs, userID)[wallet],
		},
	}
	if err := h.Publisher.Publish(ctx, msg); err != nil {
		slog.Error("failed to publish websocket message", "user_id", userID, "error", err)
	}
}
