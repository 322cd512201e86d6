package ledger

import (
	"net/http"
	"time"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/handlers/httpio"
	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	ledgerpkg "github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/mapping"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Store     storage.LedgerReader
	Hierarchy *hierarchy.Service
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.LedgerReader, h *hierarchy.Service) *LedgerHandler {
	return &LedgerHandler{Store: store, Hierarchy: h}
}

// ListLedgerEntries returns the newest ledger records across all workers.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	limit := defaultLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit < 1 || limit > maxLimit {
		httpio.JSON(w, http.StatusBadRequest, api.Error{Message: "limit must be between 1 and 200"})
		return
	}

	txs, err := h.Store.ListRecentTransactions(r.Context(), int32(limit))
	if err != nil {
		httpio.Error(w, r, "retrieve ledger entries", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiTransactions(txs))
}

// ListWorkerTransactions returns a worker's ledger history, oldest first.
func (h *LedgerHandler) ListWorkerTransactions(w http.ResponseWriter, r *http.Request, workerId string) {
	txs, err := h.Store.ListTransactionsByOwner(r.Context(), workerId)
	if err != nil {
		httpio.Error(w, r, "retrieve transactions", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiTransactions(txs))
}

// GetWorkerStats folds a worker's ledger into wallet balances.
func (h *LedgerHandler) GetWorkerStats(w http.ResponseWriter, r *http.Request, workerId string, params api.GetWorkerStatsParams) {
	asOf := time.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	var (
		txs     []models.Transaction
		directs int
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		txs, err = h.Store.ListTransactionsByOwner(ctx, workerId)
		return err
	})
	g.Go(func() error {
		var err error
		directs, err = h.Hierarchy.Directs(ctx, workerId)
		return err
	})
	if err := g.Wait(); err != nil {
		httpio.Error(w, r, "compute stats", err)
		return
	}

	httpio.JSON(w, http.StatusOK, mapping.ToApiStats(ledgerpkg.Fold(txs, workerId, asOf), directs))
}
