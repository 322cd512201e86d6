package workers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/handlers/httpio"
	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	"github.com/chris/tailorshop-ledger/pkg/mapping"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	workerspkg "github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// WorkersHandler holds the dependencies for worker and team handlers.
type WorkersHandler struct {
	Workers   *workerspkg.Service
	Hierarchy *hierarchy.Service
	Ledger    storage.LedgerReader
}

// NewWorkersHandler creates a new WorkersHandler.
func NewWorkersHandler(svc *workerspkg.Service, h *hierarchy.Service, ledger storage.LedgerReader) *WorkersHandler {
	return &WorkersHandler{Workers: svc, Hierarchy: h, Ledger: ledger}
}

// RegisterWorker signs up a worker under a sponsor.
func (h *WorkersHandler) RegisterWorker(w http.ResponseWriter, r *http.Request) {
	var body api.NewWorker
	if !httpio.Decode(w, r, &body) {
		return
	}

	wk, err := h.Workers.Register(r.Context(), mapping.ToDomainRegistration(&body))
	if err != nil {
		httpio.Error(w, r, "register worker", err)
		return
	}
	httpio.JSON(w, http.StatusCreated, mapping.ToApiWorker(wk))
}

// GetWorker returns a worker by id.
func (h *WorkersHandler) GetWorker(w http.ResponseWriter, r *http.Request, workerId string) {
	wk, err := h.Workers.Get(r.Context(), workerId)
	if err != nil {
		httpio.Error(w, r, "retrieve worker", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiWorker(wk))
}

// UpdateWorker blocks or unblocks a worker, or assigns its magic sponsor.
func (h *WorkersHandler) UpdateWorker(w http.ResponseWriter, r *http.Request, workerId string) {
	var body api.WorkerUpdate
	if !httpio.Decode(w, r, &body) {
		return
	}

	wk, err := h.Workers.Update(r.Context(), workerId, mapping.ToDomainUpdate(&body))
	if err != nil {
		httpio.Error(w, r, "update worker", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiWorker(wk))
}

// ListWorkers returns the workers holding a role, the list a sender picks
// the next holder from.
func (h *WorkersHandler) ListWorkers(w http.ResponseWriter, r *http.Request, params api.ListWorkersParams) {
	activeOnly := params.Active != nil && *params.Active

	ws, err := h.Workers.ListByRole(r.Context(), models.Role(params.Role), activeOnly)
	if err != nil {
		httpio.Error(w, r, "list workers", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiWorkers(ws))
}

// GetWorkerTeam returns the ten-level upline team or the magic team of a
// worker, with the commission the worker earned from each level.
func (h *WorkersHandler) GetWorkerTeam(w http.ResponseWriter, r *http.Request, workerId string, params api.GetWorkerTeamParams) {
	kind := api.TeamUpline
	if params.Kind != nil {
		kind = *params.Kind
	}
	treeKind := hierarchy.TreeKind(kind)
	if !treeKind.Valid() {
		httpio.JSON(w, http.StatusBadRequest, api.Error{Message: fmt.Sprintf("unknown team kind %q", kind)})
		return
	}

	if _, err := h.Workers.Get(r.Context(), workerId); err != nil {
		httpio.Error(w, r, "retrieve worker", err)
		return
	}

	var (
		levels []hierarchy.TeamLevel
		txs    []models.Transaction
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		levels, err = h.Hierarchy.Tree(ctx, workerId, treeKind, hierarchy.MaxDepth)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = h.Ledger.ListTransactionsByOwner(ctx, workerId)
		return err
	})
	if err := g.Wait(); err != nil {
		httpio.Error(w, r, "retrieve team", err)
		return
	}

	earned := levelCommission(txs, workerId, treeKind)
	team := &api.Team{
		WorkerId:        workerId,
		Kind:            kind,
		Levels:          make([]*api.TeamLevel, len(levels)),
		TotalCommission: decimal.Zero,
	}
	for i, l := range levels {
		c := earned[l.Level]
		team.Levels[i] = &api.TeamLevel{
			Level:      l.Level,
			Members:    mapping.ToApiWorkers(l.Members),
			Commission: c,
		}
		team.MemberCount += len(l.Members)
		team.TotalCommission = team.TotalCommission.Add(c)
	}
	httpio.JSON(w, http.StatusOK, team)
}

// levelCommission sums the owner's team credits by level. Upline credits are
// tagged L1..L10. Magic income only comes from direct magic recruits, so it
// all belongs to level 1.
func levelCommission(txs []models.Transaction, ownerID string, kind hierarchy.TreeKind) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal)
	for _, tx := range txs {
		if tx.OwnerId != ownerID || tx.Direction != models.Credit {
			continue
		}
		level := 0
		switch kind {
		case hierarchy.TreeMagic:
			if tx.WalletType == models.WalletMagic {
				level = 1
			}
		default:
			if tx.WalletType == models.WalletUpline || tx.WalletType == models.WalletDownline {
				level, _ = strconv.Atoi(strings.TrimPrefix(tx.Level, "L"))
			}
		}
		if level < 1 || level > hierarchy.MaxDepth {
			continue
		}
		out[level] = out[level].Add(tx.Amount)
	}
	return out
}
