package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/handlers/workers"
	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/chris/tailorshop-ledger/pkg/storage/mocks"
	workerspkg "github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*workers.WorkersHandler, *memory.Store) {
	t.Helper()
	store := memory.New()
	for _, w := range []models.Worker{
		{Id: "ROOT", Name: "Root", Role: models.RoleAdmin, Status: models.WorkerActive},
		{Id: "A", Name: "A", Role: models.RoleCutting, Status: models.WorkerActive, UplineId: "ROOT"},
		{Id: "B", Name: "B", Role: models.RoleCutting, Status: models.WorkerBlocked, UplineId: "A", MagicUplineId: "ROOT"},
	} {
		w := w
		require.NoError(t, store.PutWorker(context.Background(), &w))
	}
	return workers.NewWorkersHandler(workerspkg.New(store), hierarchy.New(store), store), store
}

func credit(id, owner string, amount int64, wallet models.WalletType, level string) *models.Transaction {
	return &models.Transaction{
		Id:         id,
		OwnerId:    owner,
		Amount:     decimal.NewFromInt(amount),
		Direction:  models.Credit,
		WalletType: wallet,
		Level:      level,
	}
}

func TestRegisterWorker(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		h, store := setup(t)
		body := `{"name":"Ravi","mobile":"9876543210","role":"Shirt Maker","upline_id":"A","upi_id":"ravi@upi"}`
		rr := httptest.NewRecorder()

		h.RegisterWorker(rr, httptest.NewRequest(http.MethodPost, "/workers", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var got api.Worker
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.NotEmpty(t, got.Id)
		assert.Equal(t, "Active", got.Status)
		require.NotNil(t, got.UplineId)
		assert.Equal(t, "A", *got.UplineId)
		assert.NotContains(t, rr.Body.String(), "ravi@upi")

		saved, err := store.GetWorker(context.Background(), got.Id)
		require.NoError(t, err)
		assert.Equal(t, "ravi@upi", saved.UpiId)
	})

	t.Run("Bad Request - Validation", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.RegisterWorker(rr, httptest.NewRequest(http.MethodPost, "/workers", strings.NewReader(`{"name":"Ravi","mobile":"12","role":"Shirt Maker"}`)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Admin Not Allowed", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.RegisterWorker(rr, httptest.NewRequest(http.MethodPost, "/workers", strings.NewReader(`{"name":"X","mobile":"9876543210","role":"Admin"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Blocked Sponsor", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.RegisterWorker(rr, httptest.NewRequest(http.MethodPost, "/workers", strings.NewReader(`{"name":"X","mobile":"9876543210","role":"Cutting","upline_id":"B"}`)))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestUpdateWorker(t *testing.T) {
	t.Run("Unblock And Assign Magic Sponsor", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.UpdateWorker(rr, httptest.NewRequest(http.MethodPut, "/workers/B", strings.NewReader(`{"status":"Active","magic_upline_id":"A"}`)), "B")

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var got api.Worker
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Active", got.Status)
		require.NotNil(t, got.MagicUplineId)
		assert.Equal(t, "A", *got.MagicUplineId)
	})

	t.Run("Bad Status", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.UpdateWorker(rr, httptest.NewRequest(http.MethodPut, "/workers/B", strings.NewReader(`{"status":"Gone"}`)), "B")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.UpdateWorker(rr, httptest.NewRequest(http.MethodPut, "/workers/missing", strings.NewReader(`{"status":"Blocked"}`)), "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListWorkers(t *testing.T) {
	h, _ := setup(t)
	active := true

	rr := httptest.NewRecorder()
	h.ListWorkers(rr, httptest.NewRequest(http.MethodGet, "/workers?role=Cutting&active=true", nil), api.ListWorkersParams{Role: "Cutting", Active: &active})

	require.Equal(t, http.StatusOK, rr.Code)
	var got []api.Worker
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Id)

	rr = httptest.NewRecorder()
	h.ListWorkers(rr, httptest.NewRequest(http.MethodGet, "/workers?role=Tailor", nil), api.ListWorkersParams{Role: "Tailor"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetWorkerTeam(t *testing.T) {
	t.Run("Upline Levels With Commission", func(t *testing.T) {
		h, store := setup(t)
		ctx := context.Background()
		require.NoError(t, store.AppendTransaction(ctx, credit("t1", "ROOT", 4, models.WalletUpline, "L1")))
		require.NoError(t, store.AppendTransaction(ctx, credit("t2", "ROOT", 2, models.WalletDownline, "L2")))
		require.NoError(t, store.AppendTransaction(ctx, credit("t3", "ROOT", 9, models.WalletMagic, "")))

		rr := httptest.NewRecorder()
		h.GetWorkerTeam(rr, httptest.NewRequest(http.MethodGet, "/workers/ROOT/team", nil), "ROOT", api.GetWorkerTeamParams{})

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var team api.Team
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &team))
		assert.Equal(t, api.TeamUpline, team.Kind)
		require.Len(t, team.Levels, hierarchy.MaxDepth)
		assert.Equal(t, 2, team.MemberCount)
		require.Len(t, team.Levels[0].Members, 1)
		assert.Equal(t, "A", team.Levels[0].Members[0].Id)
		assert.Equal(t, "B", team.Levels[1].Members[0].Id)
		assert.Equal(t, "4", team.Levels[0].Commission.String())
		assert.Equal(t, "2", team.Levels[1].Commission.String())
		assert.Equal(t, "6", team.TotalCommission.String())
	})

	t.Run("Magic Team", func(t *testing.T) {
		h, store := setup(t)
		require.NoError(t, store.AppendTransaction(context.Background(), credit("t1", "ROOT", 9, models.WalletMagic, "")))
		kind := api.TeamMagic

		rr := httptest.NewRecorder()
		h.GetWorkerTeam(rr, httptest.NewRequest(http.MethodGet, "/workers/ROOT/team?kind=magic", nil), "ROOT", api.GetWorkerTeamParams{Kind: &kind})

		require.Equal(t, http.StatusOK, rr.Code)
		var team api.Team
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &team))
		assert.Equal(t, 1, team.MemberCount)
		assert.Equal(t, "B", team.Levels[0].Members[0].Id)
		assert.Equal(t, "9", team.TotalCommission.String())
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		h, _ := setup(t)
		kind := api.TeamKind("sideways")

		rr := httptest.NewRecorder()
		h.GetWorkerTeam(rr, httptest.NewRequest(http.MethodGet, "/workers/ROOT/team?kind=sideways", nil), "ROOT", api.GetWorkerTeamParams{Kind: &kind})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unknown Worker", func(t *testing.T) {
		h, _ := setup(t)

		rr := httptest.NewRecorder()
		h.GetWorkerTeam(rr, httptest.NewRequest(http.MethodGet, "/workers/missing/team", nil), "missing", api.GetWorkerTeamParams{})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("GetWorker", mock.Anything, "ROOT").Return(&models.Worker{Id: "ROOT"}, nil)
		mockStorage.On("ListDirects", mock.Anything, mock.Anything).Return([]models.Worker{}, nil).Maybe()
		mockStorage.On("ListTransactionsByOwner", mock.Anything, "ROOT").Return(nil, errors.New("db error"))
		h := workers.NewWorkersHandler(workerspkg.New(mockStorage), hierarchy.New(mockStorage), mockStorage)

		rr := httptest.NewRecorder()
		h.GetWorkerTeam(rr, httptest.NewRequest(http.MethodGet, "/workers/ROOT/team", nil), "ROOT", api.GetWorkerTeamParams{})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
