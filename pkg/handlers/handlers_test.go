package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/commission"
	"github.com/chris/tailorshop-ledger/pkg/handlers/httpio"
	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/payout"
	"github.com/chris/tailorshop-ledger/pkg/rates"
	"github.com/chris/tailorshop-ledger/pkg/requests"
	"github.com/chris/tailorshop-ledger/pkg/scheduler"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/chris/tailorshop-ledger/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.New()
	for _, w := range []models.Worker{
		{Id: "ADMIN", Role: models.RoleAdmin},
		{Id: "SHOW", Role: models.RoleShowroom, UplineId: "ADMIN"},
		{Id: "MEAS", Role: models.RoleMeasurement},
		{Id: "CUT", Role: models.RoleCutting},
	} {
		w := w
		require.NoError(t, store.PutWorker(context.Background(), &w))
	}

	writer := ledger.NewWriter(store)
	st := settings.New(store, nil)
	rs := rates.NewResolver(store, nil)
	tree := hierarchy.New(store)
	payouts := payout.New(store, commission.NewDistributor(writer, store, tree, st, rs), nil)

	h := NewApiHandler(Services{
		Engine:    workflow.NewEngine(store, store, writer, scheduler.NewInlineScheduler(payouts)),
		Workers:   workers.New(store),
		Requests:  requests.New(store, writer, st),
		Settings:  st,
		Rates:     rs,
		Hierarchy: tree,
		Ledger:    store,
	})
	srv := httptest.NewServer(api.HandlerWithOptions(h, api.ChiServerOptions{ErrorHandlerFunc: httpio.ParamError}))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string, out interface{}) int {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHandoverPaysWorker(t *testing.T) {
	srv := newServer(t)

	rate := `{"garment_type":"Shirt","role":"Measurement","normal":"40","medium":"60","regular":"80","vip":"100","rate_type":"Fixed"}`
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPut, "/rates/shirt-measure", rate, nil))

	var o api.Order
	body := `{"bill_number":"B-1","customer_id":"C1","garment_type":"Shirt","price":"1200","quality":"VIP","creator_id":"SHOW"}`
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/orders", body, &o))

	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/orders/"+o.Id+"/send", `{"worker_id":"SHOW","next_holder_id":"MEAS"}`, nil))
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/orders/"+o.Id+"/accept", `{"worker_id":"MEAS"}`, nil))
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/orders/"+o.Id+"/send", `{"worker_id":"MEAS","next_holder_id":"CUT"}`, nil))

	var stats api.Stats
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/workers/MEAS/stats", "", &stats))
	assert.Equal(t, "85", stats.TodaysWallet.String())
	assert.Equal(t, "85", stats.TotalIncome.String())

	var txs []api.Transaction
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/workers/MEAS/transactions", "", &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "Released Work Payout: B-1", txs[0].Description)
}

func TestRouting(t *testing.T) {
	srv := newServer(t)

	t.Run("Not Found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, call(t, srv, http.MethodGet, "/orders/missing", "", nil))
	})

	t.Run("Bad Query Parameter", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/ledger?limit=abc", "", nil))
	})

	t.Run("Limit Out Of Range", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/ledger?limit=500", "", nil))
	})

	t.Run("Settings", func(t *testing.T) {
		var st models.Settings
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/settings", "", &st))
		assert.True(t, st.IsWithdrawalEnabled)
	})
}

func TestWorkerRoutes(t *testing.T) {
	srv := newServer(t)

	var joined api.Worker
	body := `{"name":"Ravi","mobile":"9876543210","role":"Cutting","upline_id":"SHOW","magic_upline_id":"ADMIN"}`
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/workers", body, &joined))

	t.Run("Upline Team", func(t *testing.T) {
		var team api.Team
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/workers/ADMIN/team", "", &team))
		require.Len(t, team.Levels, hierarchy.MaxDepth)
		assert.Equal(t, "SHOW", team.Levels[0].Members[0].Id)
		assert.Equal(t, joined.Id, team.Levels[1].Members[0].Id)
	})

	t.Run("Magic Team", func(t *testing.T) {
		var team api.Team
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/workers/ADMIN/team?kind=magic", "", &team))
		assert.Equal(t, 1, team.MemberCount)
	})

	t.Run("Block Then List Receivers", func(t *testing.T) {
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodPut, "/workers/"+joined.Id, `{"status":"Blocked"}`, nil))

		var cutters []api.Worker
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/workers?role=Cutting&active=true", "", &cutters))
		require.Len(t, cutters, 1)
		assert.Equal(t, "CUT", cutters[0].Id)
	})

	t.Run("Missing Role", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, call(t, srv, http.MethodGet, "/workers", "", nil))
	})

	t.Run("Track Bill", func(t *testing.T) {
		order := `{"bill_number":"B-7","customer_id":"C1","garment_type":"Shirt","price":"900","quality":"Regular","creator_id":"SHOW"}`
		require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/orders", order, nil))

		var tracked []api.Order
		require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/orders?bill=B-7", "", &tracked))
		require.Len(t, tracked, 1)
		assert.Equal(t, "Order Placed", tracked[0].Stage)
	})
}
