package handlers

import (
	"github.com/chris/tailorshop-ledger/pkg/api"
	ledgerhttp "github.com/chris/tailorshop-ledger/pkg/handlers/ledger"
	ordershttp "github.com/chris/tailorshop-ledger/pkg/handlers/orders"
	requestshttp "github.com/chris/tailorshop-ledger/pkg/handlers/requests"
	settingshttp "github.com/chris/tailorshop-ledger/pkg/handlers/settings"
	workershttp "github.com/chris/tailorshop-ledger/pkg/handlers/workers"
	"github.com/chris/tailorshop-ledger/pkg/hierarchy"
	"github.com/chris/tailorshop-ledger/pkg/rates"
	"github.com/chris/tailorshop-ledger/pkg/requests"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
	"github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/chris/tailorshop-ledger/pkg/workflow"
)

// Services are the domain services the API is served from.
type Services struct {
	Engine    *workflow.Engine
	Workers   *workers.Service
	Requests  *requests.Service
	Settings  *settings.Service
	Rates     *rates.Resolver
	Hierarchy *hierarchy.Service
	Ledger    storage.LedgerReader
	Publisher websockets.Publisher
}

// ApiHandler implements the server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*ordershttp.OrdersHandler
	*ledgerhttp.LedgerHandler
	*requestshttp.RequestsHandler
	*settingshttp.SettingsHandler
	*workershttp.WorkersHandler
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(s Services) *ApiHandler {
	if s.Publisher == nil {
		s.Publisher = &websockets.NoOpPublisher{}
	}
	return &ApiHandler{
		OrdersHandler:   ordershttp.NewOrdersHandler(s.Engine, s.Publisher),
		LedgerHandler:   ledgerhttp.NewLedgerHandler(s.Ledger, s.Hierarchy),
		RequestsHandler: requestshttp.NewRequestsHandler(s.Requests, s.Ledger, s.Publisher),
		SettingsHandler: settingshttp.NewSettingsHandler(s.Settings, s.Rates),
		WorkersHandler:  workershttp.NewWorkersHandler(s.Workers, s.Hierarchy, s.Ledger),
	}
}
