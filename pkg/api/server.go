package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /orders)
	ListOrders(w http.ResponseWriter, r *http.Request, params ListOrdersParams)
	// (POST /orders)
	CreateOrder(w http.ResponseWriter, r *http.Request)
	// (GET /orders/{orderId})
	GetOrder(w http.ResponseWriter, r *http.Request, orderId string)
	// (POST /orders/{orderId}/send)
	SendOrder(w http.ResponseWriter, r *http.Request, orderId string)
	// (POST /orders/{orderId}/accept)
	AcceptOrder(w http.ResponseWriter, r *http.Request, orderId string)
	// (POST /orders/{orderId}/deliver)
	DeliverOrder(w http.ResponseWriter, r *http.Request, orderId string)
	// (POST /orders/{orderId}/return)
	ReturnOrder(w http.ResponseWriter, r *http.Request, orderId string)
	// (POST /orders/{orderId}/save)
	SaveOrder(w http.ResponseWriter, r *http.Request, orderId string)
	// (GET /workers)
	ListWorkers(w http.ResponseWriter, r *http.Request, params ListWorkersParams)
	// (POST /workers)
	RegisterWorker(w http.ResponseWriter, r *http.Request)
	// (GET /workers/{workerId})
	GetWorker(w http.ResponseWriter, r *http.Request, workerId string)
	// (PUT /workers/{workerId})
	UpdateWorker(w http.ResponseWriter, r *http.Request, workerId string)
	// (GET /workers/{workerId}/team)
	GetWorkerTeam(w http.ResponseWriter, r *http.Request, workerId string, params GetWorkerTeamParams)
	// (GET /workers/{workerId}/orders)
	ListWorkerOrders(w http.ResponseWriter, r *http.Request, workerId string)
	// (GET /workers/{workerId}/transactions)
	ListWorkerTransactions(w http.ResponseWriter, r *http.Request, workerId string)
	// (GET /workers/{workerId}/stats)
	GetWorkerStats(w http.ResponseWriter, r *http.Request, workerId string, params GetWorkerStatsParams)
	// (GET /ledger)
	ListLedgerEntries(w http.ResponseWriter, r *http.Request, params ListLedgerEntriesParams)
	// (POST /requests)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	// (POST /requests/{requestId}/approve)
	ApproveRequest(w http.ResponseWriter, r *http.Request, requestId string)
	// (POST /requests/{requestId}/reject)
	RejectRequest(w http.ResponseWriter, r *http.Request, requestId string)
	// (POST /transfers)
	CreateTransfer(w http.ResponseWriter, r *http.Request)
	// (POST /releases)
	CreateRelease(w http.ResponseWriter, r *http.Request)
	// (GET /settings)
	GetSettings(w http.ResponseWriter, r *http.Request)
	// (PUT /settings)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	// (GET /rates)
	ListRates(w http.ResponseWriter, r *http.Request)
	// (PUT /rates/{rateId})
	PutRate(w http.ResponseWriter, r *http.Request, rateId string)
}

// MiddlewareFunc wraps a single route handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// InvalidParamFormatError is passed to ErrorHandlerFunc when a parameter does not bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.Handler) {
	for _, middleware := range siw.HandlerMiddlewares {
		h = middleware(h)
	}
	h.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) pathParam(w http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) withPath(name string, fn func(w http.ResponseWriter, r *http.Request, id string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if !siw.pathParam(w, r, name, &id) {
			return
		}
		siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fn(w, r, id)
		}))
	}
}

func (siw *ServerInterfaceWrapper) plain(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siw.serve(w, r, fn)
	}
}

// GetWorkerStats operation middleware
func (siw *ServerInterfaceWrapper) GetWorkerStats(w http.ResponseWriter, r *http.Request) {
	var workerId string
	if !siw.pathParam(w, r, "workerId", &workerId) {
		return
	}

	var params GetWorkerStatsParams
	if err := runtime.BindQueryParameter("form", true, false, "as_of", r.URL.Query(), &params.AsOf); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "as_of", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetWorkerStats(w, r, workerId, params)
	}))
}

// ListLedgerEntries operation middleware
func (siw *ServerInterfaceWrapper) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	var params ListLedgerEntriesParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListLedgerEntries(w, r, params)
	}))
}

// ListOrders operation middleware
func (siw *ServerInterfaceWrapper) ListOrders(w http.ResponseWriter, r *http.Request) {
	var params ListOrdersParams
	if err := runtime.BindQueryParameter("form", true, true, "bill", r.URL.Query(), &params.Bill); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "bill", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListOrders(w, r, params)
	}))
}

// ListWorkers operation middleware
func (siw *ServerInterfaceWrapper) ListWorkers(w http.ResponseWriter, r *http.Request) {
	var params ListWorkersParams
	if err := runtime.BindQueryParameter("form", true, true, "role", r.URL.Query(), &params.Role); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "role", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "active", r.URL.Query(), &params.Active); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "active", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListWorkers(w, r, params)
	}))
}

// GetWorkerTeam operation middleware
func (siw *ServerInterfaceWrapper) GetWorkerTeam(w http.ResponseWriter, r *http.Request) {
	var workerId string
	if !siw.pathParam(w, r, "workerId", &workerId) {
		return
	}

	var params GetWorkerTeamParams
	if err := runtime.BindQueryParameter("form", true, false, "kind", r.URL.Query(), &params.Kind); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "kind", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetWorkerTeam(w, r, workerId, params)
	}))
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerFromMux creates http.Handler with routing matching the API on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{BaseRouter: r})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}
	base := options.BaseURL

	r.Group(func(r chi.Router) {
		r.Get(base+"/orders", wrapper.ListOrders)
		r.Post(base+"/orders", wrapper.plain(si.CreateOrder))
		r.Get(base+"/orders/{orderId}", wrapper.withPath("orderId", si.GetOrder))
		r.Post(base+"/orders/{orderId}/send", wrapper.withPath("orderId", si.SendOrder))
		r.Post(base+"/orders/{orderId}/accept", wrapper.withPath("orderId", si.AcceptOrder))
		r.Post(base+"/orders/{orderId}/deliver", wrapper.withPath("orderId", si.DeliverOrder))
		r.Post(base+"/orders/{orderId}/return", wrapper.withPath("orderId", si.ReturnOrder))
		r.Post(base+"/orders/{orderId}/save", wrapper.withPath("orderId", si.SaveOrder))

		r.Get(base+"/workers", wrapper.ListWorkers)
		r.Post(base+"/workers", wrapper.plain(si.RegisterWorker))
		r.Get(base+"/workers/{workerId}", wrapper.withPath("workerId", si.GetWorker))
		r.Put(base+"/workers/{workerId}", wrapper.withPath("workerId", si.UpdateWorker))
		r.Get(base+"/workers/{workerId}/team", wrapper.GetWorkerTeam)
		r.Get(base+"/workers/{workerId}/orders", wrapper.withPath("workerId", si.ListWorkerOrders))
		r.Get(base+"/workers/{workerId}/transactions", wrapper.withPath("workerId", si.ListWorkerTransactions))
		r.Get(base+"/workers/{workerId}/stats", wrapper.GetWorkerStats)
		r.Get(base+"/ledger", wrapper.ListLedgerEntries)

		r.Post(base+"/requests", wrapper.plain(si.CreateRequest))
		r.Post(base+"/requests/{requestId}/approve", wrapper.withPath("requestId", si.ApproveRequest))
		r.Post(base+"/requests/{requestId}/reject", wrapper.withPath("requestId", si.RejectRequest))
		r.Post(base+"/transfers", wrapper.plain(si.CreateTransfer))
		r.Post(base+"/releases", wrapper.plain(si.CreateRelease))

		r.Get(base+"/settings", wrapper.plain(si.GetSettings))
		r.Put(base+"/settings", wrapper.plain(si.UpdateSettings))
		r.Get(base+"/rates", wrapper.plain(si.ListRates))
		r.Put(base+"/rates/{rateId}", wrapper.withPath("rateId", si.PutRate))
	})

	return r
}
