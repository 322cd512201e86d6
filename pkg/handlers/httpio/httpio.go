// Package httpio holds the request decoding and error mapping shared by the handlers.
package httpio

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/requests"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage"
	"github.com/chris/tailorshop-ledger/pkg/workers"
	"github.com/chris/tailorshop-ledger/pkg/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Decimals validate as floats so gt/gte work on amounts.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Decode reads a JSON body into dst and validates its tags. It writes a 400
// and returns false on failure.
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		JSON(w, http.StatusBadRequest, api.Error{Message: fmt.Sprintf("Invalid request body: %v", err)})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			JSON(w, http.StatusBadRequest, api.Error{Message: "Invalid request body", Fields: fields})
			return false
		}
		JSON(w, http.StatusBadRequest, api.Error{Message: err.Error()})
		return false
	}
	return true
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Status maps a service error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict),
		errors.Is(err, storage.ErrDuplicateEntry),
		errors.Is(err, storage.ErrRequestNotPending),
		errors.Is(err, workflow.ErrNotHolder),
		errors.Is(err, workflow.ErrHandoverPending),
		errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrOrderClosed):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, requests.ErrInsufficientFunds),
		errors.Is(err, requests.ErrBelowMinimum),
		errors.Is(err, requests.ErrWithdrawalsDisabled),
		errors.Is(err, requests.ErrWithdrawalNotAllowed),
		errors.Is(err, requests.ErrMissingPayoutDetails),
		errors.Is(err, requests.ErrSelfTransfer),
		errors.Is(err, requests.ErrWorkerBlocked),
		errors.Is(err, workflow.ErrInvalidSecurityCode),
		errors.Is(err, workflow.ErrWrongRole),
		errors.Is(err, workflow.ErrWorkerBlocked),
		errors.Is(err, workers.ErrRoleNotAllowed),
		errors.Is(err, workers.ErrUnknownSponsor):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrInvalidEntry),
		errors.Is(err, requests.ErrInvalidRequest),
		errors.Is(err, settings.ErrInvalidSettings),
		errors.Is(err, workflow.ErrInvalidOrder),
		errors.Is(err, workers.ErrInvalidWorker):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error writes err with the status Status picks. Server errors are logged
// and their detail is not sent to the client.
func Error(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "op", op, "path", r.URL.Path, "error", err)
		msg = "Failed to " + op
	}
	JSON(w, status, api.Error{Message: msg})
}

// ParamError is the ErrorHandlerFunc for parameters that do not bind.
func ParamError(w http.ResponseWriter, r *http.Request, err error) {
	JSON(w, http.StatusBadRequest, api.Error{Message: err.Error()})
}
