package orders

import (
	"log/slog"
	"net/http"

	"github.com/chris/tailorshop-ledger/pkg/api"
	"github.com/chris/tailorshop-ledger/pkg/handlers/httpio"
	"github.com/chris/tailorshop-ledger/pkg/mapping"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
	"github.com/chris/tailorshop-ledger/pkg/workflow"
	"github.com/shopspring/decimal"
)

// OrdersHandler holds the dependencies for work unit handlers.
type OrdersHandler struct {
	Engine    *workflow.Engine
	Publisher websockets.Publisher
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(engine *workflow.Engine, publisher websockets.Publisher) *OrdersHandler {
	if publisher == nil {
		publisher = &websockets.NoOpPublisher{}
	}
	return &OrdersHandler{Engine: engine, Publisher: publisher}
}

// CreateOrder books a new work unit. The response carries the delivery
// security code, which is not returned anywhere else.
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body api.NewOrder
	if !httpio.Decode(w, r, &body) {
		return
	}

	o, err := h.Engine.Create(r.Context(), mapping.ToDomainNewOrder(&body))
	if err != nil {
		httpio.Error(w, r, "create order", err)
		return
	}

	out := mapping.ToApiOrder(o)
	out.SecurityCode = &o.SecurityCode
	httpio.JSON(w, http.StatusCreated, out)
}

// GetOrder returns a work unit by id.
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request, orderId string) {
	o, err := h.Engine.Get(r.Context(), orderId)
	if err != nil {
		httpio.Error(w, r, "retrieve order", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiOrder(o))
}

// SendOrder hands a work unit to the next holder.
func (h *OrdersHandler) SendOrder(w http.ResponseWriter, r *http.Request, orderId string) {
	var body api.SendOrderRequest
	if !httpio.Decode(w, r, &body) {
		return
	}

	o, err := h.Engine.Send(r.Context(), orderId, body.WorkerId, body.NextHolderId)
	if err != nil {
		httpio.Error(w, r, "send order", err)
		return
	}

	h.notify(r, o)
	httpio.JSON(w, http.StatusOK, mapping.ToApiOrder(o))
}

// AcceptOrder confirms that the holder received the work unit.
func (h *OrdersHandler) AcceptOrder(w http.ResponseWriter, r *http.Request, orderId string) {
	var body api.WorkerAction
	if !httpio.Decode(w, r, &body) {
		return
	}

	o, err := h.Engine.Accept(r.Context(), orderId, body.WorkerId)
	if err != nil {
		httpio.Error(w, r, "accept order", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiOrder(o))
}

// DeliverOrder closes a work unit against the customer's security code.
func (h *OrdersHandler) DeliverOrder(w http.ResponseWriter, r *http.Request, orderId string) {
	var body api.DeliverOrderRequest
	if !httpio.Decode(w, r, &body) {
		return
	}
	cod := decimal.Zero
	if body.CodAmount != nil {
		cod = *body.CodAmount
	}

	o, err := h.Engine.Deliver(r.Context(), orderId, body.WorkerId, body.SecurityCode, cod)
	if err != nil {
		httpio.Error(w, r, "deliver order", err)
		return
	}

	h.notify(r, o)
	httpio.JSON(w, http.StatusOK, mapping.ToApiOrder(o))
}

// ReturnOrder sends a work unit back to the showroom.
func (h *OrdersHandler) ReturnOrder(w http.ResponseWriter, r *http.Request, orderId string) {
	var body api.WorkerAction
	if !httpio.Decode(w, r, &body) {
		return
	}

	o, err := h.Engine.Return(r.Context(), orderId, body.WorkerId)
	if err != nil {
		httpio.Error(w, r, "return order", err)
		return
	}

	h.notify(r, o)
	httpio.JSON(w, http.StatusOK, mapping.ToApiOrder(o))
}

// SaveOrder parks a work unit in the holder's Save folder.
func (h *OrdersHandler) SaveOrder(w http.ResponseWriter, r *http.Request, orderId string) {
	var body api.WorkerAction
	if !httpio.Decode(w, r, &body) {
		return
	}

	o, err := h.Engine.Save(r.Context(), orderId, body.WorkerId)
	if err != nil {
		httpio.Error(w, r, "save order", err)
		return
	}
	httpio.JSON(w, http.StatusOK, mapping.ToApiOrder(o))
}

// ListWorkerOrders returns the work units a worker currently holds.
func (h *OrdersHandler) ListWorkerOrders(w http.ResponseWriter, r *http.Request, workerId string) {
	orders, err := h.Engine.ListByHolder(r.Context(), workerId)
	if err != nil {
		httpio.Error(w, r, "retrieve orders", err)
		return
	}
	httpio.JSON(w, http.StatusOK, toApiOrders(orders))
}

// ListOrders tracks the garments booked on a customer's bill.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request, params api.ListOrdersParams) {
	orders, err := h.Engine.ListByBill(r.Context(), params.Bill)
	if err != nil {
		httpio.Error(w, r, "track bill", err)
		return
	}
	httpio.JSON(w, http.StatusOK, toApiOrders(orders))
}

func toApiOrders(orders []models.Order) []*api.Order {
	out := make([]*api.Order, len(orders))
	for i := range orders {
		out[i] = mapping.ToApiOrder(&orders[i])
	}
	return out
}

func (h *OrdersHandler) notify(r *http.Request, o *models.Order) {
	msg := websockets.Message{
		Type: websockets.MessageTypeHandover,
		Payload: websockets.HandoverPayload{
			OrderID:    o.Id,
			BillNumber: o.BillNumber,
			Stage:      string(o.Stage),
			HolderID:   o.AssignedWorkerId,
		},
	}
	if err := h.Publisher.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish handover", "order_id", o.Id, "error", err)
	}
}
