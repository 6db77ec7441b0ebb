package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"littletreat/internal/metrics"
	"littletreat/internal/model"
	"littletreat/internal/service"
)

type orderResponse struct {
	OrderID string             `json:"orderId"`
	Message string             `json:"message"`
	Link    string             `json:"link"`
	Payload model.OrderPayload `json:"payload"`
}

func PlaceOrderHandler(sessions *service.CartSessions, checkout *service.Checkout, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		var in service.OrderInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var order service.Order
		err := sessions.Do(sessionID, func(c *service.Cart) error {
			var err error
			order, err = checkout.PlaceOrder(c, in)
			return err
		})

		var fields model.FieldErrors
		switch {
		case err == nil:
		case errors.Is(err, service.ErrEmptyCart):
			writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		case errors.As(err, &fields):
			writeError(w, http.StatusBadRequest, "invalid order details", fields)
			return
		default:
			slog.Error("place order failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m.OrderPlaced()
		slog.Info("order placed", "order", order.Payload.OrderID, "total", order.Payload.Total)

		writeJSON(w, http.StatusCreated, orderResponse{
			OrderID: order.Payload.OrderID,
			Message: order.Message,
			Link:    order.Link,
			Payload: order.Payload,
		})
	}
}
