package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"littletreat/internal/model"
	"littletreat/internal/service"
)

type statusRequest struct {
	OrderID string       `json:"orderId"`
	Status  model.Status `json:"status"`
}

type statusResponse struct {
	OrderID string       `json:"orderId"`
	Status  model.Status `json:"status"`
}

func queryFrom(r *http.Request) service.Query {
	q := r.URL.Query()
	status := q.Get("status")
	if status == "" {
		status = model.StatusAll
	}
	return service.Query{Status: status, Search: q.Get("q"), SortBy: q.Get("sort")}
}

func ListOrdersHandler(board *service.AdminBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if !board.Loaded() {
			if _, err := board.Refresh(r.Context()); err != nil {
				slog.Error("load orders failed", "error", err)
				writeError(w, http.StatusBadGateway, "failed to load orders, please try again", nil)
				return
			}
		}

		writeJSON(w, http.StatusOK, board.View(queryFrom(r)))
	}
}

func RefreshOrdersHandler(board *service.AdminBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		n, err := board.Refresh(r.Context())
		if err != nil {
			slog.Error("refresh orders failed", "error", err)
			writeError(w, http.StatusBadGateway, "failed to load orders, please try again", nil)
			return
		}
		slog.Info("orders loaded", "count", n)

		writeJSON(w, http.StatusOK, board.View(queryFrom(r)))
	}
}

func CycleStatusHandler(board *service.AdminBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		next, err := board.Cycle(req.OrderID)
		if errors.Is(err, service.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, statusResponse{OrderID: req.OrderID, Status: next})
	}
}

func SetStatusHandler(board *service.AdminBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := board.SetStatus(req.OrderID, req.Status)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, statusResponse{OrderID: req.OrderID, Status: req.Status})
		case errors.Is(err, service.ErrUnknownStatus):
			writeError(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrOrderNotFound):
			http.Error(w, "order not found", http.StatusNotFound)
		default:
			slog.Error("set status failed", "order", req.OrderID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}
