package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"littletreat/internal/model"
	"littletreat/internal/service"
)

type cartResponse struct {
	Lines []model.LineItem `json:"lines"`
	Total decimal.Decimal  `json:"total"`
	Empty bool             `json:"empty"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

func cartView(c *service.Cart) cartResponse {
	return cartResponse{Lines: c.LineItems(), Total: c.Total(), Empty: c.IsEmpty()}
}

func GetCartHandler(sessions *service.CartSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		var view cartResponse
		_ = sessions.Do(sessionID, func(c *service.Cart) error {
			view = cartView(c)
			return nil
		})
		writeJSON(w, http.StatusOK, view)
	}
}

func SetQuantityHandler(sessions *service.CartSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		var req quantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		var view cartResponse
		err := sessions.Do(sessionID, func(c *service.Cart) error {
			if err := c.SetQuantity(itemID, req.Quantity); err != nil {
				return err
			}
			view = cartView(c)
			return nil
		})
		if errors.Is(err, service.ErrUnknownItem) {
			http.Error(w, "unknown menu item", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func AdjustQuantityHandler(sessions *service.CartSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		var req adjustRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		itemID := chi.URLParam(r, "itemID")
		var view cartResponse
		err := sessions.Do(sessionID, func(c *service.Cart) error {
			if _, err := c.Adjust(itemID, req.Delta); err != nil {
				return err
			}
			view = cartView(c)
			return nil
		})
		if errors.Is(err, service.ErrUnknownItem) {
			http.Error(w, "unknown menu item", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func ClearCartHandler(sessions *service.CartSessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sessionID, ok := sessionFrom(w, r)
		if !ok {
			return
		}

		_ = sessions.Do(sessionID, func(c *service.Cart) error {
			c.Clear()
			return nil
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
