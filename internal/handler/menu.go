package handler

import (
	"net/http"

	"littletreat/internal/model"
)

type deliveryResponse struct {
	DeliveryDate model.DeliveryDate `json:"deliveryDate"`
	TimeSlots    []model.TimeSlot   `json:"timeSlots"`
}

func MenuHandler(menu model.Menu) http.HandlerFunc {
	visible := menu.Visible()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, model.Menu{MenuItems: visible})
	}
}

func DeliveryHandler(date model.DeliveryDate, slots []model.TimeSlot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, deliveryResponse{DeliveryDate: date, TimeSlots: slots})
	}
}
