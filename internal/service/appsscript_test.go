package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"littletreat/internal/model"
)

func testPayload() model.OrderPayload {
	return model.OrderPayload{
		OrderID:   "#LT123456007",
		Date:      "18 Oct 2026",
		Time:      "6:30 PM",
		Flat:      "A-12",
		Apartment: "Green Park",
		Items:     "Brownie x 3 pcs (₹60)",
		Total:     "₹60",
		Status:    model.StatusPending,
		Timestamp: "2026-10-16T12:34:56.789Z",
	}
}

func TestAppsScriptSubmitIgnoresResponse(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewAppsScriptClient(srv.URL, time.UTC)
	require.NoError(t, c.Submit(t.Context(), testPayload()))

	assert.Equal(t, "#LT123456007", got["orderId"])
	assert.Equal(t, "A-12", got["flatNumber"])
	assert.Equal(t, "Green Park", got["apartmentName"])
	assert.Equal(t, "₹60", got["total"])
	assert.Equal(t, "Pending", got["status"])
}

func TestAppsScriptSubmitTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewAppsScriptClient(url, time.UTC)
	assert.Error(t, c.Submit(t.Context(), testPayload()))
}

func TestAppsScriptUpdateStatus(t *testing.T) {
	var got model.StatusUpdate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewAppsScriptClient(srv.URL, time.UTC)
	require.NoError(t, c.UpdateStatus(t.Context(), "#LT1", model.StatusDispatched))
	assert.Equal(t, model.StatusUpdate{Action: "updateStatus", OrderID: "#LT1", Status: model.StatusDispatched}, got)
}

func TestAppsScriptFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success","count":2,"orders":[
			{"orderId":"#LT1","deliveryDate":"2026-10-18T00:00:00.000Z","deliveryTime":"6:30 PM","flat":"A-12",
			 "apartment":"Green Park","items":"Brownie x 3 pcs (₹60)","total":"₹60","status":"Pending",
			 "timestamp":"2026-10-15T10:00:00.000Z","rowIndex":2},
			{"orderId":"#LT2","deliveryDate":"18 Oct 2026","deliveryTime":"1899-12-30T19:00:00.000Z","flat":"B-3",
			 "apartment":"Rose Court","items":"Momos x 1 plate (₹50)","total":"₹50","status":"Delivered",
			 "timestamp":"2026-10-16T10:00:00.000Z","rowIndex":3}
		]}`)
	}))
	defer srv.Close()

	c := NewAppsScriptClient(srv.URL, time.UTC)
	orders, err := c.FetchAll(t.Context())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "#LT2", orders[0].OrderID)
	assert.Equal(t, "18 Oct 2026", orders[0].DeliveryDate)
	assert.Equal(t, "19:00", orders[0].DeliveryTime)
	assert.Equal(t, model.StatusDelivered, orders[0].Status)
	assert.Equal(t, 3, orders[0].RowIndex)

	assert.Equal(t, "#LT1", orders[1].OrderID)
	assert.Equal(t, "18 Oct 2026", orders[1].DeliveryDate)
	assert.Equal(t, "6:30 PM", orders[1].DeliveryTime)
}

func TestAppsScriptFetchAllErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"endpoint error", http.StatusOK, `{"status":"error","message":"Orders sheet not found"}`, ErrLogRejected},
		{"missing order id", http.StatusOK, `{"status":"success","orders":[{"orderId":""}]}`, model.ErrMalformedRecord},
		{"http failure", http.StatusBadGateway, `bad gateway`, nil},
		{"garbage body", http.StatusOK, `<html>`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewAppsScriptClient(srv.URL, time.UTC).FetchAll(t.Context())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
