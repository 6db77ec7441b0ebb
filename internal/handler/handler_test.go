package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"littletreat/internal/model"
	"littletreat/internal/mw"
	"littletreat/internal/service"
)

const testSecret = "handler-secret"

type inlineQueue struct{}

func (inlineQueue) Enqueue(_ string, task func(ctx context.Context) error) bool {
	_ = task(context.Background())
	return true
}

type memoryLog struct {
	mu       sync.Mutex
	records  []model.OrderRecord
	fetchErr error
}

func (l *memoryLog) Submit(_ context.Context, p model.OrderPayload) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, p.Record())
	return nil
}

func (l *memoryLog) UpdateStatus(_ context.Context, orderID string, status model.Status) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].OrderID == orderID {
			l.records[i].Status = status
			return nil
		}
	}
	return service.ErrUnknownOrder
}

func (l *memoryLog) FetchAll(context.Context) ([]model.OrderRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fetchErr != nil {
		return nil, l.fetchErr
	}
	out := make([]model.OrderRecord, len(l.records))
	copy(out, l.records)
	return out, nil
}

var errSheetDown = errors.New("sheet down")

func testMenu() model.Menu {
	return model.Menu{MenuItems: []model.MenuItem{
		{ID: "brownie", Name: "Brownie", Price: decimal.NewFromInt(20), Unit: model.UnitPiece, Display: 1, Emoji: "🍫"},
		{ID: "momo", Name: "Momos", Price: decimal.NewFromInt(50), Unit: model.UnitPlate, Display: 1, Emoji: "🥟"},
		{ID: "secret", Name: "Off Menu", Price: decimal.NewFromInt(10), Unit: model.UnitPiece, Display: 0},
	}}
}

func newTestRouter(log *memoryLog) http.Handler {
	menu := testMenu()
	date := model.DeliveryDate{Date: "18 Oct 2026", DayName: "Saturday"}
	slots := service.GenerateSlots(&model.DeliveryTimeRule{StartTime: "18:00", EndTime: "19:00", IntervalMinutes: 30})

	sessions := service.NewCartSessions(menu.Visible())
	composer := service.NewComposer("Little Treat", date, "wa.me", "917710963036")
	checkout := service.NewCheckout(composer, log, inlineQueue{}, slots)
	board := service.NewAdminBoard(log, inlineQueue{}, time.UTC)

	r := chi.NewRouter()
	r.Get("/api/menu", MenuHandler(menu))
	r.Get("/api/delivery", DeliveryHandler(date, slots))
	r.Group(func(r chi.Router) {
		r.Use(mw.Session(testSecret, time.Hour))
		r.Get("/api/cart", GetCartHandler(sessions))
		r.Put("/api/cart/{itemID}", SetQuantityHandler(sessions))
		r.Post("/api/cart/{itemID}/adjust", AdjustQuantityHandler(sessions))
		r.Delete("/api/cart", ClearCartHandler(sessions))
		r.Post("/api/orders", PlaceOrderHandler(sessions, checkout, nil))
	})
	r.Get("/api/admin/orders", ListOrdersHandler(board))
	r.Post("/api/admin/orders/refresh", RefreshOrdersHandler(board))
	r.Post("/api/admin/orders/cycle", CycleStatusHandler(board))
	r.Post("/api/admin/orders/status", SetStatusHandler(board))
	return r
}

// client keeps the session token the server hands out.
type client struct {
	t     *testing.T
	h     http.Handler
	token string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	if auth := rec.Header().Get("Authorization"); auth != "" {
		c.token = auth
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
