package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"littletreat/internal/model"
)

// syncQueue runs tasks inline and records their errors.
type syncQueue struct {
	mu     sync.Mutex
	names  []string
	errors []error
}

func (q *syncQueue) Enqueue(name string, task func(ctx context.Context) error) bool {
	err := task(context.Background())
	q.mu.Lock()
	defer q.mu.Unlock()
	q.names = append(q.names, name)
	q.errors = append(q.errors, err)
	return true
}

type fakeLog struct {
	mu        sync.Mutex
	submitted []model.OrderPayload
	updates   map[string]model.Status
	records   []model.OrderRecord
	submitErr error
	updateErr error
	fetchErr  error
}

func (f *fakeLog) Submit(_ context.Context, p model.OrderPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, p)
	return f.submitErr
}

func (f *fakeLog) UpdateStatus(_ context.Context, orderID string, status model.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = make(map[string]model.Status)
	}
	f.updates[orderID] = status
	return f.updateErr
}

func (f *fakeLog) FetchAll(context.Context) ([]model.OrderRecord, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]model.OrderRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func testCatalog() []model.MenuItem {
	return []model.MenuItem{
		{ID: "brownie", Name: "Brownie", Price: decimal.NewFromInt(20), Unit: model.UnitPiece, Display: 1, Emoji: "🍫"},
		{ID: "cake", Name: "Plum Cake", Price: decimal.NewFromInt(100), Unit: model.UnitKg, Display: 1},
		{ID: "momo", Name: "Momos", Price: decimal.NewFromInt(50), Unit: model.UnitPlate, Display: 1, Emoji: "🥟"},
	}
}
