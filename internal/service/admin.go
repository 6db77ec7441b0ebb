package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"littletreat/internal/model"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUnknownStatus = errors.New("unknown order status")
)

type BoardView struct {
	Orders   []model.OrderRecord `json:"orders"`
	Summary  Summary             `json:"summary"`
	LoadedAt time.Time           `json:"loadedAt"`
}

// AdminBoard owns the admin snapshot of the order log. Status changes are
// applied to the snapshot immediately and sent to the log in the background.
type AdminBoard struct {
	log   OrderLog
	queue Enqueuer
	loc   *time.Location
	now   func() time.Time

	mu       sync.RWMutex
	orders   []model.OrderRecord
	loadedAt time.Time
}

func NewAdminBoard(log OrderLog, queue Enqueuer, loc *time.Location) *AdminBoard {
	return &AdminBoard{
		log:   log,
		queue: queue,
		loc:   loc,
		now:   time.Now,
	}
}

// Refresh replaces the snapshot. On failure the previous snapshot stays.
func (b *AdminBoard) Refresh(ctx context.Context) (int, error) {
	orders, err := b.log.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch orders: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = orders
	b.loadedAt = b.now()
	return len(orders), nil
}

func (b *AdminBoard) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.loadedAt.IsZero()
}

func (b *AdminBoard) View(q Query) BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BoardView{
		Orders:   Apply(b.orders, q),
		Summary:  Summarize(b.orders, b.now().In(b.loc)),
		LoadedAt: b.loadedAt,
	}
}

// Cycle moves an order to its next status.
func (b *AdminBoard) Cycle(orderID string) (model.Status, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.find(orderID)
	if i < 0 {
		return "", ErrOrderNotFound
	}
	current := b.orders[i].Status
	if !current.Known() {
		slog.Warn("unrecognized order status, resetting to pending", "order", orderID, "status", current)
	}
	next := NextStatus(current)
	b.apply(i, next)
	return next, nil
}

func (b *AdminBoard) SetStatus(orderID string, status model.Status) error {
	if !status.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.find(orderID)
	if i < 0 {
		return ErrOrderNotFound
	}
	b.apply(i, status)
	return nil
}

// apply must be called with mu held.
func (b *AdminBoard) apply(i int, status model.Status) {
	orderID := b.orders[i].OrderID
	b.queue.Enqueue("update status "+orderID, func(ctx context.Context) error {
		return b.log.UpdateStatus(ctx, orderID, status)
	})
	b.orders[i].Status = status
	slog.Info("status updated", "order", orderID, "status", status)
}

func (b *AdminBoard) find(orderID string) int {
	for i := range b.orders {
		if b.orders[i].OrderID == orderID {
			return i
		}
	}
	return -1
}
