package service

import (
	"context"

	"littletreat/internal/model"
)

// Enqueuer accepts background work. Enqueue must not block; it reports
// whether the task was accepted.
type Enqueuer interface {
	Enqueue(name string, task func(ctx context.Context) error) bool
}

type OrderInput struct {
	Flat      string `json:"flatNumber"`
	Apartment string `json:"apartmentName"`
	Time      string `json:"time"`
}

// Checkout turns a cart into an order. The order log write is queued and
// never awaited, so the caller always gets the deep link back.
type Checkout struct {
	composer *Composer
	log      OrderLog
	queue    Enqueuer
	slots    []model.TimeSlot
}

func NewCheckout(composer *Composer, log OrderLog, queue Enqueuer, slots []model.TimeSlot) *Checkout {
	return &Checkout{composer: composer, log: log, queue: queue, slots: slots}
}

func (c *Checkout) Slots() []model.TimeSlot {
	return c.slots
}

func (c *Checkout) PlaceOrder(cart *Cart, in OrderInput) (Order, error) {
	if cart.IsEmpty() {
		return Order{}, ErrEmptyCart
	}

	form, err := ValidateForm(in.Flat, in.Apartment, in.Time, c.slots)
	if err != nil {
		return Order{}, err
	}

	order, err := c.composer.Compose(cart.LineItems(), cart.Total(), form)
	if err != nil {
		return Order{}, err
	}

	payload := order.Payload
	c.queue.Enqueue("submit order "+payload.OrderID, func(ctx context.Context) error {
		return c.log.Submit(ctx, payload)
	})

	return order, nil
}
