package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"littletreat/internal/model"
)

var ErrEmptyCart = errors.New("please select at least one item to proceed")

const defaultItemEmoji = "📦"

// timestampLayout matches the millisecond ISO form browsers emit.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// OrderForm carries the validated address and chosen delivery slot.
type OrderForm struct {
	Flat      string
	Apartment string
	Slot      model.TimeSlot
}

type Order struct {
	Payload model.OrderPayload `json:"payload"`
	Message string             `json:"message"`
	Link    string             `json:"link"`
}

type Composer struct {
	shopName string
	date     model.DeliveryDate
	linkBase string
	now      func() time.Time
	randN    func(n int) int
}

func NewComposer(shopName string, date model.DeliveryDate, domain, number string) *Composer {
	return &Composer{
		shopName: shopName,
		date:     date,
		linkBase: fmt.Sprintf("https://%s/%s", domain, number),
		now:      time.Now,
		randN:    rand.IntN,
	}
}

// ValidateForm checks the address and delivery time fields against the
// offered slots.
func ValidateForm(flat, apartment, timeValue string, slots []model.TimeSlot) (OrderForm, error) {
	form := OrderForm{
		Flat:      strings.TrimSpace(flat),
		Apartment: strings.TrimSpace(apartment),
	}
	errs := model.FieldErrors{}

	if form.Flat == "" || form.Apartment == "" {
		errs["address"] = "please enter your flat number and apartment name"
	}
	if timeValue == "" {
		errs["time"] = "please select a delivery time"
	} else if slot, ok := FindSlot(slots, timeValue); ok {
		form.Slot = slot
	} else {
		errs["time"] = "selected delivery time is not available"
	}

	if len(errs) > 0 {
		return OrderForm{}, errs
	}
	return form, nil
}

// Compose builds the log payload, the customer message and its deep link.
func (c *Composer) Compose(lines []model.LineItem, total decimal.Decimal, form OrderForm) (Order, error) {
	if len(lines) == 0 || total.IsZero() {
		return Order{}, ErrEmptyCart
	}

	now := c.now()
	payload := model.OrderPayload{
		OrderID:   c.newOrderID(now),
		Date:      c.date.Date,
		Time:      form.Slot.Label,
		Flat:      form.Flat,
		Apartment: form.Apartment,
		Items:     FormatItems(lines),
		Total:     model.FormatAmount(total),
		Status:    model.StatusPending,
		Timestamp: now.UTC().Format(timestampLayout),
	}

	message := c.message(lines, total, form)
	return Order{
		Payload: payload,
		Message: message,
		Link:    c.linkBase + "?text=" + encodeURIComponent(message),
	}, nil
}

// newOrderID returns "#LT" + the last six digits of the millisecond clock
// + a three digit random suffix.
func (c *Composer) newOrderID(now time.Time) string {
	return fmt.Sprintf("#LT%06d%03d", now.UnixMilli()%1_000_000, c.randN(1000))
}

func (c *Composer) message(lines []model.LineItem, total decimal.Decimal, form OrderForm) string {
	var items strings.Builder
	for _, line := range lines {
		emoji := line.Item.Emoji
		if emoji == "" {
			emoji = defaultItemEmoji
		}
		fmt.Fprintf(&items, "%s %s: %d %s\n", emoji, line.Item.Name, line.Quantity,
			model.UnitDisplay(line.Item.Unit, line.Quantity))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ *%s Order*\n\n", c.shopName)
	b.WriteString("📦 *Order Items:*\n")
	b.WriteString(items.String())
	fmt.Fprintf(&b, "\n📅 *Delivery Date & Time:* %s, %s\n", c.date.String(), form.Slot.Label)
	fmt.Fprintf(&b, "💰 *Total Amount:* %s\n\n", model.FormatAmount(total))
	b.WriteString("📍 *Delivery Address:*\n")
	fmt.Fprintf(&b, "Flat: %s\n", form.Flat)
	fmt.Fprintf(&b, "Apartment: %s\n\n", form.Apartment)
	b.WriteString("Please confirm my order. Thank you! 😊")
	return b.String()
}

// FormatItems renders line items as "{name} x {qty} {unit} (₹{lineTotal})"
// joined by ", ".
func FormatItems(lines []model.LineItem) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s x %d %s (%s)",
			line.Item.Name, line.Quantity,
			model.UnitDisplay(line.Item.Unit, line.Quantity),
			model.FormatAmount(line.LineTotal())))
	}
	return strings.Join(parts, ", ")
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
