package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"littletreat/internal/model"
)

const (
	SortDeliveryTime = "deliveryTime"
	SortTimestamp    = "timestamp"
)

// Query is the admin view's combined filter: status AND search, then sort.
type Query struct {
	Status string
	Search string
	SortBy string
}

type Summary struct {
	TotalOrders  int             `json:"totalOrders"`
	TodayOrders  int             `json:"todayOrders"`
	TodayRevenue decimal.Decimal `json:"todayRevenue"`
}

var (
	clockLabelPattern = regexp.MustCompile(`(?i)(\d+):(\d+)\s*(AM|PM)`)
	amountPattern     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ByStatus keeps orders whose status equals status; "all" (or "") keeps everything.
func ByStatus(orders []model.OrderRecord, status string) []model.OrderRecord {
	if status == "" || status == model.StatusAll {
		return clone(orders)
	}
	out := make([]model.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

// Search matches query case-insensitively against the id, address, items
// and delivery fields. A blank query keeps everything.
func Search(orders []model.OrderRecord, query string) []model.OrderRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return clone(orders)
	}
	out := make([]model.OrderRecord, 0, len(orders))
	for _, o := range orders {
		fields := []string{o.OrderID, o.Flat, o.Apartment, o.Items, o.DeliveryDate, o.DeliveryTime}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

// Sort orders by delivery time of day (ascending) for SortDeliveryTime and
// by submission time (newest first) for any other key.
func Sort(orders []model.OrderRecord, key string) []model.OrderRecord {
	out := clone(orders)
	if key == SortDeliveryTime {
		sort.SliceStable(out, func(i, j int) bool {
			return ClockMinutes(out[i].DeliveryTime) < ClockMinutes(out[j].DeliveryTime)
		})
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt(time.UTC).After(out[j].SubmittedAt(time.UTC))
	})
	return out
}

func Apply(orders []model.OrderRecord, q Query) []model.OrderRecord {
	return Sort(Search(ByStatus(orders, q.Status), q.Search), q.SortBy)
}

// ClockMinutes parses an "H:MM AM/PM" label into minutes since midnight.
// Anything unparseable counts as 0.
func ClockMinutes(label string) int {
	m := clockLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	pm := strings.EqualFold(m[3], "PM")
	switch {
	case pm && hours != 12:
		hours += 12
	case !pm && hours == 12:
		hours = 0
	}
	return hours*60 + minutes
}

// Summarize counts all orders and the ones submitted on now's calendar day,
// summing the latter's totals.
func Summarize(orders []model.OrderRecord, now time.Time) Summary {
	loc := now.Location()
	y, m, d := now.Date()
	s := Summary{TotalOrders: len(orders), TodayRevenue: decimal.Zero}
	for _, o := range orders {
		at := o.SubmittedAt(loc)
		if at.IsZero() {
			continue
		}
		oy, om, od := at.In(loc).Date()
		if oy != y || om != m || od != d {
			continue
		}
		s.TodayOrders++
		s.TodayRevenue = s.TodayRevenue.Add(ParseAmount(o.Total))
	}
	return s
}

// ParseAmount extracts the numeric part of a currency string such as "₹1,250".
func ParseAmount(total string) decimal.Decimal {
	match := amountPattern.FindString(strings.ReplaceAll(total, ",", ""))
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NextStatus advances Pending -> Dispatched -> Delivered -> Pending.
// Unrecognized statuses restart at Pending.
func NextStatus(current model.Status) model.Status {
	switch current {
	case model.StatusPending:
		return model.StatusDispatched
	case model.StatusDispatched:
		return model.StatusDelivered
	default:
		return model.StatusPending
	}
}

func clone(orders []model.OrderRecord) []model.OrderRecord {
	out := make([]model.OrderRecord, len(orders))
	copy(out, orders)
	return out
}
