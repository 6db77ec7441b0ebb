package service

import (
	"fmt"
	"strconv"
	"strings"

	"littletreat/internal/model"
)

const minutesPerDay = 24 * 60

// GenerateSlots expands a delivery time rule into slots from StartTime to
// EndTime inclusive. A missing or invalid rule, or a start after the end,
// yields no slots; slots never wrap past midnight.
func GenerateSlots(rule *model.DeliveryTimeRule) []model.TimeSlot {
	slots := []model.TimeSlot{}
	if rule == nil || rule.IntervalMinutes <= 0 {
		return slots
	}

	start, err := parseClock(rule.StartTime)
	if err != nil {
		return slots
	}
	end, err := parseClock(rule.EndTime)
	if err != nil {
		return slots
	}

	for m := start; m <= end; m += rule.IntervalMinutes {
		slots = append(slots, model.TimeSlot{
			Value: fmt.Sprintf("%02d:%02d", m/60, m%60),
			Label: clockLabel(m),
		})
	}
	return slots
}

func FindSlot(slots []model.TimeSlot, value string) (model.TimeSlot, bool) {
	for _, s := range slots {
		if s.Value == value {
			return s, true
		}
	}
	return model.TimeSlot{}, false
}

// parseClock converts "H:MM" or "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

func clockLabel(minutes int) string {
	minutes %= minutesPerDay
	h, m := minutes/60, minutes%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, suffix)
}
