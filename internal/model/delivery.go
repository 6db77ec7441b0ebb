package model

type DeliveryDate struct {
	Date    string `json:"date"`
	DayName string `json:"dayName"`
}

func (d DeliveryDate) String() string {
	if d.DayName == "" {
		return d.Date
	}
	return d.DayName + ", " + d.Date
}

type DeliveryTimeRule struct {
	StartTime       string `json:"startTime"` // HH:MM, 24-hour
	EndTime         string `json:"endTime"`
	IntervalMinutes int    `json:"intervalMinutes"`
}

type TimeSlot struct {
	Value string `json:"value"` // HH:MM
	Label string `json:"label"` // h:MM AM/PM
}
