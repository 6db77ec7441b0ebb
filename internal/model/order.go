package model

import (
	"time"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusDispatched Status = "Dispatched"
	StatusDelivered  Status = "Delivered"
)

// StatusAll disables status filtering in admin queries.
const StatusAll = "all"

func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusDispatched, StatusDelivered:
		return true
	}
	return false
}

// OrderPayload is the new-order body posted to the order log.
type OrderPayload struct {
	OrderID   string `json:"orderId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Flat      string `json:"flatNumber"`
	Apartment string `json:"apartmentName"`
	Items     string `json:"items"`
	Total     string `json:"total"`
	Status    Status `json:"status"`
	Timestamp string `json:"timestamp"`
}

const ActionUpdateStatus = "updateStatus"

type StatusUpdate struct {
	Action  string `json:"action"`
	OrderID string `json:"orderId"`
	Status  Status `json:"status"`
}

// OrderRecord is one logged order as read back from the order log.
type OrderRecord struct {
	OrderID      string `json:"orderId"`
	DeliveryDate string `json:"deliveryDate"`
	DeliveryTime string `json:"deliveryTime"`
	Flat         string `json:"flat"`
	Apartment    string `json:"apartment"`
	Items        string `json:"items"`
	Total        string `json:"total"`
	Status       Status `json:"status"`
	Timestamp    string `json:"timestamp"`
	RowIndex     int    `json:"rowIndex,omitempty"`
}

func (p OrderPayload) Record() OrderRecord {
	return OrderRecord{
		OrderID:      p.OrderID,
		DeliveryDate: p.Date,
		DeliveryTime: p.Time,
		Flat:         p.Flat,
		Apartment:    p.Apartment,
		Items:        p.Items,
		Total:        p.Total,
		Status:       p.Status,
		Timestamp:    p.Timestamp,
	}
}

// SubmittedAt parses the submission timestamp; zero time when unparseable.
func (r OrderRecord) SubmittedAt(loc *time.Location) time.Time {
	t, err := ParseTimestamp(r.Timestamp, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
