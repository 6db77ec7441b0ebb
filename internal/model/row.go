package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedRecord = errors.New("malformed order record")

// OrderColumns is the column layout of the order log sheet.
var OrderColumns = []string{
	"Order ID",
	"Delivery Date",
	"Delivery Time",
	"Flat",
	"Apartment",
	"Items",
	"Total",
	"Status",
	"Ordered At",
}

// ParseOrderRow maps a sheet row to an OrderRecord. rowIndex is the
// 1-based sheet row the values came from.
func ParseOrderRow(row []string, rowIndex int) (OrderRecord, error) {
	if len(row) != len(OrderColumns) {
		return OrderRecord{}, fmt.Errorf("%w: row %d has %d columns, want %d",
			ErrMalformedRecord, rowIndex, len(row), len(OrderColumns))
	}
	rec := OrderRecord{
		OrderID:      strings.TrimSpace(row[0]),
		DeliveryDate: row[1],
		DeliveryTime: row[2],
		Flat:         row[3],
		Apartment:    row[4],
		Items:        row[5],
		Total:        row[6],
		Status:       Status(strings.TrimSpace(row[7])),
		Timestamp:    row[8],
		RowIndex:     rowIndex,
	}
	if rec.OrderID == "" {
		return OrderRecord{}, fmt.Errorf("%w: row %d has no order id", ErrMalformedRecord, rowIndex)
	}
	return rec, nil
}

// IsHeaderRow reports whether row is the column header line.
func IsHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), OrderColumns[0])
}

func (p OrderPayload) Row() []string {
	return []string{p.OrderID, p.Date, p.Time, p.Flat, p.Apartment, p.Items, p.Total, string(p.Status), p.Timestamp}
}
