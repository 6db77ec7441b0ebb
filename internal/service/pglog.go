package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"littletreat/internal/model"
)

// PostgresLog keeps the order log in a local table with the sheet's columns.
type PostgresLog struct {
	db  *sql.DB
	loc *time.Location
}

func NewPostgresLog(db *sql.DB, loc *time.Location) *PostgresLog {
	return &PostgresLog{db: db, loc: loc}
}

func (s *PostgresLog) Submit(ctx context.Context, p model.OrderPayload) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO order_log (order_id, delivery_date, delivery_time, flat, apartment, items, total, status, ordered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (order_id) DO NOTHING
	`, p.OrderID, p.Date, p.Time, p.Flat, p.Apartment, p.Items, p.Total, string(model.StatusPending), p.Timestamp)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *PostgresLog) UpdateStatus(ctx context.Context, orderID string, status model.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE order_log SET status = $1 WHERE order_id = $2`, string(status), orderID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrUnknownOrder
	}
	return nil
}

func (s *PostgresLog) FetchAll(ctx context.Context) ([]model.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, delivery_date, delivery_time, flat, apartment, items, total, status, ordered_at
		FROM order_log
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var records []model.OrderRecord
	// row 1 is the sheet header, so data rows start at 2.
	rowIndex := 2
	for rows.Next() {
		var r model.OrderRecord
		var status string
		if err := rows.Scan(&r.OrderID, &r.DeliveryDate, &r.DeliveryTime, &r.Flat, &r.Apartment,
			&r.Items, &r.Total, &status, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		r.Status = model.Status(status)
		r.RowIndex = rowIndex
		rowIndex++
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return normalizeRecords(records, s.loc), nil
}
