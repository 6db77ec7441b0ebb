package database

import (
	"context"
	"database/sql"
	"fmt"
)

// order_log mirrors the spreadsheet columns; values are kept as the text
// the storefront sent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS order_log (
    id BIGSERIAL PRIMARY KEY,
    order_id TEXT NOT NULL UNIQUE,
    delivery_date TEXT NOT NULL DEFAULT '',
    delivery_time TEXT NOT NULL DEFAULT '',
    flat TEXT NOT NULL DEFAULT '',
    apartment TEXT NOT NULL DEFAULT '',
    items TEXT NOT NULL DEFAULT '',
    total TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'Pending',
    ordered_at TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_order_log_status ON order_log(status);
`

func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
