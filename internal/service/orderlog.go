package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"littletreat/internal/config"
	"littletreat/internal/model"
)

var (
	ErrLogDisabled  = errors.New("order log is disabled")
	ErrLogRejected  = errors.New("order log rejected the request")
	ErrReadOnly     = errors.New("order log backend is read-only")
	ErrUnknownOrder = errors.New("order not found in log")
)

const notAvailable = "N/A"

// OrderLog is the remote record of submitted orders.
type OrderLog interface {
	Submit(ctx context.Context, payload model.OrderPayload) error
	UpdateStatus(ctx context.Context, orderID string, status model.Status) error
	// FetchAll returns every logged order, newest first, with delivery
	// date and time normalized for display.
	FetchAll(ctx context.Context) ([]model.OrderRecord, error)
}

// NewOrderLog picks the backend named by the store's googleSheets block.
// db is only required for the postgres method.
func NewOrderLog(sheets *config.SheetsConfig, db *sql.DB, loc *time.Location) (OrderLog, error) {
	if sheets == nil || !sheets.Enabled {
		return DisabledLog{}, nil
	}

	switch sheets.Method {
	case config.MethodAppsScript:
		if sheets.WebAppURL == "" {
			return nil, errors.New("appsScript method requires webAppUrl")
		}
		return NewAppsScriptClient(sheets.WebAppURL, loc), nil
	case config.MethodAPIKey:
		if sheets.APIKey == "" || sheets.SheetID == "" {
			return nil, errors.New("apiKey method requires apiKey and sheetId")
		}
		return NewSheetsAPIClient(sheets.SheetID, sheets.SheetName, sheets.APIKey, loc), nil
	case config.MethodPostgres:
		if db == nil {
			return nil, errors.New("postgres method requires a database URI")
		}
		return NewPostgresLog(db, loc), nil
	default:
		return nil, fmt.Errorf("unknown order log method %q", sheets.Method)
	}
}

type DisabledLog struct{}

func (DisabledLog) Submit(_ context.Context, p model.OrderPayload) error {
	slog.Info("order log disabled, order not recorded", "order", p.OrderID)
	return nil
}

func (DisabledLog) UpdateStatus(context.Context, string, model.Status) error {
	return ErrLogDisabled
}

func (DisabledLog) FetchAll(context.Context) ([]model.OrderRecord, error) {
	return nil, ErrLogDisabled
}

var (
	clockValuePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
	letterPattern     = regexp.MustCompile(`[a-zA-Z]`)
)

// NormalizeDate renders ISO timestamps as "2 Jan 2006" in loc. Values that
// are already human-readable, or that cannot be parsed, are kept as-is.
func NormalizeDate(s string, loc *time.Location) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	if clockValuePattern.MatchString(s) {
		return s
	}
	t, err := model.ParseTimestamp(s, loc)
	if err != nil {
		return s
	}
	return t.In(loc).Format("2 Jan 2006")
}

// NormalizeTime renders ISO timestamps as 24-hour "15:04" in loc. Labels
// such as "6:30 PM" and "HH:MM" values pass through; anything else that
// cannot be parsed becomes "N/A".
func NormalizeTime(s string, loc *time.Location) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	if clockValuePattern.MatchString(s) {
		return s
	}
	t, err := model.ParseTimestamp(s, loc)
	if err == nil {
		return t.In(loc).Format("15:04")
	}
	if letterPattern.MatchString(s) {
		return s
	}
	return notAvailable
}

func normalizeRecords(records []model.OrderRecord, loc *time.Location) []model.OrderRecord {
	out := make([]model.OrderRecord, len(records))
	for i, r := range records {
		r.DeliveryDate = NormalizeDate(r.DeliveryDate, loc)
		r.DeliveryTime = NormalizeTime(r.DeliveryTime, loc)
		out[i] = r
	}
	return Sort(out, SortTimestamp)
}
