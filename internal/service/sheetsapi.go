package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"littletreat/internal/model"
)

const sheetsAPIBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// SheetsAPIClient reads the order sheet through the Sheets REST API with an
// API key. API keys cannot edit cells, so status updates are refused.
type SheetsAPIClient struct {
	baseURL   string
	sheetID   string
	sheetName string
	apiKey    string
	client    *http.Client
	loc       *time.Location
}

type valueRange struct {
	Range  string     `json:"range,omitempty"`
	Values [][]string `json:"values"`
}

func NewSheetsAPIClient(sheetID, sheetName, apiKey string, loc *time.Location) *SheetsAPIClient {
	return &SheetsAPIClient{
		baseURL:   sheetsAPIBaseURL,
		sheetID:   sheetID,
		sheetName: sheetName,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		loc:       loc,
	}
}

func (c *SheetsAPIClient) rangeURL(suffix string, params url.Values) string {
	params.Set("key", c.apiKey)
	rng := fmt.Sprintf("%s!A:I", c.sheetName)
	return fmt.Sprintf("%s/%s/values/%s%s?%s",
		c.baseURL, url.PathEscape(c.sheetID), url.PathEscape(rng), suffix, params.Encode())
}

func (c *SheetsAPIClient) Submit(ctx context.Context, payload model.OrderPayload) error {
	body, err := json.Marshal(valueRange{Values: [][]string{payload.Row()}})
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	u := c.rangeURL(":append", url.Values{"valueInputOption": {"RAW"}})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d, body: %s", ErrLogRejected, resp.StatusCode, string(msg))
	}
	return nil
}

func (c *SheetsAPIClient) UpdateStatus(context.Context, string, model.Status) error {
	return ErrReadOnly
}

func (c *SheetsAPIClient) FetchAll(ctx context.Context) ([]model.OrderRecord, error) {
	u := c.rangeURL("", url.Values{"valueRenderOption": {"FORMATTED_VALUE"}})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status: %d, body: %s", resp.StatusCode, string(body))
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := make([]model.OrderRecord, 0, len(vr.Values))
	for i, row := range vr.Values {
		if len(row) == 0 || (i == 0 && model.IsHeaderRow(row)) {
			continue
		}
		rec, err := model.ParseOrderRow(row, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return normalizeRecords(records, c.loc), nil
}
