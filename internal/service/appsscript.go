package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"littletreat/internal/model"
)

// AppsScriptClient talks to a spreadsheet web app deployment. Writes are
// best-effort: the response body is never inspected.
type AppsScriptClient struct {
	webAppURL string
	client    *http.Client
	loc       *time.Location
}

type appsScriptResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Orders  []model.OrderRecord `json:"orders"`
}

func NewAppsScriptClient(webAppURL string, loc *time.Location) *AppsScriptClient {
	return &AppsScriptClient{
		webAppURL: webAppURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		loc:       loc,
	}
}

func (c *AppsScriptClient) Submit(ctx context.Context, payload model.OrderPayload) error {
	return c.post(ctx, payload)
}

func (c *AppsScriptClient) UpdateStatus(ctx context.Context, orderID string, status model.Status) error {
	return c.post(ctx, model.StatusUpdate{
		Action:  model.ActionUpdateStatus,
		OrderID: orderID,
		Status:  status,
	})
}

func (c *AppsScriptClient) post(ctx context.Context, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webAppURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

func (c *AppsScriptClient) FetchAll(ctx context.Context) ([]model.OrderRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.webAppURL, nil)
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

	var res appsScriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if res.Status != "success" {
		msg := res.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("%w: %s", ErrLogRejected, msg)
	}

	for i, o := range res.Orders {
		if o.OrderID == "" {
			return nil, fmt.Errorf("%w: order %d has no order id", model.ErrMalformedRecord, i)
		}
	}

	return normalizeRecords(res.Orders, c.loc), nil
}
