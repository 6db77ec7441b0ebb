package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"littletreat/internal/model"
)

const (
	MethodAppsScript = "appsScript"
	MethodAPIKey     = "apiKey"
	MethodPostgres   = "postgres"
)

const (
	defaultShopName        = "Little Treat"
	defaultMessagingDomain = "wa.me"
	defaultMessagingNumber = "917710963036"
	defaultSheetName       = "Orders"
)

var (
	ErrEmptyMenu       = errors.New("menu has no items")
	ErrMissingDelivery = errors.New("delivery date and time are required")
)

type SheetsConfig struct {
	Enabled   bool   `json:"enabled"`
	Method    string `json:"method"`
	WebAppURL string `json:"webAppUrl"`
	APIKey    string `json:"apiKey"`
	SheetID   string `json:"sheetId"`
	SheetName string `json:"sheetName"`
}

type MessagingConfig struct {
	Domain string `json:"domain"`
	Number string `json:"number"`
}

// Store is the per-deployment store document (config.json).
type Store struct {
	ShopName     string                  `json:"shopName"`
	DeliveryDate *model.DeliveryDate     `json:"deliveryDate"`
	DeliveryTime *model.DeliveryTimeRule `json:"deliveryTime"`
	GoogleSheets *SheetsConfig           `json:"googleSheets,omitempty"`
	WhatsApp     *MessagingConfig        `json:"whatsapp,omitempty"`
}

func LoadMenu(ctx context.Context, src string) (model.Menu, error) {
	var menu model.Menu
	if err := loadDocument(ctx, src, &menu); err != nil {
		return model.Menu{}, fmt.Errorf("load menu: %w", err)
	}
	if len(menu.MenuItems) == 0 {
		return model.Menu{}, ErrEmptyMenu
	}

	seen := make(map[string]struct{}, len(menu.MenuItems))
	for _, item := range menu.MenuItems {
		if item.ID == "" {
			return model.Menu{}, fmt.Errorf("menu item %q has no id", item.Name)
		}
		if _, dup := seen[item.ID]; dup {
			return model.Menu{}, fmt.Errorf("duplicate menu item id %q", item.ID)
		}
		if item.Price.IsNegative() {
			return model.Menu{}, fmt.Errorf("menu item %q has a negative price", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return menu, nil
}

func LoadStore(ctx context.Context, src string) (*Store, error) {
	var store Store
	if err := loadDocument(ctx, src, &store); err != nil {
		return nil, fmt.Errorf("load store config: %w", err)
	}
	if store.DeliveryDate == nil || store.DeliveryTime == nil {
		return nil, ErrMissingDelivery
	}
	store.applyDefaults()
	return &store, nil
}

func (s *Store) applyDefaults() {
	if s.ShopName == "" {
		s.ShopName = defaultShopName
	}
	if s.WhatsApp == nil {
		s.WhatsApp = &MessagingConfig{}
	}
	if s.WhatsApp.Domain == "" {
		s.WhatsApp.Domain = defaultMessagingDomain
	}
	if s.WhatsApp.Number == "" {
		s.WhatsApp.Number = defaultMessagingNumber
	}
	if s.GoogleSheets != nil {
		if s.GoogleSheets.Method == "" {
			s.GoogleSheets.Method = MethodAPIKey
		}
		if s.GoogleSheets.SheetName == "" {
			s.GoogleSheets.SheetName = defaultSheetName
		}
	}
}

func loadDocument(ctx context.Context, src string, dst any) error {
	data, err := readSource(ctx, src)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", src, err)
	}
	return nil
}

func readSource(ctx context.Context, src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", src, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
