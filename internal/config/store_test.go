package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sampleMenu = `{"menuItems":[
	{"id":"brownie","name":"Brownie","description":"Fudgy","price":20,"unit":"piece","display":1,"emoji":"🍫"},
	{"id":"cake","name":"Plum Cake","price":450.5,"unit":"kg","display":0,"originalPrice":500}
]}`

func TestLoadMenuFromFile(t *testing.T) {
	menu, err := LoadMenu(t.Context(), writeFile(t, "menu.json", sampleMenu))
	require.NoError(t, err)

	require.Len(t, menu.MenuItems, 2)
	assert.Equal(t, "20", menu.MenuItems[0].Price.String())
	assert.Equal(t, "450.5", menu.MenuItems[1].Price.String())
	require.NotNil(t, menu.MenuItems[1].OriginalPrice)
	assert.Equal(t, "500", menu.MenuItems[1].OriginalPrice.String())
	assert.Len(t, menu.Visible(), 1)
}

func TestLoadMenuFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/menu.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleMenu))
	}))
	defer srv.Close()

	menu, err := LoadMenu(t.Context(), srv.URL+"/menu.json")
	require.NoError(t, err)
	assert.Len(t, menu.MenuItems, 2)

	_, err = LoadMenu(t.Context(), srv.URL+"/missing.json")
	assert.Error(t, err)
}

func TestLoadMenuRejectsBadDocuments(t *testing.T) {
	tests := map[string]string{
		"empty":          `{"menuItems":[]}`,
		"missing id":     `{"menuItems":[{"name":"Brownie","price":20}]}`,
		"duplicate id":   `{"menuItems":[{"id":"a","price":1},{"id":"a","price":2}]}`,
		"negative price": `{"menuItems":[{"id":"a","price":-1}]}`,
		"not json":       `menu`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadMenu(t.Context(), writeFile(t, "menu.json", body))
			assert.Error(t, err)
		})
	}

	_, err := LoadMenu(t.Context(), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	_, err = LoadMenu(t.Context(), writeFile(t, "menu.json", `{"menuItems":[]}`))
	assert.ErrorIs(t, err, ErrEmptyMenu)
}

func TestLoadStoreDefaults(t *testing.T) {
	store, err := LoadStore(t.Context(), writeFile(t, "config.json", `{
		"deliveryDate":{"date":"18 Oct 2026","dayName":"Saturday"},
		"deliveryTime":{"startTime":"18:00","endTime":"21:00","intervalMinutes":30},
		"googleSheets":{"enabled":true,"apiKey":"k","sheetId":"s"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, defaultShopName, store.ShopName)
	assert.Equal(t, defaultMessagingDomain, store.WhatsApp.Domain)
	assert.Equal(t, defaultMessagingNumber, store.WhatsApp.Number)
	assert.Equal(t, MethodAPIKey, store.GoogleSheets.Method)
	assert.Equal(t, defaultSheetName, store.GoogleSheets.SheetName)
	assert.Equal(t, 30, store.DeliveryTime.IntervalMinutes)
	assert.Equal(t, "Saturday, 18 Oct 2026", store.DeliveryDate.String())
}

func TestLoadStoreKeepsExplicitValues(t *testing.T) {
	store, err := LoadStore(t.Context(), writeFile(t, "config.json", `{
		"shopName":"Corner Bakes",
		"deliveryDate":{"date":"19 Oct 2026","dayName":"Sunday"},
		"deliveryTime":{"startTime":"09:00","endTime":"11:00","intervalMinutes":60},
		"googleSheets":{"enabled":true,"method":"appsScript","webAppUrl":"https://example.com/exec","sheetName":"Log"},
		"whatsapp":{"domain":"api.whatsapp.com/send","number":"15550001111"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Corner Bakes", store.ShopName)
	assert.Equal(t, MethodAppsScript, store.GoogleSheets.Method)
	assert.Equal(t, "Log", store.GoogleSheets.SheetName)
	assert.Equal(t, "15550001111", store.WhatsApp.Number)
}

func TestLoadStoreRequiresDelivery(t *testing.T) {
	_, err := LoadStore(t.Context(), writeFile(t, "config.json", `{"shopName":"Little Treat"}`))
	assert.ErrorIs(t, err, ErrMissingDelivery)
}
