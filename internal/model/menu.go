package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitPiece Unit = "piece"
	UnitKg    Unit = "kg"
	UnitPlate Unit = "plate"
	UnitDozen Unit = "dozen"
)

type MenuItem struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	Unit          Unit             `json:"unit"`
	Display       int              `json:"display"` // 1 = shown on the storefront
	Emoji         string           `json:"emoji,omitempty"`
	Image         string           `json:"image,omitempty"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
}

func (m MenuItem) Visible() bool {
	return m.Display == 1
}

// Menu is the menu document: {"menuItems": [...]}.
type Menu struct {
	MenuItems []MenuItem `json:"menuItems"`
}

func (m Menu) Visible() []MenuItem {
	items := make([]MenuItem, 0, len(m.MenuItems))
	for _, it := range m.MenuItems {
		if it.Visible() {
			items = append(items, it)
		}
	}
	return items
}

type LineItem struct {
	Item     MenuItem `json:"item"`
	Quantity int      `json:"quantity"`
}

func (l LineItem) LineTotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// UnitDisplay renders a unit for a given quantity: piece -> pcs/pc,
// kg -> Kg, plate -> plates/plate, dozen -> dozen. Other units pass through.
func UnitDisplay(unit Unit, quantity int) string {
	switch Unit(strings.ToLower(string(unit))) {
	case UnitPiece:
		if quantity > 1 {
			return "pcs"
		}
		return "pc"
	case UnitKg:
		return "Kg"
	case UnitPlate:
		if quantity > 1 {
			return "plates"
		}
		return "plate"
	case UnitDozen:
		return "dozen"
	default:
		return string(unit)
	}
}

const CurrencySymbol = "₹"

func FormatAmount(d decimal.Decimal) string {
	return CurrencySymbol + d.String()
}
