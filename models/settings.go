package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Printer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Kind string    `json:"kind,omitempty"` // e.g. "receipt", "kitchen"
}

// AppSettings is the aggregate root and the unit of persistence: the whole
// aggregate is serialized and rewritten on every mutation. Orders are kept
// under a separate key (see store).
type AppSettings struct {
	RestaurantName    string `json:"restaurantName"`
	RestaurantAddress string `json:"restaurantAddress,omitempty"`
	RestaurantPhone   string `json:"restaurantPhone,omitempty"`

	VATRate               decimal.Decimal `json:"vatRate"`
	ServiceChargeRate     decimal.Decimal `json:"serviceChargeRate"`
	DefaultDeliveryCharge decimal.Decimal `json:"defaultDeliveryCharge"`

	Printers   []Printer         `json:"printers"`
	Categories []MenuCategory    `json:"categories"`
	MenuItems  []MenuItem        `json:"menuItems"`
	Tables     []TableDefinition `json:"tables"`
	Users      []UserAccount     `json:"users"`
	TimeLogs   []TimeLog         `json:"timeLogs"`
}

func (s *AppSettings) Rates() ChargeRates {
	return ChargeRates{VATRate: s.VATRate, ServiceChargeRate: s.ServiceChargeRate}
}

// Clone deep-copies the aggregate. Handed-out snapshots must not share slice
// backing arrays with the live aggregate, which keeps mutating under the
// store's lock while readers iterate without it.
func (s AppSettings) Clone() AppSettings {
	out := s
	out.Printers = append([]Printer(nil), s.Printers...)
	out.Categories = append([]MenuCategory(nil), s.Categories...)
	out.MenuItems = append([]MenuItem(nil), s.MenuItems...)
	out.Users = append([]UserAccount(nil), s.Users...)
	out.TimeLogs = append([]TimeLog(nil), s.TimeLogs...)
	out.Tables = make([]TableDefinition, len(s.Tables))
	for i := range s.Tables {
		out.Tables[i] = s.Tables[i].Clone()
	}
	return out
}

// DefaultSettings seeds the aggregate used when no persisted blob exists yet.
func DefaultSettings() AppSettings {
	starters := MenuCategory{ID: uuid.New(), Name: "Appetizers"}
	mains := MenuCategory{ID: uuid.New(), Name: "Main Course"}
	desserts := MenuCategory{ID: uuid.New(), Name: "Desserts"}
	beverages := MenuCategory{ID: uuid.New(), Name: "Beverages"}

	admin, _ := NewUserAccount("Administrator", RoleAdmin)

	settings := AppSettings{
		RestaurantName:        "My Restaurant",
		VATRate:               decimal.NewFromFloat(0.13),
		ServiceChargeRate:     decimal.NewFromFloat(0.10),
		DefaultDeliveryCharge: decimal.Zero,
		Printers:              []Printer{},
		Categories:            []MenuCategory{starters, mains, desserts, beverages},
		MenuItems:             []MenuItem{},
		Users:                 []UserAccount{admin},
	}

	for i := 1; i <= 8; i++ {
		table, _ := NewTableDefinition(fmt.Sprintf("Table %d", i), 4, ShapeSquare)
		settings.Tables = append(settings.Tables, table)
	}
	return settings
}
