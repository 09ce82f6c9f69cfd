package models

import (
	"fmt"

	"github.com/google/uuid"
)

type TableShape string

const (
	ShapeRectangle TableShape = "rectangle"
	ShapeSquare    TableShape = "square"
	ShapeCircle    TableShape = "circle"
)

type TableStatus string

const (
	TableVacant        TableStatus = "vacant"
	TableOccupied      TableStatus = "occupied"
	TableNeedsBill     TableStatus = "needs_bill"
	TableNeedsCleaning TableStatus = "needs_cleaning"
)

// ValidTableStatus reports whether s is a known table status. Table status
// changes are operator-chosen, so any known status is reachable from any
// other; only the side effects are enforced, and those live in the store.
func ValidTableStatus(s TableStatus) bool {
	switch s {
	case TableVacant, TableOccupied, TableNeedsBill, TableNeedsCleaning:
		return true
	}
	return false
}

func ValidTableShape(s TableShape) bool {
	switch s {
	case ShapeRectangle, ShapeSquare, ShapeCircle:
		return true
	}
	return false
}

// TableDefinition is a physical table on the floor. WaiterID is a weak
// reference: deleting the user nulls it, never cascades.
type TableDefinition struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"name"`
	Capacity int         `json:"capacity"`
	Shape    TableShape  `json:"shape"`
	Status   TableStatus `json:"status"`
	WaiterID *uuid.UUID  `json:"waiterId,omitempty"`
	Notes    string      `json:"notes,omitempty"`

	// CurrentItems is the in-progress order-taking session, present only
	// while the table is in use.
	CurrentItems []OrderLineItem `json:"currentItems,omitempty"`
}

// NewTableDefinition validates and builds a table. Capacity must be at least 1.
// Clone deep-copies the table so callers can keep reading it after the
// store's lock is released.
func (t TableDefinition) Clone() TableDefinition {
	out := t
	if t.WaiterID != nil {
		id := *t.WaiterID
		out.WaiterID = &id
	}
	out.CurrentItems = append([]OrderLineItem(nil), t.CurrentItems...)
	return out
}

func NewTableDefinition(name string, capacity int, shape TableShape) (TableDefinition, error) {
	if name == "" {
		return TableDefinition{}, fmt.Errorf("%w: table name is required", ErrValidation)
	}
	if capacity < 1 {
		return TableDefinition{}, fmt.Errorf("%w: table capacity must be at least 1", ErrValidation)
	}
	if !ValidTableShape(shape) {
		return TableDefinition{}, fmt.Errorf("%w: unknown table shape %q", ErrValidation, shape)
	}
	return TableDefinition{
		ID:       uuid.New(),
		Name:     name,
		Capacity: capacity,
		Shape:    shape,
		Status:   TableVacant,
	}, nil
}
