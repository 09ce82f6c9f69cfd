package store

import (
	"fmt"

	"restropos-backend/models"

	"github.com/google/uuid"
)

type TableInput struct {
	Name     string
	Capacity int
	Shape    models.TableShape
	Notes    string
}

func (s *Store) AddTable(input TableInput) (models.TableDefinition, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, err := models.NewTableDefinition(input.Name, input.Capacity, input.Shape)
	if err != nil {
		return models.TableDefinition{}, "", err
	}
	table.Notes = input.Notes
	s.settings.Tables = append(s.settings.Tables, table)
	return table, s.persistSettings(), nil
}

type TableUpdate struct {
	Name     *string
	Capacity *int
	Shape    *models.TableShape
	Notes    *string
}

func (s *Store) UpdateTable(id uuid.UUID, update TableUpdate) (models.TableDefinition, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.findTable(id)
	if table == nil {
		return models.TableDefinition{}, "", fmt.Errorf("%w: table %s", ErrNotFound, id)
	}
	if update.Capacity != nil && *update.Capacity < 1 {
		return models.TableDefinition{}, "", fmt.Errorf("%w: table capacity must be at least 1", models.ErrValidation)
	}
	if update.Shape != nil && !models.ValidTableShape(*update.Shape) {
		return models.TableDefinition{}, "", fmt.Errorf("%w: unknown table shape %q", models.ErrValidation, *update.Shape)
	}
	if update.Name != nil {
		if *update.Name == "" {
			return models.TableDefinition{}, "", fmt.Errorf("%w: table name is required", models.ErrValidation)
		}
		table.Name = *update.Name
	}
	if update.Capacity != nil {
		table.Capacity = *update.Capacity
	}
	if update.Shape != nil {
		table.Shape = *update.Shape
	}
	if update.Notes != nil {
		table.Notes = *update.Notes
	}
	return table.Clone(), s.persistSettings(), nil
}

func (s *Store) DeleteTable(id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.settings.Tables {
		if s.settings.Tables[i].ID == id {
			s.settings.Tables = append(s.settings.Tables[:i], s.settings.Tables[i+1:]...)
			return s.persistSettings(), nil
		}
	}
	return "", fmt.Errorf("%w: table %s", ErrNotFound, id)
}

// SetTableStatus is the single place table status side effects happen.
// Transitions themselves are operator-chosen, any status to any status:
//
//   - entering occupied from vacant begins an order-taking session and
//     requires a waiter, either already assigned or supplied here;
//   - entering vacant clears the session and, when the acting user is the
//     assigned waiter, clears the assignment too (a table reset);
//   - entering needs_cleaning clears the session but keeps the waiter;
//   - entering needs_bill only raises the flag.
func (s *Store) SetTableStatus(id uuid.UUID, status models.TableStatus, actorID uuid.UUID, waiterID *uuid.UUID) (models.TableDefinition, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !models.ValidTableStatus(status) {
		return models.TableDefinition{}, "", fmt.Errorf("%w: unknown table status %q", models.ErrValidation, status)
	}
	table := s.findTable(id)
	if table == nil {
		return models.TableDefinition{}, "", fmt.Errorf("%w: table %s", ErrNotFound, id)
	}

	switch status {
	case models.TableOccupied:
		if table.Status == models.TableVacant {
			if waiterID != nil {
				if s.findUser(*waiterID) == nil {
					return models.TableDefinition{}, "", fmt.Errorf("%w: waiter %s", ErrNotFound, *waiterID)
				}
				table.WaiterID = waiterID
			}
			if table.WaiterID == nil {
				return models.TableDefinition{}, "", fmt.Errorf("%w: seating a table requires a waiter", models.ErrValidation)
			}
			table.CurrentItems = nil
		}
	case models.TableVacant:
		table.CurrentItems = nil
		if table.WaiterID != nil && *table.WaiterID == actorID {
			table.WaiterID = nil
		}
	case models.TableNeedsCleaning:
		table.CurrentItems = nil
	case models.TableNeedsBill:
		// flag only
	}

	table.Status = status
	return table.Clone(), s.persistSettings(), nil
}

// AssignWaiter sets or clears the table's waiter without a status change.
func (s *Store) AssignWaiter(id uuid.UUID, waiterID *uuid.UUID) (models.TableDefinition, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.findTable(id)
	if table == nil {
		return models.TableDefinition{}, "", fmt.Errorf("%w: table %s", ErrNotFound, id)
	}
	if waiterID != nil && s.findUser(*waiterID) == nil {
		return models.TableDefinition{}, "", fmt.Errorf("%w: waiter %s", ErrNotFound, *waiterID)
	}
	table.WaiterID = waiterID
	return table.Clone(), s.persistSettings(), nil
}

// SetTableItemQuantity sets the quantity of a menu item in the table's
// in-progress session. New items are snapshotted and appended in insertion
// order; a quantity at or below zero removes the line, so no line ever
// persists with quantity < 1.
func (s *Store) SetTableItemQuantity(id uuid.UUID, menuItemID uuid.UUID, quantity int) (models.TableDefinition, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.findTable(id)
	if table == nil {
		return models.TableDefinition{}, "", fmt.Errorf("%w: table %s", ErrNotFound, id)
	}
	if table.Status != models.TableOccupied {
		return models.TableDefinition{}, "", fmt.Errorf("%w: table %q is not occupied", models.ErrValidation, table.Name)
	}

	for i := range table.CurrentItems {
		if table.CurrentItems[i].MenuItemID == menuItemID {
			if quantity <= 0 {
				table.CurrentItems = append(table.CurrentItems[:i], table.CurrentItems[i+1:]...)
			} else {
				table.CurrentItems[i].Quantity = quantity
			}
			return table.Clone(), s.persistSettings(), nil
		}
	}

	if quantity <= 0 {
		// removing a line that does not exist is a no-op
		return table.Clone(), "", nil
	}
	item := s.findMenuItem(menuItemID)
	if item == nil {
		return models.TableDefinition{}, "", fmt.Errorf("%w: menu item %s", ErrNotFound, menuItemID)
	}
	line, err := models.NewOrderLineItem(*item, quantity)
	if err != nil {
		return models.TableDefinition{}, "", err
	}
	table.CurrentItems = append(table.CurrentItems, line)
	return table.Clone(), s.persistSettings(), nil
}

func (s *Store) findTable(id uuid.UUID) *models.TableDefinition {
	for i := range s.settings.Tables {
		if s.settings.Tables[i].ID == id {
			return &s.settings.Tables[i]
		}
	}
	return nil
}
