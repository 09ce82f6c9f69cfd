package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleStaff   Role = "Staff"
	RoleWaiter  Role = "Waiter"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleWaiter:
		return true
	}
	return false
}

// UserAccount is a staff member. Credentials are out of scope; the account
// exists to own time logs and to be assigned to tables.
type UserAccount struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
	Phone string    `json:"phone,omitempty"`

	// HourlyRate drives pay derivation; nil means pay is unavailable, not
	// zero.
	HourlyRate *decimal.Decimal `json:"hourlyRate,omitempty"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserAccount(name string, role Role) (UserAccount, error) {
	if name == "" {
		return UserAccount{}, fmt.Errorf("%w: user name is required", ErrValidation)
	}
	if !ValidRole(role) {
		return UserAccount{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return UserAccount{
		ID:        uuid.New(),
		Name:      name,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil
}
