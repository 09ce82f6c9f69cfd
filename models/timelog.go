package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeLog is one work session. UserName and UserRole are snapshots taken at
// check-in. A log with no checkout is "open"; a user has at most one open
// log per day, enforced by the check-in operation.
type TimeLog struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
	UserRole Role      `json:"userRole"`

	Date     string     `json:"date"` // YYYY-MM-DD
	CheckIn  time.Time  `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut,omitempty"`

	// BreakStart is set only while a break is in progress.
	BreakStart                *time.Time `json:"breakStart,omitempty"`
	TotalBreakDurationMinutes int        `json:"totalBreakDurationMinutes"`

	// BreakForceClosed is set when checkout had to end a break the user
	// never ended themselves.
	BreakForceClosed bool `json:"breakForceClosed,omitempty"`
}

func (t *TimeLog) IsOpen() bool { return t.CheckOut == nil }

func (t *TimeLog) OnBreak() bool { return t.BreakStart != nil }

// EffectiveMinutes is worked time net of breaks, never negative. It is only
// defined once the log is closed.
func (t *TimeLog) EffectiveMinutes() (int, bool) {
	if t.CheckOut == nil {
		return 0, false
	}
	minutes := int(t.CheckOut.Sub(t.CheckIn).Minutes()) - t.TotalBreakDurationMinutes
	if minutes < 0 {
		minutes = 0
	}
	return minutes, true
}

// Pay derives the session pay from an hourly rate. Nil rate means pay is
// unknown, and nil is returned rather than zero.
func (t *TimeLog) Pay(hourlyRate *decimal.Decimal) *decimal.Decimal {
	if hourlyRate == nil {
		return nil
	}
	minutes, ok := t.EffectiveMinutes()
	if !ok {
		return nil
	}
	pay := hourlyRate.Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(60)).Round(2)
	return &pay
}
