package store

import (
	"fmt"

	"restropos-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckIn opens a work session for the user. A user has at most one open
// log at a time; a check-in while any session is still open fails, even one
// left open from a previous day. Checking out closes the stale session.
func (s *Store) CheckIn(userID uuid.UUID) (models.TimeLog, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(userID)
	if user == nil {
		return models.TimeLog{}, "", fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	if open := s.findOpenLog(userID); open != nil {
		return models.TimeLog{}, "", fmt.Errorf("%w: %s has an open session since %s", ErrAlreadyCheckedIn, user.Name, open.Date)
	}
	now := s.now()
	today := now.Format("2006-01-02")

	entry := models.TimeLog{
		ID:       uuid.New(),
		UserID:   user.ID,
		UserName: user.Name,
		UserRole: user.Role,
		Date:     today,
		CheckIn:  now,
	}
	s.settings.TimeLogs = append(s.settings.TimeLogs, entry)
	return entry, s.persistSettings(), nil
}

// CheckOut closes the user's open session. A break the user never ended is
// force-closed at the checkout timestamp and counted as break time, and the
// log is flagged so the anomaly stays visible.
func (s *Store) CheckOut(userID uuid.UUID) (models.TimeLog, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.findOpenLog(userID)
	if entry == nil {
		return models.TimeLog{}, "", fmt.Errorf("%w: user %s has no open session", ErrNotCheckedIn, userID)
	}
	now := s.now()
	if entry.BreakStart != nil {
		entry.TotalBreakDurationMinutes += int(now.Sub(*entry.BreakStart).Minutes())
		entry.BreakStart = nil
		entry.BreakForceClosed = true
	}
	entry.CheckOut = &now
	return *entry, s.persistSettings(), nil
}

// StartBreak is only legal while checked in and not already on break.
func (s *Store) StartBreak(userID uuid.UUID) (models.TimeLog, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.findOpenLog(userID)
	if entry == nil {
		return models.TimeLog{}, "", fmt.Errorf("%w: user %s has no open session", ErrNotCheckedIn, userID)
	}
	if entry.OnBreak() {
		return models.TimeLog{}, "", fmt.Errorf("%w: a break is already in progress", models.ErrValidation)
	}
	now := s.now()
	entry.BreakStart = &now
	return *entry, s.persistSettings(), nil
}

// EndBreak folds the finished break into the session's break total.
func (s *Store) EndBreak(userID uuid.UUID) (models.TimeLog, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.findOpenLog(userID)
	if entry == nil {
		return models.TimeLog{}, "", fmt.Errorf("%w: user %s has no open session", ErrNotCheckedIn, userID)
	}
	if !entry.OnBreak() {
		return models.TimeLog{}, "", fmt.Errorf("%w: no break in progress", models.ErrValidation)
	}
	now := s.now()
	entry.TotalBreakDurationMinutes += int(now.Sub(*entry.BreakStart).Minutes())
	entry.BreakStart = nil
	return *entry, s.persistSettings(), nil
}

// TimeLogs lists sessions, optionally filtered by user and/or date
// (YYYY-MM-DD).
func (s *Store) TimeLogs(userID *uuid.UUID, date string) []models.TimeLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TimeLog, 0, len(s.settings.TimeLogs))
	for _, entry := range s.settings.TimeLogs {
		if userID != nil && entry.UserID != *userID {
			continue
		}
		if date != "" && entry.Date != date {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// AttendanceSummary aggregates closed sessions per user.
type AttendanceSummary struct {
	UserID           uuid.UUID        `json:"userId"`
	UserName         string           `json:"userName"`
	Sessions         int              `json:"sessions"`
	EffectiveMinutes int              `json:"effectiveMinutes"`
	BreakMinutes     int              `json:"breakMinutes"`
	Pay              *decimal.Decimal `json:"pay,omitempty"`
}

// AttendanceSummaries derives worked time and pay per user over the whole
// ledger. Pay is omitted, not zeroed, for users without an hourly rate.
func (s *Store) AttendanceSummaries() []AttendanceSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	byUser := make(map[uuid.UUID]*AttendanceSummary)
	var order []uuid.UUID
	for i := range s.settings.TimeLogs {
		entry := &s.settings.TimeLogs[i]
		minutes, closed := entry.EffectiveMinutes()
		if !closed {
			continue
		}
		summary, ok := byUser[entry.UserID]
		if !ok {
			summary = &AttendanceSummary{UserID: entry.UserID, UserName: entry.UserName}
			byUser[entry.UserID] = summary
			order = append(order, entry.UserID)
		}
		summary.Sessions++
		summary.EffectiveMinutes += minutes
		summary.BreakMinutes += entry.TotalBreakDurationMinutes
	}

	out := make([]AttendanceSummary, 0, len(order))
	for _, id := range order {
		summary := byUser[id]
		if user := s.findUser(id); user != nil && user.HourlyRate != nil {
			pay := user.HourlyRate.Mul(decimal.NewFromInt(int64(summary.EffectiveMinutes))).Div(decimal.NewFromInt(60)).Round(2)
			summary.Pay = &pay
		}
		out = append(out, *summary)
	}
	return out
}

// findOpenLog returns the most recent open session for the user.
func (s *Store) findOpenLog(userID uuid.UUID) *models.TimeLog {
	for i := len(s.settings.TimeLogs) - 1; i >= 0; i-- {
		entry := &s.settings.TimeLogs[i]
		if entry.UserID == userID && entry.IsOpen() {
			return entry
		}
	}
	return nil
}
