package store

import (
	"errors"
	"testing"
	"time"

	"restropos-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// clockedStore pins the store's clock to a mutable instant.
func clockedStore(t *testing.T, start time.Time) (*Store, *time.Time) {
	t.Helper()
	s, _ := newTestStore(t)
	current := start
	s.now = func() time.Time { return current }
	return s, &current
}

func TestAttendanceDay(t *testing.T) {
	s, clock := clockedStore(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	rate := decimal.NewFromInt(120)
	user, _, err := s.AddUser(UserInput{Name: "Sita", Role: models.RoleStaff, HourlyRate: &rate})
	if err != nil {
		t.Fatal(err)
	}

	entry, _, err := s.CheckIn(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Date != "2025-03-10" || entry.UserName != "Sita" {
		t.Errorf("check-in snapshot wrong: %+v", entry)
	}

	*clock = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	if _, _, err := s.StartBreak(user.ID); err != nil {
		t.Fatal(err)
	}
	*clock = time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	entry, _, err = s.EndBreak(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if entry.TotalBreakDurationMinutes != 30 {
		t.Errorf("break minutes = %d, want 30", entry.TotalBreakDurationMinutes)
	}

	*clock = time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	entry, _, err = s.CheckOut(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	minutes, closed := entry.EffectiveMinutes()
	if !closed || minutes != 450 {
		t.Errorf("effective minutes = %d (closed=%v), want 450", minutes, closed)
	}
	if entry.BreakForceClosed {
		t.Error("a properly ended break was flagged as force-closed")
	}

	summaries := s.AttendanceSummaries()
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	got := summaries[0]
	if got.Sessions != 1 || got.EffectiveMinutes != 450 || got.BreakMinutes != 30 {
		t.Errorf("summary = %+v", got)
	}
	// 450 minutes at 120/hour
	if got.Pay == nil || !got.Pay.Equal(decimal.NewFromInt(900)) {
		t.Errorf("pay = %v, want 900", got.Pay)
	}
}

func TestCheckInTwiceSameDay(t *testing.T) {
	s, _ := clockedStore(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	user, _, err := s.AddUser(UserInput{Name: "Hari", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.CheckIn(user.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.CheckIn(user.ID); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("second check-in: got %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestCheckOutAfterCheckOutAllowsReCheckIn(t *testing.T) {
	s, clock := clockedStore(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	user, _, err := s.AddUser(UserInput{Name: "Hari", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.CheckIn(user.ID); err != nil {
		t.Fatal(err)
	}
	*clock = time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	if _, _, err := s.CheckOut(user.ID); err != nil {
		t.Fatal(err)
	}

	// a split shift: second session the same day is fine once closed
	*clock = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	if _, _, err := s.CheckIn(user.ID); err != nil {
		t.Fatalf("split-shift check-in: %v", err)
	}
}

func TestCheckInBlockedByStaleOpenLog(t *testing.T) {
	s, clock := clockedStore(t, time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))
	user, _, err := s.AddUser(UserInput{Name: "Hari", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.CheckIn(user.ID); err != nil {
		t.Fatal(err)
	}

	// forgot to check out; next morning the stale session still blocks
	*clock = time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	if _, _, err := s.CheckIn(user.ID); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("check-in over stale open log: got %v, want ErrAlreadyCheckedIn", err)
	}

	// closing the stale session unblocks
	if _, _, err := s.CheckOut(user.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.CheckIn(user.ID); err != nil {
		t.Fatalf("check-in after closing stale log: %v", err)
	}
}

func TestAttendanceWithoutOpenSession(t *testing.T) {
	s, _ := newTestStore(t)
	user, _, err := s.AddUser(UserInput{Name: "Hari", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.CheckOut(user.ID); !errors.Is(err, ErrNotCheckedIn) {
		t.Errorf("checkout: got %v, want ErrNotCheckedIn", err)
	}
	if _, _, err := s.StartBreak(user.ID); !errors.Is(err, ErrNotCheckedIn) {
		t.Errorf("start break: got %v, want ErrNotCheckedIn", err)
	}
	if _, _, err := s.CheckIn(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestBreakMisuse(t *testing.T) {
	s, _ := clockedStore(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	user, _, err := s.AddUser(UserInput{Name: "Hari", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.CheckIn(user.ID); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.EndBreak(user.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("end break without one: got %v, want ErrValidation", err)
	}
	if _, _, err := s.StartBreak(user.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.StartBreak(user.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("double break: got %v, want ErrValidation", err)
	}
}

func TestCheckOutForceClosesBreak(t *testing.T) {
	s, clock := clockedStore(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	user, _, err := s.AddUser(UserInput{Name: "Hari", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.CheckIn(user.ID); err != nil {
		t.Fatal(err)
	}
	*clock = time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	if _, _, err := s.StartBreak(user.ID); err != nil {
		t.Fatal(err)
	}

	*clock = time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	entry, _, err := s.CheckOut(user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !entry.BreakForceClosed {
		t.Error("open break at checkout not flagged")
	}
	if entry.TotalBreakDurationMinutes != 60 {
		t.Errorf("break minutes = %d, want 60", entry.TotalBreakDurationMinutes)
	}
	if minutes, _ := entry.EffectiveMinutes(); minutes != 420 {
		t.Errorf("effective minutes = %d, want 420", minutes)
	}
}

func TestTimeLogFilters(t *testing.T) {
	s, clock := clockedStore(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	a, _, _ := s.AddUser(UserInput{Name: "A", Role: models.RoleStaff})
	b, _, _ := s.AddUser(UserInput{Name: "B", Role: models.RoleStaff})

	s.CheckIn(a.ID)
	s.CheckIn(b.ID)
	*clock = time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	s.CheckOut(a.ID)
	s.CheckOut(b.ID)
	*clock = time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	s.CheckIn(a.ID)

	if got := s.TimeLogs(nil, ""); len(got) != 3 {
		t.Errorf("unfiltered: %d logs, want 3", len(got))
	}
	if got := s.TimeLogs(&a.ID, ""); len(got) != 2 {
		t.Errorf("by user: %d logs, want 2", len(got))
	}
	if got := s.TimeLogs(nil, "2025-03-10"); len(got) != 2 {
		t.Errorf("by date: %d logs, want 2", len(got))
	}
	if got := s.TimeLogs(&a.ID, "2025-03-11"); len(got) != 1 {
		t.Errorf("by user and date: %d logs, want 1", len(got))
	}
}

func TestAttendanceSummariesOmitPayWithoutRate(t *testing.T) {
	s, clock := clockedStore(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	user, _, err := s.AddUser(UserInput{Name: "Hari", Role: models.RoleStaff})
	if err != nil {
		t.Fatal(err)
	}

	s.CheckIn(user.ID)
	*clock = time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	s.CheckOut(user.ID)

	summaries := s.AttendanceSummaries()
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0].Pay != nil {
		t.Errorf("pay = %s for a user with no hourly rate, want nil", summaries[0].Pay)
	}
}
