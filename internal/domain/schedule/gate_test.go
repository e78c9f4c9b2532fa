package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/example/irctc-booker/internal/domain/booking"
)

func tatkalPlan() booking.Plan {
	return booking.Plan{
		Quota: booking.QuotaTatkal,
		Class: booking.ClassThirdAC,
		Schedule: booking.Schedule{
			TatkalWindow:   true,
			LoginThreshold: 9*time.Hour + 59*time.Minute,
			BookingStart:   10*time.Hour + time.Second,
		},
	}
}

func ist(h, m, s int) time.Time {
	return time.Date(2026, 8, 31, h, m, s, 0, booking.Location())
}

func TestLoginGate(t *testing.T) {
	plan := tatkalPlan()

	if r := Login(plan, ist(9, 58, 59)); r.Action != Abort {
		t.Errorf("before threshold: action = %v", r.Action)
	}
	if r := Login(plan, ist(9, 59, 0)); r.Action != Proceed {
		t.Errorf("at threshold: action = %v", r.Action)
	}
	if r := Login(plan, ist(10, 30, 0)); r.Action != Proceed {
		t.Errorf("after threshold: action = %v", r.Action)
	}
}

func TestLoginGateInactive(t *testing.T) {
	early := ist(8, 0, 0)

	plan := tatkalPlan()
	plan.Schedule.TatkalWindow = false
	if r := Login(plan, early); r.Action != Proceed {
		t.Errorf("outside window: action = %v", r.Action)
	}

	plan = tatkalPlan()
	plan.Quota = booking.QuotaGeneral
	if r := Login(plan, early); r.Action != Proceed {
		t.Errorf("general quota: action = %v", r.Action)
	}
}

func TestInventoryGateBoundaries(t *testing.T) {
	plan := tatkalPlan() // booking start 10:00:01

	// 61 seconds out: refuse to idle.
	if r := Inventory(plan, ist(9, 59, 0)); r.Action != Abort {
		t.Errorf("61s out: action = %v", r.Action)
	}

	// Exactly 60 seconds out: suspend for exactly the remainder.
	r := Inventory(plan, ist(9, 59, 1))
	if r.Action != Suspend {
		t.Fatalf("60s out: action = %v", r.Action)
	}
	if r.Wait != time.Minute {
		t.Errorf("60s out: wait = %s", r.Wait)
	}

	// At and past the deadline: zero wait.
	if r := Inventory(plan, ist(10, 0, 1)); r.Action != Proceed {
		t.Errorf("at deadline: action = %v", r.Action)
	}
	if r := Inventory(plan, ist(10, 5, 0)); r.Action != Proceed {
		t.Errorf("past deadline: action = %v", r.Action)
	}
}

func TestInventoryGateInactive(t *testing.T) {
	plan := tatkalPlan()
	plan.Quota = booking.QuotaGeneral
	if r := Inventory(plan, ist(8, 0, 0)); r.Action != Proceed {
		t.Errorf("general quota: action = %v", r.Action)
	}
}

func TestResultErr(t *testing.T) {
	plan := tatkalPlan()

	err := Login(plan, ist(9, 0, 0)).Err()
	var abort *AbortError
	if !errors.As(err, &abort) {
		t.Fatalf("err = %v, want AbortError", err)
	}

	if err := Login(plan, ist(10, 0, 0)).Err(); err != nil {
		t.Errorf("proceed result produced error: %v", err)
	}
}
