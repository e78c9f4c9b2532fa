// Package schedule decides whether the Tatkal timing gates allow the run
// to proceed. The gates are pure functions of the plan and an explicit
// wall-clock reading, so they are testable without sleeping; the caller
// owns the actual wait.
package schedule

import (
	"fmt"
	"time"

	"github.com/example/irctc-booker/internal/domain/booking"
)

// Action is the gate's verdict.
type Action int

const (
	// Proceed means the stage may run immediately.
	Proceed Action = iota
	// Suspend means the stage must wait Result.Wait first.
	Suspend
	// Abort means the timing rules were missed and the run must stop.
	Abort
)

// Result is the outcome of a gate evaluation.
type Result struct {
	Action Action
	// Wait is the exact suspension before proceeding. Set only for
	// Suspend.
	Wait time.Duration
	// Reason explains an Abort.
	Reason string
}

// Err converts an Abort result into its error; other actions yield nil.
func (r Result) Err() error {
	if r.Action != Abort {
		return nil
	}
	return &AbortError{Reason: r.Reason}
}

// AbortError is a fatal scheduling failure: the run refuses to continue
// rather than act outside its timing rules.
type AbortError struct {
	Reason string
}

func (e *AbortError) Error() string {
	return "scheduling abort: " + e.Reason
}

// MaxBookingWait bounds how long the inventory gate will hold the run
// before the booking start. A longer remaining wait indicates a config
// or clock problem, not a deadline worth sitting on.
const MaxBookingWait = time.Minute

// Login gates authentication under Tatkal rules: signing in before the
// class-dependent threshold means the window was missed, and the run
// aborts instead of waiting.
func Login(plan booking.Plan, now time.Time) Result {
	if !plan.TatkalRules() {
		return Result{Action: Proceed}
	}
	tod := booking.TimeOfDay(now.In(booking.Location()))
	if tod < plan.Schedule.LoginThreshold {
		return Result{
			Action: Abort,
			Reason: fmt.Sprintf("trying to log in before %s", formatOffset(plan.Schedule.LoginThreshold)),
		}
	}
	return Result{Action: Proceed}
}

// Inventory gates the seat selection against the booking start. Past the
// start it proceeds immediately; within MaxBookingWait of it, it asks
// the caller to suspend for exactly the remaining time; any further out
// it aborts.
func Inventory(plan booking.Plan, now time.Time) Result {
	if !plan.TatkalRules() {
		return Result{Action: Proceed}
	}
	tod := booking.TimeOfDay(now.In(booking.Location()))
	remaining := plan.Schedule.BookingStart - tod
	switch {
	case remaining <= 0:
		return Result{Action: Proceed}
	case remaining > MaxBookingWait:
		return Result{
			Action: Abort,
			Reason: fmt.Sprintf("more than %s remaining until the booking start", MaxBookingWait),
		}
	default:
		return Result{Action: Suspend, Wait: remaining}
	}
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
