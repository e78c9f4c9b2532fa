package workflow

import (
	"errors"
	"fmt"
)

// ErrNoAvailability means the targeted inventory cell carried no
// available marker. Not retried: availability cannot change within the
// same page load.
var ErrNoAvailability = errors.New("seat not available for the given class on the selected date")

// StageError is a required capability call that could not complete.
// Stage is the last state the machine had reached when the call failed.
// Stage failures are fatal and never retried, since the page state
// after a partial action is unknown.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage failed after %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
