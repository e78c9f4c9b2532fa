// Package workflow drives one booking attempt through the external
// site as a strictly ordered state machine. Each transition is a
// bounded sequence of capability calls against the UI driver; any
// required call failing fails the stage, while optional dialogs are
// handled with short bounded probes.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/irctc-booker/internal/domain/booking"
	"github.com/example/irctc-booker/internal/domain/schedule"
)

// DefaultProbeTimeout bounds the lookup for optional elements. It is
// swapped in for the driver's default timeout around each probe and the
// default is restored on every exit path.
const DefaultProbeTimeout = time.Second

// defaultSettlePause absorbs the ad banner reflow on the train list
// outside the Tatkal window.
const defaultSettlePause = 2 * time.Second

// Orchestrator runs the reservation workflow:
//
//	Start → Searched → (Authenticated)? → InventorySelected →
//	SeatAssigned → ReviewConfirmed → PassengersEntered →
//	PaymentInitiated → Paid | Failed
//
// Authentication happens right after the initial search trigger inside
// the Tatkal window and after seat assignment outside it. Once
// PassengersEntered is reached the run is committed: the caller must
// not auto-close the browser session on failure, because the operator
// may need to finish a live payment by hand.
type Orchestrator struct {
	Driver  Driver
	Captcha *CaptchaResolver
	Log     *zap.Logger
	Clock   Clock

	URL string
	Sel Selectors

	ProbeTimeout time.Duration
	SettlePause  time.Duration

	state     State
	committed bool
}

// State reports the last state the machine reached.
func (o *Orchestrator) State() State { return o.state }

// Committed reports whether the run entered the commitment region.
// Callers must leave the driver session open on failure once this is
// true.
func (o *Orchestrator) Committed() bool { return o.committed }

// Run executes one booking attempt and returns the terminal state.
func (o *Orchestrator) Run(ctx context.Context, plan booking.Plan) (State, error) {
	o.applyDefaults()
	o.state = StateStart
	o.committed = false

	if err := o.Driver.Navigate(ctx, o.URL); err != nil {
		return o.fail(err)
	}

	if plan.Schedule.TatkalWindow {
		if err := schedule.Login(plan, o.Clock.Now()).Err(); err != nil {
			return o.abort(err)
		}
		// The bare search trigger pops the sign-in dialog.
		if err := o.Driver.Click(ctx, o.Sel.TrainSearchButton); err != nil {
			return o.fail(err)
		}
		o.advance(StateSearched)
		if err := o.authenticate(ctx, plan); err != nil {
			return o.fail(err)
		}
		o.advance(StateAuthenticated)
	}

	if err := o.fillSearchForm(ctx, plan); err != nil {
		return o.fail(err)
	}
	if err := o.Driver.Click(ctx, o.Sel.TrainSearchButton); err != nil {
		return o.fail(err)
	}
	if !plan.Schedule.TatkalWindow {
		o.advance(StateSearched)
	}

	if err := o.selectInventory(ctx, plan); err != nil {
		return o.fail(err)
	}
	o.advance(StateInventorySelected)

	if err := o.Driver.Click(ctx, o.Sel.BookNowButton(plan.TrainNumber)); err != nil {
		return o.fail(err)
	}
	o.advance(StateSeatAssigned)

	// Station codes may only partially match the route; the site asks
	// for confirmation in that case.
	o.probeDismiss(ctx, o.Sel.PartialMatchConfirm)

	if !plan.Schedule.TatkalWindow {
		if err := o.authenticate(ctx, plan); err != nil {
			return o.fail(err)
		}
		o.advance(StateAuthenticated)
	}
	o.advance(StateReviewConfirmed)

	if err := o.enterPassengers(ctx, plan); err != nil {
		return o.fail(err)
	}
	o.committed = true
	o.advance(StatePassengersEntered)

	if err := o.initiatePayment(ctx, plan); err != nil {
		return o.fail(err)
	}
	o.advance(StatePaymentInitiated)

	if err := o.submitPayment(ctx, plan); err != nil {
		return o.fail(err)
	}
	o.advance(StatePaid)
	return o.state, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Clock == nil {
		o.Clock = SystemClock()
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = DefaultProbeTimeout
	}
	if o.SettlePause <= 0 {
		o.SettlePause = defaultSettlePause
	}
	if o.Captcha == nil {
		o.Captcha = &CaptchaResolver{}
	}
	if o.Captcha.Log == nil {
		o.Captcha.Log = o.Log
	}
}

func (o *Orchestrator) authenticate(ctx context.Context, plan booking.Plan) error {
	d := o.Driver
	if err := d.Type(ctx, o.Sel.LoginUserInput, plan.Username); err != nil {
		return err
	}
	if err := d.WaitEnabled(ctx, o.Sel.LoginPasswordInput); err != nil {
		return err
	}
	if err := d.Click(ctx, o.Sel.LoginPasswordInput); err != nil {
		return err
	}
	if err := d.Type(ctx, o.Sel.LoginPasswordInput, plan.Password); err != nil {
		return err
	}

	if out := o.Captcha.Resolve(ctx, d, o.Sel.CaptchaImage, o.Sel.CaptchaInput, o.Sel.LoginSubmitButton); out == CaptchaSkipped {
		o.Log.Info("captcha left for manual entry on sign-in")
	}

	// The submit button disappears once sign-in goes through, whether
	// the resolver clicked it or the operator did.
	if err := d.WaitHidden(ctx, o.Sel.LoginSubmitButton); err != nil {
		return err
	}

	// A stale session can surface a pending-transaction popup here.
	o.probeDismiss(ctx, o.Sel.PendingTransactionClose)
	return nil
}

func (o *Orchestrator) fillSearchForm(ctx context.Context, plan booking.Plan) error {
	d, s := o.Driver, o.Sel

	if err := d.Type(ctx, s.OriginInput, plan.FromStation); err != nil {
		return err
	}
	if err := d.WaitEnabled(ctx, s.OriginFirstOption); err != nil {
		return err
	}
	if err := d.Click(ctx, s.OriginFirstOption); err != nil {
		return err
	}

	if err := d.Type(ctx, s.DestinationInput, plan.ToStation); err != nil {
		return err
	}
	if err := d.WaitEnabled(ctx, s.DestinationFirstOption); err != nil {
		return err
	}
	if err := d.Click(ctx, s.DestinationFirstOption); err != nil {
		return err
	}

	if err := d.Clear(ctx, s.JourneyDateInput); err != nil {
		return err
	}
	if err := d.Type(ctx, s.JourneyDateInput, plan.JourneyDateLiteral()); err != nil {
		return err
	}

	if err := d.Click(ctx, s.QuotaDropdown); err != nil {
		return err
	}
	return d.Click(ctx, s.QuotaOption(string(plan.Quota)))
}

func (o *Orchestrator) selectInventory(ctx context.Context, plan booking.Plan) error {
	d, s := o.Driver, o.Sel
	row := s.TrainRow(plan.TrainNumber)

	if err := d.WaitVisible(ctx, row); err != nil {
		return err
	}
	if !plan.Schedule.TatkalWindow {
		o.Clock.Sleep(o.SettlePause)
	}
	if err := d.ScrollTo(ctx, row); err != nil {
		return err
	}

	// Last moment before committing to a class/date selection: hold
	// for the Tatkal booking start if it is close, refuse if it is
	// far.
	switch r := schedule.Inventory(plan, o.Clock.Now()); r.Action {
	case schedule.Abort:
		return r.Err()
	case schedule.Suspend:
		o.Log.Info("suspending until booking start", zap.Duration("wait", r.Wait))
		o.Clock.Sleep(r.Wait)
	}

	if err := d.Click(ctx, s.ClassCell(plan.TrainNumber, string(plan.Class))); err != nil {
		return err
	}
	if err := d.ScrollTo(ctx, row); err != nil {
		return err
	}

	label := plan.Schedule.SearchDateLabel
	n, err := d.Count(ctx, s.AvailabilityMarker(plan.TrainNumber, label))
	if err != nil {
		return err
	}
	if n == 0 {
		// Signal the operator inside the live page as well.
		_ = d.RunScript(ctx, fmt.Sprintf("window.alert(%q)", ErrNoAvailability.Error()))
		return ErrNoAvailability
	}
	return d.Click(ctx, s.SeatDateCell(plan.TrainNumber, label))
}

func (o *Orchestrator) enterPassengers(ctx context.Context, plan booking.Plan) error {
	d, s := o.Driver, o.Sel

	for i, p := range plan.Passengers {
		n := i + 1
		if err := d.ScrollTo(ctx, s.PassengerBlock(n)); err != nil {
			return err
		}

		nameSel := s.PassengerName(n)
		name := p.Name
		if v, ok, err := d.Attribute(ctx, nameSel, "maxlength"); err != nil {
			return err
		} else if ok {
			// maxlength counts characters, so truncate on runes.
			if max, convErr := strconv.Atoi(v); convErr == nil && max > 0 {
				if r := []rune(name); len(r) > max {
					name = string(r[:max])
				}
			}
		}
		if err := d.Type(ctx, nameSel, name); err != nil {
			return err
		}

		ageSel := s.PassengerAge(n)
		if err := d.Click(ctx, ageSel); err != nil {
			return err
		}
		if err := d.Type(ctx, ageSel, strconv.Itoa(p.Age)); err != nil {
			return err
		}

		if err := d.SetValue(ctx, s.PassengerGender(n), string(p.Gender)); err != nil {
			return err
		}
		if p.Berth != "" {
			if err := d.SetValue(ctx, s.PassengerBerth(n), string(p.Berth)); err != nil {
				return err
			}
		}

		// Block n+1 must not be touched until its add action is
		// acknowledged with a visible block.
		if n < len(plan.Passengers) {
			if err := d.WaitEnabled(ctx, s.AddPassengerLink); err != nil {
				return err
			}
			if err := d.Click(ctx, s.AddPassengerLink); err != nil {
				return err
			}
			if err := d.WaitVisible(ctx, s.PassengerBlock(n+1)); err != nil {
				return err
			}
		}
		o.Log.Info("passenger entered", zap.Int("index", n), zap.Int("age", p.Age))
	}
	return nil
}

func (o *Orchestrator) initiatePayment(ctx context.Context, plan booking.Plan) error {
	d, s := o.Driver, o.Sel

	if err := d.Click(ctx, s.AutoUpgradeToggle); err != nil {
		return err
	}
	if err := d.Click(ctx, s.ConfirmBerthsToggle); err != nil {
		return err
	}
	if err := d.Click(ctx, s.UPIPaymentRadio); err != nil {
		return err
	}
	if err := d.Click(ctx, s.ContinueButton); err != nil {
		return err
	}

	// Berths can land in different coaches; decline the split.
	o.probeDismiss(ctx, s.DifferentCoachDismiss)

	// The review page gets double the usual patience: the operator may
	// be reading it.
	restore := d.DefaultTimeout()
	d.SetDefaultTimeout(restore * 2)
	defer d.SetDefaultTimeout(restore)

	if err := d.WaitVisible(ctx, s.CaptchaInput); err != nil {
		return err
	}
	if out := o.Captcha.Resolve(ctx, d, s.CaptchaImage, s.CaptchaInput, s.ReviewContinueButton); out == CaptchaSkipped {
		o.Log.Info("captcha left for manual entry on review")
	}

	// The gateway list only renders after the review clears, so this
	// wait also covers a manually answered captcha.
	if err := d.WaitVisible(ctx, s.GatewayOption); err != nil {
		return err
	}
	if v, ok, err := d.Attribute(ctx, s.GatewayOption, "class"); err != nil {
		return err
	} else if !ok || !strings.Contains(v, s.GatewayActiveClass) {
		if err := d.WaitEnabled(ctx, s.GatewayOption); err != nil {
			return err
		}
		if err := d.Click(ctx, s.GatewayOption); err != nil {
			return err
		}
	}

	if err := d.WaitEnabled(ctx, s.PayAndBookButton); err != nil {
		return err
	}
	return d.Click(ctx, s.PayAndBookButton)
}

func (o *Orchestrator) submitPayment(ctx context.Context, plan booking.Plan) error {
	d, s := o.Driver, o.Sel
	if err := d.Type(ctx, s.PaymentAddressInput, plan.PaymentAddress); err != nil {
		return err
	}
	if err := d.WaitEnabled(ctx, s.PaySubmitButton); err != nil {
		return err
	}
	return d.Click(ctx, s.PaySubmitButton)
}

// probeDismiss looks for an optional element under the probe timeout.
// Absence is expected and silently ignored; presence triggers a single
// dismissal click. The default timeout is restored on every exit path.
func (o *Orchestrator) probeDismiss(ctx context.Context, sel Selector) {
	restore := o.Driver.DefaultTimeout()
	o.Driver.SetDefaultTimeout(o.ProbeTimeout)
	defer o.Driver.SetDefaultTimeout(restore)

	n, err := o.Driver.Count(ctx, sel)
	if err != nil || n == 0 {
		return
	}
	if err := o.Driver.Click(ctx, sel); err != nil {
		o.Log.Debug("optional element dismissal failed", zap.String("selector", sel.Expr), zap.Error(err))
	}
}

func (o *Orchestrator) advance(next State) {
	o.Log.Info("stage complete", zap.Stringer("state", next))
	o.state = next
}

func (o *Orchestrator) fail(err error) (State, error) {
	// Scheduling aborts keep their own error class; only capability
	// failures become stage errors.
	var abortErr *schedule.AbortError
	if errors.As(err, &abortErr) {
		return o.abort(err)
	}
	serr := &StageError{Stage: o.state, Err: err}
	o.Log.Error("booking run failed",
		zap.Stringer("stage", o.state),
		zap.Bool("committed", o.committed),
		zap.Error(err))
	o.state = StateFailed
	return StateFailed, serr
}

func (o *Orchestrator) abort(err error) (State, error) {
	o.Log.Error("scheduling abort", zap.Error(err))
	o.state = StateFailed
	return StateFailed, err
}
