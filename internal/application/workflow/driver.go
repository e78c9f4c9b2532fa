package workflow

import (
	"context"
	"time"
)

// By selects the lookup strategy for a Selector.
type By int

const (
	ByCSS By = iota
	ByXPath
)

// Selector is an opaque lookup key for the external page. The workflow
// never interprets the expression; it only hands selectors to the
// driver.
type Selector struct {
	By   By
	Expr string
}

func CSS(expr string) Selector   { return Selector{By: ByCSS, Expr: expr} }
func XPath(expr string) Selector { return Selector{By: ByXPath, Expr: expr} }

// Driver is the UI-driving collaborator the workflow issues its
// capability calls against. Implementations own a single browser
// session for the lifetime of one run. Every lookup honours the
// driver's current default timeout; the workflow swaps a shorter
// timeout in around optional-element probes and restores the default
// afterwards.
type Driver interface {
	Navigate(ctx context.Context, url string) error

	Click(ctx context.Context, sel Selector) error
	Type(ctx context.Context, sel Selector, text string) error
	Clear(ctx context.Context, sel Selector) error
	// SetValue assigns a form control's value directly and fires its
	// change event; used for the dropdown controls.
	SetValue(ctx context.Context, sel Selector, value string) error

	WaitVisible(ctx context.Context, sel Selector) error
	WaitEnabled(ctx context.Context, sel Selector) error
	WaitHidden(ctx context.Context, sel Selector) error

	// Attribute reads a DOM attribute; ok is false when the attribute
	// is absent.
	Attribute(ctx context.Context, sel Selector, name string) (value string, ok bool, err error)
	// Count reports how many nodes match. The default timeout acts as
	// an implicit wait: implementations keep looking until at least
	// one node matches and report zero only once the timeout elapses.
	// Zero matches is not an error.
	Count(ctx context.Context, sel Selector) (int, error)

	ScrollTo(ctx context.Context, sel Selector) error
	CaptureImage(ctx context.Context, sel Selector) ([]byte, error)
	RunScript(ctx context.Context, script string) error

	DefaultTimeout() time.Duration
	SetDefaultTimeout(d time.Duration)

	Close(ctx context.Context) error
}

// TextExtractor is the OCR collaborator. Failures are non-fatal to
// callers; the captcha resolver degrades to a skip.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Clock abstracts the wall clock and suspension so the deadline waits
// and settle pauses are testable without real sleeps.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }
