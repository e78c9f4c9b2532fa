// Package browser implements the workflow driver port on top of a
// Chrome session driven over the DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/example/irctc-booker/internal/application/workflow"
)

// DefaultTimeout matches the patience a human-paced booking page needs.
const DefaultTimeout = 60 * time.Second

// Options configure the browser session.
type Options struct {
	Headless bool
	// UserDataDir persists the Chrome profile between runs; empty
	// means a throwaway profile.
	UserDataDir string
	// Timeout is the default per-operation timeout; zero means
	// DefaultTimeout.
	Timeout time.Duration
}

// Driver owns one Chrome session for the lifetime of one booking run.
type Driver struct {
	ctx     context.Context
	cancels []context.CancelFunc
	log     *zap.Logger

	mu      sync.Mutex
	timeout time.Duration
}

var _ workflow.Driver = (*Driver)(nil)

// New launches Chrome and waits for the session to come up.
func New(parent context.Context, log *zap.Logger, opts Options) (*Driver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1366, 900),
	)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	d := &Driver{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		log:     log,
		timeout: timeout,
	}

	// An empty Run starts the browser eagerly so launch failures
	// surface here rather than mid-workflow.
	if err := chromedp.Run(browserCtx); err != nil {
		d.cancelAll()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	log.Info("browser session started", zap.Bool("headless", opts.Headless))
	return d, nil
}

func (d *Driver) cancelAll() {
	for _, cancel := range d.cancels {
		cancel()
	}
}

// run executes actions inside the current default timeout while still
// honouring cancellation of the caller's context.
func (d *Driver) run(ctx context.Context, actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(d.ctx, d.DefaultTimeout())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(tctx, actions...)
}

func queryOpts(sel workflow.Selector, extra ...chromedp.QueryOption) []chromedp.QueryOption {
	out := make([]chromedp.QueryOption, 0, len(extra)+1)
	if sel.By == workflow.ByXPath {
		out = append(out, chromedp.BySearch)
	} else {
		out = append(out, chromedp.ByQuery)
	}
	return append(out, extra...)
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	d.log.Debug("navigate", zap.String("url", url))
	return d.run(ctx, chromedp.Navigate(url))
}

func (d *Driver) Click(ctx context.Context, sel workflow.Selector) error {
	d.log.Debug("click", zap.String("selector", sel.Expr))
	return d.run(ctx, chromedp.Click(sel.Expr, queryOpts(sel, chromedp.NodeVisible)...))
}

func (d *Driver) Type(ctx context.Context, sel workflow.Selector, text string) error {
	d.log.Debug("type", zap.String("selector", sel.Expr), zap.Int("chars", len(text)))
	return d.run(ctx, chromedp.SendKeys(sel.Expr, text, queryOpts(sel, chromedp.NodeVisible)...))
}

func (d *Driver) Clear(ctx context.Context, sel workflow.Selector) error {
	return d.run(ctx, chromedp.Clear(sel.Expr, queryOpts(sel)...))
}

func (d *Driver) SetValue(ctx context.Context, sel workflow.Selector, value string) error {
	d.log.Debug("set value", zap.String("selector", sel.Expr), zap.String("value", value))
	// SetValue alone does not notify the page's form framework, so a
	// change event is dispatched afterwards.
	return d.run(ctx,
		chromedp.SetValue(sel.Expr, value, queryOpts(sel)...),
		chromedp.Evaluate(changeEventScript(sel), nil),
	)
}

func changeEventScript(sel workflow.Selector) string {
	lookup := fmt.Sprintf("document.querySelector(%q)", sel.Expr)
	if sel.By == workflow.ByXPath {
		lookup = fmt.Sprintf(
			"document.evaluate(%q, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue",
			sel.Expr)
	}
	return fmt.Sprintf(
		"(function(){var el=%s;if(el){el.dispatchEvent(new Event('change',{bubbles:true}));}})()",
		lookup)
}

func (d *Driver) WaitVisible(ctx context.Context, sel workflow.Selector) error {
	return d.run(ctx, chromedp.WaitVisible(sel.Expr, queryOpts(sel)...))
}

func (d *Driver) WaitEnabled(ctx context.Context, sel workflow.Selector) error {
	return d.run(ctx, chromedp.WaitEnabled(sel.Expr, queryOpts(sel)...))
}

func (d *Driver) WaitHidden(ctx context.Context, sel workflow.Selector) error {
	return d.run(ctx, chromedp.WaitNotVisible(sel.Expr, queryOpts(sel)...))
}

func (d *Driver) Attribute(ctx context.Context, sel workflow.Selector, name string) (string, bool, error) {
	var value string
	var ok bool
	err := d.run(ctx, chromedp.AttributeValue(sel.Expr, name, &value, &ok, queryOpts(sel)...))
	return value, ok, err
}

// countPollInterval paces the node lookups Count issues while waiting
// for a first match.
const countPollInterval = 200 * time.Millisecond

// Count treats the current default timeout as an implicit wait. A bare
// Nodes lookup with AtLeast(0) returns on the first DOM poll, which
// would decide dialog probes and the availability inspection before
// the page has settled; instead the lookup is repeated until a node
// matches or the timeout elapses, and only the deadline reports zero.
func (d *Driver) Count(ctx context.Context, sel workflow.Selector) (int, error) {
	tctx, cancel := context.WithTimeout(d.ctx, d.DefaultTimeout())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return pollCount(tctx, countPollInterval, func(lctx context.Context) (int, error) {
		var nodes []*cdp.Node
		err := chromedp.Run(lctx, chromedp.Nodes(sel.Expr, &nodes, queryOpts(sel, chromedp.AtLeast(0))...))
		return len(nodes), err
	})
}

// pollCount invokes lookup until it reports at least one match, the
// deadline passes or ctx is cancelled. Reaching the deadline without a
// match is a zero count, not an error.
func pollCount(ctx context.Context, interval time.Duration, lookup func(context.Context) (int, error)) (int, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		n, err := lookup(ctx)
		switch {
		case err == nil && n > 0:
			return n, nil
		case err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled):
			return 0, err
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return 0, nil
			}
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (d *Driver) ScrollTo(ctx context.Context, sel workflow.Selector) error {
	return d.run(ctx, chromedp.ScrollIntoView(sel.Expr, queryOpts(sel)...))
}

func (d *Driver) CaptureImage(ctx context.Context, sel workflow.Selector) ([]byte, error) {
	var buf []byte
	err := d.run(ctx, chromedp.Screenshot(sel.Expr, &buf, queryOpts(sel, chromedp.NodeVisible)...))
	return buf, err
}

func (d *Driver) RunScript(ctx context.Context, script string) error {
	return d.run(ctx, chromedp.Evaluate(script, nil))
}

func (d *Driver) DefaultTimeout() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timeout
}

func (d *Driver) SetDefaultTimeout(timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeout = timeout
}

// Close shuts the browser down. Callers suppress this once the run is
// committed, so a live payment page stays open for the operator.
func (d *Driver) Close(ctx context.Context) error {
	d.log.Info("closing browser session")
	err := chromedp.Cancel(d.ctx)
	d.cancelAll()
	return err
}
