package workflow

import (
	"context"
	"errors"
	"testing"
)

type fakeExtractor struct {
	text string
	err  error

	images [][]byte
}

func (e *fakeExtractor) ExtractText(_ context.Context, img []byte) (string, error) {
	e.images = append(e.images, img)
	return e.text, e.err
}

func TestCaptchaResolveDisabled(t *testing.T) {
	d := newFakeDriver()
	r := &CaptchaResolver{Enabled: false, Extractor: &fakeExtractor{text: "AB12"}}

	out := r.Resolve(context.Background(), d, CSS("captcha-img"), CSS("captcha-input"), CSS("confirm"))
	if out != CaptchaSkipped {
		t.Errorf("outcome = %v, want skipped", out)
	}
	if len(d.ops) != 0 {
		t.Errorf("disabled resolver touched the page: %v", d.ops)
	}
}

func TestCaptchaResolveTypesStrippedText(t *testing.T) {
	d := newFakeDriver()
	d.image = []byte{0x89, 0x50}
	ext := &fakeExtractor{text: " AB 12\n"}
	r := &CaptchaResolver{Enabled: true, Extractor: ext}

	out := r.Resolve(context.Background(), d, CSS("captcha-img"), CSS("captcha-input"), CSS("confirm"))
	if out != CaptchaResolved {
		t.Fatalf("outcome = %v, want resolved", out)
	}
	if indexOf(d.ops, "type:captcha-input:AB12") < 0 {
		t.Errorf("stripped answer not typed: %v", d.ops)
	}
	mustBefore(t, d.ops, "type:captcha-input:AB12", "click:confirm")
	if len(ext.images) != 1 || string(ext.images[0]) != string(d.image) {
		t.Errorf("extractor input = %v", ext.images)
	}
}

func TestCaptchaResolveExtractionFailure(t *testing.T) {
	d := newFakeDriver()
	r := &CaptchaResolver{Enabled: true, Extractor: &fakeExtractor{err: errors.New("no text")}}

	out := r.Resolve(context.Background(), d, CSS("captcha-img"), CSS("captcha-input"), CSS("confirm"))
	if out != CaptchaSkipped {
		t.Errorf("outcome = %v, want skipped", out)
	}
	for _, op := range d.ops {
		if op == "click:confirm" || op == "type:captcha-input:" {
			t.Errorf("field touched after extraction failure: %s", op)
		}
	}
}

func TestCaptchaResolveCaptureFailure(t *testing.T) {
	d := newFakeDriver()
	d.captureErr = errors.New("screenshot failed")
	ext := &fakeExtractor{text: "AB12"}
	r := &CaptchaResolver{Enabled: true, Extractor: ext}

	if out := r.Resolve(context.Background(), d, CSS("captcha-img"), CSS("captcha-input"), CSS("confirm")); out != CaptchaSkipped {
		t.Errorf("outcome = %v, want skipped", out)
	}
	if len(ext.images) != 0 {
		t.Error("extractor called despite capture failure")
	}
}

func TestOrchestratorResolvesLoginCaptcha(t *testing.T) {
	d := newFakeDriver()
	d.counts["avail-12034"] = 1
	d.image = []byte{1, 2, 3}
	o := newTestOrchestrator(d, istClock(12, 0, 0))
	o.Captcha = &CaptchaResolver{Enabled: true, Extractor: &fakeExtractor{text: "7 K Q 2"}}

	if _, err := o.Run(context.Background(), standardPlan()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if indexOf(d.ops, "type:captcha-input:7KQ2") < 0 {
		t.Errorf("login captcha not answered: %v", d.ops)
	}
	mustBefore(t, d.ops, "type:captcha-input:7KQ2", "click:login-submit")
}
