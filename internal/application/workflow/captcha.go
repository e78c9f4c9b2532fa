package workflow

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// CaptchaOutcome is the result of a captcha resolution attempt.
type CaptchaOutcome int

const (
	// CaptchaSkipped means the field was left untouched for the
	// operator, either because auto-solve is off or because extraction
	// failed.
	CaptchaSkipped CaptchaOutcome = iota
	CaptchaResolved
)

// CaptchaResolver answers image challenges by delegating to the OCR
// collaborator. Every failure is swallowed locally: a wrong or missing
// answer just leaves the challenge for the operator, who can still
// complete it while the session is open.
type CaptchaResolver struct {
	Enabled   bool
	Extractor TextExtractor
	Log       *zap.Logger
}

// Resolve captures the challenge image, strips all whitespace from the
// extracted text, types the result and fires the confirming action.
func (r *CaptchaResolver) Resolve(ctx context.Context, d Driver, image, input, confirm Selector) CaptchaOutcome {
	if !r.Enabled || r.Extractor == nil {
		return CaptchaSkipped
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Centering the image first keeps the capture geometry stable.
	if err := d.ScrollTo(ctx, image); err != nil {
		log.Debug("captcha image scroll failed", zap.Error(err))
		return CaptchaSkipped
	}
	img, err := d.CaptureImage(ctx, image)
	if err != nil {
		log.Debug("captcha image capture failed", zap.Error(err))
		return CaptchaSkipped
	}
	text, err := r.Extractor.ExtractText(ctx, img)
	if err != nil {
		log.Debug("captcha text extraction failed", zap.Error(err))
		return CaptchaSkipped
	}
	text = strings.Join(strings.Fields(text), "")
	log.Debug("captcha text extracted", zap.Int("length", len(text)))

	if err := d.Type(ctx, input, text); err != nil {
		log.Debug("captcha input failed", zap.Error(err))
		return CaptchaSkipped
	}
	if err := d.Click(ctx, confirm); err != nil {
		log.Debug("captcha confirm failed", zap.Error(err))
		return CaptchaSkipped
	}
	return CaptchaResolved
}
