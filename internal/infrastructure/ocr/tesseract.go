// Package ocr implements the workflow text-extractor port with the
// Tesseract engine.
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/example/irctc-booker/internal/application/workflow"
)

// Tesseract extracts text from captcha screenshots. A fresh engine
// client is created per extraction; the engine keeps per-image state
// and one run only ever resolves a couple of challenges.
type Tesseract struct {
	languages []string
}

var _ workflow.TextExtractor = (*Tesseract)(nil)

// New returns an extractor for the given languages; none means the
// engine default (English).
func New(languages ...string) *Tesseract {
	return &Tesseract{languages: languages}
}

func (t *Tesseract) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("set ocr language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("load captcha image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("extract captcha text: %w", err)
	}
	return text, nil
}
