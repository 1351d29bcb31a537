package usecase

import (
	"context"
	"fmt"

	"mailgate/pkg/captcha"
)

// verifyCaptchaToken menjalankan gate Turnstile. Verifier nil artinya
// TURNSTILE_SECRET tidak diset dan gate dilewati seluruhnya.
func verifyCaptchaToken(ctx context.Context, verifier captcha.Verifier, token *string) error {
	if verifier == nil {
		return nil
	}

	if token == nil || *token == "" {
		return fmt.Errorf("captcha token required")
	}

	ok, err := verifier.Verify(ctx, *token)
	if err != nil {
		return fmt.Errorf("captcha verification unavailable: %w", err)
	}
	if !ok {
		return fmt.Errorf("captcha rejected")
	}

	return nil
}
