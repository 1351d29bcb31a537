package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// Verifier memvalidasi token challenge dari klien. Failure (false, nil)
// artinya token ditolak; error artinya verifikasi tidak bisa dijalankan.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

type turnstileVerifier struct {
	secret string
	client *http.Client
	log    *zap.Logger
}

func NewTurnstileVerifier(secret string, log *zap.Logger) Verifier {
	return &turnstileVerifier{
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With(zap.String("component", "turnstile")),
	}
}

type verifyRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
}

type verifyResponse struct {
	Success bool `json:"success"`
}

func (v *turnstileVerifier) Verify(ctx context.Context, token string) (bool, error) {
	payload, err := json.Marshal(verifyRequest{Secret: v.secret, Response: token})
	if err != nil {
		return false, fmt.Errorf("marshal turnstile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, turnstileVerifyURL, bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("build turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Error("Turnstile verification request failed", zap.Error(err))
		return false, fmt.Errorf("verify turnstile token: %w", err)
	}
	defer resp.Body.Close()

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		v.log.Error("Failed to parse Turnstile response", zap.Error(err))
		return false, fmt.Errorf("parse turnstile response: %w", err)
	}

	return result.Success, nil
}
