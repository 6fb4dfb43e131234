package verification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrVerifierUnreachable marks transport failures talking to the
// external verifier. Callers may retry; this service never does.
var ErrVerifierUnreachable = errors.New("verifier unreachable")

const defaultVerifierTimeout = 5 * time.Second

// HTTPVerifier delegates verification to an external HTTP service
// speaking the shared wire contract.
type HTTPVerifier struct {
	url    string
	client *http.Client
}

// NewHTTPVerifier creates an HTTP verifier for the given endpoint.
func NewHTTPVerifier(url string, timeout time.Duration) (*HTTPVerifier, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, fmt.Errorf("verifier url is required")
	}
	if timeout <= 0 {
		timeout = defaultVerifierTimeout
	}
	return &HTTPVerifier{
		url:    trimmed,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Verify posts the request and decodes the result. The caller's
// context governs cancellation.
func (v *HTTPVerifier) Verify(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrVerifierUnreachable, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnreachable, err)
	}

	var result Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("verifier response invalid: %w", err)
	}
	return &result, nil
}
