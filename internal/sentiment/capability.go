// Package sentiment wraps the external sentiment classifier and buckets
// its output into categories via configured thresholds.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"reviewlens/internal/logger"
)

// Classifier errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrMalformedPrediction  = errors.New("malformed prediction")
)

// Prediction is the raw output of the sentiment capability.
type Prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Capability is the external sentiment model boundary: text in, label and
// confidence out. Implementations must tolerate arbitrary UTF-8 input.
type Capability interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// Ensure implementations satisfy Capability.
var (
	_ Capability = (*HTTPCapability)(nil)
	_ Capability = (*LexiconCapability)(nil)
)

// HTTPCapability calls a remote inference endpoint.
type HTTPCapability struct {
	httpClient *http.Client
	endpoint   string
	model      string
	logger     *logger.Logger
}

// NewHTTPCapability creates a client for a remote sentiment endpoint.
func NewHTTPCapability(endpoint, model string, log *logger.Logger) *HTTPCapability {
	return &HTTPCapability{
		endpoint: endpoint,
		model:    model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

type inferenceRequest struct {
	Model string `json:"model,omitempty"`
	Text  string `json:"text"`
}

// Classify sends text to the inference endpoint and decodes the
// prediction.
func (c *HTTPCapability) Classify(ctx context.Context, text string) (Prediction, error) {
	body, err := json.Marshal(inferenceRequest{Model: c.model, Text: text})
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("inference request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Prediction{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var pred Prediction
	if err := json.Unmarshal(data, &pred); err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", ErrMalformedPrediction, err)
	}

	return pred, nil
}
