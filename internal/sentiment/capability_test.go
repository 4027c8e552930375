package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewlens/internal/models"
)

func TestHTTPCapability_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req inferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		if req.Text != "great app" {
			t.Errorf("Unexpected text in request: %q", req.Text)
		}

		_ = json.NewEncoder(w).Encode(Prediction{Label: models.LabelPositive, Score: 0.92})
	}))
	defer srv.Close()

	c := NewHTTPCapability(srv.URL, "test-model", nil)

	pred, err := c.Classify(context.Background(), "great app")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if pred.Label != models.LabelPositive || pred.Score != 0.92 {
		t.Errorf("Unexpected prediction: %+v", pred)
	}
}

func TestHTTPCapability_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPCapability(srv.URL, "", nil)

	_, err := c.Classify(context.Background(), "text")
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Errorf("Expected ErrUnexpectedStatusCode, got %v", err)
	}
}

func TestHTTPCapability_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewHTTPCapability(srv.URL, "", nil)

	_, err := c.Classify(context.Background(), "text")
	if !errors.Is(err, ErrMalformedPrediction) {
		t.Errorf("Expected ErrMalformedPrediction, got %v", err)
	}
}
