package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *APIError
		wantStr string
	}{
		{
			name: "with message",
			err: &APIError{
				StatusCode: 200,
				Endpoint:   "/stations.json",
				Message:    "response is not valid JSON",
			},
			wantStr: "dataset error 200 (/stations.json): response is not valid JSON",
		},
		{
			name: "without message",
			err: &APIError{
				StatusCode: 503,
				Status:     "503 Service Unavailable",
				Endpoint:   "/stations.json",
			},
			wantStr: "dataset error 503: 503 Service Unavailable (endpoint: /stations.json)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		name      string
		err       *APIError
		target    error
		wantMatch bool
	}{
		{"404 matches ErrNotFound", &APIError{StatusCode: 404}, ErrNotFound, true},
		{"500 matches ErrServerError", &APIError{StatusCode: 500}, ErrServerError, true},
		{"502 matches ErrServerError", &APIError{StatusCode: 502}, ErrServerError, true},
		{"bad body matches ErrBadResponse", &APIError{StatusCode: 200, Message: "bad"}, ErrBadResponse, true},
		{"404 does not match ErrServerError", &APIError{StatusCode: 404}, ErrServerError, false},
		{"403 matches nothing", &APIError{StatusCode: 403}, ErrNotFound, false},
		{"500 does not match ErrTimeout", &APIError{StatusCode: 500}, ErrTimeout, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestAPIError_IsThroughWrap(t *testing.T) {
	err := fmt.Errorf("primary source: %w", NewAPIError(404, "404 Not Found", "/x"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped APIError should match ErrNotFound")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Errorf("errors.As() = %v", apiErr)
	}
}

func TestNewAPIError(t *testing.T) {
	err := NewAPIError(404, "Not Found", "/test/endpoint")

	if err.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", err.StatusCode)
	}
	if err.Status != "Not Found" {
		t.Errorf("Status = %q, want %q", err.Status, "Not Found")
	}
	if err.Endpoint != "/test/endpoint" {
		t.Errorf("Endpoint = %q, want %q", err.Endpoint, "/test/endpoint")
	}
}

func TestNewAPIErrorWithMessage(t *testing.T) {
	err := NewAPIErrorWithMessage(200, "/stations.json", "dataset exceeds size limit")

	if err.Message != "dataset exceeds size limit" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Status != "" {
		t.Errorf("Status = %q, want empty", err.Status)
	}
}
