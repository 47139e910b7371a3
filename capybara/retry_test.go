package capybara

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/capybaradb/capybaradb-go/core"
)

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	if policy == nil {
		t.Fatal("DefaultRetryPolicy() returned nil")
	}
}

func TestRetryPolicyRetryableErrors(t *testing.T) {
	policy := DefaultRetryPolicy()

	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{"ErrNetwork", core.ErrNetwork, true},
		{"ErrServer", core.ErrServer, true},
		{"wrapped ErrNetwork", &core.APIError{Message: "dial tcp: refused", Err: core.ErrNetwork}, true},
		{"wrapped ErrServer", &core.APIError{StatusCode: 503, Message: "overloaded", Err: core.ErrServer}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := policy.NextDelay(0, tt.err)
			if ok != tt.wantRetry {
				t.Errorf("NextDelay(0, %v) retry = %v, want %v", tt.err, ok, tt.wantRetry)
			}
		})
	}
}

func TestRetryPolicyNonRetryableErrors(t *testing.T) {
	policy := DefaultRetryPolicy()

	tests := []struct {
		name string
		err  error
	}{
		{"ErrAuthentication", core.ErrAuthentication},
		{"ErrClientRequest", core.ErrClientRequest},
		{"ErrDecode", core.ErrDecode},
		{"context.Canceled", context.Canceled},
		{"context.DeadlineExceeded", context.DeadlineExceeded},
		{"wrapped ErrAuthentication", &core.APIError{StatusCode: 401, Err: core.ErrAuthentication}},
		{"wrapped ErrClientRequest", &core.APIError{StatusCode: 404, Err: core.ErrClientRequest}},
		{"wrapped ErrDecode", &core.APIError{StatusCode: 502, Err: core.ErrDecode}},
		{"nil error", nil},
		{"unknown error", errors.New("unknown error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := policy.NextDelay(0, tt.err)
			if ok {
				t.Errorf("NextDelay(0, %v) should not retry", tt.err)
			}
		})
	}
}

func TestRetryPolicyMaxRetries(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Jitter:     0, // disable jitter for predictable testing
	})

	err := core.ErrServer

	for attempt := 0; attempt < 3; attempt++ {
		if _, ok := policy.NextDelay(attempt, err); !ok {
			t.Errorf("NextDelay(%d, ErrServer) should retry", attempt)
		}
	}

	if _, ok := policy.NextDelay(3, err); ok {
		t.Error("NextDelay(3, ErrServer) should not retry beyond MaxRetries")
	}
}

func TestRetryPolicyExponentialBackoff(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 5,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Jitter:     0,
	})

	wantDelays := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
	}

	for attempt, want := range wantDelays {
		got, ok := policy.NextDelay(attempt, core.ErrNetwork)
		if !ok {
			t.Fatalf("NextDelay(%d) should retry", attempt)
		}
		if got != want {
			t.Errorf("NextDelay(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestRetryPolicyMaxDelayCap(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 10,
		BaseDelay:  time.Second,
		MaxDelay:   2 * time.Second,
		Jitter:     0,
	})

	got, ok := policy.NextDelay(5, core.ErrNetwork)
	if !ok {
		t.Fatal("NextDelay(5) should retry")
	}
	if got > 2*time.Second {
		t.Errorf("NextDelay(5) = %v, want <= 2s", got)
	}
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	// Zero config falls back to defaults rather than disabling retries.
	policy := NewRetryPolicy(RetryConfig{})

	delay, ok := policy.NextDelay(0, core.ErrServer)
	if !ok {
		t.Fatal("NextDelay(0, ErrServer) should retry with default config")
	}
	if delay <= 0 {
		t.Errorf("NextDelay(0) = %v, want positive delay", delay)
	}

	if _, ok := policy.NextDelay(3, core.ErrServer); ok {
		t.Error("NextDelay(3) should not retry with default MaxRetries of 3")
	}
}
