package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestExecute_Success(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.(string) != "ok" {
		t.Errorf("expected %q, got %v", "ok", result)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed state, got %v", cb.State())
	}
}

func TestExecute_OpensAfterFailures(t *testing.T) {
	cfg := Config{
		Name:             "test-open",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 1.0,
		MinRequests:      3,
	}
	cb := New(cfg)
	testErr := errors.New("upstream down")

	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(func() (interface{}, error) {
			return nil, testErr
		}); !errors.Is(err, testErr) {
			t.Fatalf("attempt %d: expected upstream error, got %v", i, err)
		}
	}

	if !cb.IsOpen() {
		t.Fatalf("expected circuit open after repeated failures, state %v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		t.Error("function must not run while circuit is open")
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestExecute_StaysClosedBelowMinRequests(t *testing.T) {
	cfg := DefaultConfig("test-min")
	cb := New(cfg)

	// Fewer failures than MinRequests must not trip the circuit.
	for i := 0; i < int(cfg.MinRequests)-1; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("failure")
		})
	}

	if cb.IsOpen() {
		t.Error("circuit should remain closed below the request minimum")
	}
}

func TestConfigNames(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{ClaudeAPIConfig(), "claude-api"},
		{OpenAIAPIConfig(), "openai-api"},
		{SERPAPIConfig(), "serp-api"},
		{DBConfig(), "database"},
	}
	for _, tt := range tests {
		if New(tt.cfg).Name() != tt.want {
			t.Errorf("config name = %q, want %q", tt.cfg.Name, tt.want)
		}
	}
}
