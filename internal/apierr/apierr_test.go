package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
)

func TestClassify_TaxonomyErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("empty topic"), KindValidation},
		{"api", API("server error", nil), KindAPI},
		{"rate limit", RateLimit("throttled", nil), KindRateLimit},
		{"wrapped validation", fmt.Errorf("blog post: %w", Validation("empty topic")), KindValidation},
		{"http 429", FromHTTPStatus(http.StatusTooManyRequests, "slow down"), KindRateLimit},
		{"http 500", FromHTTPStatus(http.StatusInternalServerError, "boom"), KindAPI},
		{"connection refused", syscall.ECONNREFUSED, KindAPI},
		{"connection reset", fmt.Errorf("request: %w", syscall.ECONNRESET), KindAPI},
		{"context canceled", context.Canceled, KindUnknown},
		{"plain error", errors.New("something else"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassify_MalformedJSON(t *testing.T) {
	var out struct{ Title string }
	err := json.Unmarshal([]byte("{not json"), &out)
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
	if got := Classify(err); got != KindAPI {
		t.Errorf("Classify(json error) = %v, want %v", got, KindAPI)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	errs := []error{
		Validation("bad input"),
		RateLimit("throttled", errors.New("429")),
		errors.New("unrecognized"),
	}
	for _, err := range errs {
		first := Classify(err)
		second := Classify(err)
		if first != second {
			t.Errorf("Classify not idempotent for %v: %v then %v", err, first, second)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(Validation("empty keywords")) {
		t.Error("validation errors must not be retryable")
	}
	if !IsRetryable(API("upstream failure", nil)) {
		t.Error("api errors must be retryable")
	}
	if !IsRetryable(RateLimit("throttled", nil)) {
		t.Error("rate limit errors must be retryable")
	}
	if IsRetryable(errors.New("unrecognized")) {
		t.Error("unrecognized errors must not be retryable")
	}
}

func TestRateLimitIsSubtypeOfAPI(t *testing.T) {
	err := RateLimit("throttled", nil)
	if !errors.Is(err, ErrRateLimit) {
		t.Error("rate limit error should match ErrRateLimit")
	}
	if !errors.Is(err, ErrAPI) {
		t.Error("rate limit error should match ErrAPI")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("rate limit error should not match ErrValidation")
	}
}

func TestRequire(t *testing.T) {
	if err := Require(true, "unused"); err != nil {
		t.Errorf("Require(true) = %v, want nil", err)
	}

	err := Require(false, "bad input")
	if err == nil {
		t.Fatal("Require(false) should return an error")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Require(false) kind = %v, want validation", Classify(err))
	}
	var verr *Error
	if !errors.As(err, &verr) || verr.Message != "bad input" {
		t.Errorf("Require(false) message = %q, want %q", verr.Message, "bad input")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection closed")
	err := API("request failed", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}
