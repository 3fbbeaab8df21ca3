package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvString(t *testing.T) {
	t.Run("unset returns default", func(t *testing.T) {
		assert.Equal(t, "0 2 * * *", LoadEnvString("TEST_UNSET_STRING", "0 2 * * *"))
	})

	t.Run("set returns value", func(t *testing.T) {
		t.Setenv("TEST_SET_STRING", "0 4 * * *")
		assert.Equal(t, "0 4 * * *", LoadEnvString("TEST_SET_STRING", "0 2 * * *"))
	})
}

func TestLoadEnvWithFallback(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		wantValue    string
		wantFallback bool
	}{
		{
			name:      "unset uses default without warning",
			envValue:  "",
			wantValue: "0 2 * * *",
		},
		{
			name:      "valid value accepted",
			envValue:  "0 9 * * 1",
			wantValue: "0 9 * * 1",
		},
		{
			name:         "invalid value falls back with warning",
			envValue:     "not a schedule",
			wantValue:    "0 2 * * *",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_CRON", tt.envValue)
			}

			result := LoadEnvWithFallback("TEST_CRON", "0 2 * * *", ValidateCronSchedule)

			assert.Equal(t, tt.wantValue, result.Value.(string))
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
			if tt.wantFallback {
				assert.Len(t, result.Warnings, 1)
				assert.Contains(t, result.Warnings[0], "falling back to default")
			} else {
				assert.Empty(t, result.Warnings)
			}
		})
	}
}

func TestLoadEnvWithFallbackNilValidator(t *testing.T) {
	t.Setenv("TEST_ANY", "anything goes")

	result := LoadEnvWithFallback("TEST_ANY", "default", nil)

	assert.Equal(t, "anything goes", result.Value.(string))
	assert.False(t, result.FallbackApplied)
}

func TestLoadEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		wantValue    time.Duration
		wantFallback bool
	}{
		{name: "unset uses default", envValue: "", wantValue: 15 * time.Minute},
		{name: "valid duration", envValue: "30m", wantValue: 30 * time.Minute},
		{name: "unparseable falls back", envValue: "thirty minutes", wantValue: 15 * time.Minute, wantFallback: true},
		{name: "negative rejected by validator", envValue: "-5m", wantValue: 15 * time.Minute, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_TIMEOUT", tt.envValue)
			}

			result := LoadEnvDuration("TEST_TIMEOUT", 15*time.Minute, ValidatePositiveDuration)

			assert.Equal(t, tt.wantValue, result.Value.(time.Duration))
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
		})
	}
}

func TestLoadEnvInt(t *testing.T) {
	validator := func(v int) error { return ValidateIntRange(v, 1024, 65535) }

	tests := []struct {
		name         string
		envValue     string
		wantValue    int
		wantFallback bool
	}{
		{name: "unset uses default", envValue: "", wantValue: 9091},
		{name: "valid port", envValue: "8080", wantValue: 8080},
		{name: "unparseable falls back", envValue: "eighty", wantValue: 9091, wantFallback: true},
		{name: "out of range falls back", envValue: "80", wantValue: 9091, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_PORT", tt.envValue)
			}

			result := LoadEnvInt("TEST_PORT", 9091, validator)

			assert.Equal(t, tt.wantValue, result.Value.(int))
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
		})
	}
}

func TestLoadEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		wantValue    bool
		wantFallback bool
	}{
		{name: "unset uses default", envValue: "", defaultValue: true, wantValue: true},
		{name: "true accepted", envValue: "true", defaultValue: false, wantValue: true},
		{name: "numeric false accepted", envValue: "0", defaultValue: true, wantValue: false},
		{name: "garbage falls back", envValue: "yes please", defaultValue: true, wantValue: true, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_FLAG", tt.envValue)
			}

			result := LoadEnvBool("TEST_FLAG", tt.defaultValue)

			assert.Equal(t, tt.wantValue, result.Value.(bool))
			assert.Equal(t, tt.wantFallback, result.FallbackApplied)
		})
	}
}
