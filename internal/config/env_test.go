// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"testing"
	"time"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     string
	}{
		{name: "environment variable set", envValue: "from-env", envSet: true, want: "from-env"},
		{name: "environment variable not set", want: "default"},
		{name: "environment variable empty string", envValue: "", envSet: true, want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "MINIBUS_TEST_STRING"
			if tt.envSet {
				t.Setenv(key, tt.envValue)
			}
			if got := ParseString(key, "default"); got != tt.want {
				t.Errorf("ParseString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     int
	}{
		{name: "valid", envValue: "42", envSet: true, want: 42},
		{name: "negative", envValue: "-3", envSet: true, want: -3},
		{name: "invalid falls back", envValue: "many", envSet: true, want: 7},
		{name: "empty falls back", envValue: "", envSet: true, want: 7},
		{name: "unset", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "MINIBUS_TEST_INT"
			if tt.envSet {
				t.Setenv(key, tt.envValue)
			}
			if got := ParseInt(key, 7); got != tt.want {
				t.Errorf("ParseInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     float64
	}{
		{name: "valid", envValue: "0.25", envSet: true, want: 0.25},
		{name: "integer", envValue: "3", envSet: true, want: 3},
		{name: "invalid falls back", envValue: "half", envSet: true, want: 1.5},
		{name: "unset", want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "MINIBUS_TEST_FLOAT"
			if tt.envSet {
				t.Setenv(key, tt.envValue)
			}
			if got := ParseFloat(key, 1.5); got != tt.want {
				t.Errorf("ParseFloat() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		want     time.Duration
	}{
		{name: "valid", envValue: "1m30s", envSet: true, want: 90 * time.Second},
		{name: "missing unit falls back", envValue: "30", envSet: true, want: 5 * time.Second},
		{name: "empty falls back", envValue: "", envSet: true, want: 5 * time.Second},
		{name: "unset", want: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "MINIBUS_TEST_DURATION"
			if tt.envSet {
				t.Setenv(key, tt.envValue)
			}
			if got := ParseDuration(key, 5*time.Second); got != tt.want {
				t.Errorf("ParseDuration() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		envSet   bool
		def      bool
		want     bool
	}{
		{name: "true", envValue: "true", envSet: true, want: true},
		{name: "one", envValue: "1", envSet: true, want: true},
		{name: "yes uppercase", envValue: "YES", envSet: true, want: true},
		{name: "no", envValue: "no", envSet: true, def: true, want: false},
		{name: "zero", envValue: "0", envSet: true, def: true, want: false},
		{name: "invalid falls back", envValue: "maybe", envSet: true, def: true, want: true},
		{name: "unset", def: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "MINIBUS_TEST_BOOL"
			if tt.envSet {
				t.Setenv(key, tt.envValue)
			}
			if got := ParseBool(key, tt.def); got != tt.want {
				t.Errorf("ParseBool() = %v, want %v", got, tt.want)
			}
		})
	}
}
