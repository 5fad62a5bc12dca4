// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidator_Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{"lower bound", 1, false},
		{"upper bound", 10, false},
		{"below", 0, true},
		{"above", 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Range("workers", tt.value, 1, 10)
			if tt.wantErr == v.IsValid() {
				t.Errorf("Range(%d) valid=%v, wantErr=%v", tt.value, v.IsValid(), tt.wantErr)
			}
		})
	}
}

func TestValidator_FloatRange(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"half", 0.5, false},
		{"negative", -0.1, true},
		{"above one", 1.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.FloatRange("failure_rate", tt.value, 0, 1)
			if tt.wantErr == v.IsValid() {
				t.Errorf("FloatRange(%g) valid=%v, wantErr=%v", tt.value, v.IsValid(), tt.wantErr)
			}
		})
	}
}

func TestValidator_ListenAddr(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{"all interfaces", ":9090", false},
		{"loopback", "127.0.0.1:9090", false},
		{"localhost", "localhost:0", false},
		{"ipv6", "[::1]:8080", false},
		{"missing port", "127.0.0.1", true},
		{"bad port", ":http", true},
		{"port out of range", ":70000", true},
		{"hostname", "example.com:80", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ListenAddr("metrics.listen_addr", tt.addr)
			if tt.wantErr == v.IsValid() {
				t.Errorf("ListenAddr(%q) valid=%v, wantErr=%v (%v)", tt.addr, v.IsValid(), tt.wantErr, v.Err())
			}
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("bus.kind", "async", []string{"sync", "async"})
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}

	v.OneOf("bus.kind", "queue", []string{"sync", "async"})
	if v.IsValid() {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(v.Err().Error(), `"queue"`) {
		t.Errorf("error should quote the value, got %v", v.Err())
	}
}

func TestValidator_MinDuration(t *testing.T) {
	v := New()
	v.MinDuration("load.duration", time.Second, 100*time.Millisecond)
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	v.MinDuration("load.duration", time.Millisecond, 100*time.Millisecond)
	if v.IsValid() {
		t.Fatal("expected error for short duration")
	}
}

func TestValidator_PositiveAndNonNegative(t *testing.T) {
	v := New()
	v.Positive("rate", 1)
	v.NonNegative("burst", 0)
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}
	v.Positive("rate", 0)
	v.NonNegative("burst", -1)
	if got := len(v.Errors()); got != 2 {
		t.Fatalf("expected 2 errors, got %d", got)
	}
}

func TestValidator_Custom(t *testing.T) {
	v := New()
	v.Custom("handlers", 3, func(val any) error {
		if val.(int) > 2 {
			return errors.New("too many handlers")
		}
		return nil
	})
	if v.IsValid() {
		t.Fatal("expected custom validation error")
	}
}

func TestValidationError_Aggregates(t *testing.T) {
	v := New()
	if v.Err() != nil {
		t.Fatal("empty validator must not produce an error")
	}

	v.NotEmpty("bus.name", " ")
	v.Range("bus.max_workers", -1, 0, 1024)

	err := v.Err()
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(verr.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined message, got %q", err.Error())
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, in := range []string{"trace", "debug", "INFO", " warn ", "error"} {
		if _, err := ParseLogLevel(in); err != nil {
			t.Errorf("ParseLogLevel(%q) unexpected error: %v", in, err)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
