// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	if len(id1) != 36 {
		t.Errorf("NewID() length = %d, want 36", len(id1))
	}
	if id1 == id2 {
		t.Error("NewID() produced duplicate IDs (extremely unlikely)")
	}
	if _, err := ParseID(string(id1)); err != nil {
		t.Errorf("ParseID(NewID()) error = %v", err)
	}
}

func TestNewManageCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := string(NewManageCode())
		if seen[code] {
			t.Fatalf("NewManageCode() produced duplicate code %s", code)
		}
		seen[code] = true

		if strings.Count(code, "-") != 4 {
			t.Errorf("NewManageCode() = %q, want UUID form", code)
		}
	}
}

func TestParseManageCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"canonical", "0b4f4d6e-2a39-4f53-9bd1-3f6a0c1f2e11", "0b4f4d6e-2a39-4f53-9bd1-3f6a0c1f2e11", false},
		{"upper case normalized", "0B4F4D6E-2A39-4F53-9BD1-3F6A0C1F2E11", "0b4f4d6e-2a39-4f53-9bd1-3f6a0c1f2e11", false},
		{"surrounding space", "  0b4f4d6e-2a39-4f53-9bd1-3f6a0c1f2e11 ", "0b4f4d6e-2a39-4f53-9bd1-3f6a0c1f2e11", false},
		{"empty", "", "", true},
		{"garbage", "not-a-code", "", true},
		{"sql", "' OR 1=1 --", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManageCode(tt.input)
			if tt.wantErr {
				if err != ErrInvalidCode {
					t.Errorf("ParseManageCode(%q) error = %v, want ErrInvalidCode", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseManageCode(%q) error = %v", tt.input, err)
			}
			if string(got) != tt.want {
				t.Errorf("ParseManageCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseID_Invalid(t *testing.T) {
	if _, err := ParseID("123"); err != ErrInvalidID {
		t.Errorf("ParseID(\"123\") error = %v, want ErrInvalidID", err)
	}
}
