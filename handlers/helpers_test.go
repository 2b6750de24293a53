package handlers

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestIsDateYYYYMMDD(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2026-08-30", true},
		{"2026-02-29", false}, // not a leap year
		{"2026-13-01", false},
		{"30-08-2026", false},
		{"2026-8-30", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isDateYYYYMMDD(tt.in); got != tt.want {
			t.Errorf("isDateYYYYMMDD(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReHHMM(t *testing.T) {
	valid := []string{"00:00", "08:15", "23:59"}
	invalid := []string{"8:15", "24:00", "12:60", "12-30", "noon", ""}
	for _, s := range valid {
		if !reHHMM.MatchString(s) {
			t.Errorf("reHHMM rejected %q", s)
		}
	}
	for _, s := range invalid {
		if reHHMM.MatchString(s) {
			t.Errorf("reHHMM accepted %q", s)
		}
	}
}

func TestLookupErr(t *testing.T) {
	if he := lookupErr(gorm.ErrRecordNotFound, "EVENT_NOT_FOUND"); he.Code != http.StatusNotFound {
		t.Errorf("missing record: code = %d, want 404", he.Code)
	}
	if he := lookupErr(errors.New("connection refused"), "EVENT_NOT_FOUND"); he.Code != http.StatusInternalServerError {
		t.Errorf("db failure: code = %d, want 500", he.Code)
	}
}

func TestAtoiOr(t *testing.T) {
	if got := atoiOr("42", 0); got != 42 {
		t.Errorf("atoiOr(42) = %d", got)
	}
	if got := atoiOr("", 7); got != 7 {
		t.Errorf("atoiOr empty = %d, want fallback 7", got)
	}
	if got := atoiOr("abc", -1); got != -1 {
		t.Errorf("atoiOr abc = %d, want fallback -1", got)
	}
}
