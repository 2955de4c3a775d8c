package prune

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"14d", 14 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"0.5d", 12 * time.Hour},
		{"24h", 24 * time.Hour},
		{"90m", 90 * time.Minute},
		{" 30d ", 30 * 24 * time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if err != nil {
			t.Errorf("ParseDuration(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "fourteen days", "14x", "d"} {
		if _, err := ParseDuration(in); err == nil {
			t.Errorf("ParseDuration(%q) accepted", in)
		}
	}
}

func TestConfigFromStrings(t *testing.T) {
	cfg, err := ConfigFromStrings("7d", "12h", "60d")
	if err != nil {
		t.Fatalf("ConfigFromStrings: %v", err)
	}
	if cfg.StaleAfter != 7*24*time.Hour {
		t.Errorf("StaleAfter = %s", cfg.StaleAfter)
	}
	if cfg.BaseInterval != 12*time.Hour {
		t.Errorf("BaseInterval = %s", cfg.BaseInterval)
	}
	if cfg.MaxInterval != 60*24*time.Hour {
		t.Errorf("MaxInterval = %s", cfg.MaxInterval)
	}
}

func TestConfigFromStringsEmptyFallsBackToDefaults(t *testing.T) {
	cfg, err := ConfigFromStrings("", "", "")
	if err != nil {
		t.Fatalf("ConfigFromStrings: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestConfigFromStringsBadValue(t *testing.T) {
	if _, err := ConfigFromStrings("soon", "", ""); err == nil {
		t.Fatal("bad staleAfter accepted")
	}
}
