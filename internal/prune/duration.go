package prune

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses a config duration. It accepts everything
// time.ParseDuration does plus a "d" suffix for whole days, which is the
// natural unit for staleness thresholds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return time.Duration(days * float64(24*time.Hour)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}

// ConfigFromStrings builds an advisor Config from the string form used in
// the config file, falling back to defaults for empty values.
func ConfigFromStrings(staleAfter, baseInterval, maxInterval string) (Config, error) {
	cfg := DefaultConfig()
	if staleAfter != "" {
		d, err := ParseDuration(staleAfter)
		if err != nil {
			return Config{}, fmt.Errorf("prune.staleAfter: %w", err)
		}
		cfg.StaleAfter = d
	}
	if baseInterval != "" {
		d, err := ParseDuration(baseInterval)
		if err != nil {
			return Config{}, fmt.Errorf("prune.baseInterval: %w", err)
		}
		cfg.BaseInterval = d
	}
	if maxInterval != "" {
		d, err := ParseDuration(maxInterval)
		if err != nil {
			return Config{}, fmt.Errorf("prune.maxInterval: %w", err)
		}
		cfg.MaxInterval = d
	}
	return cfg, nil
}
