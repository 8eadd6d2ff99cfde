/*
Package scenario - Scenario Engine Tuning Configuration

==============================================================================
FILE: internal/config/scenario/scenario_config.go
==============================================================================

DESCRIPTION:
    Loads the engine tuning knobs that are deployment-wide rather than
    per-run: the default recall method new scenarios start from, the
    ceiling on projected months a single run may request, and whether
    lspcnt denominators default to "remaining active" or "remaining plus
    furloughed" (engine.ScenarioInput.LspcntOnRemainingOnly). These are
    read once at startup from a JSON file, mirroring how payroll-specific
    constants used to be loaded from JSON in this codebase.

USER PERSPECTIVE:
    - Ops can change engine defaults without a redeploy by editing the
      JSON file referenced by SCENARIO_CONFIG_DIR
    - A missing file falls back to conservative defaults

DEVELOPER GUIDELINES:
    ✅  OK to modify: Add new tuning fields with defaults
    ⚠️  CAUTION: MaxProjectionMonths changes (affects run cost)

==============================================================================
*/
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds engine-wide tuning defaults.
type Config struct {
	DefaultRecallMethod     string `json:"default_recall_method"`
	MaxProjectionMonths     int    `json:"max_projection_months"`
	LspcntOnRemainingOnly   bool   `json:"lspcnt_on_remaining_only"`
	DefaultRandomRecallSeed int64  `json:"default_random_recall_seed"`
}

// DefaultConfig returns the fallback configuration used when no
// scenario.json is present in the configured directory.
func DefaultConfig() *Config {
	return &Config{
		DefaultRecallMethod:     "sen_order",
		MaxProjectionMonths:     600,
		LspcntOnRemainingOnly:   false,
		DefaultRandomRecallSeed: 1,
	}
}

// Loader reads scenario.json from a configuration directory.
type Loader struct {
	dir string
}

// NewLoader constructs a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads <dir>/scenario.json, falling back to DefaultConfig if the
// file does not exist.
func (l *Loader) Load() (*Config, error) {
	path := filepath.Join(l.dir, "scenario.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scenario config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config %s: %w", path, err)
	}
	return cfg, nil
}
