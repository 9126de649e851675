package catchup

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Progress classification thresholds. Policy constants, not derived values;
// they exist as names so they are independently testable and tunable.
const (
	// OnTrackThreshold is the completion rate at or above which progress
	// counts as on track.
	OnTrackThreshold = 0.8
	// SteadyThreshold is the completion rate at or above which progress
	// still only needs a steady push.
	SteadyThreshold = 0.5
)

// PlannerConfig holds the planner's policy knobs.
type PlannerConfig struct {
	// OnTrack and Steady bucket the progress rate for ProgressMessage.
	OnTrack float64 `yaml:"on_track_threshold"`
	Steady  float64 `yaml:"steady_threshold"`

	// UrgentWindowDays is how close to the period end the suggestions
	// start carrying an urgency line.
	UrgentWindowDays int `yaml:"urgent_window_days"`

	// WeeklyPaceDays and MonthlyPaceDays are the fixed denominators for
	// the baseline daily pace (target/7, target/30). The monthly value is
	// deliberately not the month's real length; changing it silently
	// changes NeedsCatchup outcomes.
	WeeklyPaceDays  int `yaml:"weekly_pace_days"`
	MonthlyPaceDays int `yaml:"monthly_pace_days"`
}

// DefaultPlannerConfig reproduces the engine's stock policy.
var DefaultPlannerConfig = PlannerConfig{
	OnTrack:          OnTrackThreshold,
	Steady:           SteadyThreshold,
	UrgentWindowDays: 2,
	WeeklyPaceDays:   7,
	MonthlyPaceDays:  30,
}

// LoadPlannerConfig reads a YAML config file, filling unset fields from
// DefaultPlannerConfig.
func LoadPlannerConfig(path string) (PlannerConfig, error) {
	cfg := DefaultPlannerConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading planner config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing planner config %s: %w", path, err)
	}

	if cfg.OnTrack == 0 {
		cfg.OnTrack = DefaultPlannerConfig.OnTrack
	}
	if cfg.Steady == 0 {
		cfg.Steady = DefaultPlannerConfig.Steady
	}
	if cfg.UrgentWindowDays == 0 {
		cfg.UrgentWindowDays = DefaultPlannerConfig.UrgentWindowDays
	}
	if cfg.WeeklyPaceDays == 0 {
		cfg.WeeklyPaceDays = DefaultPlannerConfig.WeeklyPaceDays
	}
	if cfg.MonthlyPaceDays == 0 {
		cfg.MonthlyPaceDays = DefaultPlannerConfig.MonthlyPaceDays
	}

	return cfg, nil
}
