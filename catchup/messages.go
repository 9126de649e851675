package catchup

import "fmt"

// DailyMissionSuggestions formats pace suggestions for the analyses that
// need catching up. The result is plain fixed-locale text; localization is
// out of this engine's contract.
func (p *Planner) DailyMissionSuggestions(analyses []Analysis) []string {
	var suggestions []string
	for _, a := range analyses {
		if !a.NeedsCatchup || a.RemainingTarget <= 0 {
			continue
		}

		if a.SuggestedDailyTarget == 1 {
			suggestions = append(suggestions,
				"Complete this routine once today to stay on pace.")
		} else {
			suggestions = append(suggestions, fmt.Sprintf(
				"Complete this routine %d times today to stay on pace.",
				a.SuggestedDailyTarget))
		}

		if a.RemainingDays <= p.cfg.UrgentWindowDays {
			suggestions = append(suggestions, fmt.Sprintf(
				"Only %d day(s) left in this period: %d to go!",
				a.RemainingDays, a.RemainingTarget))
		}
	}
	return suggestions
}

// ProgressMessage classifies an analysis into a short status line by
// completion rate, using the planner's thresholds.
func (p *Planner) ProgressMessage(a Analysis) string {
	if a.RemainingTarget == 0 {
		return "Goal complete! Great work this period."
	}
	// Unreachable through Analyze (RemainingDays is floored at 1), but a
	// hand-built Analysis can carry it.
	if a.RemainingDays == 0 {
		return fmt.Sprintf("Period closed: %d of %d done.", a.CurrentProgress, a.TargetCount)
	}

	switch rate := a.ProgressRate(); {
	case rate >= p.cfg.OnTrack:
		return fmt.Sprintf("On track: %d of %d done.", a.CurrentProgress, a.TargetCount)
	case rate >= p.cfg.Steady:
		return fmt.Sprintf("Keep pushing: %d of %d done.", a.CurrentProgress, a.TargetCount)
	default:
		return fmt.Sprintf("Time to catch up: %d of %d done.", a.CurrentProgress, a.TargetCount)
	}
}
