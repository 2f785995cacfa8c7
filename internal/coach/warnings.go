package coach

import "alcyxob/fitcoach/internal/domain"

// ProfileWarnings lists inputs that would make the derived metrics collapse
// to 0. It never blocks the flow; the client shows the list next to the
// summary. The result is empty, never nil.
func ProfileWarnings(p domain.Profile) []string {
	warnings := []string{}
	check := func(field string, v float64) {
		switch {
		case v == 0:
			warnings = append(warnings, field+" missing")
		case v < 0:
			warnings = append(warnings, field+" must be positive")
		}
	}
	check("age", p.Age)
	check("weight", p.Weight)
	check("height", p.Height)
	if p.Gender == "" {
		warnings = append(warnings, "gender missing")
	}
	if p.Goal == "" {
		warnings = append(warnings, "goal missing")
	}
	if p.Frequency < 0 {
		warnings = append(warnings, "frequency must be positive")
	}
	return warnings
}
