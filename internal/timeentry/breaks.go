package timeentry

import "time"

// Statutory break deductions derived from German working time rules: a shift
// over six hours requires 30 minutes of break, over nine hours 45 minutes.
const (
	BreakThresholdShort = 6 * time.Hour
	BreakThresholdLong  = 9 * time.Hour

	BreakAfterShort = 30 * time.Minute
	BreakAfterLong  = 45 * time.Minute
)

// BreakReport describes an automatically applied break for user-facing
// messaging on clock-out.
type BreakReport struct {
	Duration int    `json:"duration"` // minutes
	Reason   string `json:"reason"`
}

// AutoBreak returns the statutory minimum pause for a shift of the given
// elapsed length. The long threshold is evaluated first: a ten hour shift
// gets the 45 minute deduction, never the 30 minute one.
func AutoBreak(elapsed time.Duration) (time.Duration, *BreakReport) {
	switch {
	case elapsed > BreakThresholdLong:
		return BreakAfterLong, &BreakReport{
			Duration: 45,
			Reason:   "work duration over 9 hours",
		}
	case elapsed > BreakThresholdShort:
		return BreakAfterShort, &BreakReport{
			Duration: 30,
			Reason:   "work duration over 6 hours",
		}
	default:
		return 0, nil
	}
}
