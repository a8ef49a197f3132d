package leave

import "time"

// WorkingDays counts weekdays (Monday through Friday) in [start, end]
// inclusive. Public holidays are not considered; leave balances here are
// tracked in plain weekdays.
func WorkingDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := dateOnly(start); !d.After(dateOnly(end)); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			count++
		}
	}
	return count
}

// WeekdayDates returns every weekday in [start, end] inclusive, normalized to
// midnight UTC.
func WeekdayDates(start, end time.Time) []time.Time {
	var days []time.Time
	for d := dateOnly(start); !d.After(dateOnly(end)); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			days = append(days, d)
		}
	}
	return days
}

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
