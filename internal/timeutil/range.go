package timeutil

import (
	"fmt"
	"time"
)

// now is the clock used for --last ranges. Tests can replace it.
var now = time.Now

// ParseDateRangeFlags turns the --from, --to and --last flags into a time
// range in loc. Zero start or end means the range is open on that side.
// --last N covers N whole days ending today and cannot be combined with
// --from or --to.
func ParseDateRangeFlags(fromStr, toStr string, lastDays int, loc *time.Location) (start, end time.Time, err error) {
	if lastDays < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --last value: must be positive, got %d", lastDays)
	}
	if lastDays > 0 && (fromStr != "" || toStr != "") {
		return time.Time{}, time.Time{}, fmt.Errorf("cannot use --last with --from or --to")
	}

	if lastDays > 0 {
		today := now().In(loc)
		return StartOfDay(today.AddDate(0, 0, -(lastDays - 1))), EndOfDay(today), nil
	}

	if fromStr != "" {
		start, err = ParseDate(fromStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
	}

	if toStr != "" {
		toDate, err := ParseDate(toStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		end = EndOfDay(toDate)
	}

	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return start, end, nil
}
