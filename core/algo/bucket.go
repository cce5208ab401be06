package algo

import (
	"fmt"
	"time"

	"github.com/huangsam/timeline-detective/schema"
)

// Key and label layouts. Labels are fixed to English month names.
const (
	dayKeyLayout     = "2006-01-02"
	monthKeyLayout   = "2006-01"
	dayLabelLayout   = "Jan 2, 2006"
	weekLabelLayout  = "Jan 2"
	monthLabelLayout = "January 2006"
)

// WeekStart returns the Sunday that begins t's week, read from t's calendar
// fields. The result is a UTC midnight so zones whose DST starts at midnight
// cannot shift it back to Saturday. Only its date is meaningful.
func WeekStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
}

// BucketKey returns the grouping identity of t under g. Calendar fields are
// read in t's own location, so callers convert to the analysis zone first.
// Unknown granularities bucket by day.
func BucketKey(t time.Time, g schema.Granularity) string {
	switch g {
	case schema.WeekGranularity:
		return "week-" + WeekStart(t).Format(dayKeyLayout)
	case schema.MonthGranularity:
		return t.Format(monthKeyLayout)
	default:
		return t.Format(dayKeyLayout)
	}
}

// BucketLabel returns the display label for t under g. It is cosmetic and
// must not be used for grouping.
func BucketLabel(t time.Time, g schema.Granularity) string {
	switch g {
	case schema.WeekGranularity:
		start := WeekStart(t)
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("Week of %s - %s", start.Format(weekLabelLayout), end.Format(weekLabelLayout))
	case schema.MonthGranularity:
		return t.Format(monthLabelLayout)
	default:
		return t.Format(dayLabelLayout)
	}
}
