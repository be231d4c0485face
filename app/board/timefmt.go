package board

import (
	"fmt"
	"time"
)

// DateLayout is used for posts older than a week.
const DateLayout = "Jan 2, 2006"

// FormatTimestamp describes ts relative to now: "Just now", "N min ago",
// "N hour(s) ago", "N day(s) ago", and a short date past a week. Units are
// floored.
func FormatTimestamp(ts, now time.Time) string {
	minutes := int(now.Sub(ts) / time.Minute)
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d %s ago", hours, plural(hours, "hour"))
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d %s ago", days, plural(days, "day"))
	}
	return ts.Format(DateLayout)
}

func plural(n int, unit string) string {
	if n > 1 {
		return unit + "s"
	}
	return unit
}
