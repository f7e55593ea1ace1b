package client

import (
	"fmt"
	"time"
)

// TimeAgo renders a timestamp as a short relative string for the
// listing ("2min ago"). The poller re-renders on a slow timer purely to
// keep these fresh.
func TimeAgo(ts time.Time, now time.Time) string {
	if ts.IsZero() {
		return "no date"
	}

	diff := now.Sub(ts)
	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dmin ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return ts.Format("02/01/2006")
	}
}
