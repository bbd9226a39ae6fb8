package tracker

import (
	"fmt"
	"time"
)

// TimeRemaining renders a coarse human-readable countdown from now until
// target, using the two largest relevant units. A zero target yields
// "no target date"; a target at or before now yields "time expired".
func TimeRemaining(now, target time.Time) string {
	if target.IsZero() {
		return "no target date"
	}

	diff := target.Sub(now)
	if diff <= 0 {
		return "time expired"
	}

	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)
	seconds := int(diff % time.Minute / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%s %s", plural(days, "day"), plural(hours, "hour"))
	case hours > 0:
		return fmt.Sprintf("%s %s", plural(hours, "hour"), plural(minutes, "minute"))
	case minutes > 0:
		return fmt.Sprintf("%s %s", plural(minutes, "minute"), plural(seconds, "second"))
	default:
		return plural(seconds, "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
