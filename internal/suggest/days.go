package suggest

import "time"

const day = 24 * time.Hour

// wholeDays returns the number of complete days in the span from -> to,
// truncated toward zero. A span of 2 days 23 hours is 2 days; a negative
// span of 1 day 5 hours is -1.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / day)
}
