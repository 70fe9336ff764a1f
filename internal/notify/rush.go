package notify

import (
	"time"

	"lunchbot/internal/order"
)

// rushZoneShift normalizes wall-clock time to the delivery timezone (UTC+5)
// before comparing calendar dates.
const rushZoneShift = 300 * time.Minute

const dateLayout = "2006-01-02"

// IsRush reports whether any delivery day falls on "today" in the delivery
// timezone. Callers inject now so the decision is testable; a day whose
// date does not parse never counts as rush.
func IsRush(days []order.ProcessedDay, now time.Time) bool {
	today := now.UTC().Add(rushZoneShift).Format(dateLayout)
	for _, d := range days {
		t, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			continue
		}
		if t.Format(dateLayout) == today {
			return true
		}
	}
	return false
}
