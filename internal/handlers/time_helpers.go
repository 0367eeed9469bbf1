package handlers

import (
	"time"

	"github.com/barberia-premium/booking-api/internal/timezone"
)

func parseDateInShop(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}
