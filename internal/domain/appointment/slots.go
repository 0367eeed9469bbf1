package appointment

import (
	"time"

	"github.com/barberia-premium/booking-api/internal/models"
)

// BusyInterval is an occupied [Start, End) stretch of a barber's day.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open semantics: touching boundaries do not conflict.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// AtTime anchors an "HH:MM" string on the given date, in the date's location.
func AtTime(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// ComputeSlots is the pure slot calculator. Given the barber's weekly rule
// for the date, whether a day off closes the date, the service duration and
// the already occupied intervals, it returns the bookable start times as
// ascending "HH:MM" strings. Candidates step by the service duration; a
// candidate survives only if [start, start+D) fits inside the rule window
// and overlaps no busy interval.
func ComputeSlots(
	rule *models.AvailabilityRule,
	dayOff bool,
	date time.Time,
	durationMin int,
	busy []BusyInterval,
) []string {

	slots := []string{}

	if rule == nil || !rule.IsAvailable || dayOff || durationMin <= 0 {
		return slots
	}

	dayStart, err := AtTime(date, rule.StartTime)
	if err != nil {
		return slots
	}
	dayEnd, err := AtTime(date, rule.EndTime)
	if err != nil {
		return slots
	}

	step := time.Duration(durationMin) * time.Minute

	for cur := dayStart; !cur.Add(step).After(dayEnd); cur = cur.Add(step) {
		slotEnd := cur.Add(step)

		conflict := false
		for _, b := range busy {
			if b.Overlaps(cur, slotEnd) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, cur.Format("15:04"))
		}
	}

	return slots
}

// FitsWindow reports whether [start, end) lies inside the rule's window.
// Used by the booking transaction to re-validate a requested time that may
// not be grid-aligned.
func FitsWindow(rule *models.AvailabilityRule, start, end time.Time) bool {
	if rule == nil || !rule.IsAvailable {
		return false
	}

	winStart, err := AtTime(start, rule.StartTime)
	if err != nil {
		return false
	}
	winEnd, err := AtTime(start, rule.EndTime)
	if err != nil {
		return false
	}

	return !start.Before(winStart) && !end.After(winEnd)
}
