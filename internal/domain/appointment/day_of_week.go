package appointment

import "time"

// Day-of-week keys as stored on AvailabilityRule rows.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

// DaysOfWeek lists the seven keys in calendar order, Monday first.
var DaysOfWeek = []string{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

func DayOfWeek(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

func IsValidDayOfWeek(day string) bool {
	for _, d := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}
