package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barberia-premium/booking-api/internal/models"
)

func mondayRule(start, end string) *models.AvailabilityRule {
	return &models.AvailabilityRule{
		BarberID:    1,
		DayOfWeek:   Monday,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func testDate() time.Time {
	// a Monday
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
}

func busyAt(t *testing.T, date time.Time, startHM, endHM string) BusyInterval {
	t.Helper()
	s, err := AtTime(date, startHM)
	assert.NoError(t, err)
	e, err := AtTime(date, endHM)
	assert.NoError(t, err)
	return BusyInterval{Start: s, End: e}
}

func TestComputeSlots_FullMorning(t *testing.T) {
	slots := ComputeSlots(mondayRule("09:00", "12:00"), false, testDate(), 30, nil)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slots)
}

func TestComputeSlots_BusyIntervalRemovesOnlyItsSlot(t *testing.T) {
	busy := []BusyInterval{busyAt(t, testDate(), "10:00", "10:30")}

	slots := ComputeSlots(mondayRule("09:00", "12:00"), false, testDate(), 30, busy)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, slots)
	assert.NotContains(t, slots, "10:00")
}

func TestComputeSlots_TouchingBoundariesDoNotConflict(t *testing.T) {
	// an appointment ending exactly at 10:00 must not block the 10:00 slot
	busy := []BusyInterval{busyAt(t, testDate(), "09:30", "10:00")}

	slots := ComputeSlots(mondayRule("09:00", "12:00"), false, testDate(), 30, busy)

	assert.Contains(t, slots, "10:00")
	assert.NotContains(t, slots, "09:30")
}

func TestComputeSlots_LastSlotEndsExactlyAtClose(t *testing.T) {
	slots := ComputeSlots(mondayRule("09:00", "10:00"), false, testDate(), 60, nil)

	assert.Equal(t, []string{"09:00"}, slots)
}

func TestComputeSlots_DurationLongerThanWindow(t *testing.T) {
	slots := ComputeSlots(mondayRule("09:00", "09:45"), false, testDate(), 60, nil)

	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestComputeSlots_ClosedDay(t *testing.T) {
	rule := mondayRule("09:00", "12:00")
	rule.IsAvailable = false

	assert.Empty(t, ComputeSlots(rule, false, testDate(), 30, nil))
}

func TestComputeSlots_NoRule(t *testing.T) {
	assert.Empty(t, ComputeSlots(nil, false, testDate(), 30, nil))
}

func TestComputeSlots_DayOff(t *testing.T) {
	assert.Empty(t, ComputeSlots(mondayRule("09:00", "12:00"), true, testDate(), 30, nil))
}

func TestComputeSlots_StepFollowsDuration(t *testing.T) {
	slots := ComputeSlots(mondayRule("09:00", "12:00"), false, testDate(), 45, nil)

	assert.Equal(t, []string{"09:00", "09:45", "10:30", "11:15"}, slots)
}

func TestBusyInterval_Overlaps(t *testing.T) {
	date := testDate()
	b := busyAt(t, date, "10:00", "11:00")

	cases := []struct {
		name     string
		start    string
		end      string
		overlaps bool
	}{
		{"inside", "10:15", "10:45", true},
		{"covers", "09:30", "11:30", true},
		{"overlaps start", "09:30", "10:30", true},
		{"overlaps end", "10:30", "11:30", true},
		{"touches start", "09:00", "10:00", false},
		{"touches end", "11:00", "12:00", false},
		{"before", "08:00", "09:00", false},
		{"after", "12:00", "13:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := AtTime(date, tc.start)
			assert.NoError(t, err)
			e, err := AtTime(date, tc.end)
			assert.NoError(t, err)
			assert.Equal(t, tc.overlaps, b.Overlaps(s, e))
		})
	}
}

func TestFitsWindow(t *testing.T) {
	rule := mondayRule("09:00", "18:00")
	date := testDate()

	start, _ := AtTime(date, "09:00")
	assert.True(t, FitsWindow(rule, start, start.Add(30*time.Minute)))

	lateStart, _ := AtTime(date, "17:45")
	assert.False(t, FitsWindow(rule, lateStart, lateStart.Add(30*time.Minute)))

	early, _ := AtTime(date, "08:30")
	assert.False(t, FitsWindow(rule, early, early.Add(30*time.Minute)))

	closing, _ := AtTime(date, "17:30")
	assert.True(t, FitsWindow(rule, closing, closing.Add(30*time.Minute)))

	assert.False(t, FitsWindow(nil, start, start.Add(30*time.Minute)))
}

func TestDayOfWeek(t *testing.T) {
	assert.Equal(t, Monday, DayOfWeek(testDate()))
	assert.Equal(t, Sunday, DayOfWeek(testDate().AddDate(0, 0, 6)))
}
