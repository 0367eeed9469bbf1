package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
)

func availabilityDate() time.Time {
	// a Monday
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
}

// newAvailabilityUC pins "now" so min-advance trimming is deterministic.
func newAvailabilityUC(repo domain.Repository, now time.Time) *GetAvailability {
	uc := NewGetAvailability(repo, testTZ, 120)
	uc.now = func(string) time.Time { return now }
	return uc
}

func dayBefore(date time.Time) time.Time {
	return date.AddDate(0, 0, -1)
}

func mondayNineToNoon() *models.AvailabilityRule {
	return &models.AvailabilityRule{
		BarberID: 1, DayOfWeek: domain.Monday,
		StartTime: "09:00", EndTime: "12:00", IsAvailable: true,
	}
}

func TestGetAvailability_FullDay(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), domain.Monday).Return(mondayNineToNoon(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2026-09-07").Return(false, nil)
	repo.On("ListBusyIntervals", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Return([]domain.BusyInterval{}, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 1, ServiceID: 2, Date: availabilityDate(),
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slots)
}

func TestGetAvailability_SameDayDropsTooSoonSlots(t *testing.T) {
	repo := new(MockRepository)

	// 08:30 on the queried day with 120min advance: cutoff is 10:30
	now := time.Date(2026, 9, 7, 8, 30, 0, 0, time.UTC)
	uc := newAvailabilityUC(repo, now)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), domain.Monday).Return(mondayNineToNoon(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2026-09-07").Return(false, nil)
	repo.On("ListBusyIntervals", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Return([]domain.BusyInterval{}, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 1, ServiceID: 2, Date: availabilityDate(),
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, slots)
}

func TestGetAvailability_ExistingBookingHidesSlot(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	date := availabilityDate()
	busyStart, _ := domain.AtTime(date, "10:00")
	busy := []domain.BusyInterval{{Start: busyStart, End: busyStart.Add(30 * time.Minute)}}

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), domain.Monday).Return(mondayNineToNoon(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2026-09-07").Return(false, nil)
	repo.On("ListBusyIntervals", mock.Anything, uint(1), mock.Anything, mock.Anything).
		Return(busy, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 1, ServiceID: 2, Date: date,
	})

	assert.NoError(t, err)
	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "10:30")
}

func TestGetAvailability_NoRuleMeansClosed(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), domain.Monday).
		Return(nil, gorm.ErrRecordNotFound)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 1, ServiceID: 2, Date: availabilityDate(),
	})

	assert.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestGetAvailability_RuleQueryFailurePropagates(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), domain.Monday).
		Return(nil, assert.AnError)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 1, ServiceID: 2, Date: availabilityDate(),
	})

	// a failing query is not a closed day
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetAvailability_DayOff(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), domain.Monday).Return(mondayNineToNoon(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2026-09-07").Return(true, nil)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 1, ServiceID: 2, Date: availabilityDate(),
	})

	assert.NoError(t, err)
	assert.Empty(t, slots)
	repo.AssertNotCalled(t, "ListBusyIntervals")
}

func TestGetAvailability_UnknownBarber(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	repo.On("GetBarberByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 9, ServiceID: 2, Date: availabilityDate(),
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
}

func TestGetAvailability_BarberQueryFailurePropagates(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	repo.On("GetBarberByID", mock.Anything, uint(9)).Return(nil, assert.AnError)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 9, ServiceID: 2, Date: availabilityDate(),
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
}

func TestGetAvailability_InactiveService(t *testing.T) {
	repo := new(MockRepository)
	uc := newAvailabilityUC(repo, dayBefore(availabilityDate()))

	service := haircut()
	service.IsActive = false

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(service, nil)

	_, err := uc.Execute(context.Background(), AvailabilityInput{
		BarberID: 1, ServiceID: 2, Date: availabilityDate(),
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
}
