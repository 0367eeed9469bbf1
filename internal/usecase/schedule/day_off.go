package schedule

import (
	"context"
	"time"

	"github.com/barberia-premium/booking-api/internal/audit"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
	"github.com/barberia-premium/booking-api/internal/timezone"
)

type ManageDaysOff struct {
	repo  Repository
	audit *audit.Dispatcher
	tz    string
}

func NewManageDaysOff(
	repo Repository,
	audit *audit.Dispatcher,
	tz string,
) *ManageDaysOff {
	return &ManageDaysOff{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// Add registers a full-day exception. Repeating the same date is a no-op
// returning the existing entry. Appointments already booked on the date
// keep their status; the date just stops offering new slots.
func (uc *ManageDaysOff) Add(
	ctx context.Context,
	barberID uint,
	barberUserID uint,
	date string,
	reason string,
) (*models.DayOff, error) {

	loc := timezone.Location(uc.tz)

	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := timezone.NowIn(uc.tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if d.Before(today) {
		return nil, httperr.ErrBusiness(httperr.CodeDateInPast)
	}

	dayOff := &models.DayOff{
		BarberID: barberID,
		Date:     date,
		Reason:   reason,
	}

	if err := uc.repo.AddDayOff(ctx, dayOff); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberUserID,
		Action:   "day_off_added",
		Entity:   "day_off",
		EntityID: &dayOff.ID,
	})

	return dayOff, nil
}

func (uc *ManageDaysOff) Remove(
	ctx context.Context,
	barberID uint,
	barberUserID uint,
	dayOffID uint,
) error {

	if err := uc.repo.RemoveDayOff(ctx, barberID, dayOffID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &barberUserID,
		Action:   "day_off_removed",
		Entity:   "day_off",
		EntityID: &dayOffID,
	})

	return nil
}

func (uc *ManageDaysOff) List(
	ctx context.Context,
	barberID uint,
) ([]models.DayOff, error) {
	return uc.repo.ListDaysOff(ctx, barberID)
}
