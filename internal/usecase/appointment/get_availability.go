package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/timezone"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time // midnight in the shop timezone
}

type GetAvailability struct {
	repo domain.Repository

	tz         string
	minAdvance int
	now        func(tz string) time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	tz string,
	minAdvanceMinutes int,
) *GetAvailability {
	if minAdvanceMinutes <= 0 {
		minAdvanceMinutes = 120
	}
	return &GetAvailability{
		repo:       repo,
		tz:         tz,
		minAdvance: minAdvanceMinutes,
		now:        timezone.NowIn,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]string, error) {

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return nil, err
	}
	if !barber.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, err
	}
	if !service.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}

	rule, err := uc.repo.GetRule(ctx, in.BarberID, domain.DayOfWeek(in.Date))
	if err != nil {
		// no rule for this weekday: the day is simply closed
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	dayOff, err := uc.repo.HasDayOff(ctx, in.BarberID, in.Date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if dayOff {
		return []string{}, nil
	}

	dayStart := in.Date
	dayEnd := in.Date.Add(24 * time.Hour)

	busy, err := uc.repo.ListBusyIntervals(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := domain.ComputeSlots(rule, false, in.Date, service.DurationMin, busy)

	// Same cutoff the booking transaction enforces: a listed slot must
	// still be bookable when the client posts it.
	cutoff := uc.now(uc.tz).Add(time.Duration(uc.minAdvance) * time.Minute)

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		startAt, err := domain.AtTime(in.Date, s)
		if err != nil {
			continue
		}
		if !startAt.Before(cutoff) {
			out = append(out, s)
		}
	}

	return out, nil
}
