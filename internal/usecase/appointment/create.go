package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/audit"
	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
	"github.com/barberia-premium/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	BarberID  uint
	ServiceID uint

	Date  string // "YYYY-MM-DD"
	Time  string // "HH:MM"
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	tz          string
	minAdvance  int
	autoConfirm bool
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
	minAdvanceMinutes int,
	autoConfirm bool,
) *CreateAppointment {
	if minAdvanceMinutes <= 0 {
		minAdvanceMinutes = 120
	}
	return &CreateAppointment{
		repo:        repo,
		audit:       audit,
		tz:          tz,
		minAdvance:  minAdvanceMinutes,
		autoConfirm: autoConfirm,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(uc.tz)
	if start.Before(now.Add(time.Duration(uc.minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

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

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// Availability window and day-off re-check at booking time. A slot
	// list the client fetched earlier may be stale; this is authoritative.
	rule, err := uc.repo.GetRule(ctx, in.BarberID, domain.DayOfWeek(start))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return nil, err
	}
	if !domain.FitsWindow(rule, start, end) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	dayOff, err := uc.repo.HasDayOff(ctx, in.BarberID, start.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if dayOff {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	ap := &models.Appointment{
		BarberID:  in.BarberID,
		ClientID:  in.ClientID,
		ServiceID: in.ServiceID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus(uc.autoConfirm)),
		Price:     service.Price,
		Notes:     in.Notes,
	}

	// Overlap check and insert run atomically inside the repository,
	// serialized per barber. One retry on a transient serialization
	// failure, then the conflict is reported as a normal rejection.
	err = uc.repo.CreateAppointmentIfFree(ctx, ap)
	if err != nil && httperr.IsSerializationFailure(err) {
		err = uc.repo.CreateAppointmentIfFree(ctx, ap)
	}
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotUnavailable) || httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ClientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
