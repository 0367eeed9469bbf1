package appointment

import (
	"context"

	"github.com/barberia-premium/booking-api/internal/audit"
	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
	"github.com/barberia-premium/booking-api/internal/timezone"
)

// Actor identifies who asked for the cancellation. Clients may cancel
// their own appointments, barbers their own agenda, admins anything.
type Actor struct {
	UserID   uint
	Role     string
	BarberID uint // set when Role is barber
}

func (a Actor) mayCancel(ap *models.Appointment) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleBarber:
		return ap.BarberID == a.BarberID
	case models.RoleClient:
		return ap.ClientID == a.UserID
	}
	return false
}

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}

	if !actor.mayCancel(ap) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
