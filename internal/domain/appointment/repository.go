package appointment

import (
	"context"
	"time"

	"github.com/barberia-premium/booking-api/internal/models"
)

type Repository interface {
	// -------- Barber / Service --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability --------
	GetRule(
		ctx context.Context,
		barberID uint,
		dayOfWeek string,
	) (*models.AvailabilityRule, error)

	HasDayOff(
		ctx context.Context,
		barberID uint,
		date string,
	) (bool, error)

	ListBusyIntervals(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]BusyInterval, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointmentIfFree re-checks the interval and inserts in one
	// atomic operation serialized per barber; it fails with the
	// slot_unavailable business error when the interval is taken.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change / read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)
}
