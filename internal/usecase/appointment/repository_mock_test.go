package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/barberia-premium/booking-api/internal/audit"
	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetBarberByID(ctx context.Context, id uint) (*models.Barber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Barber), args.Error(1)
}

func (m *MockRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockRepository) GetRule(ctx context.Context, barberID uint, dayOfWeek string) (*models.AvailabilityRule, error) {
	args := m.Called(ctx, barberID, dayOfWeek)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityRule), args.Error(1)
}

func (m *MockRepository) HasDayOff(ctx context.Context, barberID uint, date string) (bool, error) {
	args := m.Called(ctx, barberID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListBusyIntervals(ctx context.Context, barberID uint, dayStart, dayEnd time.Time) ([]domain.BusyInterval, error) {
	args := m.Called(ctx, barberID, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusyInterval), args.Error(1)
}

func (m *MockRepository) CreateAppointmentIfFree(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	if args.Error(0) == nil && ap != nil {
		ap.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) GetAppointmentForBarber(ctx context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	args := m.Called(ctx, barberID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) ListAppointmentsForClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

var _ domain.Repository = (*MockRepository)(nil)

// testDispatcher writes nowhere: the nil-db logger is a no-op.
func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zerolog.Nop())
}
