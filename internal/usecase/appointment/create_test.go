package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
)

const testTZ = "America/New_York"

func activeBarber() *models.Barber {
	return &models.Barber{ID: 1, UserID: 10, IsActive: true}
}

func haircut() *models.Service {
	return &models.Service{ID: 2, Name: "Corte clásico", DurationMin: 30, Price: 25, IsActive: true}
}

func openRule() *models.AvailabilityRule {
	return &models.AvailabilityRule{
		BarberID:    1,
		StartTime:   "09:00",
		EndTime:     "18:00",
		IsAvailable: true,
	}
}

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientID:  5,
		BarberID:  1,
		ServiceID: 2,
		Date:      "2999-06-14",
		Time:      "10:00",
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).Return(openRule(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2999-06-14").Return(false, nil)
	repo.On("CreateAppointmentIfFree", mock.Anything, mock.Anything).Return(nil)

	ap, err := uc.Execute(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, uint(999), ap.ID)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, 25.0, ap.Price)
	assert.Equal(t, 30*time.Minute, ap.EndTime.Sub(ap.StartTime))
	repo.AssertExpectations(t)
}

func TestCreateAppointment_AutoConfirm(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, true)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).Return(openRule(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2999-06-14").Return(false, nil)
	repo.On("CreateAppointmentIfFree", mock.Anything, mock.Anything).Return(nil)

	ap, err := uc.Execute(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
}

func TestCreateAppointment_InvalidDate(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	in := validInput()
	in.Date = "14/06/2999"

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
	repo.AssertNotCalled(t, "CreateAppointmentIfFree")
}

func TestCreateAppointment_TooSoon(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	in := validInput()
	in.Date = "2020-01-01"

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeTooSoon))
	repo.AssertNotCalled(t, "CreateAppointmentIfFree")
}

func TestCreateAppointment_InactiveBarber(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	barber := activeBarber()
	barber.IsActive = false
	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(barber, nil)

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberNotFound))
}

func TestCreateAppointment_OutsideWindow(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).Return(openRule(), nil)

	in := validInput()
	in.Time = "18:00" // would end at 18:30, past closing

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
	repo.AssertNotCalled(t, "CreateAppointmentIfFree")
}

func TestCreateAppointment_NoRuleForWeekday(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
	repo.AssertNotCalled(t, "CreateAppointmentIfFree")
}

func TestCreateAppointment_RuleQueryFailurePropagates(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).
		Return(nil, assert.AnError)

	_, err := uc.Execute(context.Background(), validInput())

	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestCreateAppointment_DayOff(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).Return(openRule(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2999-06-14").Return(true, nil)

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
	repo.AssertNotCalled(t, "CreateAppointmentIfFree")
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).Return(openRule(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2999-06-14").Return(false, nil)
	repo.On("CreateAppointmentIfFree", mock.Anything, mock.Anything).
		Return(httperr.ErrBusiness(httperr.CodeSlotUnavailable))

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
	repo.AssertNumberOfCalls(t, "CreateAppointmentIfFree", 1)
}

func TestCreateAppointment_UniqueViolationBecomesSlotUnavailable(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).Return(openRule(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2999-06-14").Return(false, nil)
	repo.On("CreateAppointmentIfFree", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "23505"})

	_, err := uc.Execute(context.Background(), validInput())

	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestCreateAppointment_RetriesOnceOnSerializationFailure(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCreateAppointment(repo, testDispatcher(), testTZ, 120, false)

	repo.On("GetBarberByID", mock.Anything, uint(1)).Return(activeBarber(), nil)
	repo.On("GetService", mock.Anything, uint(2)).Return(haircut(), nil)
	repo.On("GetRule", mock.Anything, uint(1), mock.Anything).Return(openRule(), nil)
	repo.On("HasDayOff", mock.Anything, uint(1), "2999-06-14").Return(false, nil)
	repo.On("CreateAppointmentIfFree", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: "40001"}).Once()
	repo.On("CreateAppointmentIfFree", mock.Anything, mock.Anything).
		Return(nil).Once()

	ap, err := uc.Execute(context.Background(), validInput())

	assert.NoError(t, err)
	assert.NotNil(t, ap)
	repo.AssertNumberOfCalls(t, "CreateAppointmentIfFree", 2)
}
