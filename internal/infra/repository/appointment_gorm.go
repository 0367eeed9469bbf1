package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barber / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetRule(
	ctx context.Context,
	barberID uint,
	dayOfWeek string,
) (*models.AvailabilityRule, error) {

	var rule models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, dayOfWeek).
		First(&rule).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *AppointmentGormRepository) HasDayOff(
	ctx context.Context,
	barberID uint,
	date string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DayOff{}).
		Where("barber_id = ? AND date = ?", barberID, date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ListBusyIntervals(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]domain.BusyInterval, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			barberID, string(domain.StatusCancelled), dayEnd, dayStart,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	busy := make([]domain.BusyInterval, 0, len(apps))
	for _, ap := range apps {
		busy = append(busy, domain.BusyInterval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}
	return busy, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointmentIfFree re-checks the interval and inserts inside one
// transaction. All writers for a barber take the barber row lock first,
// so two concurrent requests for the same free interval serialize: the
// loser re-runs the overlap check after the winner commits and gets the
// slot_unavailable business error. The exclusion constraint installed by
// internal/db backstops the same invariant at the storage level.
func (r *AppointmentGormRepository) CreateAppointmentIfFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := lockBarberRow(tx, ap.BarberID).Error; err != nil {
			return err
		}

		var conflicts int64
		if err := overlappingAppointments(tx, ap.BarberID, ap.StartTime, ap.EndTime).
			Count(&conflicts).Error; err != nil {
			return err
		}

		if conflicts > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		return tx.Create(ap).Error
	})
}

// lockBarberRow takes FOR UPDATE on the barber row. Postgres rejects
// locking clauses on aggregate queries, and row locks on the conflicting
// appointments would lock nothing when the slot is free, so the barber
// row is the serialization point. Barber existence was validated by the
// use case; a vanished row simply means no lock is needed.
func lockBarberRow(tx *gorm.DB, barberID uint) *gorm.DB {
	var barber models.Barber
	return tx.
		Model(&models.Barber{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", barberID).
		Find(&barber)
}

// overlappingAppointments matches every non-cancelled appointment of the
// barber whose [start_time, end_time) intersects [start, end).
func overlappingAppointments(tx *gorm.DB, barberID uint, start, end time.Time) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			barberID, string(domain.StatusCancelled), end, start,
		)
}

// --------------------------------------------------
// Appointment (state change / read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID, start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber.User").
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
