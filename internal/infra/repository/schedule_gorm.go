package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
	schedule "github.com/barberia-premium/booking-api/internal/usecase/schedule"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Weekly rules
// --------------------------------------------------

func (r *ScheduleGormRepository) ReplaceRules(
	ctx context.Context,
	barberID uint,
	rules []models.AvailabilityRule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}

		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}

func (r *ScheduleGormRepository) ListRules(
	ctx context.Context,
	barberID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// --------------------------------------------------
// Days off
// --------------------------------------------------

func (r *ScheduleGormRepository) AddDayOff(
	ctx context.Context,
	d *models.DayOff,
) error {

	err := r.db.WithContext(ctx).Create(d).Error
	if err == nil {
		return nil
	}

	// Duplicate (barber, date): idempotent, hand back the existing row.
	if httperr.IsExclusionConflict(err) {
		return r.db.WithContext(ctx).
			Where("barber_id = ? AND date = ?", d.BarberID, d.Date).
			First(d).Error
	}

	return err
}

func (r *ScheduleGormRepository) RemoveDayOff(
	ctx context.Context,
	barberID uint,
	dayOffID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", dayOffID, barberID).
		Delete(&models.DayOff{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ScheduleGormRepository) ListDaysOff(
	ctx context.Context,
	barberID uint,
) ([]models.DayOff, error) {

	var daysOff []models.DayOff
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("date ASC").
		Find(&daysOff).Error; err != nil {
		return nil, err
	}
	return daysOff, nil
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
