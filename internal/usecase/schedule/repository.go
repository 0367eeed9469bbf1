package schedule

import (
	"context"

	"github.com/barberia-premium/booking-api/internal/models"
)

type Repository interface {
	ReplaceRules(
		ctx context.Context,
		barberID uint,
		rules []models.AvailabilityRule,
	) error

	ListRules(
		ctx context.Context,
		barberID uint,
	) ([]models.AvailabilityRule, error)

	// AddDayOff is idempotent: when a day off already exists for the
	// barber and date, the existing row is loaded into d.
	AddDayOff(
		ctx context.Context,
		d *models.DayOff,
	) error

	RemoveDayOff(
		ctx context.Context,
		barberID uint,
		dayOffID uint,
	) error

	ListDaysOff(
		ctx context.Context,
		barberID uint,
	) ([]models.DayOff, error)
}
