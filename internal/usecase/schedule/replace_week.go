package schedule

import (
	"context"
	"time"

	"github.com/barberia-premium/booking-api/internal/audit"
	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/httperr"
	"github.com/barberia-premium/booking-api/internal/models"
)

type DayConfig struct {
	DayOfWeek   string `json:"day_of_week" binding:"required"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type ReplaceWeek struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewReplaceWeek(repo Repository, audit *audit.Dispatcher) *ReplaceWeek {
	return &ReplaceWeek{repo: repo, audit: audit}
}

// Execute swaps the barber's whole weekly template in one call. Days not
// present in the request become closed rows, so every barber always has
// exactly seven rules. Existing appointments that no longer fit the new
// window are left untouched; only future slot computations change.
func (uc *ReplaceWeek) Execute(
	ctx context.Context,
	barberID uint,
	barberUserID uint,
	days []DayConfig,
) ([]models.AvailabilityRule, error) {

	byDay := map[string]DayConfig{}
	for _, d := range days {
		if !domain.IsValidDayOfWeek(d.DayOfWeek) {
			return nil, httperr.ErrBusiness("invalid_day_of_week")
		}
		if _, dup := byDay[d.DayOfWeek]; dup {
			return nil, httperr.ErrBusiness("duplicate_day_of_week")
		}
		if d.IsAvailable {
			if err := validateWindow(d.StartTime, d.EndTime); err != nil {
				return nil, err
			}
		}
		byDay[d.DayOfWeek] = d
	}

	rules := make([]models.AvailabilityRule, 0, len(domain.DaysOfWeek))
	for _, day := range domain.DaysOfWeek {
		d := byDay[day] // zero value = closed day
		rules = append(rules, models.AvailabilityRule{
			BarberID:    barberID,
			DayOfWeek:   day,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
			IsAvailable: d.IsAvailable,
		})
	}

	if err := uc.repo.ReplaceRules(ctx, barberID, rules); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &barberUserID,
		Action: "availability_updated",
		Entity: "availability_rule",
	})

	return rules, nil
}

func validateWindow(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeWindow)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeWindow)
	}
	if !s.Before(e) {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeWindow)
	}
	return nil
}
