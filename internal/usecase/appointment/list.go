package appointment

import (
	"context"
	"time"

	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/timezone"
)

type AppointmentListItem struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
	Price       float64   `json:"price"`
}

type ListAgenda struct {
	repo domain.Repository
	tz   string
}

func NewListAgenda(repo domain.Repository, tz string) *ListAgenda {
	return &ListAgenda{repo: repo, tz: tz}
}

func (uc *ListAgenda) ByDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]AppointmentListItem, error) {

	loc := timezone.Location(uc.tz)

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	return uc.list(ctx, barberID, start, end)
}

func (uc *ListAgenda) ByMonth(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]AppointmentListItem, error) {

	loc := timezone.Location(uc.tz)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, barberID, start, end)
}

func (uc *ListAgenda) list(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]AppointmentListItem, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]AppointmentListItem, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListItem{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
			Price:       ap.Price,
		})
	}

	return out, nil
}
