package notify

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "github.com/barberia-premium/booking-api/internal/domain/appointment"
	"github.com/barberia-premium/booking-api/internal/models"
)

// ReminderJob scans the appointment ledger for upcoming PENDING/CONFIRMED
// appointments and emails the client and the barber. It runs outside the
// request path (cmd/notifier) and only touches the notification flags.
type ReminderJob struct {
	db     *gorm.DB
	sender *EmailSender
	log    zerolog.Logger
}

func NewReminderJob(db *gorm.DB, sender *EmailSender, log zerolog.Logger) *ReminderJob {
	return &ReminderJob{
		db:     db,
		sender: sender,
		log:    log,
	}
}

// Run processes both reminder horizons: 24h ahead within a one hour
// window, 2h ahead within a thirty minute window.
func (j *ReminderJob) Run() {
	now := time.Now()

	sent := 0
	sent += j.remind(now.Add(24*time.Hour), time.Hour, "notification24h_sent", "Recordatorio: tu cita es mañana", markNotification24h)
	sent += j.remind(now.Add(2*time.Hour), 30*time.Minute, "notification2h_sent", "Recordatorio: tu cita es en 2 horas", markNotification2h)

	if sent > 0 {
		j.log.Info().Int("sent", sent).Msg("reminders dispatched")
	}
}

func markNotification24h(ap *models.Appointment) { ap.Notification24hSent = true }
func markNotification2h(ap *models.Appointment)  { ap.Notification2hSent = true }

func (j *ReminderJob) remind(
	windowStart time.Time,
	window time.Duration,
	flagColumn string,
	subject string,
	mark func(*models.Appointment),
) int {

	var appointments []models.Appointment
	err := j.db.
		Preload("Client").
		Preload("Service").
		Preload("Barber.User").
		Where(
			"start_time >= ? AND start_time < ? AND status IN ? AND "+flagColumn+" = false",
			windowStart,
			windowStart.Add(window),
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Find(&appointments).Error
	if err != nil {
		j.log.Error().Err(err).Msg("reminder query failed")
		return 0
	}

	sent := 0
	for i := range appointments {
		ap := &appointments[i]

		if ap.Client.Email != "" {
			if err := j.sender.Send(ap.Client.Email, subject, reminderBody(ap, ap.Client.Name)); err != nil {
				j.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("client reminder failed")
				continue
			}
			sent++
		}

		if ap.Barber.User.Email != "" {
			if err := j.sender.Send(ap.Barber.User.Email, subject, reminderBody(ap, ap.Barber.User.Name)); err != nil {
				j.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("barber reminder failed")
			} else {
				sent++
			}
		}

		mark(ap)
		if err := j.db.Save(ap).Error; err != nil {
			j.log.Error().Err(err).Uint("appointment_id", ap.ID).Msg("flag update failed")
		}
	}

	return sent
}

func reminderBody(ap *models.Appointment, name string) string {
	return fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Te recordamos tu próxima cita:</p>
		<ul>
			<li><strong>Servicio:</strong> %s</li>
			<li><strong>Barbero:</strong> %s</li>
			<li><strong>Fecha:</strong> %s</li>
			<li><strong>Hora:</strong> %s</li>
		</ul>
		<p>Si necesitas reprogramar o cancelar, hazlo con al menos 24 horas de anticipación.</p>
	`, name,
		ap.Service.Name,
		ap.Barber.User.Name,
		ap.StartTime.Format("2006-01-02"),
		ap.StartTime.Format("15:04"),
	)
}
