package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/barberia-premium/booking-api/internal/config"
	dbpkg "github.com/barberia-premium/booking-api/internal/db"
	"github.com/barberia-premium/booking-api/internal/notify"
)

// The notifier is a separate process so reminder email traffic never
// competes with the API. It runs the reminder sweep every ten minutes.
func main() {

	log := zerolog.New(os.Stdout).With().Timestamp().Str("app", "booking-notifier").Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	sender := notify.NewEmailSender(cfg)
	job := notify.NewReminderJob(db, sender, log)

	c := cron.New()
	if _, err := c.AddFunc("*/10 * * * *", job.Run); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule reminder job")
	}

	// One sweep at boot so a restart never skips a window.
	job.Run()
	c.Start()

	log.Info().Msg("notifier running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx := c.Stop()
	<-ctx.Done()

	log.Info().Msg("notifier stopped")
}
