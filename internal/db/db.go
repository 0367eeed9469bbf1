package db

import (
	"log"
	"time"

	"github.com/barberia-premium/booking-api/internal/config"
	"github.com/barberia-premium/booking-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.AvailabilityRule{},
		&models.DayOff{},
		&models.Appointment{},
		&models.Review{},
		&models.GalleryItem{},
		&models.Expense{},
		&models.Invoice{},
		&models.BarberPayment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := installBookingConstraints(db); err != nil {
		log.Fatalf("failed to install booking constraints: %v", err)
	}

	return db
}

// installBookingConstraints adds the overlap exclusion constraint that
// AutoMigrate cannot express: at most one non-cancelled appointment per
// barber over any [start_time, end_time) range. The repository serializes
// writers on the barber row; this constraint makes the database reject an
// overlap even if a writer bypasses that path.
func installBookingConstraints(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	return db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
			) THEN
				ALTER TABLE appointments
					ADD CONSTRAINT appointments_no_overlap
					EXCLUDE USING gist (
						barber_id WITH =,
						tsrange(start_time, end_time) WITH &&
					)
					WHERE (status <> 'CANCELLED');
			END IF;
		END
		$$;
	`).Error
}
