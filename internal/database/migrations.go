package database

import (
	"github.com/swiftparcel/swiftparcel-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Parcel{},
		&models.Payment{},
		&models.Rider{},
	)
	if err != nil {
		return err
	}

	// AutoMigrate builds the unique index from the model tag, but older
	// deployments predate it. Make sure it exists: the confirmation
	// workflow relies on insert-conflict as its idempotency signal.
	if !db.Migrator().HasIndex(&models.Payment{}, "idx_payments_transaction_id") {
		if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_transaction_id ON payments (transaction_id)`).Error; err != nil {
			return err
		}
	}

	// Status fields are plain text columns; keep the allowed values honest
	db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
	db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('user', 'rider', 'admin'))`)
	db.Exec(`ALTER TABLE parcels DROP CONSTRAINT IF EXISTS parcels_payment_status_check`)
	db.Exec(`ALTER TABLE parcels ADD CONSTRAINT parcels_payment_status_check CHECK (payment_status IN ('unpaid', 'paid'))`)
	db.Exec(`ALTER TABLE riders DROP CONSTRAINT IF EXISTS riders_status_check`)
	db.Exec(`ALTER TABLE riders ADD CONSTRAINT riders_status_check CHECK (status IN ('pending', 'approved', 'rejected'))`)

	return nil
}
