package migrations

import (
	"github.com/whopu/challenge/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260112_create_checkout_events_table",
		Name: "Create checkout_events table to count each completion once",

		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE TABLE IF NOT EXISTS checkout_events (
					event_id    TEXT PRIMARY KEY,
					provider    VARCHAR(32) NOT NULL,
					received_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS checkout_events;`).Error
		},
	})
}
