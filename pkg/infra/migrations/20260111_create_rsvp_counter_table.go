package migrations

import (
	"github.com/whopu/challenge/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260111_create_rsvp_counter_table",
		Name: "Create single row rsvp counter",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS rsvp_counter (
					id         SMALLINT PRIMARY KEY CHECK (id = 1),
					count      BIGINT NOT NULL DEFAULT 0,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			return db.Exec(`
				INSERT INTO rsvp_counter (id, count) VALUES (1, 0)
				ON CONFLICT (id) DO NOTHING;
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS rsvp_counter;`).Error
		},
	})
}
