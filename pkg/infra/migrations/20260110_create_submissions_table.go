package migrations

import (
	"github.com/whopu/challenge/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20260110_create_submissions_table",
		Name: "Create submissions table for homework submissions",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS submissions (
					id         VARCHAR(64) PRIMARY KEY,
					day        INTEGER NOT NULL CHECK (day BETWEEN 1 AND 5),
					kind       VARCHAR(32) NOT NULL,
					username   TEXT NOT NULL,
					email      TEXT NOT NULL,
					notes      TEXT,
					status     VARCHAR(32) NOT NULL DEFAULT 'Pending Review',
					details    JSONB NOT NULL DEFAULT '{}'::jsonb,
					client     JSONB,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_submission_day_status
				ON submissions (day, status);
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_submissions_email
				ON submissions (email);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS submissions;`).Error
		},
	})
}
