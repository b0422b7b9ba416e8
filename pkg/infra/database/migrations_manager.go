package database

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID   string
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

var migrationsRegistry = make(map[string]Migration)

// RegisterMigration is called from init functions in the migrations package.
func RegisterMigration(m Migration) {
	if _, exists := migrationsRegistry[m.ID]; exists {
		panic(fmt.Sprintf("migration with ID %s already registered", m.ID))
	}
	migrationsRegistry[m.ID] = m
}

func registeredMigrations() []Migration {
	out := make([]Migration, 0, len(migrationsRegistry))
	for _, m := range migrationsRegistry {
		out = append(out, m)
	}
	return out
}

type MigrationsManager struct {
	db         *gorm.DB
	migrations []Migration
	now        func() time.Time
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return newMigrationsManager(db, registeredMigrations())
}

func newMigrationsManager(db *gorm.DB, migrations []Migration) *MigrationsManager {
	sorted := append([]Migration(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &MigrationsManager{db: db, migrations: sorted, now: time.Now}
}

func (m *MigrationsManager) ensureMigrationsTable() error {
	const createTableSQL = `CREATE TABLE IF NOT EXISTS public.migration_version (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`
	return m.db.Exec(createTableSQL).Error
}

func (m *MigrationsManager) getAppliedMigrations() (map[string]struct{}, error) {
	type row struct{ ID string }
	var rows []row
	if err := m.db.Raw("SELECT id FROM public.migration_version").Scan(&rows).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		applied[r.ID] = struct{}{}
	}
	return applied, nil
}

// Pending lists the ids of migrations not yet recorded, in apply order.
func (m *MigrationsManager) Pending() ([]string, error) {
	if err := m.ensureMigrationsTable(); err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}
	applied, err := m.getAppliedMigrations()
	if err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	var pending []string
	for _, mig := range m.migrations {
		if _, ok := applied[mig.ID]; !ok {
			pending = append(pending, mig.ID)
		}
	}
	return pending, nil
}

func (m *MigrationsManager) ApplyPending() error {
	pending, err := m.Pending()
	if err != nil {
		return err
	}
	byID := make(map[string]Migration, len(m.migrations))
	for _, mig := range m.migrations {
		byID[mig.ID] = mig
	}

	for _, id := range pending {
		mig := byID[id]
		if mig.Up == nil {
			return fmt.Errorf("migration %s has no Up function", id)
		}
		if err := mig.Up(m.db); err != nil {
			return fmt.Errorf("apply migration %s (%s): %w", mig.ID, mig.Name, err)
		}
		if err := m.db.Exec("INSERT INTO public.migration_version (id, name, applied_at) VALUES (?, ?, ?)", mig.ID, mig.Name, m.now()).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", mig.ID, err)
		}
	}
	return nil
}
