package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logrus.Entry) error {
	log.Info("Starting database migrations")

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			log.WithError(err).WithField("name", m.Name).Error("Migration failed")
			return err
		}
		log.WithField("name", m.Name).Info("Migration completed")
	}

	log.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration. Every statement must be safe
// to run again on an already migrated database.
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_resumes",
		SQL: `
		CREATE TABLE IF NOT EXISTS resumes (
			user_id       TEXT PRIMARY KEY,
			personal_info JSONB NOT NULL DEFAULT '{}'::jsonb,
			education     JSONB NOT NULL DEFAULT '[]'::jsonb,
			experience    JSONB NOT NULL DEFAULT '[]'::jsonb,
			skills        JSONB NOT NULL DEFAULT '[]'::jsonb,
			projects      JSONB NOT NULL DEFAULT '[]'::jsonb,
			awards        JSONB NOT NULL DEFAULT '[]'::jsonb,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "add_updated_at_index_to_resumes",
		SQL:  `CREATE INDEX IF NOT EXISTS resumes_updated_at_idx ON resumes (updated_at);`,
	},
}
