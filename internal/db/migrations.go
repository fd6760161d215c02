package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'client_type') THEN
			CREATE TYPE client_type AS ENUM ('INDIVIDUAL', 'COMPANY');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'resource_kind') THEN
			CREATE TYPE resource_kind AS ENUM ('MACHINERY', 'OPERATOR');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_status') THEN
			CREATE TYPE job_status AS ENUM ('PENDING', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		type client_type NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS locations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_locations_client_id ON locations (client_id);`,
	`CREATE TABLE IF NOT EXISTS resources (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		kind resource_kind NOT NULL,
		name VARCHAR(255) NOT NULL,
		hourly_rate NUMERIC NOT NULL CHECK (hourly_rate >= 0),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_resources_kind ON resources (kind);`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		description TEXT NOT NULL,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		location_id UUID NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		total_charged NUMERIC NOT NULL DEFAULT 0,
		total_cost NUMERIC NOT NULL DEFAULT 0,
		status job_status NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (end_date >= start_date)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_client_id ON jobs (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_dates ON jobs (start_date, end_date);`,
	`CREATE TABLE IF NOT EXISTS job_assignments (
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		kind resource_kind NOT NULL,
		resource_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		hourly_rate NUMERIC NOT NULL,
		hours NUMERIC NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (job_id, kind, resource_id)
	);`,
	`CREATE TABLE IF NOT EXISTS job_expenses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		category VARCHAR(128) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		amount NUMERIC NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_job_expenses_job_id ON job_expenses (job_id);`,
	// Money and hours are stored at full scale.
	`ALTER TABLE resources ALTER COLUMN hourly_rate TYPE NUMERIC;`,
	`ALTER TABLE jobs ALTER COLUMN total_charged TYPE NUMERIC, ALTER COLUMN total_cost TYPE NUMERIC;`,
	`ALTER TABLE job_assignments ALTER COLUMN hourly_rate TYPE NUMERIC, ALTER COLUMN hours TYPE NUMERIC;`,
	`ALTER TABLE job_expenses ALTER COLUMN amount TYPE NUMERIC;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
