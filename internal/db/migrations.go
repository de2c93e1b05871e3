package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

	// Vehicle registry reference data. plate_number is the canonical
	// unhyphenated key the in-memory index is built from.
	`CREATE TABLE IF NOT EXISTS alpr_registry_records (
		id              UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		plate_number    TEXT NOT NULL,
		owner_name      TEXT NOT NULL,
		state           TEXT NOT NULL,
		vehicle_type    TEXT NOT NULL,
		color           TEXT,
		year            INT,
		plate_type      TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_alpr_registry_plate ON alpr_registry_records(plate_number);`,
	`CREATE INDEX IF NOT EXISTS idx_alpr_registry_owner ON alpr_registry_records(owner_name);`,

	// Recognition events: every attempt is stored, valid or not.
	`CREATE TABLE IF NOT EXISTS alpr_events (
		id              UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		camera_id       TEXT NOT NULL,
		camera_model    TEXT,
		direction       TEXT,
		lane            INT,
		raw_plate       TEXT NOT NULL,
		canonical_plate TEXT NOT NULL,
		formatted_plate TEXT,
		plate_category  TEXT NOT NULL,
		state_code      TEXT,
		is_valid        BOOLEAN NOT NULL,
		confidence      NUMERIC(5,2),
		ocr_confidence  NUMERIC(5,2),
		registered      BOOLEAN NOT NULL DEFAULT FALSE,
		message         TEXT,
		vehicle_color   TEXT,
		vehicle_type    TEXT,
		vehicle_brand   TEXT,
		vehicle_model   TEXT,
		vehicle_country TEXT,
		vehicle_plate_color TEXT,
		vehicle_speed   NUMERIC(7,2),
		snapshot_url    TEXT,
		event_time      TIMESTAMPTZ NOT NULL,
		raw_payload     JSONB,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_alpr_events_canonical_plate ON alpr_events(canonical_plate);`,
	`CREATE INDEX IF NOT EXISTS idx_alpr_events_event_time ON alpr_events(event_time);`,
	`CREATE INDEX IF NOT EXISTS idx_alpr_events_canonical_plate_time ON alpr_events(canonical_plate, event_time DESC);`,

	// Reference seed records. ON CONFLICT keeps reruns idempotent.
	`INSERT INTO alpr_registry_records (plate_number, owner_name, state, vehicle_type, color, year, plate_type) VALUES
		('KTS123AB', 'Lawal Nasiru', 'Katsina', 'Toyota Corolla', 'Silver', 2021, 'PRIVATE'),
		('LAG456CD', 'Adewale Johnson', 'Lagos', 'Honda Accord', 'Black', 2020, 'PRIVATE'),
		('KT234KTN', 'Musa Abdullahi', 'Katsina', 'Toyota Hiace', 'White', 2019, 'COMMERCIAL'),
		('LA567BRT', 'Lagos State Transport Authority', 'Lagos', 'BRT Bus', 'Red', 2018, 'COMMERCIAL'),
		('FG234KT', 'Federal Government of Nigeria', 'Federal', 'Toyota Hilux', 'White', 2022, 'GOVERNMENT'),
		('LA342BCA', 'Aminu Adeyemi', 'Lagos', 'Private Car', 'Silver', 2022, 'PRIVATE'),
		('KD123ABC', 'Fatima Mohammed', 'Kaduna', 'Sedan', 'Black', 2021, 'PRIVATE'),
		('AB567XYZ', 'Federal Road Safety Corps', 'Abuja', 'Official Vehicle', 'White', 2023, 'GOVERNMENT'),
		('OG789PQR', 'Lagos State Transport Company', 'Ogun', 'Commercial Bus', 'Green', 2020, 'COMMERCIAL'),
		('RI456DEF', 'Chinedu Okafor', 'Rivers', 'Private Truck', 'Red', 2019, 'PRIVATE')
	ON CONFLICT (plate_number) DO NOTHING;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
