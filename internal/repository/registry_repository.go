package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alpr-service/internal/registry"
)

type RegistryRepository struct {
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) *RegistryRepository {
	return &RegistryRepository{db: db}
}

func (RegistryRecord) TableName() string {
	return "alpr_registry_records"
}

type RegistryRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PlateNumber string    `gorm:"not null;uniqueIndex"`
	OwnerName   string    `gorm:"not null"`
	State       string    `gorm:"not null"`
	VehicleType string    `gorm:"not null"`
	Color       *string
	Year        *int
	PlateType   string `gorm:"not null"`
	CreatedAt   time.Time
}

// LoadAll reads every registry record, for building the in-memory
// index at startup.
func (r *RegistryRepository) LoadAll(ctx context.Context) ([]registry.Record, error) {
	var rows []RegistryRecord
	if err := r.db.WithContext(ctx).Order("plate_number").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load registry records: %w", err)
	}

	records := make([]registry.Record, 0, len(rows))
	for _, row := range rows {
		rec := registry.Record{
			PlateNumber: row.PlateNumber,
			OwnerName:   row.OwnerName,
			State:       row.State,
			VehicleType: row.VehicleType,
			PlateType:   row.PlateType,
		}
		if row.Color != nil {
			rec.Color = *row.Color
		}
		if row.Year != nil {
			rec.Year = *row.Year
		}
		records = append(records, rec)
	}
	return records, nil
}

// Upsert creates or replaces a record by canonical plate number.
func (r *RegistryRepository) Upsert(ctx context.Context, rec registry.Record) error {
	row := RegistryRecord{
		ID:          uuid.New(),
		PlateNumber: rec.PlateNumber,
		OwnerName:   rec.OwnerName,
		State:       rec.State,
		VehicleType: rec.VehicleType,
		PlateType:   rec.PlateType,
		CreatedAt:   time.Now(),
	}
	if rec.Color != "" {
		row.Color = &rec.Color
	}
	if rec.Year != 0 {
		row.Year = &rec.Year
	}

	err := r.db.WithContext(ctx).
		Where("plate_number = ?", rec.PlateNumber).
		Assign(map[string]interface{}{
			"owner_name":   row.OwnerName,
			"state":        row.State,
			"vehicle_type": row.VehicleType,
			"color":        row.Color,
			"year":         row.Year,
			"plate_type":   row.PlateType,
		}).
		FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert registry record: %w", err)
	}
	return nil
}

// Delete removes a record by canonical plate number. Returns the
// number of rows removed.
func (r *RegistryRepository) Delete(ctx context.Context, plateNumber string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("plate_number = ?", plateNumber).
		Delete(&RegistryRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete registry record: %w", result.Error)
	}
	return result.RowsAffected, nil
}
