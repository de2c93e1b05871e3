package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alpr-service/internal/domain/recognition"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (Event) TableName() string {
	return "alpr_events"
}

type Event struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	CameraID          string    `gorm:"not null"`
	CameraModel       *string
	Direction         *string
	Lane              *int
	RawPlate          string `gorm:"not null"`
	CanonicalPlate    string `gorm:"not null"`
	FormattedPlate    *string
	PlateCategory     string `gorm:"not null"`
	StateCode         *string
	IsValid           bool `gorm:"not null"`
	Confidence        *float64
	OCRConfidence     *float64
	Registered        bool `gorm:"not null"`
	Message           *string
	VehicleColor      *string
	VehicleType       *string
	VehicleBrand      *string
	VehicleModel      *string
	VehicleCountry    *string
	VehiclePlateColor *string
	VehicleSpeed      *float64
	SnapshotURL       *string
	EventTime         time.Time      `gorm:"not null"`
	RawPayload        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time
}

// Create persists a recognition event; the event ID is assigned here.
func (r *EventRepository) Create(ctx context.Context, event *recognition.Event, registered bool) error {
	v := event.Validation

	dbEvent := Event{
		ID:             uuid.New(),
		CameraID:       event.CameraID,
		RawPlate:       event.PlateText,
		CanonicalPlate: v.CanonicalText,
		PlateCategory:  string(v.Category),
		IsValid:        v.IsValid,
		Registered:     registered,
		EventTime:      event.EventTime,
		CreatedAt:      time.Now(),
	}

	if event.CameraModel != "" {
		dbEvent.CameraModel = &event.CameraModel
	}
	if event.Direction != "" {
		dbEvent.Direction = &event.Direction
	}
	if event.Lane != 0 {
		dbEvent.Lane = &event.Lane
	}
	if v.FormattedPlate != "" {
		dbEvent.FormattedPlate = &v.FormattedPlate
	}
	if v.StateCode != "" {
		dbEvent.StateCode = &v.StateCode
	}
	if v.Confidence != 0 {
		dbEvent.Confidence = &v.Confidence
	}
	if event.OCRConfidence != 0 {
		dbEvent.OCRConfidence = &event.OCRConfidence
	}
	if v.Message != "" {
		dbEvent.Message = &v.Message
	}
	if event.Vehicle.Color != "" {
		dbEvent.VehicleColor = &event.Vehicle.Color
	}
	if event.Vehicle.Type != "" {
		dbEvent.VehicleType = &event.Vehicle.Type
	}
	if event.Vehicle.Brand != "" {
		dbEvent.VehicleBrand = &event.Vehicle.Brand
	}
	if event.Vehicle.Model != "" {
		dbEvent.VehicleModel = &event.Vehicle.Model
	}
	if event.Vehicle.Country != "" {
		dbEvent.VehicleCountry = &event.Vehicle.Country
	}
	if event.Vehicle.PlateColor != "" {
		dbEvent.VehiclePlateColor = &event.Vehicle.PlateColor
	}
	if event.Vehicle.Speed != nil {
		dbEvent.VehicleSpeed = event.Vehicle.Speed
	}
	if event.SnapshotURL != "" {
		dbEvent.SnapshotURL = &event.SnapshotURL
	}
	if event.RawPayload != nil {
		raw, err := json.Marshal(event.RawPayload)
		if err == nil {
			dbEvent.RawPayload = datatypes.JSON(raw)
		}
	}

	if err := r.db.WithContext(ctx).Create(&dbEvent).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	event.ID = dbEvent.ID
	return nil
}

// SetSnapshotURL attaches an uploaded snapshot to an existing event.
func (r *EventRepository) SetSnapshotURL(ctx context.Context, eventID uuid.UUID, url string) error {
	result := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		Update("snapshot_url", url)
	if result.Error != nil {
		return fmt.Errorf("failed to set snapshot url: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Find returns events filtered by canonical plate and time window,
// newest first.
func (r *EventRepository) Find(ctx context.Context, canonicalPlate *string, from, to *time.Time, limit, offset int) ([]Event, error) {
	query := r.db.WithContext(ctx).Model(&Event{})

	if canonicalPlate != nil {
		query = query.Where("canonical_plate = ?", *canonicalPlate)
	}
	if from != nil {
		query = query.Where("event_time >= ?", *from)
	}
	if to != nil {
		query = query.Where("event_time <= ?", *to)
	}

	var events []Event
	err := query.
		Order("event_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}
	return events, nil
}

// PlateSighting is one distinct canonical plate with its most recent
// sighting time.
type PlateSighting struct {
	CanonicalPlate string    `json:"canonical_plate"`
	LastSeen       time.Time `json:"last_seen"`
	EventCount     int64     `json:"event_count"`
}

// FindPlates lists distinct canonical plates matching a prefix, with
// last sighting and event count.
func (r *EventRepository) FindPlates(ctx context.Context, canonicalPrefix string) ([]PlateSighting, error) {
	var sightings []PlateSighting
	err := r.db.WithContext(ctx).
		Model(&Event{}).
		Select("canonical_plate, MAX(event_time) AS last_seen, COUNT(*) AS event_count").
		Where("canonical_plate LIKE ?", canonicalPrefix+"%").
		Group("canonical_plate").
		Order("last_seen DESC").
		Limit(100).
		Scan(&sightings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find plates: %w", err)
	}
	return sightings, nil
}

// DeleteOlderThan removes events older than the given number of days.
func (r *EventRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	result := r.db.WithContext(ctx).
		Where("event_time < ?", cutoff).
		Delete(&Event{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
