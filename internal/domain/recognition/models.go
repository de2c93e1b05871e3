package recognition

import (
	"time"

	"github.com/google/uuid"

	"alpr-service/internal/plate"
	"alpr-service/internal/registry"
)

type VehicleInfo struct {
	Color      string   `json:"color,omitempty"`
	Type       string   `json:"type,omitempty"`
	Brand      string   `json:"brand,omitempty"`
	Model      string   `json:"model,omitempty"`
	Country    string   `json:"country,omitempty"`
	PlateColor string   `json:"plate_color,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
}

// EventPayload is what the external detector/OCR stage delivers: the
// raw recognized text plus capture metadata. The core never talks to
// the detector or OCR engine itself.
type EventPayload struct {
	CameraID      string                 `json:"camera_id"`
	CameraModel   string                 `json:"camera_model,omitempty"`
	PlateText     string                 `json:"plate_text"`
	OCRConfidence float64                `json:"ocr_confidence"`
	Direction     string                 `json:"direction,omitempty"`
	Lane          int                    `json:"lane,omitempty"`
	EventTime     time.Time              `json:"event_time"`
	Vehicle       VehicleInfo            `json:"vehicle"`
	SnapshotURL   string                 `json:"snapshot_url,omitempty"`
	RawPayload    map[string]interface{} `json:"raw_payload,omitempty"`
}

// Event is a persisted recognition attempt, valid plate or not.
type Event struct {
	ID uuid.UUID
	EventPayload
	Validation plate.ValidatedPlate
}

// ProcessResult is what the service hands back to the caller after a
// recognition attempt has been validated, matched and stored.
type ProcessResult struct {
	EventID    uuid.UUID             `json:"event_id"`
	Validation plate.ValidatedPlate  `json:"validation"`
	Lookup     registry.LookupResult `json:"lookup"`
	Registered bool                  `json:"registered"`
}
