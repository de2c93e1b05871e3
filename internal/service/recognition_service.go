package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"alpr-service/internal/domain/recognition"
	"alpr-service/internal/plate"
	"alpr-service/internal/registry"
	"alpr-service/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// RecognitionService runs the plate pipeline for incoming OCR text:
// sanitize, correct, validate, match against the registry, persist
// the attempt.
type RecognitionService struct {
	events   *repository.EventRepository
	registry *RegistryService
	family   plate.Family
	log      zerolog.Logger
}

func NewRecognitionService(events *repository.EventRepository, reg *RegistryService, family plate.Family, log zerolog.Logger) *RecognitionService {
	return &RecognitionService{
		events:   events,
		registry: reg,
		family:   family,
		log:      log,
	}
}

// ProcessIncomingEvent validates the recognized text and records the
// attempt. Malformed plates are a normal outcome: the event is stored
// with is_valid=false and the result carries the diagnostic, no error
// is returned. Only missing payload fields or storage failures are
// errors.
func (s *RecognitionService) ProcessIncomingEvent(ctx context.Context, payload recognition.EventPayload, defaultCameraModel string) (*recognition.ProcessResult, error) {
	if payload.PlateText == "" {
		return nil, fmt.Errorf("%w: plate_text is required", ErrInvalidInput)
	}
	if payload.CameraID == "" {
		return nil, fmt.Errorf("%w: camera_id is required", ErrInvalidInput)
	}
	if payload.EventTime.IsZero() {
		return nil, fmt.Errorf("%w: event_time is required", ErrInvalidInput)
	}

	if payload.CameraModel == "" {
		payload.CameraModel = defaultCameraModel
	}

	validated := plate.ValidateFamily(payload.PlateText, s.family)

	var lookup registry.LookupResult
	if validated.IsValid {
		lookup = s.registry.Lookup(validated.FormattedPlate)
	} else {
		s.log.Debug().
			Str("raw_plate", payload.PlateText).
			Str("canonical", validated.CanonicalText).
			Str("message", validated.Message).
			Msg("plate failed validation")
		lookup = registry.LookupResult{Identifier: registry.CanonicalKey(validated.CanonicalText)}
	}

	event := &recognition.Event{
		EventPayload: payload,
		Validation:   validated,
	}

	if err := s.events.Create(ctx, event, lookup.Found); err != nil {
		s.log.Error().
			Err(err).
			Str("raw_plate", payload.PlateText).
			Str("camera_id", payload.CameraID).
			Msg("failed to store recognition event")
		return nil, fmt.Errorf("failed to store recognition event: %w", err)
	}

	logEvent := s.log.Info().
		Str("event_id", event.ID.String()).
		Str("raw_plate", payload.PlateText).
		Str("camera_id", payload.CameraID).
		Bool("is_valid", validated.IsValid).
		Bool("registered", lookup.Found).
		Time("event_time", payload.EventTime)
	if validated.IsValid {
		logEvent = logEvent.
			Str("plate", validated.FormattedPlate).
			Str("category", string(validated.Category)).
			Str("state_code", validated.StateCode)
	}
	logEvent.Msg("recognition event processed")

	return &recognition.ProcessResult{
		EventID:    event.ID,
		Validation: validated,
		Lookup:     lookup,
		Registered: lookup.Found,
	}, nil
}

// ResolvePlate validates an identifier and looks it up, without
// recording an event. Used for ad hoc queries.
func (s *RecognitionService) ResolvePlate(query string) (plate.ValidatedPlate, registry.LookupResult, error) {
	if plate.Sanitize(query) == "" {
		return plate.ValidatedPlate{}, registry.LookupResult{}, fmt.Errorf("%w: plate query cannot be empty", ErrInvalidInput)
	}

	validated := plate.ValidateFamily(query, s.family)
	lookup := s.registry.Lookup(query)
	return validated, lookup, nil
}

// AttachSnapshot stores the snapshot URL on a persisted event.
func (s *RecognitionService) AttachSnapshot(ctx context.Context, eventID uuid.UUID, url string) error {
	if err := s.events.SetSnapshotURL(ctx, eventID, url); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: event %s", ErrNotFound, eventID)
		}
		return err
	}
	return nil
}

// FindEvents returns stored recognition events filtered by plate and
// time range.
func (s *RecognitionService) FindEvents(ctx context.Context, plateQuery *string, from, to *string, limit, offset int) ([]EventInfo, error) {
	var canonical *string
	if plateQuery != nil {
		key := registry.CanonicalKey(*plateQuery)
		if key != "" {
			canonical = &key
		}
	}

	var fromTime, toTime *time.Time
	if from != nil && *from != "" {
		t, err := time.Parse(time.RFC3339, *from)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from time format", ErrInvalidInput)
		}
		fromTime = &t
	}
	if to != nil && *to != "" {
		t, err := time.Parse(time.RFC3339, *to)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to time format", ErrInvalidInput)
		}
		toTime = &t
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	events, err := s.events.Find(ctx, canonical, fromTime, toTime, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}

	result := make([]EventInfo, 0, len(events))
	for _, e := range events {
		result = append(result, toEventInfo(e))
	}
	return result, nil
}

// FindPlates searches distinct sighted plates by prefix.
func (s *RecognitionService) FindPlates(ctx context.Context, plateQuery string) ([]repository.PlateSighting, error) {
	prefix := registry.CanonicalKey(plateQuery)
	if prefix == "" {
		return nil, fmt.Errorf("%w: plate query cannot be empty", ErrInvalidInput)
	}
	return s.events.FindPlates(ctx, prefix)
}

// CleanupOldEvents removes events past the retention window.
func (s *RecognitionService) CleanupOldEvents(ctx context.Context, days int) (int64, error) {
	deleted, err := s.events.DeleteOlderThan(ctx, days)
	if err != nil {
		s.log.Error().Err(err).Int("days", days).Msg("failed to cleanup old events")
		return 0, err
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted_count", deleted).Int("days", days).Msg("cleaned up old events")
	}
	return deleted, nil
}

type EventInfo struct {
	ID             string    `json:"id"`
	CameraID       string    `json:"camera_id"`
	CameraModel    *string   `json:"camera_model,omitempty"`
	Direction      *string   `json:"direction,omitempty"`
	Lane           *int      `json:"lane,omitempty"`
	RawPlate       string    `json:"raw_plate"`
	CanonicalPlate string    `json:"canonical_plate"`
	FormattedPlate *string   `json:"formatted_plate,omitempty"`
	PlateCategory  string    `json:"plate_category"`
	StateCode      *string   `json:"state_code,omitempty"`
	IsValid        bool      `json:"is_valid"`
	Confidence     *float64  `json:"confidence,omitempty"`
	OCRConfidence  *float64  `json:"ocr_confidence,omitempty"`
	Registered     bool      `json:"registered"`
	Message        *string   `json:"message,omitempty"`
	VehicleColor   *string   `json:"vehicle_color,omitempty"`
	VehicleType    *string   `json:"vehicle_type,omitempty"`
	VehicleBrand   *string   `json:"vehicle_brand,omitempty"`
	VehicleModel   *string   `json:"vehicle_model,omitempty"`
	VehicleSpeed   *float64  `json:"vehicle_speed,omitempty"`
	SnapshotURL    *string   `json:"snapshot_url,omitempty"`
	EventTime      time.Time `json:"event_time"`
}

func toEventInfo(e repository.Event) EventInfo {
	return EventInfo{
		ID:             e.ID.String(),
		CameraID:       e.CameraID,
		CameraModel:    e.CameraModel,
		Direction:      e.Direction,
		Lane:           e.Lane,
		RawPlate:       e.RawPlate,
		CanonicalPlate: e.CanonicalPlate,
		FormattedPlate: e.FormattedPlate,
		PlateCategory:  e.PlateCategory,
		StateCode:      e.StateCode,
		IsValid:        e.IsValid,
		Confidence:     e.Confidence,
		OCRConfidence:  e.OCRConfidence,
		Registered:     e.Registered,
		Message:        e.Message,
		VehicleColor:   e.VehicleColor,
		VehicleType:    e.VehicleType,
		VehicleBrand:   e.VehicleBrand,
		VehicleModel:   e.VehicleModel,
		VehicleSpeed:   e.VehicleSpeed,
		SnapshotURL:    e.SnapshotURL,
		EventTime:      e.EventTime,
	}
}
