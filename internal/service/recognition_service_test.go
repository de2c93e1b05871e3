package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"alpr-service/internal/repository"
)

func TestToEventInfo(t *testing.T) {
	eventID := uuid.New()
	eventTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event repository.Event
		check func(t *testing.T, info EventInfo)
	}{
		{
			name: "valid registered plate",
			event: repository.Event{
				ID:             eventID,
				CameraID:       "cam-01",
				RawPlate:       "kts123ab",
				CanonicalPlate: "KTS123AB",
				FormattedPlate: stringPtr("KTS-123AB"),
				PlateCategory:  "PRIVATE",
				StateCode:      stringPtr("KT"),
				IsValid:        true,
				Confidence:     floatPtr(0.95),
				Registered:     true,
				EventTime:      eventTime,
			},
			check: func(t *testing.T, info EventInfo) {
				if info.ID != eventID.String() {
					t.Errorf("ID = %q, want %q", info.ID, eventID.String())
				}
				if info.FormattedPlate == nil || *info.FormattedPlate != "KTS-123AB" {
					t.Errorf("FormattedPlate = %v, want KTS-123AB", info.FormattedPlate)
				}
				if !info.IsValid || !info.Registered {
					t.Errorf("IsValid=%v Registered=%v, want both true", info.IsValid, info.Registered)
				}
				if !info.EventTime.Equal(eventTime) {
					t.Errorf("EventTime = %v, want %v", info.EventTime, eventTime)
				}
			},
		},
		{
			name: "invalid plate keeps diagnostics",
			event: repository.Event{
				ID:             eventID,
				CameraID:       "cam-02",
				RawPlate:       "??",
				CanonicalPlate: "",
				PlateCategory:  "UNKNOWN",
				IsValid:        false,
				Message:        stringPtr("plate text too short"),
				EventTime:      eventTime,
			},
			check: func(t *testing.T, info EventInfo) {
				if info.IsValid {
					t.Error("IsValid = true, want false")
				}
				if info.FormattedPlate != nil {
					t.Errorf("FormattedPlate = %v, want nil", info.FormattedPlate)
				}
				if info.Message == nil || *info.Message != "plate text too short" {
					t.Errorf("Message = %v, want diagnostic preserved", info.Message)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, toEventInfo(tt.event))
		})
	}
}

func TestExportHelpers(t *testing.T) {
	if got := strPtrOrEmpty(nil); got != "" {
		t.Errorf("strPtrOrEmpty(nil) = %q, want empty", got)
	}
	if got := strPtrOrEmpty(stringPtr("KTS-123AB")); got != "KTS-123AB" {
		t.Errorf("strPtrOrEmpty = %q, want KTS-123AB", got)
	}
	if got := floatPtrOrZero(nil); got != 0 {
		t.Errorf("floatPtrOrZero(nil) = %v, want 0", got)
	}
	if got := floatPtrOrZero(floatPtr(0.95)); got != 0.95 {
		t.Errorf("floatPtrOrZero = %v, want 0.95", got)
	}
}

func stringPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
