// Package practice provides practice-wide settings shared across the
// scheduling and notification surfaces.
package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NotificationPrefs controls how patients are notified about bookings.
type NotificationPrefs struct {
	EmailEnabled bool   `json:"email_enabled"`
	FromEmail    string `json:"from_email,omitempty"`
	// NotifyOnBooking controls the confirmation email after an appointment
	// is created.
	NotifyOnBooking bool `json:"notify_on_booking"`
}

// Settings holds practice-wide configuration.
type Settings struct {
	PracticeID string `json:"practice_id"`
	Name       string `json:"name"`
	// Timezone is informational only. Slot math is anchored to UTC.
	Timezone string `json:"timezone"`
	// SlotDurationMinutes is informational, shown on the settings screen.
	// The slot generator's granularity comes from deployment config
	// (SLOT_DURATION_MINUTES), not from here.
	SlotDurationMinutes int               `json:"slot_duration_minutes,omitempty"`
	Notifications       NotificationPrefs `json:"notifications"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// SlotDuration returns the configured appointment length, defaulting to 30
// minutes.
func (s *Settings) SlotDuration() time.Duration {
	if s.SlotDurationMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(s.SlotDurationMinutes) * time.Minute
}

// DefaultSettings returns the settings used before a practice has saved any.
func DefaultSettings(practiceID string) *Settings {
	return &Settings{
		PracticeID: practiceID,
		Timezone:   "UTC",
		Notifications: NotificationPrefs{
			EmailEnabled:    true,
			NotifyOnBooking: true,
		},
	}
}

// Validate checks the settings payload.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.PracticeID) == "" {
		return fmt.Errorf("practice: practice_id is required")
	}
	if s.SlotDurationMinutes < 0 {
		return fmt.Errorf("practice: slot_duration_minutes must not be negative")
	}
	return nil
}

// Store provides persistence for practice settings.
type Store struct {
	redis *redis.Client
}

// NewStore creates a new settings store.
func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient}
}

func (s *Store) key(practiceID string) string {
	return fmt.Sprintf("practice:settings:%s", practiceID)
}

// Get retrieves practice settings, returning defaults if not found.
func (s *Store) Get(ctx context.Context, practiceID string) (*Settings, error) {
	data, err := s.redis.Get(ctx, s.key(practiceID)).Bytes()
	if err == redis.Nil {
		return DefaultSettings(practiceID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("practice: get settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("practice: unmarshal settings: %w", err)
	}
	return &settings, nil
}

// Set saves practice settings.
func (s *Store) Set(ctx context.Context, settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("practice: marshal settings: %w", err)
	}
	if err := s.redis.Set(ctx, s.key(settings.PracticeID), data, 0).Err(); err != nil {
		return fmt.Errorf("practice: set settings: %w", err)
	}
	return nil
}
