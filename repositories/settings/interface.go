package settings

import (
	"context"

	"github.com/dchitadze/fathersquotes/models"
)

// Patch carries the fields to change; nil fields keep their current value.
type Patch struct {
	Language             *models.Language
	NotificationsEnabled *bool
	WeekdayTime          *string
	WeekendTime          *string
	SoundID              *string
}

// Repository describes access to the singleton settings row.
type Repository interface {
	// Get returns the current settings, falling back to defaults when the
	// row is somehow missing. It never fails on absence.
	Get(ctx context.Context) (models.Settings, error)

	// Update merges the non-nil patch fields over the current row, stamps
	// the update time, persists, and returns the merged result.
	Update(ctx context.Context, p Patch) (models.Settings, error)
}
