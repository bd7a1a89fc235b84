package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dchitadze/fathersquotes/dbx"
	"github.com/dchitadze/fathersquotes/events"
	"github.com/dchitadze/fathersquotes/models"
	"github.com/dchitadze/fathersquotes/timex"
)

// Defaults match the seed row created at schema initialization.
func Defaults() models.Settings {
	return models.Settings{
		Language:             models.LanguageKA,
		NotificationsEnabled: false,
		WeekdayTime:          "10:00",
		WeekendTime:          "11:00",
		SoundID:              "default",
	}
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Updates publish events.Settings on the optional bus.
type SQLiteRepository struct {
	db  dbx.DBTX
	bus *events.Bus
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
// bus may be nil.
func NewSQLiteRepository(db dbx.DBTX, bus *events.Bus) *SQLiteRepository {
	return &SQLiteRepository{db: db, bus: bus}
}

func (r *SQLiteRepository) Get(ctx context.Context) (models.Settings, error) {
	query := `
		SELECT language, notifications_enabled, weekday_time, weekend_time, sound_id, updated_at
		FROM settings
		WHERE id = 1
	`
	var s models.Settings
	var lang string
	var enabled int
	var updatedAt sql.NullString
	err := r.db.QueryRowContext(ctx, query).
		Scan(&lang, &enabled, &s.WeekdayTime, &s.WeekendTime, &s.SoundID, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Defaults(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	s.Language = models.Language(lang)
	s.NotificationsEnabled = enabled != 0
	s.UpdatedAt = dbx.TimePtr(updatedAt, timex.Parse)
	return s, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p Patch) (models.Settings, error) {
	current, err := r.Get(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	if p.Language != nil {
		current.Language = *p.Language
	}
	if p.NotificationsEnabled != nil {
		current.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.WeekdayTime != nil {
		current.WeekdayTime = *p.WeekdayTime
	}
	if p.WeekendTime != nil {
		current.WeekendTime = *p.WeekendTime
	}
	if p.SoundID != nil {
		current.SoundID = *p.SoundID
	}
	now := time.Now()
	current.UpdatedAt = &now

	enabled := 0
	if current.NotificationsEnabled {
		enabled = 1
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (id, language, notifications_enabled, weekday_time, weekend_time, sound_id, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			language = excluded.language,
			notifications_enabled = excluded.notifications_enabled,
			weekday_time = excluded.weekday_time,
			weekend_time = excluded.weekend_time,
			sound_id = excluded.sound_id,
			updated_at = excluded.updated_at
	`, string(current.Language), enabled, current.WeekdayTime, current.WeekendTime,
		current.SoundID, timex.Format(now))
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}

	r.bus.Publish(events.Settings)
	return current, nil
}
