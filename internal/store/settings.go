package store

import (
	"fmt"
	"strconv"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/timer"
)

const (
	KeyDefaultDuration = "default_duration"
	KeySilent          = "silent"
	KeyNotify          = "notify"
	KeyTimeFormat      = "time_format"
)

// Preferences are the typed user settings.
type Preferences struct {
	DefaultDuration int64
	Silent          bool
	Notify          bool
	TimeFormat      duration.Style
}

// DefaultPreferences mirrors the values seeded by the first migration.
func DefaultPreferences() Preferences {
	return Preferences{
		DefaultDuration: timer.DefaultDuration,
		TimeFormat:      duration.StyleSegmented,
	}
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Preferences reads the typed settings. Missing or malformed values keep
// their defaults.
func (s *Store) Preferences() (Preferences, error) {
	p := DefaultPreferences()
	settings, err := s.GetAllSettings()
	if err != nil {
		return p, err
	}
	for _, st := range settings {
		switch st.Key {
		case KeyDefaultDuration:
			if n, err := strconv.ParseInt(st.Value, 10, 64); err == nil && n > 0 {
				p.DefaultDuration = n
			}
		case KeySilent:
			if b, err := strconv.ParseBool(st.Value); err == nil {
				p.Silent = b
			}
		case KeyNotify:
			if b, err := strconv.ParseBool(st.Value); err == nil {
				p.Notify = b
			}
		case KeyTimeFormat:
			if f, err := duration.ParseStyle(st.Value); err == nil {
				p.TimeFormat = f
			}
		}
	}
	return p, nil
}

// SavePreferences writes every typed setting.
func (s *Store) SavePreferences(p Preferences) error {
	values := []Setting{
		{KeyDefaultDuration, strconv.FormatInt(p.DefaultDuration, 10)},
		{KeySilent, strconv.FormatBool(p.Silent)},
		{KeyNotify, strconv.FormatBool(p.Notify)},
		{KeyTimeFormat, string(p.TimeFormat)},
	}
	for _, v := range values {
		if err := s.SetSetting(v.Key, v.Value); err != nil {
			return err
		}
	}
	return nil
}
