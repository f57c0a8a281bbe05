package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jkallio/pomodoro-cli/internal/timer"
)

// ErrProfileNotFound is returned when no profile has the given name.
var ErrProfileNotFound = errors.New("profile not found")

// Plan converts the profile into the plan a timer runs.
func (p Profile) Plan() timer.Plan {
	return timer.Plan{
		Name:      p.Name,
		Sequence:  append([]int64(nil), p.Sequence...),
		Messages:  append([]string(nil), p.Messages...),
		Repeat:    p.Repeat,
		AlarmFile: p.AlarmFile,
		IconFile:  p.IconFile,
	}
}

// Validate checks the name and the plan.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: profile needs a name", timer.ErrInvalidPlan)
	}
	return p.Plan().Validate()
}

// SaveProfile creates or replaces the profile with p.Name.
func (s *Store) SaveProfile(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	seq, err := json.Marshal(p.Sequence)
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Name, err)
	}
	msgs := p.Messages
	if msgs == nil {
		msgs = []string{}
	}
	msgJSON, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Name, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO profiles (name, sequence, messages, alarm_file, icon_file, silent, notify, repeat)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   sequence = excluded.sequence,
		   messages = excluded.messages,
		   alarm_file = excluded.alarm_file,
		   icon_file = excluded.icon_file,
		   silent = excluded.silent,
		   notify = excluded.notify,
		   repeat = excluded.repeat`,
		p.Name, string(seq), string(msgJSON), p.AlarmFile, p.IconFile,
		boolToInt(p.Silent), boolToInt(p.Notify), p.Repeat,
	)
	if err != nil {
		return fmt.Errorf("save profile %q: %w", p.Name, err)
	}
	return nil
}

const profileColumns = `name, sequence, messages, alarm_file, icon_file, silent, notify, repeat, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		p              Profile
		seq, msgs      string
		createdAt      string
		silent, notify int
	)
	if err := row.Scan(&p.Name, &seq, &msgs, &p.AlarmFile, &p.IconFile, &silent, &notify, &p.Repeat, &createdAt); err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(seq), &p.Sequence); err != nil {
		return p, fmt.Errorf("profile %q sequence: %w", p.Name, err)
	}
	if err := json.Unmarshal([]byte(msgs), &p.Messages); err != nil {
		return p, fmt.Errorf("profile %q messages: %w", p.Name, err)
	}
	p.Silent = silent == 1
	p.Notify = notify == 1
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}

func (s *Store) GetProfile(name string) (*Profile, error) {
	p, err := scanProfile(s.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %q: %w", name, err)
	}
	return &p, nil
}

func (s *Store) ListProfiles() ([]Profile, error) {
	rows, err := s.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) DeleteProfile(name string) error {
	res, err := s.db.Exec(`DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}
