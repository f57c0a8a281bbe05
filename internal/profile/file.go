// Package profile reads and writes profile definition files so profiles can
// be shared or kept under version control. The format follows the file
// extension: .json, .yaml/.yml or .toml.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jkallio/pomodoro-cli/internal/duration"
	"github.com/jkallio/pomodoro-cli/internal/store"
)

var ErrUnsupportedFile = errors.New("unsupported profile file")

// File is the on-disk shape of a profile. Durations are written the way a
// user types them, e.g. "25m" or "1h30m".
type File struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	Sequence  []string `json:"sequence" yaml:"sequence" toml:"sequence"`
	Messages  []string `json:"messages,omitempty" yaml:"messages,omitempty" toml:"messages,omitempty"`
	AlarmFile string   `json:"alarm_file,omitempty" yaml:"alarm_file,omitempty" toml:"alarm_file,omitempty"`
	IconFile  string   `json:"icon_file,omitempty" yaml:"icon_file,omitempty" toml:"icon_file,omitempty"`
	Silent    bool     `json:"silent" yaml:"silent" toml:"silent"`
	Notify    bool     `json:"notify" yaml:"notify" toml:"notify"`
	Repeat    int      `json:"repeat" yaml:"repeat" toml:"repeat"`
}

type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
	formatTOML format = "toml"
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return "", fmt.Errorf("%w: %s (use .json, .yaml or .toml)", ErrUnsupportedFile, path)
}

// FromProfile converts a stored profile to its file form.
func FromProfile(p store.Profile) File {
	f := File{
		Name:      p.Name,
		Messages:  p.Messages,
		AlarmFile: p.AlarmFile,
		IconFile:  p.IconFile,
		Silent:    p.Silent,
		Notify:    p.Notify,
		Repeat:    p.Repeat,
	}
	for _, secs := range p.Sequence {
		f.Sequence = append(f.Sequence, duration.Segmented(secs))
	}
	return f
}

// Profile parses the durations and validates the result.
func (f File) Profile() (store.Profile, error) {
	p := store.Profile{
		Name:      strings.TrimSpace(f.Name),
		Messages:  f.Messages,
		AlarmFile: f.AlarmFile,
		IconFile:  f.IconFile,
		Silent:    f.Silent,
		Notify:    f.Notify,
		Repeat:    f.Repeat,
	}
	for i, s := range f.Sequence {
		secs, err := duration.Parse(s)
		if err != nil {
			return p, fmt.Errorf("step %d: %w", i+1, err)
		}
		p.Sequence = append(p.Sequence, secs)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Read loads a profile file.
func Read(path string) (store.Profile, error) {
	fm, err := formatOf(path)
	if err != nil {
		return store.Profile{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Profile{}, fmt.Errorf("read profile: %w", err)
	}

	var f File
	switch fm {
	case formatJSON:
		err = json.Unmarshal(data, &f)
	case formatYAML:
		err = yaml.Unmarshal(data, &f)
	case formatTOML:
		_, err = toml.Decode(string(data), &f)
	}
	if err != nil {
		return store.Profile{}, fmt.Errorf("decode %s profile %s: %w", fm, path, err)
	}
	return f.Profile()
}

// Write saves p to path, creating parent directories.
func Write(path string, p store.Profile) error {
	fm, err := formatOf(path)
	if err != nil {
		return err
	}
	f := FromProfile(p)

	var data []byte
	switch fm {
	case formatJSON:
		data, err = json.MarshalIndent(f, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(f)
	case formatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(f)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode %s profile: %w", fm, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile file: %w", err)
	}
	return nil
}

// FileName turns a profile name into a safe base name, e.g.
// "Deep Work!" becomes "deep_work".
func FileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "profile"
	}
	return b.String()
}
