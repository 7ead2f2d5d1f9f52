// Package level turns level descriptions into playable geometry and tracks per-level progress
package level

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoLayout  = errors.New("level has neither layout nor generator")
	ErrEmptyPack = errors.New("level pack has no levels")
	ErrNoKey     = errors.New("level requires a key but places none")
)

// GeneratorSpec configures a procedurally carved maze
type GeneratorSpec struct {
	Cols            int   `yaml:"cols"`
	Rows            int   `yaml:"rows"`
	Seed            int64 `yaml:"seed"`
	ExtraConnectors int   `yaml:"extra_connectors"`
	// ForceOdd rounds dimensions up to odd values, default true
	ForceOdd *bool `yaml:"force_odd,omitempty"`
}

// Hint names a target cell directly or as a fraction of the grid size
// The nearest open cell to the target is used
type Hint struct {
	Col     int      `yaml:"col"`
	Row     int      `yaml:"row"`
	FracCol *float64 `yaml:"frac_col,omitempty"`
	FracRow *float64 `yaml:"frac_row,omitempty"`
}

// Spec is one level entry of a pack
type Spec struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	SizeLabel   string         `yaml:"size_label,omitempty"`
	Layout      []string       `yaml:"layout,omitempty"`
	Generator   *GeneratorSpec `yaml:"generator,omitempty"`
	RequiresKey *bool          `yaml:"requires_key,omitempty"`
	KeyHint     *Hint          `yaml:"key_hint,omitempty"`
	BeaconHints []Hint         `yaml:"beacon_hints,omitempty"`
	PingLimit   int            `yaml:"ping_limit,omitempty"`
	TimeLimit   float64        `yaml:"time_limit_sec,omitempty"`
	FaceExit    bool           `yaml:"face_exit,omitempty"`
	IsBonus     bool           `yaml:"is_bonus,omitempty"`
}

// Pack is an ordered level progression
type Pack struct {
	Levels []Spec `yaml:"levels"`
}

//go:embed levels.yaml
var defaultPack []byte

// DefaultPack returns the built-in progression
func DefaultPack() (*Pack, error) {
	return ParsePack(defaultPack)
}

// LoadPack reads a YAML level pack from disk
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level pack %s: %w", path, err)
	}
	p, err := ParsePack(data)
	if err != nil {
		return nil, fmt.Errorf("level pack %s: %w", path, err)
	}
	return p, nil
}

// ParsePack decodes a YAML level pack
func ParsePack(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing level pack: %w", err)
	}
	if len(p.Levels) == 0 {
		return nil, ErrEmptyPack
	}
	return &p, nil
}

// Level returns the spec at index, clamped to the pack
func (p *Pack) Level(index int) Spec {
	return p.Levels[max(0, min(index, len(p.Levels)-1))]
}

// Len returns the number of levels
func (p *Pack) Len() int {
	return len(p.Levels)
}
