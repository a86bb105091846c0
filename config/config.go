// Package config loads editor settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gmlewis/voxel-editor/commands"
	"github.com/gmlewis/voxel-editor/shapes"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFillMaxCells is returned for a negative fill limit.
var ErrInvalidFillMaxCells = errors.New("fill_max_cells must not be negative")

// Config holds the editor settings.
type Config struct {
	MaxUndoSteps     int                 `yaml:"max_undo_steps"`
	FillMaxCells     int                 `yaml:"fill_max_cells"`
	FillConnectivity shapes.Connectivity `yaml:"fill_connectivity"`
	GreedyMeshing    bool                `yaml:"greedy_meshing"`

	Brush  Brush  `yaml:"brush"`
	Mirror Mirror `yaml:"mirror"`
}

type Brush struct {
	Size  int               `yaml:"size"`
	Shape shapes.BrushShape `yaml:"shape"`
}

type Mirror struct {
	X       bool `yaml:"x"`
	Y       bool `yaml:"y"`
	Z       bool `yaml:"z"`
	OffsetX int  `yaml:"offset_x"`
	OffsetY int  `yaml:"offset_y"`
	OffsetZ int  `yaml:"offset_z"`
}

// Default returns the settings of a fresh editor.
func Default() Config {
	return Config{
		MaxUndoSteps:     commands.DefaultMaxUndoSteps,
		FillMaxCells:     20000,
		FillConnectivity: shapes.Plane,
		GreedyMeshing:    true,
		Brush: Brush{
			Size:  shapes.DefaultBrush.Size,
			Shape: shapes.DefaultBrush.Shape,
		},
	}
}

// Parse overlays the YAML document raw on the defaults and validates the
// result. Keys missing from raw keep their default values.
func Parse(raw []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	c, err := Parse(raw)
	if err != nil {
		return c, fmt.Errorf("%v: %w", path, err)
	}
	return c, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.MaxUndoSteps < 1 {
		return fmt.Errorf("max_undo_steps: %w: got %v", commands.ErrInvalidDepth, c.MaxUndoSteps)
	}
	if c.FillMaxCells < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidFillMaxCells, c.FillMaxCells)
	}
	if _, err := shapes.ParseConnectivity(string(c.FillConnectivity)); err != nil {
		return fmt.Errorf("fill_connectivity: %w", err)
	}
	if err := c.BrushProfile().Validate(); err != nil {
		return fmt.Errorf("brush: %w", err)
	}
	return nil
}

// BrushProfile returns the configured brush, with the shape normalized.
// An unknown shape is passed through for Validate to report.
func (c Config) BrushProfile() shapes.Brush {
	b := shapes.Brush{Size: c.Brush.Size, Shape: c.Brush.Shape}
	if shape, err := shapes.ParseBrushShape(string(b.Shape)); err == nil {
		b.Shape = shape
	}
	return b
}

// Connectivity returns the configured fill connectivity, normalized.
func (c Config) Connectivity() shapes.Connectivity {
	conn, err := shapes.ParseConnectivity(string(c.FillConnectivity))
	if err != nil {
		return shapes.Plane
	}
	return conn
}

// MirrorPlanes returns the configured mirror planes.
func (c Config) MirrorPlanes() shapes.Mirror {
	return shapes.Mirror{
		Enabled: [3]bool{c.Mirror.X, c.Mirror.Y, c.Mirror.Z},
		Offset:  [3]int{c.Mirror.OffsetX, c.Mirror.OffsetY, c.Mirror.OffsetZ},
	}
}
