// Package commands implements undoable editing operations and the
// undo/redo stack that runs them.
//
// Commands never touch application state directly. Everything they read
// or write goes through an EditContext, and every voxel they change goes
// through one apply routine that also marks the changed cells dirty.
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gmlewis/voxel-editor/shapes"
	"github.com/gmlewis/voxel-editor/voxels"
)

var (
	ErrInvalidMode = errors.New("mode must be paint or erase")
	ErrEmptyName   = errors.New("name cannot be empty")
)

// Command is one undoable operation. Do is called once before any Undo;
// after that Undo and Do alternate (redo calls Do again).
type Command interface {
	Name() string
	Do(ctx EditContext) error
	Undo(ctx EditContext) error
}

// EditContext is the editor state commands operate on.
type EditContext interface {
	// Voxels returns the active part's grid.
	Voxels() *voxels.Grid
	// MarkDirtyCells records cells changed in the active part.
	MarkDirtyCells(cells voxels.CellSet)
	// InvalidateMesh forces a full mesh rebuild of the active part.
	InvalidateMesh()

	ProjectName() string
	SetProjectName(name string)

	Brush() shapes.Brush
	ExpandMirroredCells(cells voxels.CellSet) voxels.CellSet
	FillMaxCells() int
	FillConnectivity() shapes.Connectivity

	SelectedVoxels() voxels.CellSet
	SetSelectedVoxels(cells voxels.CellSet)
}

// Mode selects whether a shape command paints or erases.
type Mode string

const (
	Paint Mode = "paint"
	Erase Mode = "erase"
)

// ParseMode parses "paint" or "erase" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Mode) validate() error {
	if m != Paint && m != Erase {
		return fmt.Errorf("%w: got %q", ErrInvalidMode, string(m))
	}
	return nil
}

func (m Mode) title() string {
	if m == Erase {
		return "Erase"
	}
	return "Paint"
}
