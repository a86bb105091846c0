// Package editor ties a project, its undo history and the tool settings
// into an editing session.
package editor

import (
	"fmt"

	"github.com/gmlewis/voxel-editor/commands"
	"github.com/gmlewis/voxel-editor/config"
	"github.com/gmlewis/voxel-editor/mesh"
	"github.com/gmlewis/voxel-editor/scene"
	"github.com/gmlewis/voxel-editor/shapes"
	"github.com/gmlewis/voxel-editor/stats"
	"github.com/gmlewis/voxel-editor/voxels"
)

// Session is the editor state commands run against. It implements
// commands.EditContext; every edit acts on the project's active part.
type Session struct {
	project *scene.Project
	stack   *commands.Stack

	brush        shapes.Brush
	mirror       shapes.Mirror
	fillMaxCells int
	connectivity shapes.Connectivity
	greedy       bool

	selection voxels.CellSet

	// lastStroke is the most recent cell a stroke touched, nil between
	// strokes or before the first segment.
	lastStroke *voxels.Cell
}

var _ commands.EditContext = (*Session)(nil)

// New returns a session editing project with the settings in cfg.
// A nil project starts a new "Untitled" one.
func New(project *scene.Project, cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if project == nil {
		project = scene.NewProject("Untitled", nil)
	}
	if _, err := project.Scene.ActivePart(); err != nil {
		return nil, err
	}

	stack := commands.NewStack()
	if err := stack.SetMaxUndoSteps(cfg.MaxUndoSteps); err != nil {
		return nil, err
	}

	return &Session{
		project:      project,
		stack:        stack,
		brush:        cfg.BrushProfile(),
		mirror:       cfg.MirrorPlanes(),
		fillMaxCells: cfg.FillMaxCells,
		connectivity: cfg.Connectivity(),
		greedy:       cfg.GreedyMeshing,
		selection:    voxels.CellSet{},
	}, nil
}

func (s *Session) Project() *scene.Project { return s.project }

func (s *Session) Stack() *commands.Stack { return s.stack }

// ActivePart returns the part edits apply to.
func (s *Session) ActivePart() *scene.Part {
	p, err := s.project.Scene.ActivePart()
	if err != nil {
		// New checks for an active part and parts are never removed.
		panic(err)
	}
	return p
}

// SetActivePart switches the part edits apply to. The undo history
// refers to the previous part's cells, so it is cleared along with the
// selection. Switching is refused during a stroke.
func (s *Session) SetActivePart(id string) error {
	if s.stack.InTransaction() {
		return commands.ErrTransactionOpen
	}
	if s.ActivePart().ID == id {
		return nil
	}
	if err := s.project.Scene.SetActivePart(id); err != nil {
		return err
	}
	s.stack.Clear()
	s.selection = voxels.CellSet{}
	return nil
}

// Voxels returns the active part's grid.
func (s *Session) Voxels() *voxels.Grid { return s.ActivePart().Voxels }

func (s *Session) MarkDirtyCells(cells voxels.CellSet) { s.ActivePart().MarkDirtyCells(cells) }

func (s *Session) InvalidateMesh() { s.ActivePart().InvalidateMesh() }

func (s *Session) ProjectName() string { return s.project.Name }

func (s *Session) SetProjectName(name string) { s.project.Name = name }

func (s *Session) Brush() shapes.Brush { return s.brush }

// SetBrush changes the brush profile used by later paint and erase commands.
func (s *Session) SetBrush(b shapes.Brush) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.brush = b
	return nil
}

// CycleBrushSize steps the brush size 1, 2, 3, 1, ...
func (s *Session) CycleBrushSize() int {
	s.brush.Size = shapes.NextBrushSize(s.brush.Size)
	return s.brush.Size
}

func (s *Session) Mirror() shapes.Mirror { return s.mirror }

// SetMirrorAxis enables or disables mirroring across the named axis.
func (s *Session) SetMirrorAxis(name string, enabled bool) error {
	axis, err := shapes.ParseAxis(name)
	if err != nil {
		return err
	}
	s.mirror.Enabled[axis] = enabled
	return nil
}

// SetMirrorOffset moves the mirror plane of the named axis.
func (s *Session) SetMirrorOffset(name string, offset int) error {
	axis, err := shapes.ParseAxis(name)
	if err != nil {
		return err
	}
	s.mirror.Offset[axis] = offset
	return nil
}

func (s *Session) ExpandMirroredCells(cells voxels.CellSet) voxels.CellSet {
	return s.mirror.Expand(cells)
}

func (s *Session) FillMaxCells() int { return s.fillMaxCells }

// SetFillMaxCells changes the flood fill limit; 0 disables it.
func (s *Session) SetFillMaxCells(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %v", config.ErrInvalidFillMaxCells, n)
	}
	s.fillMaxCells = n
	return nil
}

func (s *Session) FillConnectivity() shapes.Connectivity { return s.connectivity }

func (s *Session) SetFillConnectivity(c shapes.Connectivity) error {
	c, err := shapes.ParseConnectivity(string(c))
	if err != nil {
		return err
	}
	s.connectivity = c
	return nil
}

func (s *Session) SelectedVoxels() voxels.CellSet { return s.selection }

func (s *Session) SetSelectedVoxels(cells voxels.CellSet) {
	if cells == nil {
		cells = voxels.CellSet{}
	}
	s.selection = cells
}

func (s *Session) Greedy() bool { return s.greedy }

// SetGreedy switches the mesher used by RebuildActiveMesh and Stats.
func (s *Session) SetGreedy(greedy bool) { s.greedy = greedy }

// Do runs cmd through the undo stack.
func (s *Session) Do(cmd commands.Command) error {
	if err := s.stack.Do(cmd, s); err != nil {
		return err
	}
	s.project.Touch()
	return nil
}

func (s *Session) Undo() error {
	if err := s.stack.Undo(s); err != nil {
		return err
	}
	s.project.Touch()
	return nil
}

func (s *Session) Redo() error {
	if err := s.stack.Redo(s); err != nil {
		return err
	}
	s.project.Touch()
	return nil
}

// RebuildActiveMesh brings the active part's mesh cache up to date.
func (s *Session) RebuildActiveMesh() *mesh.SurfaceMesh {
	return s.ActivePart().RebuildMesh(s.greedy)
}

// Stats reports statistics for the whole project.
func (s *Session) Stats() stats.Scene {
	return stats.ComputeScene(s.project, s.greedy)
}
