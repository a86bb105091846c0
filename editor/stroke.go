package editor

import (
	"github.com/gmlewis/voxel-editor/commands"
	"github.com/gmlewis/voxel-editor/shapes"
	"github.com/gmlewis/voxel-editor/voxels"
)

// BeginStroke opens a drag stroke. Everything painted until EndStroke is
// undone as one step labeled label.
func (s *Session) BeginStroke(label string) error {
	if err := s.stack.BeginTransaction(label); err != nil {
		return err
	}
	s.lastStroke = nil
	return nil
}

// PaintStroke paints every cell on the segment from..to with the brush.
// A cell painted by the previous segment is not painted twice.
func (s *Session) PaintStroke(from, to voxels.Cell, colorIndex int) error {
	return s.stroke(from, to, func(c voxels.Cell) commands.Command {
		return commands.NewPaintVoxel(c.X, c.Y, c.Z, colorIndex)
	})
}

// EraseStroke erases every cell on the segment from..to with the brush.
func (s *Session) EraseStroke(from, to voxels.Cell) error {
	return s.stroke(from, to, func(c voxels.Cell) commands.Command {
		return commands.NewRemoveVoxel(c.X, c.Y, c.Z)
	})
}

func (s *Session) stroke(from, to voxels.Cell, newCmd func(voxels.Cell) commands.Command) error {
	if !s.stack.InTransaction() {
		return commands.ErrNoTransaction
	}
	for _, c := range shapes.StrokeSegment(from, to) {
		if s.lastStroke != nil && *s.lastStroke == c {
			continue
		}
		if err := s.stack.Do(newCmd(c), s); err != nil {
			return err
		}
		c := c
		s.lastStroke = &c
	}
	return nil
}

// EndStroke closes the stroke and records it.
func (s *Session) EndStroke() error {
	s.lastStroke = nil
	if err := s.stack.EndTransaction(); err != nil {
		return err
	}
	s.project.Touch()
	return nil
}

// CancelStroke undoes everything painted since BeginStroke and leaves no
// history.
func (s *Session) CancelStroke() error {
	s.lastStroke = nil
	return s.stack.RollbackTransaction(s)
}
