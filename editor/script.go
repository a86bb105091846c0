package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gmlewis/voxel-editor/commands"
	"github.com/gmlewis/voxel-editor/shapes"
	"github.com/gmlewis/voxel-editor/voxels"
)

// ErrUnknownCommand is returned for a script line naming no known command.
var ErrUnknownCommand = errors.New("unknown command")

// Run executes an edit script, one command per line. Blank lines and
// lines starting with # are skipped. It stops at the first failing line.
//
// Commands:
//
//	paint X Y Z COLOR
//	erase X Y Z
//	box X0 Y0 X1 Y1 Z paint|erase COLOR
//	line X0 Y0 X1 Y1 Z paint|erase COLOR
//	fill X Y Z paint|erase COLOR
//	select X Y Z [X Y Z ...]
//	move DX DY DZ
//	clear
//	pattern [SIZE]
//	rename NAME...
//	undo | redo
//	brush SIZE cube|sphere
//	mirror x|y|z on|off [OFFSET]
//	connectivity plane|volume
//	part NAME...        (adds a part and makes it active)
//	begin LABEL... | end | cancel
//	stroke X0 Y0 Z0 X1 Y1 Z1 COLOR
func (s *Session) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.Exec(line); err != nil {
			return fmt.Errorf("line %v: %q: %w", n, line, err)
		}
	}
	return scanner.Err()
}

// Exec executes one script line.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "paint":
		v, err := ints(args, 4)
		if err != nil {
			return err
		}
		return s.Do(commands.NewPaintVoxel(v[0], v[1], v[2], v[3]))
	case "erase":
		v, err := ints(args, 3)
		if err != nil {
			return err
		}
		return s.Do(commands.NewRemoveVoxel(v[0], v[1], v[2]))
	case "box", "line":
		if len(args) != 7 {
			return fmt.Errorf("%v: want 7 arguments, got %v", name, len(args))
		}
		v, err := ints(append(args[:5:5], args[6]), 6)
		if err != nil {
			return err
		}
		mode, err := commands.ParseMode(args[5])
		if err != nil {
			return err
		}
		if name == "box" {
			return s.Do(commands.NewBoxVoxels(v[0], v[1], v[2], v[3], v[4], mode, v[5]))
		}
		return s.Do(commands.NewLineVoxels(v[0], v[1], v[2], v[3], v[4], mode, v[5]))
	case "fill":
		if len(args) != 5 {
			return fmt.Errorf("fill: want 5 arguments, got %v", len(args))
		}
		v, err := ints(append(args[:3:3], args[4]), 4)
		if err != nil {
			return err
		}
		mode, err := commands.ParseMode(args[3])
		if err != nil {
			return err
		}
		return s.Do(commands.NewFillVoxels(v[0], v[1], v[2], mode, v[3]))
	case "select":
		if len(args) == 0 || len(args)%3 != 0 {
			return fmt.Errorf("select: want coordinate triples, got %v values", len(args))
		}
		v, err := ints(args, len(args))
		if err != nil {
			return err
		}
		sel := voxels.CellSet{}
		for i := 0; i < len(v); i += 3 {
			sel.Add(voxels.Cell{X: v[i], Y: v[i+1], Z: v[i+2]})
		}
		s.SetSelectedVoxels(sel)
		return nil
	case "move":
		v, err := ints(args, 3)
		if err != nil {
			return err
		}
		return s.Do(commands.NewMoveSelectedVoxels(v[0], v[1], v[2]))
	case "clear":
		return s.Do(&commands.ClearVoxels{})
	case "pattern":
		size := 0
		if len(args) > 0 {
			v, err := ints(args, 1)
			if err != nil {
				return err
			}
			size = v[0]
		}
		return s.Do(&commands.CreateTestPattern{Size: size})
	case "rename":
		return s.Do(commands.NewRenameProject(strings.Join(args, " ")))
	case "undo":
		return s.Undo()
	case "redo":
		return s.Redo()
	case "brush":
		if len(args) != 2 {
			return fmt.Errorf("brush: want 2 arguments, got %v", len(args))
		}
		v, err := ints(args[:1], 1)
		if err != nil {
			return err
		}
		shape, err := shapes.ParseBrushShape(args[1])
		if err != nil {
			return err
		}
		return s.SetBrush(shapes.Brush{Size: v[0], Shape: shape})
	case "mirror":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("mirror: want 2 or 3 arguments, got %v", len(args))
		}
		on, err := onOff(args[1])
		if err != nil {
			return err
		}
		if err := s.SetMirrorAxis(args[0], on); err != nil {
			return err
		}
		if len(args) == 3 {
			v, err := ints(args[2:], 1)
			if err != nil {
				return err
			}
			return s.SetMirrorOffset(args[0], v[0])
		}
		return nil
	case "connectivity":
		if len(args) != 1 {
			return fmt.Errorf("connectivity: want 1 argument, got %v", len(args))
		}
		return s.SetFillConnectivity(shapes.Connectivity(args[0]))
	case "part":
		if s.stack.InTransaction() {
			return commands.ErrTransactionOpen
		}
		p, err := s.project.Scene.AddPart(strings.Join(args, " "))
		if err != nil {
			return err
		}
		return s.SetActivePart(p.ID)
	case "begin":
		return s.BeginStroke(strings.Join(args, " "))
	case "end":
		return s.EndStroke()
	case "cancel":
		return s.CancelStroke()
	case "stroke":
		v, err := ints(args, 7)
		if err != nil {
			return err
		}
		from := voxels.Cell{X: v[0], Y: v[1], Z: v[2]}
		to := voxels.Cell{X: v[3], Y: v[4], Z: v[5]}
		return s.PaintStroke(from, to, v[6])
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %v numbers, got %v", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %v: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func onOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", s)
}
