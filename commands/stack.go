package commands

import (
	"errors"
	"fmt"
)

// DefaultMaxUndoSteps is the undo depth of a new Stack.
const DefaultMaxUndoSteps = 200

var (
	ErrInvalidDepth    = errors.New("max undo steps must be at least 1")
	ErrTransactionOpen = errors.New("a transaction is open")
	ErrNoTransaction   = errors.New("no transaction is open")
)

// Stack runs commands and keeps the undo and redo history.
//
// While a transaction is open, executed commands are collected instead of
// being pushed; EndTransaction pushes them as a single step.
type Stack struct {
	undo    []Command
	redo    []Command
	maxUndo int
	tx      *Transaction
}

// NewStack returns an empty stack with DefaultMaxUndoSteps.
func NewStack() *Stack {
	return &Stack{maxUndo: DefaultMaxUndoSteps}
}

func (s *Stack) MaxUndoSteps() int { return s.maxUndo }

// SetMaxUndoSteps changes the undo depth, dropping the oldest steps if
// the history is already longer.
func (s *Stack) SetMaxUndoSteps(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidDepth, n)
	}
	s.maxUndo = n
	s.trim()
	return nil
}

// Do executes cmd and records it. A failed command is not recorded.
func (s *Stack) Do(cmd Command, ctx EditContext) error {
	if err := cmd.Do(ctx); err != nil {
		return fmt.Errorf("%v: %w", cmd.Name(), err)
	}
	if s.tx != nil {
		s.tx.Commands = append(s.tx.Commands, cmd)
		return nil
	}
	s.push(cmd)
	return nil
}

func (s *Stack) push(cmd Command) {
	s.undo = append(s.undo, cmd)
	s.redo = nil
	s.trim()
}

func (s *Stack) trim() {
	if n := len(s.undo) - s.maxUndo; n > 0 {
		s.undo = append([]Command(nil), s.undo[n:]...)
	}
}

// Undo reverts the most recent step. It is a no-op on an empty history.
func (s *Stack) Undo(ctx EditContext) error {
	if s.tx != nil {
		return ErrTransactionOpen
	}
	if len(s.undo) == 0 {
		return nil
	}
	cmd := s.undo[len(s.undo)-1]
	if err := cmd.Undo(ctx); err != nil {
		return fmt.Errorf("undo %v: %w", cmd.Name(), err)
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, cmd)
	return nil
}

// Redo re-applies the most recently undone step. It is a no-op when there
// is nothing to redo.
func (s *Stack) Redo(ctx EditContext) error {
	if s.tx != nil {
		return ErrTransactionOpen
	}
	if len(s.redo) == 0 {
		return nil
	}
	cmd := s.redo[len(s.redo)-1]
	if err := cmd.Do(ctx); err != nil {
		return fmt.Errorf("redo %v: %w", cmd.Name(), err)
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, cmd)
	s.trim()
	return nil
}

// BeginTransaction starts collecting commands under label.
func (s *Stack) BeginTransaction(label string) error {
	if s.tx != nil {
		return ErrTransactionOpen
	}
	s.tx = &Transaction{Label: label}
	return nil
}

// EndTransaction closes the open transaction. An empty transaction leaves
// no history, and a single command is recorded on its own.
func (s *Stack) EndTransaction() error {
	tx := s.tx
	if tx == nil {
		return ErrNoTransaction
	}
	s.tx = nil

	switch len(tx.Commands) {
	case 0:
	case 1:
		s.push(tx.Commands[0])
	default:
		s.push(tx)
	}
	return nil
}

// RollbackTransaction undoes the commands of the open transaction and
// discards it.
func (s *Stack) RollbackTransaction(ctx EditContext) error {
	tx := s.tx
	if tx == nil {
		return ErrNoTransaction
	}
	s.tx = nil
	return tx.Undo(ctx)
}

func (s *Stack) InTransaction() bool { return s.tx != nil }

func (s *Stack) CanUndo() bool { return s.tx == nil && len(s.undo) > 0 }

func (s *Stack) CanRedo() bool { return s.tx == nil && len(s.redo) > 0 }

// Clear drops all history, including an open transaction, without
// touching the edited state.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
	s.tx = nil
}

// UndoHistory returns the undo steps, oldest first.
func (s *Stack) UndoHistory() []Command {
	return append([]Command(nil), s.undo...)
}

// RedoHistory returns the redo steps, next-to-redo last.
func (s *Stack) RedoHistory() []Command {
	return append([]Command(nil), s.redo...)
}
