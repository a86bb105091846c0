package commands

import (
	"fmt"
)

// Transaction groups commands into one undo step.
type Transaction struct {
	Label    string
	Commands []Command
}

func (t *Transaction) Name() string { return t.Label }

// Do runs every command in order. If one fails, the commands already run
// are undone in reverse order and the error is returned.
func (t *Transaction) Do(ctx EditContext) error {
	for i, cmd := range t.Commands {
		if err := cmd.Do(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				if uerr := t.Commands[j].Undo(ctx); uerr != nil {
					return fmt.Errorf("%v: %w (rollback failed: %v)", cmd.Name(), err, uerr)
				}
			}
			return fmt.Errorf("%v: %w", cmd.Name(), err)
		}
	}
	return nil
}

// Undo undoes every command in reverse order.
func (t *Transaction) Undo(ctx EditContext) error {
	for i := len(t.Commands) - 1; i >= 0; i-- {
		if err := t.Commands[i].Undo(ctx); err != nil {
			return fmt.Errorf("%v: %w", t.Commands[i].Name(), err)
		}
	}
	return nil
}
