package commands

import (
	"strings"
)

// RenameProject changes the project name.
type RenameProject struct {
	NewName string

	oldName  string
	captured bool
}

// NewRenameProject returns a command renaming the project to name.
func NewRenameProject(name string) *RenameProject {
	return &RenameProject{NewName: name}
}

func (c *RenameProject) Name() string { return "Rename Project" }

func (c *RenameProject) Do(ctx EditContext) error {
	name := strings.TrimSpace(c.NewName)
	if name == "" {
		return ErrEmptyName
	}
	if !c.captured {
		c.oldName = ctx.ProjectName()
		c.captured = true
	}
	ctx.SetProjectName(name)
	return nil
}

func (c *RenameProject) Undo(ctx EditContext) error {
	if c.captured {
		ctx.SetProjectName(c.oldName)
	}
	return nil
}
