package scene

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gmlewis/voxel-editor/voxels"
	"github.com/google/uuid"
)

var (
	ErrNoActivePart  = errors.New("scene has no active part")
	ErrUnknownPart   = errors.New("part does not exist")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrDuplicatePart = errors.New("part already exists")
)

// IDGenerator hands out part IDs.
type IDGenerator interface {
	NextID() string
}

// CounterIDs generates "part-1", "part-2", ...
type CounterIDs struct {
	n int
}

// NextID implements IDGenerator.
func (c *CounterIDs) NextID() string {
	c.n++
	return fmt.Sprintf("part-%v", c.n)
}

// UUIDIDs generates random UUID part IDs.
type UUIDIDs struct{}

// NextID implements IDGenerator.
func (UUIDIDs) NextID() string { return uuid.NewString() }

// Scene is the set of parts in a project plus the active one.
type Scene struct {
	ids    IDGenerator
	parts  map[string]*Part
	order  []string
	active string
}

// New returns an empty scene drawing part IDs from ids.
// A nil ids uses a CounterIDs.
func New(ids IDGenerator) *Scene {
	if ids == nil {
		ids = &CounterIDs{}
	}
	return &Scene{ids: ids, parts: map[string]*Part{}}
}

// DefaultPartName names the part of a new scene.
const DefaultPartName = "Part 1"

// WithDefaultPart returns a scene holding one active part named
// DefaultPartName.
func WithDefaultPart(ids IDGenerator) *Scene {
	s := New(ids)
	s.addPart(DefaultPartName)
	return s
}

// AddPart creates a part. The first part added becomes active.
// Surrounding whitespace is trimmed from name, which must not be empty.
func (s *Scene) AddPart(name string) (*Part, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("new part: %w", ErrEmptyName)
	}
	return s.addPart(name), nil
}

func (s *Scene) addPart(name string) *Part {
	id := s.ids.NextID()
	for s.parts[id] != nil {
		id = s.ids.NextID()
	}
	p := NewPart(id, name)
	s.insert(p)
	return p
}

// RestorePart adds an existing part, keeping its ID.
func (s *Scene) RestorePart(p *Part) error {
	if p.ID == "" {
		return fmt.Errorf("part ID: %w", ErrEmptyName)
	}
	if _, ok := s.parts[p.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicatePart, p.ID)
	}
	if p.Voxels == nil {
		p.Voxels = voxels.New()
	}
	s.insert(p)
	return nil
}

func (s *Scene) insert(p *Part) {
	s.parts[p.ID] = p
	s.order = append(s.order, p.ID)
	if s.active == "" {
		s.active = p.ID
	}
}

// Parts returns the parts in creation order.
func (s *Scene) Parts() []*Part {
	parts := make([]*Part, 0, len(s.order))
	for _, id := range s.order {
		parts = append(parts, s.parts[id])
	}
	return parts
}

// Part returns the part with the given ID.
func (s *Scene) Part(id string) (*Part, error) {
	p, ok := s.parts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPart, id)
	}
	return p, nil
}

// ActivePart returns the part edits apply to.
func (s *Scene) ActivePart() (*Part, error) {
	if s.active == "" {
		return nil, ErrNoActivePart
	}
	return s.Part(s.active)
}

// SetActivePart selects the part edits apply to.
func (s *Scene) SetActivePart(id string) error {
	if _, err := s.Part(id); err != nil {
		return err
	}
	s.active = id
	return nil
}

// RenamePart renames a part. Surrounding whitespace is trimmed.
func (s *Scene) RenamePart(id, name string) error {
	p, err := s.Part(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("part %q: %w", id, ErrEmptyName)
	}
	p.Name = name
	return nil
}

// Project is the document being edited.
type Project struct {
	Name     string
	Created  time.Time
	Modified time.Time
	Version  int
	Scene    *Scene
}

// NewProject returns a project with one default part.
func NewProject(name string, ids IDGenerator) *Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &Project{
		Name:     name,
		Created:  now,
		Modified: now,
		Version:  1,
		Scene:    WithDefaultPart(ids),
	}
}

// Touch updates the modification time.
func (p *Project) Touch() {
	p.Modified = time.Now().UTC().Truncate(time.Second)
}
