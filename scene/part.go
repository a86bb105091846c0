// Package scene holds projects, their parts and each part's cached mesh.
package scene

import (
	"github.com/gmlewis/voxel-editor/mesh"
	"github.com/gmlewis/voxel-editor/voxels"
)

// Part is one independently editable voxel object. It owns its grid and
// the mesh cache derived from it.
type Part struct {
	ID      string
	Name    string
	Voxels  *voxels.Grid
	Visible bool
	Locked  bool

	// MeshCache is the last mesh built by RebuildMesh, or nil.
	MeshCache *mesh.SurfaceMesh
	// DirtyBounds covers every cell touched since MeshCache was built.
	// nil means the cache is in sync (or there is no cache).
	DirtyBounds *voxels.Bounds

	cacheGreedy bool
}

// NewPart returns a visible, empty part.
func NewPart(id, name string) *Part {
	return &Part{ID: id, Name: name, Voxels: voxels.New(), Visible: true}
}

// MarkDirtyCells records cells as changed since the mesh was last built.
func (p *Part) MarkDirtyCells(cells voxels.CellSet) {
	if p.MeshCache == nil {
		return
	}
	b, ok := cells.Bounds()
	if !ok {
		return
	}
	if p.DirtyBounds != nil {
		b = p.DirtyBounds.Union(b)
	}
	p.DirtyBounds = &b
}

// InvalidateMesh drops the mesh cache so the next rebuild is a full one.
func (p *Part) InvalidateMesh() {
	p.MeshCache = nil
	p.DirtyBounds = nil
}

// RebuildMesh brings the mesh cache up to date and returns it. Small
// edits recorded through MarkDirtyCells are patched into the cached mesh;
// anything else is rebuilt from the whole grid.
func (p *Part) RebuildMesh(greedy bool) *mesh.SurfaceMesh {
	cached := p.MeshCache
	if cached != nil && p.cacheGreedy != greedy {
		cached = nil
	}
	m, _ := mesh.Rebuild(p.Voxels, cached, p.DirtyBounds, greedy)
	p.MeshCache = m
	p.DirtyBounds = nil
	p.cacheGreedy = greedy
	return m
}
