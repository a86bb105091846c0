package mesh

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/voxel-editor/voxels"
)

func boxGrid(nx, ny, nz, colorIndex int) *voxels.Grid {
	g := voxels.New()
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				g.Set(x, y, z, colorIndex)
			}
		}
	}
	return g
}

var extractors = []struct {
	name string
	fn   func(*voxels.Grid) *SurfaceMesh
}{
	{name: "naive", fn: ExtractSurface},
	{name: "greedy", fn: ExtractGreedy},
}

func TestNormalsPointOutward(t *testing.T) {
	shapes := []struct {
		name       string
		nx, ny, nz int
	}{
		{name: "single voxel", nx: 1, ny: 1, nz: 1},
		{name: "plate", nx: 3, ny: 3, nz: 1},
		{name: "bar", nx: 1, ny: 5, nz: 1},
		{name: "box", nx: 3, ny: 2, nz: 4},
	}

	for _, ex := range extractors {
		for _, shape := range shapes {
			t.Run(fmt.Sprintf("%v: %v", ex.name, shape.name), func(t *testing.T) {
				m := ex.fn(boxGrid(shape.nx, shape.ny, shape.nz, 1))
				if m.FaceCount() == 0 {
					t.Fatal("no faces")
				}
				center := meshCenter(m)
				for i := range m.Quads {
					outward := m.QuadCenter(i).Sub(center)
					if dot := m.QuadNormal(i).Dot(outward); dot <= 0 {
						t.Errorf("quad %v %v: normal . outward = %v, want > 0", i, m.QuadVertices(i), dot)
					}
				}
			})
		}
	}
}

func meshCenter(m *SurfaceMesh) mgl32.Vec3 {
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo.Add(hi).Mul(0.5)
}

func TestFaceCounts(t *testing.T) {
	twoColors := voxels.New()
	twoColors.Set(0, 0, 0, 1)
	twoColors.Set(1, 0, 0, 2)

	tests := []struct {
		name       string
		grid       *voxels.Grid
		naive      int
		greedy     int
		wantColors []int
	}{
		{name: "empty", grid: voxels.New()},
		{name: "single voxel", grid: boxGrid(1, 1, 1, 3), naive: 6, greedy: 6, wantColors: []int{3}},
		{name: "plate", grid: boxGrid(3, 3, 1, 1), naive: 30, greedy: 6, wantColors: []int{1}},
		{name: "cube", grid: boxGrid(4, 4, 4, 0), naive: 96, greedy: 6, wantColors: []int{0}},
		{name: "two colors", grid: twoColors, naive: 10, greedy: 10, wantColors: []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			naive := ExtractSurface(tt.grid)
			greedy := ExtractGreedy(tt.grid)
			if got := naive.FaceCount(); got != tt.naive {
				t.Errorf("naive faces = %v, want %v", got, tt.naive)
			}
			if got := greedy.FaceCount(); got != tt.greedy {
				t.Errorf("greedy faces = %v, want %v", got, tt.greedy)
			}
			for _, m := range []*SurfaceMesh{naive, greedy} {
				checkIndices(t, m)
				if got := distinct(m.FaceColors); !reflect.DeepEqual(got, tt.wantColors) {
					t.Errorf("face colors = %v, want %v", got, tt.wantColors)
				}
			}
		})
	}
}

func distinct(values []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func checkIndices(t *testing.T, m *SurfaceMesh) {
	t.Helper()
	if len(m.FaceColors) != len(m.Quads) {
		t.Fatalf("len(FaceColors) = %v, len(Quads) = %v", len(m.FaceColors), len(m.Quads))
	}
	for i, q := range m.Quads {
		for _, idx := range q {
			if idx < 0 || idx >= len(m.Vertices) {
				t.Fatalf("quad %v index %v out of range", i, idx)
			}
		}
	}
}

func surfaceArea(m *SurfaceMesh) float32 {
	var area float32
	for i := range m.Quads {
		area += m.QuadNormal(i).Len()
	}
	return area
}

func TestGreedyCoversSameArea(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		r := rand.New(rand.NewSource(seed))
		g := randomGrid(r, 6, 0.5)
		naive, greedy := ExtractSurface(g), ExtractGreedy(g)
		if a, b := surfaceArea(naive), surfaceArea(greedy); a != b {
			t.Errorf("seed %v: naive area %v != greedy area %v", seed, a, b)
		}
		if greedy.FaceCount() > naive.FaceCount() {
			t.Errorf("seed %v: greedy has more faces (%v) than naive (%v)", seed, greedy.FaceCount(), naive.FaceCount())
		}
	}
}

func randomGrid(r *rand.Rand, size int, density float64) *voxels.Grid {
	g := voxels.New()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			for z := 0; z < size; z++ {
				if r.Float64() < density {
					g.Set(x, y, z, r.Intn(3))
				}
			}
		}
	}
	return g
}

func TestMerge(t *testing.T) {
	a := ExtractSurface(boxGrid(1, 1, 1, 1))
	g := voxels.New()
	g.Set(5, 5, 5, 2)
	b := ExtractSurface(g)

	m := Merge(a, nil, b)
	checkIndices(t, m)
	if got := m.FaceCount(); got != 12 {
		t.Fatalf("merged faces = %v, want 12", got)
	}
	if got := m.QuadVertices(6); got != b.QuadVertices(0) {
		t.Errorf("reindexed quad = %v, want %v", got, b.QuadVertices(0))
	}
	if m.FaceColors[0] != 1 || m.FaceColors[11] != 2 {
		t.Errorf("face colors = %v", m.FaceColors)
	}
}

func TestSignatureIgnoresOrder(t *testing.T) {
	m := ExtractGreedy(boxGrid(2, 3, 1, 1))
	reversed := &SurfaceMesh{}
	for i := m.FaceCount() - 1; i >= 0; i-- {
		v := m.QuadVertices(i)
		reversed.AddQuad([4]mgl32.Vec3{v[2], v[3], v[0], v[1]}, m.FaceColors[i])
	}
	if !reflect.DeepEqual(m.Signature(), reversed.Signature()) {
		t.Error("signature depends on quad or vertex order")
	}
}

// coloredFaces maps each quad to its color so color-only edits are
// checked too.
func coloredFaces(m *SurfaceMesh) map[FaceKey]int {
	out := map[FaceKey]int{}
	for i := range m.Quads {
		single := &SurfaceMesh{}
		single.AddQuad(m.QuadVertices(i), m.FaceColors[i])
		for key := range single.Signature() {
			out[key] = m.FaceColors[i]
		}
	}
	return out
}

func TestRebuildMatchesFullRebuild(t *testing.T) {
	for _, greedy := range []bool{true, false} {
		for seed := int64(1); seed <= 25; seed++ {
			r := rand.New(rand.NewSource(seed))
			grid := randomGrid(r, 8, 0.4)
			cached := BuildSolidMesh(grid, greedy)
			var dirty *voxels.Bounds

			for step := 0; step < 60; step++ {
				c := voxels.Cell{X: r.Intn(10) - 1, Y: r.Intn(10) - 1, Z: r.Intn(10) - 1}
				size := 1 + r.Intn(2)
				for dx := 0; dx < size; dx++ {
					for dy := 0; dy < size; dy++ {
						cell := c.Add(voxels.Cell{X: dx, Y: dy})
						if r.Intn(3) == 0 {
							grid.Remove(cell.X, cell.Y, cell.Z)
						} else {
							grid.Set(cell.X, cell.Y, cell.Z, r.Intn(3))
						}
						if dirty == nil {
							dirty = &voxels.Bounds{Min: cell, Max: cell}
						} else {
							b := dirty.Include(cell)
							dirty = &b
						}
					}
				}

				if r.Intn(3) != 0 {
					continue
				}
				got, _ := Rebuild(grid, cached, dirty, greedy)
				want := BuildSolidMesh(grid, greedy)
				checkIndices(t, got)
				if !reflect.DeepEqual(got.Signature(), want.Signature()) {
					t.Fatalf("greedy=%v seed %v step %v: incremental faces differ from full rebuild", greedy, seed, step)
				}
				if !reflect.DeepEqual(coloredFaces(got), coloredFaces(want)) {
					t.Fatalf("greedy=%v seed %v step %v: incremental colors differ from full rebuild", greedy, seed, step)
				}
				cached, dirty = got, nil
			}
		}
	}
}

func TestRebuildPaths(t *testing.T) {
	grid := boxGrid(3, 3, 1, 1)
	cached := BuildSolidMesh(grid, true)

	if _, incremental := Rebuild(grid, nil, &voxels.Bounds{}, true); incremental {
		t.Error("rebuild without a cache reported incremental")
	}
	if _, incremental := Rebuild(grid, cached, nil, true); incremental {
		t.Error("rebuild without dirty bounds reported incremental")
	}

	grid.Set(1, 1, 1, 2)
	local := voxels.Bounds{Min: voxels.Cell{X: 1, Y: 1, Z: 1}, Max: voxels.Cell{X: 1, Y: 1, Z: 1}}
	m, incremental := Rebuild(grid, cached, &local, true)
	if !incremental {
		t.Error("small edit was not rebuilt incrementally")
	}
	if !reflect.DeepEqual(m.Signature(), BuildSolidMesh(grid, true).Signature()) {
		t.Error("incremental result differs from full rebuild")
	}

	// 15^3 padded to 17^3 = 4913 cells, above the limit.
	wide := voxels.Bounds{Max: voxels.Cell{X: 14, Y: 14, Z: 14}}
	if _, incremental := Rebuild(grid, cached, &wide, true); incremental {
		t.Error("oversized edit was rebuilt incrementally")
	}
	// 14^3 padded to 16^3 = 4096 cells, exactly at the limit.
	atLimit := voxels.Bounds{Max: voxels.Cell{X: 13, Y: 13, Z: 13}}
	if _, incremental := Rebuild(grid, cached, &atLimit, true); !incremental {
		t.Error("edit at the volume limit was not rebuilt incrementally")
	}
}

// countingGrid counts the cell lookups made while patching.
type countingGrid struct {
	*voxels.Grid
	lookups int
}

func (g *countingGrid) At(c voxels.Cell) (int, bool) {
	g.lookups++
	return g.Grid.At(c)
}

func TestRebuildStaysLocal(t *testing.T) {
	tests := []struct {
		name   string
		greedy bool
		edit   func(g *voxels.Grid)
		dirty  voxels.Cell
	}{
		{name: "greedy add on top", greedy: true, edit: func(g *voxels.Grid) { g.Set(15, 15, 30, 2) }, dirty: voxels.Cell{X: 15, Y: 15, Z: 30}},
		{name: "greedy carve a side", greedy: true, edit: func(g *voxels.Grid) { g.Remove(0, 12, 7) }, dirty: voxels.Cell{X: 0, Y: 12, Z: 7}},
		{name: "naive add on top", edit: func(g *voxels.Grid) { g.Set(15, 15, 30, 2) }, dirty: voxels.Cell{X: 15, Y: 15, Z: 30}},
		{name: "naive recolor inside", edit: func(g *voxels.Grid) { g.Set(10, 10, 10, 3) }, dirty: voxels.Cell{X: 10, Y: 10, Z: 10}},
	}

	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v", i, tt.name), func(t *testing.T) {
			grid := boxGrid(30, 30, 30, 1)
			cached := BuildSolidMesh(grid, tt.greedy)
			tt.edit(grid)

			region := voxels.Bounds{Min: tt.dirty, Max: tt.dirty}.Pad(1)
			counter := &countingGrid{Grid: grid}
			var got *SurfaceMesh
			if tt.greedy {
				got = patchGreedy(counter, cached, region)
			} else {
				got = patchSurface(counter, cached, region)
			}

			// Each cell of the region and its six neighbors, at most.
			if limit := 7 * region.Volume(); counter.lookups > limit {
				t.Errorf("patch made %v lookups, want at most %v", counter.lookups, limit)
			}
			want := BuildSolidMesh(grid, tt.greedy)
			if !reflect.DeepEqual(got.Signature(), want.Signature()) {
				t.Error("patched faces differ from full rebuild")
			}
			if !reflect.DeepEqual(coloredFaces(got), coloredFaces(want)) {
				t.Error("patched colors differ from full rebuild")
			}
		})
	}
}
