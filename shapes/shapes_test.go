package shapes

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/gmlewis/voxel-editor/voxels"
)

func TestBrushCells(t *testing.T) {
	tests := []struct {
		size  int
		shape BrushShape
		want  int
	}{
		{size: 1, shape: Cube, want: 1},
		{size: 1, shape: Sphere, want: 1},
		{size: 2, shape: Cube, want: 27},
		{size: 2, shape: Sphere, want: 7},
		{size: 3, shape: Cube, want: 125},
		{size: 3, shape: Sphere, want: 33},
	}

	center := voxels.Cell{X: 10, Y: -4, Z: 2}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("test #%v: %v %v", i, tt.shape, tt.size), func(t *testing.T) {
			cells, err := BrushCells(center, tt.size, tt.shape)
			if err != nil {
				t.Fatalf("BrushCells: %v", err)
			}
			if got := cells.Len(); got != tt.want {
				t.Errorf("len = %v, want %v", got, tt.want)
			}
			if !cells.Has(center) {
				t.Errorf("brush does not include its center")
			}
		})
	}
}

func TestBrushCellLaws(t *testing.T) {
	origin := voxels.Cell{}
	cube, err := BrushCells(origin, 3, Cube)
	if err != nil {
		t.Fatalf("BrushCells: %v", err)
	}
	for _, c := range []voxels.Cell{{X: -2, Y: -2, Z: -2}, {X: 2, Y: 2, Z: 2}} {
		if !cube.Has(c) {
			t.Errorf("cube brush missing corner %v", c)
		}
	}

	sphere, err := BrushCells(origin, 3, Sphere)
	if err != nil {
		t.Fatalf("BrushCells: %v", err)
	}
	for _, c := range []voxels.Cell{{X: -2, Y: -2, Z: -2}, {X: 2, Y: 2, Z: 2}, {X: 2, Y: 2, Z: 0}} {
		if sphere.Has(c) {
			t.Errorf("sphere brush includes %v beyond radius 2", c)
		}
	}
	for _, c := range []voxels.Cell{{X: 2}, {X: -2}, {Y: 2}, {Y: -2}, {Z: 2}, {Z: -2}} {
		if !sphere.Has(c) {
			t.Errorf("sphere brush missing axis cell %v", c)
		}
	}
}

func TestBrushValidation(t *testing.T) {
	if _, err := BrushCells(voxels.Cell{}, 0, Cube); !errors.Is(err, ErrInvalidBrushSize) {
		t.Errorf("size 0: err = %v", err)
	}
	if _, err := BrushCells(voxels.Cell{}, 4, Cube); !errors.Is(err, ErrInvalidBrushSize) {
		t.Errorf("size 4: err = %v", err)
	}
	if _, err := BrushCells(voxels.Cell{}, 2, "cone"); !errors.Is(err, ErrInvalidBrushShape) {
		t.Errorf("cone: err = %v", err)
	}
	if _, err := ParseBrushShape("Sphere"); err != nil {
		t.Errorf("ParseBrushShape(Sphere): %v", err)
	}
	if _, err := ParseBrushShape("blob"); !errors.Is(err, ErrInvalidBrushShape) {
		t.Errorf("ParseBrushShape(blob): err = %v", err)
	}
}

func TestNextBrushSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{1, 2}, {2, 3}, {3, 1}, {0, 1}, {99, 1}, {-5, 1},
	}
	for _, tt := range tests {
		if got := NextBrushSize(tt.in); got != tt.want {
			t.Errorf("NextBrushSize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBoxPlaneCells(t *testing.T) {
	got := BoxPlaneCells(2, 1, 0, 0, 5)
	want := voxels.NewCellSet(
		voxels.Cell{X: 0, Y: 0, Z: 5}, voxels.Cell{X: 1, Y: 0, Z: 5}, voxels.Cell{X: 2, Y: 0, Z: 5},
		voxels.Cell{X: 0, Y: 1, Z: 5}, voxels.Cell{X: 1, Y: 1, Z: 5}, voxels.Cell{X: 2, Y: 1, Z: 5},
	)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BoxPlaneCells = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestLinePlaneCells(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []voxels.Cell
	}{
		{
			name: "shallow",
			x1:   3, y1: 2,
			want: []voxels.Cell{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}},
		},
		{
			name: "single point",
			x0:   4, y0: 4, x1: 4, y1: 4,
			want: []voxels.Cell{{X: 4, Y: 4}},
		},
		{
			name: "vertical reversed",
			x0:   1, y0: 2, x1: 1, y1: -1,
			want: []voxels.Cell{{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinePlaneCells(tt.x0, tt.y0, tt.x1, tt.y1, 0).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LinePlaneCells = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinePlaneCellsConnected(t *testing.T) {
	for x1 := -6; x1 <= 6; x1++ {
		for y1 := -6; y1 <= 6; y1++ {
			cells := LinePlaneCells(0, 0, x1, y1, 0)
			if !cells.Has(voxels.Cell{}) || !cells.Has(voxels.Cell{X: x1, Y: y1}) {
				t.Fatalf("line to (%v,%v) misses an endpoint", x1, y1)
			}
			if want := max(abs(x1), abs(y1)) + 1; cells.Len() != want {
				t.Errorf("line to (%v,%v) has %v cells, want %v", x1, y1, cells.Len(), want)
			}
		}
	}
}

func TestStrokeSegment(t *testing.T) {
	if got := StrokeSegment(voxels.Cell{X: 1, Y: 1, Z: 1}, voxels.Cell{X: 1, Y: 1, Z: 1}); len(got) != 1 {
		t.Errorf("degenerate stroke = %v, want one cell", got)
	}

	start, end := voxels.Cell{X: 0, Y: 0, Z: 0}, voxels.Cell{X: 5, Y: -2, Z: 3}
	path := StrokeSegment(start, end)
	if path[0] != start || path[len(path)-1] != end {
		t.Fatalf("path endpoints = %v..%v", path[0], path[len(path)-1])
	}
	if len(path) != 6 {
		t.Errorf("len(path) = %v, want 6", len(path))
	}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if abs(a.X-b.X) > 1 || abs(a.Y-b.Y) > 1 || abs(a.Z-b.Z) > 1 {
			t.Errorf("path gap between %v and %v", a, b)
		}
	}
}

func TestFloodFillPlane(t *testing.T) {
	g := voxels.New()
	for x := 0; x < 4; x++ {
		g.Set(x, 0, 0, 2)
	}
	g.Set(4, 0, 0, 3)
	g.Set(0, 1, 0, 2)
	g.Set(0, 0, 1, 2) // different plane

	region, ok := FloodFill(g, voxels.Cell{}, Plane, 0)
	if !ok {
		t.Fatal("FloodFill aborted without a limit")
	}
	want := voxels.NewCellSet(
		voxels.Cell{X: 0}, voxels.Cell{X: 1}, voxels.Cell{X: 2}, voxels.Cell{X: 3}, voxels.Cell{Y: 1},
	)
	if !reflect.DeepEqual(region, want) {
		t.Errorf("region = %v, want %v", region.Sorted(), want.Sorted())
	}

	region, _ = FloodFill(g, voxels.Cell{}, Volume, 0)
	if !region.Has(voxels.Cell{Z: 1}) || region.Len() != 6 {
		t.Errorf("volume region = %v", region.Sorted())
	}
}

func TestFloodFillEmptyStaysInBounds(t *testing.T) {
	g := voxels.New()
	g.Set(0, 0, 0, 1)
	g.Set(3, 3, 0, 1)

	region, ok := FloodFill(g, voxels.Cell{X: 1, Y: 1}, Plane, 0)
	if !ok {
		t.Fatal("unexpected abort")
	}
	if got := region.Len(); got != 14 {
		t.Errorf("empty region size = %v, want 14", got)
	}
	for c := range region {
		if _, occupied := g.At(c); occupied {
			t.Errorf("empty fill reached occupied %v", c)
		}
	}

	region, ok = FloodFill(voxels.New(), voxels.Cell{X: 7, Y: 7, Z: 7}, Volume, 0)
	if !ok || region.Len() != 1 {
		t.Errorf("fill in empty grid = %v, %v; want only the seed", region.Sorted(), ok)
	}
}

func TestFloodFillThreshold(t *testing.T) {
	g := voxels.New()
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			g.Set(x, y, 0, 1)
		}
	}
	if region, ok := FloodFill(g, voxels.Cell{}, Plane, 99); ok || region != nil {
		t.Errorf("FloodFill with limit 99 = (%v cells, %v), want abort", region.Len(), ok)
	}
	if region, ok := FloodFill(g, voxels.Cell{}, Plane, 100); !ok || region.Len() != 100 {
		t.Errorf("FloodFill with limit 100 = (%v cells, %v), want 100 cells", region.Len(), ok)
	}
}

func TestParseConnectivity(t *testing.T) {
	if c, err := ParseConnectivity("Volume"); err != nil || c != Volume {
		t.Errorf("ParseConnectivity(Volume) = %v, %v", c, err)
	}
	if _, err := ParseConnectivity("diagonal"); !errors.Is(err, ErrInvalidConnectivity) {
		t.Errorf("ParseConnectivity(diagonal): err = %v", err)
	}
}

func TestMirrorExpandXYZ(t *testing.T) {
	m := Mirror{Enabled: [3]bool{true, true, true}}
	got := m.Expand(voxels.NewCellSet(voxels.Cell{X: 2, Y: 1, Z: -3}))
	want := voxels.NewCellSet(
		voxels.Cell{X: 2, Y: 1, Z: -3},
		voxels.Cell{X: -2, Y: 1, Z: -3},
		voxels.Cell{X: 2, Y: -1, Z: -3},
		voxels.Cell{X: -2, Y: -1, Z: -3},
		voxels.Cell{X: 2, Y: 1, Z: 3},
		voxels.Cell{X: -2, Y: 1, Z: 3},
		voxels.Cell{X: 2, Y: -1, Z: 3},
		voxels.Cell{X: -2, Y: -1, Z: 3},
	)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestMirrorExpandOffsetsAndCoincidence(t *testing.T) {
	tests := []struct {
		name   string
		mirror Mirror
		in     voxels.Cell
		want   []voxels.Cell
	}{
		{
			name:   "disabled",
			mirror: Mirror{Offset: [3]int{5, 5, 5}},
			in:     voxels.Cell{X: 1},
			want:   []voxels.Cell{{X: 1}},
		},
		{
			name:   "x offset",
			mirror: Mirror{Enabled: [3]bool{true}, Offset: [3]int{3}},
			in:     voxels.Cell{X: 1, Y: 4},
			want:   []voxels.Cell{{X: 1, Y: 4}, {X: 5, Y: 4}},
		},
		{
			name:   "on the plane",
			mirror: Mirror{Enabled: [3]bool{false, true, false}, Offset: [3]int{0, 2, 0}},
			in:     voxels.Cell{X: 7, Y: 2},
			want:   []voxels.Cell{{X: 7, Y: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.mirror.Expand(voxels.NewCellSet(tt.in)).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAxis(t *testing.T) {
	for i, name := range []string{"x", "Y", " z "} {
		if got, err := ParseAxis(name); err != nil || got != i {
			t.Errorf("ParseAxis(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseAxis("w"); !errors.Is(err, ErrInvalidAxis) {
		t.Errorf("ParseAxis(w): err = %v", err)
	}
}
