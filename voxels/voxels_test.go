package voxels

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestRevision(t *testing.T) {
	g := New()
	steps := []struct {
		name string
		op   func()
		want int
	}{
		{name: "set new", op: func() { g.Set(1, 2, 3, 4) }, want: 1},
		{name: "set same value", op: func() { g.Set(1, 2, 3, 4) }, want: 1},
		{name: "set new color", op: func() { g.Set(1, 2, 3, 5) }, want: 2},
		{name: "remove missing", op: func() { g.Remove(9, 9, 9) }, want: 2},
		{name: "remove present", op: func() { g.Remove(1, 2, 3) }, want: 3},
		{name: "clear empty", op: func() { g.Clear() }, want: 3},
		{name: "set another", op: func() { g.Set(0, 0, 0, 0) }, want: 4},
		{name: "clear non-empty", op: func() { g.Clear() }, want: 5},
	}

	for _, step := range steps {
		step.op()
		if got := g.Revision(); got != step.want {
			t.Fatalf("%v: revision = %v, want %v", step.name, got, step.want)
		}
	}
}

func TestRevisionRandomized(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := rand.New(rand.NewSource(seed))
		g := New()
		want := 0
		for i := 0; i < 300; i++ {
			x, y, z := r.Intn(4), r.Intn(4), r.Intn(4)
			before := g.ToList()
			switch r.Intn(10) {
			case 0:
				g.Clear()
			case 1, 2, 3:
				g.Remove(x, y, z)
			default:
				g.Set(x, y, z, r.Intn(3))
			}
			if !reflect.DeepEqual(before, g.ToList()) {
				want++
			}
			if got := g.Revision(); got != want {
				t.Fatalf("seed %v step %v: revision = %v, want %v", seed, i, got, want)
			}
		}
	}
}

func TestGetAndCount(t *testing.T) {
	g := New()
	g.Set(2, -1, 0, 5)
	if color, ok := g.Get(2, -1, 0); !ok || color != 5 {
		t.Errorf("Get = (%v,%v), want (5,true)", color, ok)
	}
	if _, ok := g.Get(0, 0, 0); ok {
		t.Errorf("Get(0,0,0) reported occupied")
	}
	if got := g.Count(); got != 1 {
		t.Errorf("Count = %v, want 1", got)
	}
}

func TestToListSorted(t *testing.T) {
	g := New()
	g.Set(1, 0, 0, 3)
	g.Set(0, 2, 0, 1)
	g.Set(0, 0, 5, 2)
	g.Set(-1, 9, 9, 7)

	want := [][]int{
		{-1, 9, 9, 7},
		{0, 0, 5, 2},
		{0, 2, 0, 1},
		{1, 0, 0, 3},
	}
	if got := g.ToList(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToList = %v, want %v", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		r := rand.New(rand.NewSource(seed))
		g := New()
		for i := 0; i < 100; i++ {
			g.Set(r.Intn(20)-10, r.Intn(20)-10, r.Intn(20)-10, r.Intn(8))
		}
		got, err := FromList(g.ToList())
		if err != nil {
			t.Fatalf("FromList: %v", err)
		}
		if !reflect.DeepEqual(got.ToList(), g.ToList()) {
			t.Errorf("seed %v: round trip mismatch", seed)
		}
	}
}

func TestFromListErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
	}{
		{name: "short row", rows: [][]int{{1, 2, 3}}},
		{name: "long row", rows: [][]int{{0, 0, 0, 1}, {1, 2, 3, 4, 5}}},
		{name: "empty row", rows: [][]int{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromList(tt.rows); !errors.Is(err, ErrInvalidRow) {
				t.Errorf("FromList err = %v, want ErrInvalidRow", err)
			}
		})
	}
}

func TestLoadLeavesGridOnError(t *testing.T) {
	g := New()
	g.Set(0, 0, 0, 1)
	if err := g.Load([][]int{{1, 1, 1, 1}, {2}}); err == nil {
		t.Fatal("Load: expected error")
	}
	if got := g.ToList(); !reflect.DeepEqual(got, [][]int{{0, 0, 0, 1}}) {
		t.Errorf("grid changed on failed Load: %v", got)
	}
}

func TestBounds(t *testing.T) {
	g := New()
	if _, ok := g.Bounds(); ok {
		t.Error("empty grid reported bounds")
	}
	g.Set(1, -2, 3, 0)
	g.Set(-1, 4, 0, 0)
	b, ok := g.Bounds()
	want := Bounds{Min: Cell{-1, -2, 0}, Max: Cell{1, 4, 3}}
	if !ok || b != want {
		t.Errorf("Bounds = %v, want %v", b, want)
	}
	if got := b.Pad(1).Volume(); got != 5*9*6 {
		t.Errorf("padded volume = %v, want %v", got, 5*9*6)
	}
	if !b.Contains(Cell{0, 0, 0}) || b.Contains(Cell{2, 0, 0}) {
		t.Error("Contains mismatch")
	}
}

func TestColors(t *testing.T) {
	g := New()
	g.Set(0, 0, 0, 3)
	g.Set(1, 0, 0, 1)
	g.Set(2, 0, 0, 3)
	if got, want := g.Colors(), []int{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Colors = %v, want %v", got, want)
	}
}
