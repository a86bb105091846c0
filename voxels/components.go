package voxels

// Component is one 6-connected island of occupied cells, regardless of
// color.
type Component struct {
	Cells  CellSet
	Bounds Bounds
}

// Components labels the connected islands of g. Cells are scanned in
// sorted order; each takes the smallest label of its already-scanned -x,
// -y and -z neighbors, and labels that meet are recorded as equivalent.
// A second pass resolves every label to the smallest equivalent one.
// Components are returned in order of their smallest cell.
func Components(g *Grid) []Component {
	cells := g.Cells()
	label := make(map[Cell]int, len(cells))
	parent := []int{0} // label 0 is unused

	find := func(l int) int {
		for parent[l] != l {
			parent[l] = parent[parent[l]]
			l = parent[l]
		}
		return l
	}
	setEquivalent := func(a, b int) {
		ra, rb := find(a), find(b)
		switch {
		case ra < rb:
			parent[rb] = ra
		case rb < ra:
			parent[ra] = rb
		}
	}

	back := []Cell{{X: -1}, {Y: -1}, {Z: -1}}
	for _, c := range cells {
		var minLabel int
		for _, d := range back {
			l, ok := label[c.Add(d)]
			if !ok {
				continue
			}
			if minLabel == 0 {
				minLabel = l
				continue
			}
			setEquivalent(minLabel, l)
			if l < minLabel {
				minLabel = l
			}
		}
		if minLabel == 0 {
			minLabel = len(parent)
			parent = append(parent, minLabel)
		}
		label[c] = minLabel
	}

	index := map[int]int{}
	var out []Component
	for _, c := range cells {
		root := find(label[c])
		i, ok := index[root]
		if !ok {
			i = len(out)
			index[root] = i
			out = append(out, Component{Cells: CellSet{}, Bounds: Bounds{Min: c, Max: c}})
		}
		out[i].Cells.Add(c)
		out[i].Bounds = out[i].Bounds.Include(c)
	}
	return out
}
