package model

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Overlaps returns the groups of bit fields of reg whose ranges intersect,
// directly or through another field of the group. Such groups are usually
// aliases added by overrides. Groups and their fields are in register order.
func Overlaps(reg *Register) [][]RegisterField {
	g := simple.NewUndirectedGraph()
	for i := range reg.Fields {
		g.AddNode(simple.Node(i))
	}
	for i, a := range reg.Fields {
		for j := i + 1; j < len(reg.Fields); j++ {
			if b := reg.Fields[j]; a.Start < b.End && b.Start < a.End {
				g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}

	var components [][]int64
	for _, nodes := range topo.ConnectedComponents(g) {
		if len(nodes) < 2 {
			continue
		}
		ids := make([]int64, len(nodes))
		for i, n := range nodes {
			ids[i] = n.ID()
		}
		slices.Sort(ids)
		components = append(components, ids)
	}
	slices.SortFunc(components, func(a, b []int64) bool {
		return a[0] < b[0]
	})

	var groups [][]RegisterField
	for _, ids := range components {
		group := make([]RegisterField, len(ids))
		for i, id := range ids {
			group[i] = reg.Fields[id]
		}
		groups = append(groups, group)
	}
	return groups
}

// OutOfRange returns the bit fields of reg that are empty or do not fit in a
// register of the given width. A range whose end wrapped below its start is
// reported as empty.
func OutOfRange(reg *Register, width uint) []RegisterField {
	var fields []RegisterField
	for _, f := range reg.Fields {
		if f.Start >= f.End || f.End > width {
			fields = append(fields, f)
		}
	}
	return fields
}
