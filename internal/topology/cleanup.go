package topology

import "sort"

// Removal is an edge found dangling by Cleanup.
type Removal struct {
	EdgeID string
	Kind   EdgeKind
}

// Cleanup returns the edges left dangling once the equipment connected to the vacated nodes
// has been removed, in the order they are discovered.
//
// The walk is breadth first from the vacated nodes, in ascending order. A node that carries
// no equipment, is not a fork (degree < 3) and has exactly one edge left leads nowhere:
// its edge is removed and the walk goes on at the other end of it. Any other node stops
// the walk. Every node is visited at most once, so cycles terminate.
func Cleanup(g Graph, vacated []int) []Removal {
	queue := append([]int{}, vacated...)
	sort.Ints(queue)

	var (
		removals []Removal
		removed  = make(map[string]struct{})
		visited  = make(map[int]struct{})
	)

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if _, ok := visited[node]; ok {
			continue
		}
		visited[node] = struct{}{}

		if len(g.EquipmentAt(node)) > 0 || g.Degree(node) >= 3 {
			continue
		}

		var remaining []Neighbor
		for _, n := range g.Neighbors(node) {
			if _, ok := removed[n.EdgeID]; !ok {
				remaining = append(remaining, n)
			}
		}
		if len(remaining) != 1 || remaining[0].Node == node {
			continue
		}

		edge := remaining[0]
		removed[edge.EdgeID] = struct{}{}
		removals = append(removals, Removal{EdgeID: edge.EdgeID, Kind: edge.Kind})
		if _, ok := visited[edge.Node]; !ok {
			queue = append(queue, edge.Node)
		}
	}
	return removals
}
