// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

// buildBVH builds a median-split BVH over brush AABBs and returns the
// node array plus the brush_edges permutation (leaf slot -> brush
// index). Brushes themselves are never reordered -- entities and other
// external references keep indexing Map.Brushes directly -- only the
// permutation array moves, so BVHNode.LeftFirst for a leaf indexes into
// BrushEdges, not Brushes.
//
// Nodes are laid out so an inner node's two children always sit at
// LeftFirst and LeftFirst+1: every split reserves both child slots before
// recursing into either, rather than appending depth-first (which would
// only keep that contiguity for the left child).
const bvhLeafSize = 4

func buildBVH(brushes []Brush) (nodes []BVHNode, brushEdges []int) {
	n := len(brushes)
	brushEdges = make([]int, n)
	for i := range brushEdges {
		brushEdges[i] = i
	}
	if n == 0 {
		return nil, brushEdges
	}

	nodes = make([]BVHNode, 1, 2*n)

	var build func(nodeIndex, first, count int)
	build = func(nodeIndex, first, count int) {
		bounds := EmptyAABB()
		for i := 0; i < count; i++ {
			b := brushes[brushEdges[first+i]]
			bounds = Union(bounds, b.Bounds)
		}
		nodes[nodeIndex].Bounds = bounds

		if count <= bvhLeafSize {
			nodes[nodeIndex].LeftFirst = first
			nodes[nodeIndex].Count = count
			return
		}

		axis := bounds.LargestAxis()
		mid := count / 2
		sortEdgesByAxis(brushEdges[first:first+count], brushes, axis)

		// Degenerate split: every center equal along this axis. Rotate to
		// the next axis once; if that still can't separate the set, force
		// a leaf rather than recursing on an unchanged partition forever.
		if !separable(brushEdges[first:first+count], brushes, axis) {
			axis = (axis + 1) % 3
			sortEdgesByAxis(brushEdges[first:first+count], brushes, axis)
			if !separable(brushEdges[first:first+count], brushes, axis) {
				nodes[nodeIndex].LeftFirst = first
				nodes[nodeIndex].Count = count
				return
			}
		}

		leftIndex := len(nodes)
		rightIndex := leftIndex + 1
		nodes = append(nodes, BVHNode{}, BVHNode{})

		nodes[nodeIndex].SplitAxis = axis
		nodes[nodeIndex].LeftFirst = leftIndex
		nodes[nodeIndex].Count = 0

		build(leftIndex, first, mid)
		build(rightIndex, first+mid, count-mid)
	}

	build(0, 0, n)
	return nodes, brushEdges
}

// sortEdgesByAxis reorders edges in place by ascending brush-center value
// along axis. Per-brush counts are small enough (hundreds, not millions)
// that a plain insertion sort keeps this file free of a hand-rolled
// quickselect.
func sortEdgesByAxis(edges []int, brushes []Brush, axis int) {
	key := func(brushIndex int) float64 {
		return axisValue(brushes[brushIndex].Bounds.Center(), axis)
	}
	for i := 1; i < len(edges); i++ {
		v := edges[i]
		kv := key(v)
		j := i - 1
		for j >= 0 && key(edges[j]) > kv {
			edges[j+1] = edges[j]
			j--
		}
		edges[j+1] = v
	}
}

// separable reports whether brush centers in edges actually differ along
// axis; if every center is equal, a median split would put all brushes on
// one side forever.
func separable(edges []int, brushes []Brush, axis int) bool {
	if len(edges) < 2 {
		return false
	}
	first := axisValue(brushes[edges[0]].Bounds.Center(), axis)
	for _, e := range edges[1:] {
		if axisValue(brushes[e].Bounds.Center(), axis) > first+planeEpsilon {
			return true
		}
	}
	return false
}
