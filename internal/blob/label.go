package blob

import (
	"fmt"
	"sort"

	"github.com/flaww1/VC-TP/internal/raster"
)

// unionFind is the label equivalence structure used during the forward
// scan. Roots are always the numerically smallest label of their set, so
// the "smallest label wins" tie-break falls out of union directly.
type unionFind struct {
	parent []int32
}

func newUnionFind() *unionFind {
	// Label 0 is background and never enters the structure.
	return &unionFind{parent: make([]int32, 1, 256)}
}

// makeSet registers the next fresh label and returns it.
func (u *unionFind) makeSet() int32 {
	label := int32(len(u.parent))
	u.parent = append(u.parent, label)
	return label
}

// find resolves a label to its set root with path halving.
func (u *unionFind) find(l int32) int32 {
	for u.parent[l] != l {
		u.parent[l] = u.parent[u.parent[l]]
		l = u.parent[l]
	}
	return l
}

// union merges the sets of a and b; the smaller root survives.
func (u *unionFind) union(a, b int32) int32 {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return ra
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	return ra
}

// Label performs connected-component labeling of a binary raster.
//
// The input must be a single-channel raster with foreground = 255 and
// background = 0 (any non-zero sample is treated as foreground). The
// returned label map has the same dimensions; every foreground pixel ends
// with a label in 1..count and every background pixel with 0. Labels are
// compacted, in ascending order of the provisional label that survived
// each merge, so repeated runs on the same input yield identical output.
//
// The outermost border row/column is treated as background regardless of
// input content. Regions fully absorbed by a merge are not reported.
//
// Validation failures (nil/empty buffer, non-positive dimensions, more
// than one channel) return a nil map and a wrapped sentinel error from the
// raster package without producing partial output.
func Label(src *raster.Raster) (*raster.LabelMap, int, error) {
	if err := src.Validate(); err != nil {
		return nil, 0, fmt.Errorf("blob: labeling input: %w", err)
	}
	if src.Channels != 1 {
		return nil, 0, fmt.Errorf("blob: labeling input: %w: %d", raster.ErrChannels, src.Channels)
	}

	w, h := src.Width, src.Height
	out, err := raster.NewLabelMap(w, h)
	if err != nil {
		return nil, 0, fmt.Errorf("blob: labeling output: %w", err)
	}
	uf := newUnionFind()

	// Forward scan over interior pixels. The already-visited neighborhood
	// of (x, y) is:
	//
	//	A B C
	//	D X
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if src.At(x, y) == 0 {
				continue
			}

			var min int32
			for _, n := range [4][2]int{{x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1}, {x - 1, y}} {
				l := out.At(n[0], n[1])
				if l == 0 {
					continue
				}
				r := uf.find(l)
				if min == 0 || r < min {
					min = r
				}
			}

			if min == 0 {
				out.Set(x, y, uf.makeSet())
				continue
			}
			for _, n := range [4][2]int{{x - 1, y - 1}, {x, y - 1}, {x + 1, y - 1}, {x - 1, y}} {
				if l := out.At(n[0], n[1]); l != 0 {
					uf.union(min, l)
				}
			}
			out.Set(x, y, min)
		}
	}

	// Resolve every pixel through the equivalence table and collect the
	// surviving roots.
	survivors := make(map[int32]struct{})
	for i, l := range out.Labels {
		if l == 0 {
			continue
		}
		r := uf.find(l)
		out.Labels[i] = r
		survivors[r] = struct{}{}
	}
	if len(survivors) == 0 {
		return out, 0, nil
	}

	// Compact to 1..count in ascending root order.
	roots := make([]int32, 0, len(survivors))
	for r := range survivors {
		roots = append(roots, r)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	compact := make(map[int32]int32, len(roots))
	for i, r := range roots {
		compact[r] = int32(i + 1)
	}
	for i, l := range out.Labels {
		if l != 0 {
			out.Labels[i] = compact[l]
		}
	}

	return out, len(roots), nil
}
