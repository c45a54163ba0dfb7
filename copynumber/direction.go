package copynumber

import "github.com/brentp/svcn/region"

type direction int

const (
	leftward  direction = -1
	rightward direction = 1
)

func (d direction) move(i int) int {
	return i + int(d)
}

// optIndex is an index that may be absent. The zero value is absent.
type optIndex struct {
	i  int
	ok bool
}

func some(i int) optIndex { return optIndex{i: i, ok: true} }

var none optIndex

func (o optIndex) get() (int, bool) { return o.i, o.ok }

func inBounds(regions []*CombinedRegion, i int) bool {
	return i >= 0 && i < len(regions)
}

// boundary returns the support of the boundary crossed when moving from index
// i to i+d. The support of a boundary is held by the region to its right.
func boundary(regions []*CombinedRegion, i int, d direction) region.Support {
	if d == rightward {
		return regions[i+1].Support
	}
	return regions[i].Support
}

func remove(regions []*CombinedRegion, i int) []*CombinedRegion {
	copy(regions[i:], regions[i+1:])
	regions[len(regions)-1] = nil
	return regions[:len(regions)-1]
}
