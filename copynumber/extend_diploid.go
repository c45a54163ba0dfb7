package copynumber

import (
	"github.com/grailbio/base/log"

	"github.com/brentp/svcn/region"
)

// extendDiploid grows segments outward from the most trustworthy diploid
// regions of a chromosome.
type extendDiploid struct {
	tolerance            AlleleTolerance
	minCount             int
	minCountAtCentromere int
}

func newExtendDiploid(t AlleleTolerance) extendDiploid {
	return extendDiploid{
		tolerance:            t,
		minCount:             t.Config.MinDepthWindowCount,
		minCountAtCentromere: t.Config.MinDepthWindowCountAtCentromere,
	}
}

// ExtendDiploid merges the observed regions of one chromosome into segments.
// Regions it cannot place are returned unprocessed.
func (e extendDiploid) ExtendDiploid(observed []region.Observed) []*CombinedRegion {
	regions := make([]*CombinedRegion, len(observed))
	for i, o := range observed {
		regions[i] = NewCombinedRegion(o)
	}
	for i, ok := e.nextSeed(regions); ok; i, ok = e.nextSeed(regions) {
		seed := regions[i]
		log.Debug.Printf("copynumber: diploid seed %s", seed)
		mustSetMethod(seed, BAFWeighted)
		regions = e.extendRight(regions, i)
		regions = e.extendLeft(regions, i)
	}
	return regions
}

// nextSeed picks the unprocessed valid region with the most depth windows,
// then the most BAF points, then the lowest index.
func (e extendDiploid) nextSeed(regions []*CombinedRegion) (int, bool) {
	best := -1
	for i, r := range regions {
		if r.IsProcessed() || !e.isValid(e.minCount, r) {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := regions[best]
		if r.DepthWindowCount > b.DepthWindowCount ||
			(r.DepthWindowCount == b.DepthWindowCount && r.BAFCount > b.BAFCount) {
			best = i
		}
	}
	return best, best >= 0
}

func (e extendDiploid) isValid(minCount int, r *CombinedRegion) bool {
	return r.Germline == region.Diploid && r.DepthWindowCount >= minCount
}

func (e extendDiploid) extendRight(regions []*CombinedRegion, t int) []*CombinedRegion {
	for t+1 < len(regions) && e.merge(regions, t, rightward) {
		regions = remove(regions, t+1)
	}
	return regions
}

func (e extendDiploid) extendLeft(regions []*CombinedRegion, t int) []*CombinedRegion {
	for t > 0 && e.merge(regions, t, leftward) {
		regions = remove(regions, t-1)
		t--
	}
	return regions
}

// merge absorbs the neighbour of regions[t] in direction d into it and
// reports whether it did.
func (e extendDiploid) merge(regions []*CombinedRegion, t int, d direction) bool {
	target := regions[t]
	n := d.move(t)
	neighbour := regions[n]
	if neighbour.IsProcessed() || boundary(regions, t, d) != region.None {
		return false
	}

	minCount := e.minCount
	if e.nextBigBreakIsCentromere(regions, n, d) {
		minCount = e.minCountAtCentromere
	}

	if e.isValid(minCount, neighbour) {
		if !e.tolerance.InTolerance(target.Region(), neighbour.Region()) {
			return false
		}
	} else if !e.pushThroughDubious(minCount, regions, t, d) {
		return false
	}
	target.Extend(neighbour)
	return true
}

// pushThroughDubious decides whether the run of untrusted regions starting
// next to regions[t] belongs to the target. The run is taken when it ends at
// a valid region in tolerance with the target, or when the target carries more
// depth windows than the valid region that ends it. A run holding enough
// diploid windows to stand on its own, or ending at a structural variant, is
// left alone.
func (e extendDiploid) pushThroughDubious(minCount int, regions []*CombinedRegion, t int, d direction) bool {
	target := regions[t]
	dubious := 0
	for i := d.move(t); inBounds(regions, i); i = d.move(i) {
		if i != d.move(t) {
			switch b := boundary(regions, i-int(d), d); {
			case b.IsSV():
				return false
			case b != region.None:
				return dubious < minCount
			}
		}
		r := regions[i]
		if e.isValid(minCount, r) {
			if e.tolerance.InTolerance(target.Region(), r.Region()) {
				return true
			}
			return target.DepthWindowCount > r.DepthWindowCount
		}
		if r.Germline == region.Diploid {
			dubious += r.DepthWindowCount
			if dubious >= minCount {
				return false
			}
		}
	}
	return dubious < minCount
}

// nextBigBreakIsCentromere reports whether the first supported boundary met
// walking from regions[from] in direction d is the centromere.
func (e extendDiploid) nextBigBreakIsCentromere(regions []*CombinedRegion, from int, d direction) bool {
	for i := from; inBounds(regions, d.move(i)); i = d.move(i) {
		switch boundary(regions, i, d) {
		case region.None:
		case region.Centromere:
			return true
		default:
			return false
		}
	}
	return false
}
