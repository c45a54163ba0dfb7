package copynumber

import (
	"github.com/brentp/svcn/region"
)

// PopulateUnknown folds each unresolved region into a resolved neighbour
// across an unsupported boundary, keeping the neighbour's copy number and
// method. The neighbour with more depth windows is preferred. It repeats until
// nothing changes; regions with no such neighbour stay unresolved.
func PopulateUnknown(regions []*CombinedRegion) []*CombinedRegion {
	for changed := true; changed; {
		changed = false
		for i := 0; i < len(regions); i++ {
			r := regions[i]
			if r.IsProcessed() {
				continue
			}
			left := i > 0 && regions[i-1].IsProcessed() && r.Support == region.None
			right := i+1 < len(regions) && regions[i+1].IsProcessed() && regions[i+1].Support == region.None
			if left && right && regions[i+1].DepthWindowCount > regions[i-1].DepthWindowCount {
				left = false
			}
			var target *CombinedRegion
			switch {
			case left:
				target = regions[i-1]
			case right:
				target = regions[i+1]
			default:
				continue
			}
			cn := target.TumorCopyNumber()
			target.ExtendWithWeightedAverage(r)
			mustSetCopyNumber(target, target.Method(), cn)
			regions = remove(regions, i)
			i--
			changed = true
		}
	}
	return regions
}
