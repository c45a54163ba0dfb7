package copynumber

import (
	"github.com/brentp/svcn/region"
)

// unknownRun returns the last index of the run of unresolved regions starting
// at i and joined by unsupported boundaries.
func unknownRun(regions []*CombinedRegion, i int) int {
	j := i
	for j+1 < len(regions) && !regions[j+1].IsProcessed() && regions[j+1].Support == region.None {
		j++
	}
	return j
}

// ExtendStructuralVariant lets segments resolved from structural variants
// absorb adjacent unresolved runs across unsupported boundaries. When both
// sides qualify the side with more depth windows wins, the left on a tie.
func ExtendStructuralVariant(regions []*CombinedRegion) []*CombinedRegion {
	for i := 0; i < len(regions); {
		if regions[i].IsProcessed() {
			i++
			continue
		}
		j := unknownRun(regions, i)
		left := i > 0 && regions[i-1].Method() == StructuralVariant && regions[i].Support == region.None
		right := j+1 < len(regions) && regions[j+1].Method() == StructuralVariant && regions[j+1].Support == region.None
		if left && right && regions[j+1].DepthWindowCount > regions[i-1].DepthWindowCount {
			left = false
		}
		switch {
		case left:
			target := regions[i-1]
			for k := i; k <= j; k++ {
				target.ExtendWithWeightedAverage(regions[k])
			}
			regions = append(regions[:i], regions[j+1:]...)
		case right:
			target := regions[j+1]
			for k := j; k >= i; k-- {
				target.ExtendWithWeightedAverage(regions[k])
			}
			regions = append(regions[:i], regions[j+1:]...)
			i++
		default:
			i = j + 1
		}
	}
	return regions
}
