package copynumber

import (
	"github.com/brentp/svcn/region"
)

// ExtendLongArm copies the copy number of the centromere segment of an
// acrocentric chromosome onto the unresolved regions of its short arm.
// Structural variant boundaries keep their segments apart but do not stop the
// propagation. It stops at the first resolved region.
func ExtendLongArm(chrom string, regions []*CombinedRegion) []*CombinedRegion {
	if !region.IsAcrocentric(chrom) {
		return regions
	}
	c := -1
	for i, r := range regions {
		if r.Support == region.Centromere {
			c = i
			break
		}
	}
	if c <= 0 || !regions[c].IsProcessed() {
		return regions
	}
	cn := regions[c].TumorCopyNumber()

	for i := c - 1; i >= 0; i-- {
		target := regions[i]
		if target.IsProcessed() {
			break
		}
		mustSetCopyNumber(target, LongArm, cn)
		for i > 0 && target.Support == region.None && !regions[i-1].IsProcessed() {
			target.ExtendWithWeightedAverage(regions[i-1])
			regions = remove(regions, i-1)
			i--
			mustSetCopyNumber(target, LongArm, cn)
		}
	}
	return regions
}
