package copynumber

import (
	"github.com/brentp/svcn/region"
)

// extendNonDiploid joins runs of germline-aberrant regions whose tumor to
// normal ratio is plausible.
type extendNonDiploid struct {
	minRatio, maxRatio float64
}

func (e extendNonDiploid) ExtendNonDiploid(regions []*CombinedRegion) []*CombinedRegion {
	for i := 0; i < len(regions); i++ {
		seed := regions[i]
		if !e.isEligible(seed, nil) {
			continue
		}
		for i+1 < len(regions) && e.isEligible(regions[i+1], seed) {
			seed.ExtendWithWeightedAverage(regions[i+1])
			regions = remove(regions, i+1)
		}
		for i > 0 && e.isEligible(regions[i-1], seed) {
			seed.ExtendWithWeightedAverage(regions[i-1])
			regions = remove(regions, i-1)
			i--
		}
		mustSetMethod(seed, NonDiploid)
	}
	return regions
}

// isEligible reports whether candidate may start, or join predecessor in, a
// non-diploid segment. A centromere boundary on either side of the candidate
// blocks it.
func (e extendNonDiploid) isEligible(candidate, predecessor *CombinedRegion) bool {
	if candidate.IsProcessed() {
		return false
	}
	switch candidate.Germline {
	case region.Noise, region.Diploid:
		return false
	}
	if candidate.Support == region.Centromere {
		return false
	}
	if predecessor != nil && predecessor.Start > candidate.End && predecessor.Support == region.Centromere {
		return false
	}
	if candidate.DepthWindowCount <= 0 {
		return false
	}
	normal := candidate.ObservedNormalRatio()
	if normal <= 0 {
		return false
	}
	ratio := candidate.ObservedTumorRatio() / normal
	return ratio >= e.minRatio && ratio <= e.maxRatio
}
