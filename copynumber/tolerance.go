package copynumber

import (
	"math"

	"github.com/brentp/svcn/purity"
	"github.com/brentp/svcn/region"
)

const minRelativeDenominator = 0.5

// AlleleTolerance decides whether two adjacent regions plausibly share a
// somatic copy-number state.
type AlleleTolerance struct {
	Purity purity.Adjuster
	Config Config
}

// InTolerance is symmetric in a and b.
func (t AlleleTolerance) InTolerance(a, b region.Observed) bool {
	return t.bafInTolerance(a, b) && t.copyNumberInTolerance(a.TumorCopyNumber, b.TumorCopyNumber)
}

func (t AlleleTolerance) bafInTolerance(a, b region.Observed) bool {
	small, large := a.BAFCount, b.BAFCount
	if small > large {
		small, large = large, small
	}
	if small < t.Config.MinToleranceBAFCount {
		return true
	}
	// one well sampled side is enough to tighten.
	tolerance := t.Config.BAFTolerance
	if large >= t.Config.LargeSampleBAFCount {
		tolerance = t.Config.LargeSampleBAFTolerance
	}
	return math.Max(t.bafDeviation(a, b), t.bafDeviation(b, a)) <= tolerance
}

// bafDeviation is how far the observed BAF of a is from the BAF b would be
// observed at.
func (t AlleleTolerance) bafDeviation(a, b region.Observed) float64 {
	return math.Abs(a.ObservedBAF - t.Purity.ExpectedObservedBAF(b.Chrom, b.TumorCopyNumber, b.TumorBAF))
}

func (t AlleleTolerance) copyNumberInTolerance(a, b float64) bool {
	if math.Abs(a-b) <= t.Purity.CopyNumberTolerance(t.Config.MinCopyNumberTolerance) {
		return true
	}
	return relativeCopyNumberChange(a, b) <= t.relativeTolerance(math.Min(a, b))
}

// relativeTolerance shrinks linearly to zero as the copy number approaches 0.
func (t AlleleTolerance) relativeTolerance(cn float64) float64 {
	return t.Config.RelativeCopyNumberTolerance * math.Min(1, math.Max(0, cn)/2)
}

func relativeCopyNumberChange(a, b float64) float64 {
	return math.Abs(a-b) / math.Max(math.Min(a, b), minRelativeDenominator)
}
