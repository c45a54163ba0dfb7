package sv

import (
	"math"

	"github.com/grailbio/base/log"
	"go4.org/sort"
	"gonum.org/v1/gonum/stat"

	"github.com/brentp/svcn/purity"
	"github.com/brentp/svcn/region"
)

// CopyNumberLookup returns the resolved copy number of the region covering
// pos. ok is false when no resolved region covers it.
type CopyNumberLookup interface {
	CopyNumber(chrom string, pos int) (cn float64, ok bool)
}

// LegPloidy is a leg with the ploidy it implies.
type LegPloidy struct {
	Leg
	ObservedVAF float64
	AdjustedVAF float64

	UnweightedImpliedPloidy float64
	// AverageImpliedPloidy is the weighted mean over both legs of the variant.
	AverageImpliedPloidy float64
	Weight               float64

	LeftCopyNumber, RightCopyNumber float64
	HasLeft, HasRight               bool
}

// ImpliedRightCopyNumber is the copy number to the right of the breakend
// implied by the left flank and the ploidy.
func (l LegPloidy) ImpliedRightCopyNumber() float64 {
	if !l.HasLeft {
		return 0
	}
	left := math.Max(0, l.LeftCopyNumber)
	if l.Orientation == 1 {
		return left - l.AverageImpliedPloidy
	}
	return left + l.AverageImpliedPloidy
}

// ImpliedRightCopyNumberWeight is 0 when the left flank is unknown.
func (l LegPloidy) ImpliedRightCopyNumberWeight() float64 {
	if !l.HasLeft {
		return 0
	}
	return l.Weight
}

// ImpliedLeftCopyNumber is the copy number to the left of the breakend
// implied by the right flank and the ploidy.
func (l LegPloidy) ImpliedLeftCopyNumber() float64 {
	if !l.HasRight {
		return 0
	}
	right := math.Max(0, l.RightCopyNumber)
	if l.Orientation == 1 {
		return right + l.AverageImpliedPloidy
	}
	return right - l.AverageImpliedPloidy
}

// ImpliedLeftCopyNumberWeight is 0 when the right flank is unknown.
func (l LegPloidy) ImpliedLeftCopyNumberWeight() float64 {
	if !l.HasRight {
		return 0
	}
	return l.Weight
}

// PloidyFactory computes leg ploidy.
type PloidyFactory struct {
	Purity purity.Adjuster
	// AverageGenomePloidy and AverageDepth drive the read-depth fallback used
	// when the oriented flank has no copy number.
	AverageGenomePloidy float64
	AverageDepth        float64
	// FallbackWeight is the weight of a read-depth derived ploidy; a VAF
	// derived ploidy has weight 1.
	FallbackWeight float64
}

// Create returns the ploidy of every leg that has a usable estimate, sorted by
// position. Legs of the same variant share a weighted average ploidy.
func (f PloidyFactory) Create(legs []Legs, lookup CopyNumberLookup) []LegPloidy {
	var out []LegPloidy
	for _, l := range legs {
		var start, end LegPloidy
		var hasStart, hasEnd bool
		if l.Start != nil {
			start, hasStart = f.single(*l.Start, lookup)
		}
		if l.End != nil {
			end, hasEnd = f.single(*l.End, lookup)
		}
		if hasStart && hasEnd {
			avg := stat.Mean([]float64{start.UnweightedImpliedPloidy, end.UnweightedImpliedPloidy},
				[]float64{start.Weight, end.Weight})
			w := start.Weight + end.Weight
			start.AverageImpliedPloidy, start.Weight = avg, w
			end.AverageImpliedPloidy, end.Weight = avg, w
		}
		if hasStart {
			out = append(out, start)
		}
		if hasEnd {
			out = append(out, end)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Chrom != b.Chrom {
			return region.Less(a.Chrom, b.Chrom)
		}
		if a.CNAPosition() != b.CNAPosition() {
			return a.CNAPosition() < b.CNAPosition()
		}
		return a.Orientation > b.Orientation
	})
	return out
}

func (f PloidyFactory) single(leg Leg, lookup CopyNumberLookup) (LegPloidy, bool) {
	p := LegPloidy{Leg: leg, ObservedVAF: leg.AlleleFrequency}
	p.LeftCopyNumber, p.HasLeft = lookup.CopyNumber(leg.Chrom, leg.CNAPosition()-1)
	p.RightCopyNumber, p.HasRight = lookup.CopyNumber(leg.Chrom, leg.CNAPosition())
	if !p.HasLeft && !p.HasRight {
		return p, false
	}

	flank, hasFlank := p.LeftCopyNumber, p.HasLeft
	if leg.Orientation == -1 {
		flank, hasFlank = p.RightCopyNumber, p.HasRight
	}

	var ploidy float64
	if hasFlank {
		cn := math.Max(0, flank)
		ploidy = f.Purity.ImpliedPloidy(leg.Chrom, cn, leg.AlleleFrequency)
		p.AdjustedVAF = math.NaN()
		if cn > 0 {
			p.AdjustedVAF = f.Purity.AdjustedVAF(leg.Chrom, cn, leg.AlleleFrequency)
		}
		p.Weight = 1
	} else {
		ploidy = f.AverageGenomePloidy * float64(leg.Fragments) / f.AverageDepth
		p.AdjustedVAF = math.NaN()
		p.Weight = f.FallbackWeight
	}
	if math.IsNaN(ploidy) || math.IsInf(ploidy, 0) || p.Weight <= 0 {
		log.Debug.Printf("sv: dropping leg %s with non-finite ploidy", leg)
		return p, false
	}
	p.UnweightedImpliedPloidy = ploidy
	p.AverageImpliedPloidy = ploidy
	return p, true
}

// Index selects leg ploidy by the position of the segment it opens.
type Index map[string]map[int]LegPloidy

// NewIndex indexes ploidies by chromosome and CNA position. When two legs of
// opposite orientation open the same position, the heavier one is kept.
func NewIndex(ploidies []LegPloidy) Index {
	idx := make(Index)
	for _, p := range ploidies {
		m, ok := idx[p.Chrom]
		if !ok {
			m = make(map[int]LegPloidy)
			idx[p.Chrom] = m
		}
		pos := p.CNAPosition()
		if prev, ok := m[pos]; ok && prev.Weight >= p.Weight {
			continue
		}
		m[pos] = p
	}
	return idx
}

// At returns the leg opening the segment that starts at pos.
func (idx Index) At(chrom string, pos int) (LegPloidy, bool) {
	p, ok := idx[chrom][pos]
	return p, ok
}
