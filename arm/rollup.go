package arm

import (
	"go4.org/sort"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/brentp/svcn/copynumber"
	"github.com/brentp/svcn/region"
)

// Rollup summarises the segments of one chromosome. The P arm ends before the
// segment that starts at the centromere; without one the whole chromosome is
// the Q arm. Empty arms are omitted.
func Rollup(chrom string, segments []copynumber.Segment) []CopyNumber {
	split := 0
	for i, s := range segments {
		if s.StartSupport == region.Centromere {
			split = i
			break
		}
	}
	var out []CopyNumber
	if split > 0 {
		out = append(out, summarise(chrom, P, segments[:split]))
	}
	if split < len(segments) {
		out = append(out, summarise(chrom, Q, segments[split:]))
	}
	return out
}

// FromResult summarises every chromosome of res in genome order.
func FromResult(res copynumber.Result) []CopyNumber {
	var out []CopyNumber
	for _, c := range res.Chroms {
		out = append(out, Rollup(c, res.Segments[c])...)
	}
	return out
}

func summarise(chrom string, a Arm, segments []copynumber.Segment) CopyNumber {
	cns := make([]float64, len(segments))
	lengths := make([]float64, len(segments))
	for i, s := range segments {
		cns[i] = s.CopyNumber
		lengths[i] = float64(s.Bases())
	}
	return CopyNumber{
		Chrom:  chrom,
		Arm:    a,
		Mean:   stat.Mean(cns, lengths),
		Median: weightedMedian(cns, lengths),
		Min:    floats.Min(cns),
		Max:    floats.Max(cns),
	}
}

// weightedMedian is the value covering the middle base.
func weightedMedian(values, weights []float64) float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return values[idx[i]] < values[idx[j]] })

	half := floats.Sum(weights) / 2
	var cum float64
	for _, i := range idx {
		cum += weights[i]
		if cum > half {
			return values[i]
		}
	}
	return values[idx[len(idx)-1]]
}
