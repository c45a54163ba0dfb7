package copynumber

import (
	"github.com/brentp/svcn/purity"
	"github.com/brentp/svcn/region"
)

func diploid(start, end int, cn float64, dwc int) region.Observed {
	return region.Observed{
		Chrom:               "1",
		Start:               start,
		End:                 end,
		TumorCopyNumber:     cn,
		TumorBAF:            0.5,
		ObservedBAF:         0.5,
		DepthWindowCount:    dwc,
		ObservedTumorRatio:  cn / 2,
		ObservedNormalRatio: 1,
		Germline:            region.Diploid,
	}
}

func with(o region.Observed, fn func(o *region.Observed)) region.Observed {
	fn(&o)
	return o
}

func resolved(o region.Observed, m Method) *CombinedRegion {
	c := NewCombinedRegion(o)
	mustSetMethod(c, m)
	return c
}

func unresolved(o region.Observed) *CombinedRegion {
	return NewCombinedRegion(o)
}

func testTolerance() AlleleTolerance {
	return AlleleTolerance{Purity: purity.New(1, region.Female), Config: DefaultConfig()}
}

func bounds(regions []*CombinedRegion) [][2]int {
	out := make([][2]int, len(regions))
	for i, r := range regions {
		out[i] = [2]int{r.Start, r.End}
	}
	return out
}
