package copynumber

import (
	"fmt"

	"github.com/brentp/svcn/region"
)

// Segment is a final copy-number segment.
type Segment struct {
	Chrom      string
	Start, End int

	CopyNumber       float64
	BAFCount         int
	ObservedBAF      float64
	BAF              float64
	DepthWindowCount int

	// StartSupport and EndSupport describe the boundaries at Start and
	// after End.
	StartSupport region.Support
	EndSupport   region.Support
	Method       Method
}

func (s Segment) Bases() int { return s.End - s.Start + 1 }

func (s Segment) MinorAlleleCopyNumber() float64 { return (1 - s.BAF) * s.CopyNumber }
func (s Segment) MajorAlleleCopyNumber() float64 { return s.BAF * s.CopyNumber }

func (s Segment) String() string {
	return fmt.Sprintf("%s:%d-%d\t%.4f\t%s", s.Chrom, s.Start, s.End, s.CopyNumber, s.Method)
}

// freeze converts the regions of one chromosome to segments. When length is
// larger than the end of the last region, the last segment is extended to it.
func freeze(regions []*CombinedRegion, length int) []Segment {
	segs := make([]Segment, len(regions))
	for i, r := range regions {
		end := region.Telomere
		if i+1 < len(regions) {
			end = regions[i+1].Support
		}
		segs[i] = Segment{
			Chrom:            r.Chrom,
			Start:            r.Start,
			End:              r.End,
			CopyNumber:       r.TumorCopyNumber(),
			BAFCount:         r.BAFCount,
			ObservedBAF:      r.ObservedBAF(),
			BAF:              r.TumorBAF(),
			DepthWindowCount: r.DepthWindowCount,
			StartSupport:     r.Support,
			EndSupport:       end,
			Method:           r.Method(),
		}
	}
	if n := len(segs); n > 0 && length > segs[n-1].End {
		segs[n-1].End = length
	}
	return segs
}

// DeletedWindowFraction is the fraction of depth windows that fall in
// segments with a copy number below deleted.
func DeletedWindowFraction(segments []Segment, deleted float64) float64 {
	var total, below int
	for _, s := range segments {
		total += s.DepthWindowCount
		if s.CopyNumber < deleted {
			below += s.DepthWindowCount
		}
	}
	if total == 0 {
		return 0
	}
	return float64(below) / float64(total)
}
