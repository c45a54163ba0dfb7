package copynumber

import (
	"fmt"

	"github.com/brentp/svcn/region"
)

// weighted is a running length-weighted mean.
type weighted struct {
	sum, weight float64
}

// add ignores zero values and non-positive weights so that a missing
// measurement never drags the mean toward zero.
func (w *weighted) add(v, weight float64) {
	if v == 0 || weight <= 0 {
		return
	}
	w.sum += v * weight
	w.weight += weight
}

func (w *weighted) merge(o weighted) {
	w.sum += o.sum
	w.weight += o.weight
}

// set pins the mean to v. fallback is used as the weight when nothing has
// been accumulated yet.
func (w *weighted) set(v, fallback float64) {
	wt := w.weight
	if wt == 0 {
		wt = fallback
	}
	w.sum, w.weight = v*wt, wt
}

func (w weighted) value() float64 {
	if w.weight == 0 {
		return 0
	}
	return w.sum / w.weight
}

// CombinedRegion is a mutable accumulator of contiguous observed regions. It
// becomes a Segment once every pass has run.
type CombinedRegion struct {
	Chrom      string
	Start, End int
	// Support is the support of the boundary at Start.
	Support region.Support
	// Germline is the germline status of the region the accumulator started
	// from.
	Germline region.GermlineStatus

	BAFCount         int
	DepthWindowCount int

	method Method

	copyNumber  weighted
	refNormCN   weighted
	baf         weighted
	observedBAF weighted
	tumorRatio  weighted
	normalRatio weighted
}

// NewCombinedRegion starts an accumulator from a single observed region.
func NewCombinedRegion(o region.Observed) *CombinedRegion {
	c := &CombinedRegion{
		Chrom:            o.Chrom,
		Start:            o.Start,
		End:              o.End,
		Support:          o.Support,
		Germline:         o.Germline,
		BAFCount:         o.BAFCount,
		DepthWindowCount: o.DepthWindowCount,
	}
	bases := float64(o.Bases())
	c.copyNumber.add(o.TumorCopyNumber, bases)
	c.refNormCN.add(o.RefNormalisedCopyNumber, bases)
	if o.BAFCount > 0 {
		c.baf.add(o.TumorBAF, bases)
		c.observedBAF.add(o.ObservedBAF, bases)
	}
	c.tumorRatio.add(o.ObservedTumorRatio, bases)
	c.normalRatio.add(o.ObservedNormalRatio, bases)
	return c
}

func (c *CombinedRegion) Bases() int { return c.End - c.Start + 1 }

func (c *CombinedRegion) Method() Method { return c.method }

// IsProcessed reports whether a pass has fixed the copy number.
func (c *CombinedRegion) IsProcessed() bool { return c.method != Unknown }

func (c *CombinedRegion) TumorCopyNumber() float64         { return c.copyNumber.value() }
func (c *CombinedRegion) RefNormalisedCopyNumber() float64 { return c.refNormCN.value() }
func (c *CombinedRegion) TumorBAF() float64                { return c.baf.value() }
func (c *CombinedRegion) ObservedBAF() float64             { return c.observedBAF.value() }
func (c *CombinedRegion) ObservedTumorRatio() float64      { return c.tumorRatio.value() }
func (c *CombinedRegion) ObservedNormalRatio() float64     { return c.normalRatio.value() }

func (c *CombinedRegion) MinorAlleleCopyNumber() float64 {
	return (1 - c.TumorBAF()) * c.TumorCopyNumber()
}

func (c *CombinedRegion) MajorAlleleCopyNumber() float64 {
	return c.TumorBAF() * c.TumorCopyNumber()
}

// Region is a snapshot of the accumulated values as a single observed region.
func (c *CombinedRegion) Region() region.Observed {
	return region.Observed{
		Chrom:                   c.Chrom,
		Start:                   c.Start,
		End:                     c.End,
		TumorCopyNumber:         c.TumorCopyNumber(),
		RefNormalisedCopyNumber: c.RefNormalisedCopyNumber(),
		ObservedBAF:             c.ObservedBAF(),
		TumorBAF:                c.TumorBAF(),
		BAFCount:                c.BAFCount,
		DepthWindowCount:        c.DepthWindowCount,
		ObservedTumorRatio:      c.ObservedTumorRatio(),
		ObservedNormalRatio:     c.ObservedNormalRatio(),
		Germline:                c.Germline,
		Support:                 c.Support,
	}
}

func (c *CombinedRegion) String() string {
	return fmt.Sprintf("%s:%d-%d cn=%.3f baf=%.3f dwc=%d %s", c.Chrom, c.Start, c.End,
		c.TumorCopyNumber(), c.TumorBAF(), c.DepthWindowCount, c.method)
}

func (c *CombinedRegion) extendBounds(o *CombinedRegion) {
	if o.Start < c.Start {
		c.Start = o.Start
		c.Support = o.Support
	}
	if o.End > c.End {
		c.End = o.End
	}
}

// Extend absorbs o with diploid semantics: o only contributes to the means and
// the depth-window count when its germline status is diploid. Other germline
// states are treated as noise.
func (c *CombinedRegion) Extend(o *CombinedRegion) {
	c.extendBounds(o)
	if o.Germline != region.Diploid {
		return
	}
	c.DepthWindowCount += o.DepthWindowCount
	c.BAFCount += o.BAFCount
	c.mergeMeans(o)
}

// ExtendWithWeightedAverage absorbs o unconditionally.
func (c *CombinedRegion) ExtendWithWeightedAverage(o *CombinedRegion) {
	c.extendBounds(o)
	c.DepthWindowCount += o.DepthWindowCount
	c.BAFCount += o.BAFCount
	c.mergeMeans(o)
}

func (c *CombinedRegion) mergeMeans(o *CombinedRegion) {
	c.copyNumber.merge(o.copyNumber)
	c.refNormCN.merge(o.refNormCN)
	c.baf.merge(o.baf)
	c.observedBAF.merge(o.observedBAF)
	c.tumorRatio.merge(o.tumorRatio)
	c.normalRatio.merge(o.normalRatio)
}

// SetCopyNumberMethod asserts m without changing the copy number.
func (c *CombinedRegion) SetCopyNumberMethod(m Method) error {
	next, err := c.method.transition(m)
	if err != nil {
		return err
	}
	c.method = next
	return nil
}

// SetTumorCopyNumber asserts m and pins the copy number to v.
func (c *CombinedRegion) SetTumorCopyNumber(m Method, v float64) error {
	if err := c.SetCopyNumberMethod(m); err != nil {
		return err
	}
	c.copyNumber.set(v, float64(c.Bases()))
	return nil
}

// SetTumorBAF pins the tumor BAF to v.
func (c *CombinedRegion) SetTumorBAF(v float64) {
	c.baf.set(v, float64(c.Bases()))
}

// mustSetMethod and mustSetCopyNumber are used by the passes, whose
// preconditions guarantee a legal transition.
func mustSetMethod(c *CombinedRegion, m Method) {
	if err := c.SetCopyNumberMethod(m); err != nil {
		panic(err)
	}
}

func mustSetCopyNumber(c *CombinedRegion, m Method, v float64) {
	if err := c.SetTumorCopyNumber(m, v); err != nil {
		panic(err)
	}
}

func countUnknown(regions []*CombinedRegion) int {
	n := 0
	for _, r := range regions {
		if !r.IsProcessed() {
			n++
		}
	}
	return n
}
