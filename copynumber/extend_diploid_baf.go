package copynumber

import (
	"math"

	"github.com/brentp/svcn/region"
)

// extendDiploidBAF infers the BAF of diploid regions that have too few BAF
// points from the informative regions around them.
type extendDiploidBAF struct {
	minCount int
	maxLOH   float64
}

// inferRegion is a run of target regions and the informative regions, if
// any, immediately around it.
type inferRegion struct {
	leftSource              optIndex
	leftTarget, rightTarget int
	rightSource             optIndex
}

func (e extendDiploidBAF) isTarget(r *CombinedRegion) bool {
	return r.Germline == region.Diploid && r.BAFCount < e.minCount
}

func (e extendDiploidBAF) isSource(r *CombinedRegion) bool {
	return r.BAFCount >= e.minCount
}

func (e extendDiploidBAF) isLOH(r *CombinedRegion) bool {
	return r.MinorAlleleCopyNumber() < e.maxLOH
}

// nextRegion finds the first run of targets met walking from index from in
// direction d.
func (e extendDiploidBAF) nextRegion(d direction, regions []*CombinedRegion, from int) (inferRegion, bool) {
	i := from
	for inBounds(regions, i) && !e.isTarget(regions[i]) {
		i = d.move(i)
	}
	if !inBounds(regions, i) {
		return inferRegion{}, false
	}
	lo, hi := i, i
	for lo > 0 && e.isTarget(regions[lo-1]) {
		lo--
	}
	for hi+1 < len(regions) && e.isTarget(regions[hi+1]) {
		hi++
	}
	r := inferRegion{leftTarget: lo, rightTarget: hi}
	if lo > 0 && e.isSource(regions[lo-1]) {
		r.leftSource = some(lo - 1)
	}
	if hi+1 < len(regions) && e.isSource(regions[hi+1]) {
		r.rightSource = some(hi + 1)
	}
	return r, true
}

// ExtendDiploidBAF sets the tumor BAF of every target region. Sources are
// never targets, so the result does not depend on the order runs are visited.
func (e extendDiploidBAF) ExtendDiploidBAF(regions []*CombinedRegion) {
	for i := 0; ; {
		r, ok := e.nextRegion(rightward, regions, i)
		if !ok {
			return
		}
		e.infer(regions, r)
		i = r.rightTarget + 1
	}
}

func (e extendDiploidBAF) infer(regions []*CombinedRegion, r inferRegion) {
	var left, right *CombinedRegion
	if i, ok := r.leftSource.get(); ok {
		left = regions[i]
	}
	if i, ok := r.rightSource.get(); ok {
		right = regions[i]
	}

	if left != nil && right != nil && e.isSimpleDupSurroundedByLOH(regions, r) {
		for i := r.leftTarget; i <= r.rightTarget; i++ {
			regions[i].SetTumorBAF(1)
		}
		return
	}
	for i := r.leftTarget; i <= r.rightTarget; i++ {
		t := regions[i]
		allele := minorOrMajorMovedTargetPloidy(t, left, right)
		t.SetTumorBAF(bafForTargetAllele(allele, t.TumorCopyNumber()))
	}
}

// isSimpleDupSurroundedByLOH matches a tandem duplication inside a region that
// has lost heterozygosity, where the duplicated copy keeps the single allele.
func (e extendDiploidBAF) isSimpleDupSurroundedByLOH(regions []*CombinedRegion, r inferRegion) bool {
	li, _ := r.leftSource.get()
	ri, _ := r.rightSource.get()
	return regions[r.leftTarget].Support == region.DUP && regions[ri].Support == region.DUP &&
		e.isLOH(regions[li]) && e.isLOH(regions[ri])
}

// minorOrMajorMovedTargetPloidy is the allele copy number the target is assumed
// to share with its sources. With two sources it is the mean of the closest
// pair of their alleles, preferring like alleles on a tie.
func minorOrMajorMovedTargetPloidy(target, left, right *CombinedRegion) float64 {
	cn := math.Max(0, target.TumorCopyNumber())
	clamp := func(v float64) float64 { return math.Min(math.Max(v, 0), cn) }
	switch {
	case left != nil && right != nil:
		lm, lM := left.MinorAlleleCopyNumber(), left.MajorAlleleCopyNumber()
		rm, rM := right.MinorAlleleCopyNumber(), right.MajorAlleleCopyNumber()
		pairs := [4][2]float64{{lm, rm}, {lM, rM}, {lm, rM}, {lM, rm}}
		best := pairs[0]
		for _, p := range pairs[1:] {
			if math.Abs(p[0]-p[1]) < math.Abs(best[0]-best[1]) {
				best = p
			}
		}
		return clamp((best[0] + best[1]) / 2)
	case left != nil:
		return clamp(left.MinorAlleleCopyNumber())
	case right != nil:
		return clamp(right.MinorAlleleCopyNumber())
	}
	return math.Floor(math.Round(cn) / 2)
}

// bafForTargetAllele is the BAF of a region with copy number cn carrying
// allele copies of one allele.
func bafForTargetAllele(allele, cn float64) float64 {
	if cn <= 0 {
		return 1
	}
	major := math.Max(allele, cn-allele)
	return math.Min(math.Max(major/cn, 0.5), 1)
}
