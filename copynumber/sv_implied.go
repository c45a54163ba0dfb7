package copynumber

import (
	"math"

	"github.com/grailbio/base/log"

	"github.com/brentp/svcn/sv"
)

// svImplied resolves runs of unresolved regions bounded by structural
// variants from the ploidy of the variants.
type svImplied struct {
	factory sv.PloidyFactory
}

// apply runs passes over every chromosome until a pass resolves nothing.
// Each pass reads copy numbers from a snapshot taken before it, so the order
// in which runs are visited does not matter.
func (s svImplied) apply(chroms []string, byChrom map[string][]*CombinedRegion, legs []sv.Legs) {
	unknown := 0
	for _, c := range chroms {
		unknown += countUnknown(byChrom[c])
	}
	for pass := 1; unknown > 0; pass++ {
		idx := sv.NewIndex(s.factory.Create(legs, newResolvedLookup(byChrom)))
		for _, c := range chroms {
			byChrom[c] = s.resolve(c, byChrom[c], idx)
		}
		for _, c := range chroms {
			byChrom[c] = ExtendStructuralVariant(byChrom[c])
		}
		remaining := 0
		for _, c := range chroms {
			remaining += countUnknown(byChrom[c])
		}
		log.Debug.Printf("copynumber: structural variant pass %d left %d of %d regions unresolved", pass, remaining, unknown)
		if remaining >= unknown {
			break
		}
		unknown = remaining
	}
}

// resolve replaces each unresolved run of one chromosome that has a usable
// leg at either end with a single structural variant segment.
func (s svImplied) resolve(chrom string, regions []*CombinedRegion, idx sv.Index) []*CombinedRegion {
	type assignment struct {
		i, j int
		cn   float64
	}
	var as []assignment
	for i := 0; i < len(regions); i++ {
		if regions[i].IsProcessed() {
			continue
		}
		j := unknownRun(regions, i)
		var start, end *sv.LegPloidy
		if p, ok := idx.At(chrom, regions[i].Start); ok {
			start = &p
		}
		if p, ok := idx.At(chrom, regions[j].End+1); ok {
			end = &p
		}
		if cn, ok := inferCopyNumberFromStructuralVariants(start, end); ok {
			as = append(as, assignment{i: i, j: j, cn: cn})
		}
		i = j
	}
	if len(as) == 0 {
		return regions
	}

	out := make([]*CombinedRegion, 0, len(regions))
	next := 0
	for _, a := range as {
		out = append(out, regions[next:a.i]...)
		target := regions[a.i]
		for k := a.i + 1; k <= a.j; k++ {
			target.ExtendWithWeightedAverage(regions[k])
		}
		mustSetCopyNumber(target, StructuralVariant, a.cn)
		log.Debug.Printf("copynumber: %s resolved from structural variants", target)
		out = append(out, target)
		next = a.j + 1
	}
	return append(out, regions[next:]...)
}

// inferCopyNumberFromStructuralVariants averages the copy number implied to
// the right of start and to the left of end, weighted by leg weight. Either
// leg may be nil. ok is false when neither leg carries weight.
func inferCopyNumberFromStructuralVariants(start, end *sv.LegPloidy) (float64, bool) {
	var sum, weight float64
	if start != nil {
		w := start.ImpliedRightCopyNumberWeight()
		sum += start.ImpliedRightCopyNumber() * w
		weight += w
	}
	if end != nil {
		w := end.ImpliedLeftCopyNumberWeight()
		sum += end.ImpliedLeftCopyNumber() * w
		weight += w
	}
	if weight == 0 {
		return 0, false
	}
	return math.Max(0, sum/weight), true
}
