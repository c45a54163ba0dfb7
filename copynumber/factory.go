// Package copynumber turns observed genomic regions and structural variants
// into copy-number segments.
//
// The passes run in a fixed order. Per chromosome: ExtendDiploid,
// ExtendNonDiploid and ExtendLongArm. Genome wide: structural variant
// implication, repeated while it resolves regions. Per chromosome again:
// ExtendLongArm, PopulateUnknown and ExtendDiploidBAF.
package copynumber

import (
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/brentp/svcn/purity"
	"github.com/brentp/svcn/region"
	"github.com/brentp/svcn/sv"
)

// Factory runs the segmentation passes.
type Factory struct {
	Config Config
	Purity purity.Adjuster
	// AverageGenomePloidy and AverageDepth feed the read-depth ploidy fallback
	// of structural variant legs.
	AverageGenomePloidy float64
	AverageDepth        float64
	// ChromosomeLengths, when set, extends the last segment of each chromosome
	// to the end of the chromosome.
	ChromosomeLengths map[string]int
}

// Result holds the segments of every chromosome.
type Result struct {
	// Chroms lists the chromosomes in genome order.
	Chroms   []string
	Segments map[string][]Segment
	// DeletedWindowFraction is the fraction of depth windows in segments
	// below Config.DeletedCopyNumber.
	DeletedWindowFraction float64
}

// All returns the segments of every chromosome in genome order.
func (r Result) All() []Segment {
	var out []Segment
	for _, c := range r.Chroms {
		out = append(out, r.Segments[c]...)
	}
	return out
}

// Run runs every pass over observed and variants. observed must be sorted
// by position within each chromosome and tile it without gaps. The inputs are
// not modified.
//
// If some regions cannot be resolved the segments are still returned, along
// with an error of kind errors.Precondition.
func (f Factory) Run(observed []region.Observed, variants []sv.StructuralVariant) (Result, error) {
	chroms, byChrom, err := groupByChrom(observed)
	if err != nil {
		return Result{}, err
	}
	legs, err := sv.NewLegs(variants)
	if err != nil {
		return Result{}, err
	}

	tolerance := AlleleTolerance{Purity: f.Purity, Config: f.Config}
	diploid := newExtendDiploid(tolerance)
	nonDiploid := extendNonDiploid{minRatio: f.Config.MinNonDiploidRatio, maxRatio: f.Config.MaxNonDiploidRatio}

	combined := make([][]*CombinedRegion, len(chroms))
	if err := f.each(len(chroms), func(i int) error {
		c := chroms[i]
		regions := diploid.ExtendDiploid(byChrom[c])
		regions = nonDiploid.ExtendNonDiploid(regions)
		combined[i] = ExtendLongArm(c, regions)
		return nil
	}); err != nil {
		return Result{}, err
	}

	shared := make(map[string][]*CombinedRegion, len(chroms))
	for i, c := range chroms {
		shared[c] = combined[i]
	}
	implied := svImplied{factory: sv.PloidyFactory{
		Purity:              f.Purity,
		AverageGenomePloidy: f.AverageGenomePloidy,
		AverageDepth:        f.AverageDepth,
		FallbackWeight:      f.Config.FallbackPloidyWeight,
	}}
	implied.apply(chroms, shared, legs)

	baf := extendDiploidBAF{minCount: f.Config.MinInformativeBAFCount, maxLOH: f.Config.MaxLOHMinorAllele}
	segments := make([][]Segment, len(chroms))
	if err := f.each(len(chroms), func(i int) error {
		c := chroms[i]
		regions := ExtendLongArm(c, shared[c])
		regions = PopulateUnknown(regions)
		baf.ExtendDiploidBAF(regions)
		segments[i] = freeze(regions, f.ChromosomeLengths[c])
		return nil
	}); err != nil {
		return Result{}, err
	}

	res := Result{Chroms: chroms, Segments: make(map[string][]Segment, len(chroms))}
	var unresolved []string
	for i, c := range chroms {
		res.Segments[c] = segments[i]
		for _, s := range segments[i] {
			if s.Method == Unknown {
				unresolved = append(unresolved, s.String())
			}
		}
	}
	res.DeletedWindowFraction = DeletedWindowFraction(res.All(), f.Config.DeletedCopyNumber)
	log.Printf("copynumber: %d segments over %d chromosomes, deleted window fraction %.4f",
		len(res.All()), len(chroms), res.DeletedWindowFraction)
	if len(unresolved) > 0 {
		return res, errors.E(errors.Precondition, "copynumber: unresolved segments remain:",
			strings.Join(unresolved, ", "))
	}
	return res, nil
}

// each runs fn over n chromosomes with at most Config.Threads at once.
func (f Factory) each(n int, fn func(i int) error) error {
	threads := f.Config.Threads
	if threads < 1 {
		threads = 1
	}
	return traverse.Limit(threads).Each(n, fn)
}

// groupByChrom splits observed by chromosome, in genome order, and checks
// that each chromosome is tiled without gaps.
func groupByChrom(observed []region.Observed) ([]string, map[string][]region.Observed, error) {
	byChrom := make(map[string][]region.Observed)
	var chroms []string
	for _, o := range observed {
		if o.Start < 1 || o.End < o.Start {
			return nil, nil, errors.E(errors.Invalid, "copynumber: bad region", o.String())
		}
		prev, ok := byChrom[o.Chrom]
		if !ok {
			chroms = append(chroms, o.Chrom)
		} else if last := prev[len(prev)-1]; o.Start != last.End+1 {
			return nil, nil, errors.E(errors.Invalid, "copynumber: regions are not contiguous at", o.String())
		}
		byChrom[o.Chrom] = append(prev, o)
	}
	region.SortChroms(chroms)
	return chroms, byChrom, nil
}
