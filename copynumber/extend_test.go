package copynumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brentp/svcn/region"
)

func germline(start, end int, tumorRatio, normalRatio float64) region.Observed {
	return with(diploid(start, end, 1, 10), func(o *region.Observed) {
		o.Germline = region.HetDeletion
		o.ObservedTumorRatio = tumorRatio
		o.ObservedNormalRatio = normalRatio
	})
}

func TestExtendNonDiploid(t *testing.T) {
	e := extendNonDiploid{minRatio: 0.25, maxRatio: 4}
	regions := e.ExtendNonDiploid([]*CombinedRegion{
		unresolved(germline(1, 100, 0.5, 0.5)),
		unresolved(germline(101, 200, 0.6, 0.5)),
		unresolved(diploid(201, 300, 2, 10)),
		unresolved(germline(301, 400, 5, 0.5)),
	})
	assert.Equal(t, [][2]int{{1, 200}, {201, 300}, {301, 400}}, bounds(regions))
	assert.Equal(t, NonDiploid, regions[0].Method())
	assert.Equal(t, 20, regions[0].DepthWindowCount)
	assert.False(t, regions[1].IsProcessed())
	// tumor to normal ratio of 10 is rejected.
	assert.False(t, regions[2].IsProcessed())
}

func TestExtendNonDiploidCentromereBlocks(t *testing.T) {
	e := extendNonDiploid{minRatio: 0.25, maxRatio: 4}
	centromere := func(o *region.Observed) { o.Support = region.Centromere }
	regions := e.ExtendNonDiploid([]*CombinedRegion{
		unresolved(germline(1, 100, 0.5, 0.5)),
		unresolved(with(germline(101, 200, 0.5, 0.5), centromere)),
		unresolved(germline(201, 300, 0.5, 0.5)),
	})
	require.Len(t, regions, 3)
	assert.Equal(t, NonDiploid, regions[0].Method())
	assert.False(t, regions[1].IsProcessed())
	assert.Equal(t, NonDiploid, regions[2].Method())

	seed := unresolved(with(germline(101, 200, 0.5, 0.5), centromere))
	assert.False(t, e.isEligible(unresolved(germline(1, 100, 0.5, 0.5)), seed))
	assert.True(t, e.isEligible(unresolved(germline(201, 300, 0.5, 0.5)), seed))
	assert.False(t, e.isEligible(unresolved(germline(201, 300, 0.5, 0)), nil))
	assert.False(t, e.isEligible(unresolved(with(germline(201, 300, 0.5, 0.5), func(o *region.Observed) {
		o.DepthWindowCount = 0
	})), nil))
}

func TestExtendLongArm(t *testing.T) {
	bnd := func(o *region.Observed) { o.Support = region.BND }
	centromere := func(o *region.Observed) { o.Support = region.Centromere }
	build := func(chrom string) []*CombinedRegion {
		rs := []*CombinedRegion{
			unresolved(diploid(1, 100, 1, 5)),
			unresolved(with(diploid(101, 200, 1, 5), bnd)),
			unresolved(diploid(201, 300, 1, 5)),
			resolved(with(diploid(301, 400, 3, 50), centromere), BAFWeighted),
			unresolved(diploid(401, 500, 1, 5)),
		}
		for _, r := range rs {
			r.Chrom = chrom
		}
		return rs
	}

	regions := ExtendLongArm("chr13", build("chr13"))
	assert.Equal(t, [][2]int{{1, 100}, {101, 300}, {301, 400}, {401, 500}}, bounds(regions))
	for _, r := range regions[:2] {
		assert.Equal(t, LongArm, r.Method())
		assert.Equal(t, 3.0, r.TumorCopyNumber())
	}
	assert.False(t, regions[3].IsProcessed())

	regions = ExtendLongArm("1", build("1"))
	assert.Len(t, regions, 5)
	assert.Equal(t, 4, countUnknown(regions))
}

func TestExtendLongArmStopsAtResolved(t *testing.T) {
	regions := ExtendLongArm("21", []*CombinedRegion{
		unresolved(diploid(1, 100, 1, 5)),
		resolved(diploid(101, 200, 2, 50), BAFWeighted),
		unresolved(diploid(201, 300, 1, 5)),
		resolved(with(diploid(301, 400, 3, 50), func(o *region.Observed) { o.Support = region.Centromere }), NonDiploid),
	})
	require.Len(t, regions, 4)
	assert.Equal(t, LongArm, regions[2].Method())
	assert.False(t, regions[0].IsProcessed())
}

func TestExtendStructuralVariant(t *testing.T) {
	regions := ExtendStructuralVariant([]*CombinedRegion{
		resolved(diploid(1, 100, 1, 10), StructuralVariant),
		unresolved(diploid(101, 200, 2, 5)),
		unresolved(diploid(201, 300, 2, 5)),
		resolved(diploid(301, 400, 3, 20), StructuralVariant),
		unresolved(with(diploid(401, 500, 2, 5), func(o *region.Observed) { o.Support = region.DEL })),
	})
	assert.Equal(t, [][2]int{{1, 100}, {101, 400}, {401, 500}}, bounds(regions))
	assert.Equal(t, StructuralVariant, regions[1].Method())
	assert.Equal(t, 30, regions[1].DepthWindowCount)
	assert.False(t, regions[2].IsProcessed())
}

func TestExtendStructuralVariantIgnoresOtherMethods(t *testing.T) {
	regions := ExtendStructuralVariant([]*CombinedRegion{
		resolved(diploid(1, 100, 1, 10), BAFWeighted),
		unresolved(diploid(101, 200, 2, 5)),
	})
	require.Len(t, regions, 2)
	assert.False(t, regions[1].IsProcessed())
}

func TestPopulateUnknown(t *testing.T) {
	regions := PopulateUnknown([]*CombinedRegion{
		resolved(diploid(1, 100, 2, 10), BAFWeighted),
		unresolved(diploid(101, 200, 4, 5)),
		unresolved(diploid(201, 300, 4, 5)),
		resolved(with(diploid(301, 400, 3, 50), func(o *region.Observed) { o.Support = region.BND }), StructuralVariant),
		unresolved(with(diploid(401, 500, 1, 5), func(o *region.Observed) { o.Support = region.DEL })),
	})
	assert.Equal(t, [][2]int{{1, 300}, {301, 400}, {401, 500}}, bounds(regions))
	assert.Equal(t, 2.0, regions[0].TumorCopyNumber())
	assert.Equal(t, BAFWeighted, regions[0].Method())
	assert.Equal(t, 20, regions[0].DepthWindowCount)
	// no resolved neighbour across an unsupported boundary.
	assert.False(t, regions[2].IsProcessed())
}

func TestPopulateUnknownPrefersMoreWindows(t *testing.T) {
	regions := PopulateUnknown([]*CombinedRegion{
		resolved(diploid(1, 100, 2, 10), BAFWeighted),
		unresolved(diploid(101, 200, 4, 5)),
		resolved(diploid(201, 300, 3, 50), NonDiploid),
	})
	assert.Equal(t, [][2]int{{1, 100}, {101, 300}}, bounds(regions))
	assert.Equal(t, 3.0, regions[1].TumorCopyNumber())
	assert.Equal(t, NonDiploid, regions[1].Method())
}
