package copynumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brentp/svcn/purity"
	"github.com/brentp/svcn/region"
	"github.com/brentp/svcn/sv"
)

func testImplied() svImplied {
	return svImplied{factory: sv.PloidyFactory{
		Purity:              purity.New(1, region.Female),
		AverageGenomePloidy: 2,
		AverageDepth:        30,
		FallbackWeight:      0.5,
	}}
}

func support(s region.Support) func(o *region.Observed) {
	return func(o *region.Observed) { o.Support = s }
}

func legsOf(t *testing.T, variants ...sv.StructuralVariant) []sv.Legs {
	legs, err := sv.NewLegs(variants)
	require.NoError(t, err)
	return legs
}

func copyNumbers(regions []*CombinedRegion) []float64 {
	out := make([]float64, len(regions))
	for i, r := range regions {
		out[i] = r.TumorCopyNumber()
	}
	return out
}

func TestInferCopyNumberFromStructuralVariants(t *testing.T) {
	start := &sv.LegPloidy{Leg: sv.Leg{Orientation: 1}, AverageImpliedPloidy: 1, Weight: 1,
		LeftCopyNumber: 3, HasLeft: true}
	end := &sv.LegPloidy{Leg: sv.Leg{Orientation: -1}, AverageImpliedPloidy: 0.5, Weight: 3,
		RightCopyNumber: 2, HasRight: true}

	cn, ok := inferCopyNumberFromStructuralVariants(start, end)
	require.True(t, ok)
	// (2*1 + 1.5*3) / 4
	assert.InDelta(t, 1.625, cn, 1e-9)

	cn, ok = inferCopyNumberFromStructuralVariants(start, nil)
	require.True(t, ok)
	assert.InDelta(t, 2, cn, 1e-9)

	_, ok = inferCopyNumberFromStructuralVariants(nil, nil)
	assert.False(t, ok)

	// the right flank of a start leg is not used.
	_, ok = inferCopyNumberFromStructuralVariants(&sv.LegPloidy{Weight: 1, RightCopyNumber: 2, HasRight: true}, nil)
	assert.False(t, ok)

	deep := &sv.LegPloidy{Leg: sv.Leg{Orientation: 1}, AverageImpliedPloidy: 3, Weight: 1, LeftCopyNumber: 2, HasLeft: true}
	cn, ok = inferCopyNumberFromStructuralVariants(deep, nil)
	require.True(t, ok)
	assert.Equal(t, 0.0, cn)
}

func TestStructuralVariantImpliedDeletion(t *testing.T) {
	byChrom := map[string][]*CombinedRegion{"1": {
		resolved(diploid(1, 1000, 2, 50), BAFWeighted),
		unresolved(with(diploid(1001, 2000, 1.2, 5), support(region.DEL))),
		resolved(with(diploid(2001, 3000, 2, 50), support(region.DEL)), BAFWeighted),
	}}
	end := sv.Leg{Chrom: "1", Position: 2001, Orientation: -1, AlleleFrequency: 0.5, Fragments: 10}
	legs := legsOf(t, sv.StructuralVariant{ID: "del", Type: sv.DEL,
		Start: sv.Leg{Chrom: "1", Position: 1000, Orientation: 1, AlleleFrequency: 0.5, Fragments: 10},
		End:   &end,
	})
	testImplied().apply([]string{"1"}, byChrom, legs)

	regions := byChrom["1"]
	require.Len(t, regions, 3)
	assert.Equal(t, StructuralVariant, regions[1].Method())
	assert.InDelta(t, 1, regions[1].TumorCopyNumber(), 1e-9)
}

func sgl(id string, pos int, orientation int8) sv.StructuralVariant {
	return sv.StructuralVariant{ID: id, Type: sv.SGL,
		Start: sv.Leg{Chrom: "1", Position: pos, Orientation: orientation, AlleleFrequency: 0.5, Fragments: 10}}
}

func TestStructuralVariantImpliedMultiPass(t *testing.T) {
	byChrom := map[string][]*CombinedRegion{"1": {
		resolved(diploid(1, 1000, 2, 50), BAFWeighted),
		unresolved(with(diploid(1001, 2000, 1, 5), support(region.BND))),
		unresolved(with(diploid(2001, 3000, 1, 5), support(region.BND))),
	}}
	testImplied().apply([]string{"1"}, byChrom, legsOf(t, sgl("a", 1000, 1), sgl("b", 2000, 1)))
	regions := byChrom["1"]
	require.Len(t, regions, 3)
	assert.Equal(t, 0, countUnknown(regions))
	assert.InDeltaSlice(t, []float64{2, 1, 0.5}, copyNumbers(regions), 1e-9)
}

func TestStructuralVariantImpliedMirror(t *testing.T) {
	byChrom := map[string][]*CombinedRegion{"1": {
		unresolved(diploid(1, 1000, 1, 5)),
		unresolved(with(diploid(1001, 2000, 1, 5), support(region.BND))),
		resolved(with(diploid(2001, 3000, 2, 50), support(region.BND)), BAFWeighted),
	}}
	testImplied().apply([]string{"1"}, byChrom, legsOf(t, sgl("a", 1001, -1), sgl("b", 2001, -1)))
	regions := byChrom["1"]
	require.Len(t, regions, 3)
	assert.Equal(t, 0, countUnknown(regions))
	assert.InDeltaSlice(t, []float64{0.5, 1, 2}, copyNumbers(regions), 1e-9)
}

func TestStructuralVariantImpliedWithoutLegs(t *testing.T) {
	byChrom := map[string][]*CombinedRegion{"1": {
		resolved(diploid(1, 1000, 2, 50), BAFWeighted),
		unresolved(with(diploid(1001, 2000, 1, 5), support(region.BND))),
	}}
	testImplied().apply([]string{"1"}, byChrom, nil)
	assert.Equal(t, 1, countUnknown(byChrom["1"]))
}

func TestResolvedLookup(t *testing.T) {
	l := newResolvedLookup(map[string][]*CombinedRegion{"1": {
		resolved(diploid(1, 1000, 2, 50), BAFWeighted),
		unresolved(diploid(1001, 2000, 1, 5)),
		resolved(diploid(2001, 3000, 3, 50), NonDiploid),
	}})
	cn, ok := l.CopyNumber("1", 1000)
	require.True(t, ok)
	assert.Equal(t, 2.0, cn)
	_, ok = l.CopyNumber("1", 1001)
	assert.False(t, ok)
	cn, ok = l.CopyNumber("1", 2001)
	require.True(t, ok)
	assert.Equal(t, 3.0, cn)
	_, ok = l.CopyNumber("2", 10)
	assert.False(t, ok)
}

func TestStructuralVariantImpliedNextToDeletedFlank(t *testing.T) {
	implied := testImplied()
	implied.factory.Purity = purity.New(0.5, region.Female)
	byChrom := map[string][]*CombinedRegion{"1": {
		resolved(diploid(1, 1000, 0, 50), BAFWeighted),
		unresolved(with(diploid(1001, 2000, 1, 5), support(region.BND))),
	}}
	v := sgl("a", 1000, 1)
	v.Start.AlleleFrequency = 0.3
	implied.apply([]string{"1"}, byChrom, legsOf(t, v))
	regions := byChrom["1"]
	require.Len(t, regions, 2)
	assert.Equal(t, StructuralVariant, regions[1].Method())
	assert.Equal(t, 0.0, regions[1].TumorCopyNumber())
}
