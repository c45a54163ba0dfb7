package purity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brentp/svcn/region"
)

func TestAdjustedVAF(t *testing.T) {
	pure := New(1, region.Female)
	assert.InDelta(t, 0.5, pure.AdjustedVAF("1", 2, 0.5), 1e-9)

	// at 50% purity a clonal het event at CN 2 is observed at 0.25.
	half := New(0.5, region.Female)
	assert.InDelta(t, 0.5, half.AdjustedVAF("1", 2, 0.25), 1e-9)

	// male X has a single normal copy.
	male := New(0.5, region.Male)
	assert.InDelta(t, 1, male.AdjustedVAF("X", 1, 0.5), 1e-9)

	v := pure.AdjustedVAF("1", 0, 0.5)
	assert.True(t, math.IsInf(v, 0) || math.IsNaN(v))
}

func TestImpliedPloidy(t *testing.T) {
	half := New(0.5, region.Female)
	assert.InDelta(t, half.AdjustedVAF("1", 3, 0.3)*3, half.ImpliedPloidy("1", 3, 0.3), 1e-9)
	// the normal still contributes reads when the tumor flank is deleted.
	assert.InDelta(t, 0.6, half.ImpliedPloidy("1", 0, 0.3), 1e-9)
	assert.InDelta(t, 0.6003, half.ImpliedPloidy("1", 0.001, 0.3), 1e-9)
	assert.InDelta(t, 0.6, half.ImpliedPloidy("1", -0.3, 0.3), 1e-9)

	assert.Equal(t, 0.0, New(1, region.Female).ImpliedPloidy("1", 0, 0.5))
}

func TestExpectedObservedBAF(t *testing.T) {
	a := New(1, region.Female)
	assert.InDelta(t, 0.5, a.ExpectedObservedBAF("1", 2, 0.5), 1e-9)
	assert.InDelta(t, 1, a.ExpectedObservedBAF("1", 2, 1), 1e-9)

	// LOH is diluted by the normal at lower purity.
	b := New(0.5, region.Female)
	assert.InDelta(t, 0.75, b.ExpectedObservedBAF("1", 2, 1), 1e-9)
	assert.InDelta(t, 0.5, b.ExpectedObservedBAF("Y", 0, 1), 1e-9)
}

func TestCopyNumberTolerance(t *testing.T) {
	assert.InDelta(t, 0.3, New(1, region.Female).CopyNumberTolerance(0.3), 1e-9)
	assert.InDelta(t, 0.6, New(0.5, region.Female).CopyNumberTolerance(0.3), 1e-9)
	assert.InDelta(t, 30, New(0, region.Female).CopyNumberTolerance(0.3), 1e-9)
}
