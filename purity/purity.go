// Package purity converts between what is observed in a tumor sample and what
// is implied for the tumor cells alone, given the fitted purity and gender.
package purity

import (
	"math"

	"github.com/brentp/svcn/region"
)

// minPurity guards divisions by purity.
const minPurity = 0.01

// Adjuster carries the sample-level fit produced upstream.
type Adjuster struct {
	Purity float64
	Gender region.Gender
}

// New returns an Adjuster with purity clamped into (0, 1].
func New(purity float64, g region.Gender) Adjuster {
	return Adjuster{Purity: math.Min(1, math.Max(minPurity, purity)), Gender: g}
}

func (a Adjuster) purity() float64 {
	return math.Min(1, math.Max(minPurity, a.Purity))
}

// AdjustedVAF returns the variant allele frequency among tumor reads of a
// somatic event at copyNumber, given the observed frequency vaf. The normal
// contributes reads but no variant support. A copyNumber of 0 yields a
// non-finite result which callers must check.
func (a Adjuster) AdjustedVAF(chrom string, copyNumber, vaf float64) float64 {
	p := a.purity()
	normal := region.TypicalCopyNumber(chrom, a.Gender)
	total := p*copyNumber + (1-p)*normal
	return vaf * total / copyNumber / p
}

// ImpliedPloidy is the number of tumor copies carrying a variant observed at
// vaf next to a flank of copyNumber. It equals AdjustedVAF × copyNumber but
// stays finite when the flank is fully deleted. Negative copy numbers are
// floored at zero.
func (a Adjuster) ImpliedPloidy(chrom string, copyNumber, vaf float64) float64 {
	p := a.purity()
	normal := region.TypicalCopyNumber(chrom, a.Gender)
	cn := math.Max(0, copyNumber)
	return vaf * (p*cn + (1-p)*normal) / p
}

// ExpectedObservedBAF is the B-allele frequency expected in the mixed sample
// for a tumor state of copyNumber with tumor BAF tumorBAF.
func (a Adjuster) ExpectedObservedBAF(chrom string, copyNumber, tumorBAF float64) float64 {
	p := a.purity()
	normal := region.TypicalCopyNumber(chrom, a.Gender)
	cn := math.Max(0, copyNumber)
	denominator := p*cn + (1-p)*normal
	if denominator <= 0 {
		return 0.5
	}
	return (p*tumorBAF*cn + (1-p)*normal/2) / denominator
}

// CopyNumberTolerance scales an absolute copy-number tolerance by 1/purity:
// depth noise is amplified when converting ratios to tumor copy number.
func (a Adjuster) CopyNumberTolerance(tolerance float64) float64 {
	return tolerance / a.purity()
}
