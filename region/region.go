// Package region holds the per-window observations that copy-number
// segmentation consumes, along with the small enumerations that annotate them.
package region

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// GermlineStatus is the status of a window in the normal sample.
type GermlineStatus int

const (
	Unknown GermlineStatus = iota
	Diploid
	HetDeletion
	HomDeletion
	Amplification
	Noise
)

var germlineNames = [...]string{"UNKNOWN", "DIPLOID", "HET_DELETION", "HOM_DELETION", "AMPLIFICATION", "NOISE"}

func (g GermlineStatus) String() string {
	if g < 0 || int(g) >= len(germlineNames) {
		return fmt.Sprintf("GermlineStatus(%d)", int(g))
	}
	return germlineNames[g]
}

// ParseGermlineStatus is the inverse of GermlineStatus.String.
func ParseGermlineStatus(s string) (GermlineStatus, error) {
	for i, n := range germlineNames {
		if strings.EqualFold(s, n) {
			return GermlineStatus(i), nil
		}
	}
	return Unknown, errors.E(errors.Invalid, fmt.Sprintf("region: unknown germline status %q", s))
}

// Support indicates what evidence fixes the start boundary of a region.
type Support int

const (
	None Support = iota
	Telomere
	Centromere
	BND
	DEL
	DUP
	INV
	INS
	SGL
	Multiple
)

var supportNames = [...]string{"NONE", "TELOMERE", "CENTROMERE", "BND", "DEL", "DUP", "INV", "INS", "SGL", "MULTIPLE"}

func (s Support) String() string {
	if s < 0 || int(s) >= len(supportNames) {
		return fmt.Sprintf("Support(%d)", int(s))
	}
	return supportNames[s]
}

// IsSV is true when the boundary is fixed by a structural variant breakend.
func (s Support) IsSV() bool {
	return s >= BND
}

// ParseSupport is the inverse of Support.String.
func ParseSupport(s string) (Support, error) {
	for i, n := range supportNames {
		if strings.EqualFold(s, n) {
			return Support(i), nil
		}
	}
	return None, errors.E(errors.Invalid, fmt.Sprintf("region: unknown segment support %q", s))
}

// Observed is a single fitted window. Start and End are 1-based and inclusive.
// Values are treated as read-only once loaded.
type Observed struct {
	Chrom string
	Start int
	End   int

	TumorCopyNumber         float64
	RefNormalisedCopyNumber float64
	ObservedBAF             float64
	TumorBAF                float64
	BAFCount                int
	DepthWindowCount        int
	ObservedTumorRatio      float64
	ObservedNormalRatio     float64

	Germline GermlineStatus
	// Support is the annotation of the start boundary.
	Support Support
}

// Bases is the number of bases covered by the region.
func (o Observed) Bases() int {
	return o.End - o.Start + 1
}

// MinorAlleleCopyNumber is (1 - baf) * copy-number.
func (o Observed) MinorAlleleCopyNumber() float64 {
	return (1 - o.TumorBAF) * o.TumorCopyNumber
}

// MajorAlleleCopyNumber is baf * copy-number.
func (o Observed) MajorAlleleCopyNumber() float64 {
	return o.TumorBAF * o.TumorCopyNumber
}

func (o Observed) String() string {
	return fmt.Sprintf("%s:%d-%d[%.3f %s %s]", o.Chrom, o.Start, o.End, o.TumorCopyNumber, o.Germline, o.Support)
}
