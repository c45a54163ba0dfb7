// Package sv models structural-variant breakends as they are consumed by
// copy-number segmentation: deduplicated leg pairs and the ploidy each leg
// implies given the copy number on its flanks.
package sv

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Type of a structural variant.
type Type int

const (
	BND Type = iota
	DEL
	DUP
	INS
	INV
	SGL
)

var typeNames = [...]string{"BND", "DEL", "DUP", "INS", "INV", "SGL"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	for i, n := range typeNames {
		if strings.EqualFold(s, n) {
			return Type(i), nil
		}
	}
	return BND, errors.E(errors.Invalid, fmt.Sprintf("sv: unknown variant type %q", s))
}

// Leg is one breakend.
type Leg struct {
	Chrom    string
	Position int
	// Orientation is 1 when the retained sequence lies to the left of Position
	// and -1 when it lies to the right.
	Orientation     int8
	AlleleFrequency float64
	Fragments       int
	Homology        int
	AnchorDistance  int
}

// CNAPosition is the first base of the copy-number segment that the breakend
// opens.
func (l Leg) CNAPosition() int {
	if l.Orientation == -1 {
		return l.Position
	}
	return l.Position + 1
}

func (l Leg) String() string {
	return fmt.Sprintf("%s:%d(%+d af:%.3f)", l.Chrom, l.Position, l.Orientation, l.AlleleFrequency)
}

// StructuralVariant is a called variant. End is nil for single breakends.
type StructuralVariant struct {
	ID    string
	Type  Type
	Start Leg
	End   *Leg
}

// Legs is a variant after deduplication. Either leg may be nil but not both.
type Legs struct {
	ID    string
	Start *Leg
	End   *Leg
}
