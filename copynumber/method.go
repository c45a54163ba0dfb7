package copynumber

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Method records which pass fixed the copy number of a segment.
type Method int

const (
	Unknown Method = iota
	BAFWeighted
	NonDiploid
	LongArm
	StructuralVariant
)

var methodNames = [...]string{"UNKNOWN", "BAF_WEIGHTED", "NON_DIPLOID", "LONG_ARM", "STRUCTURAL_VARIANT"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// transition returns the method after a pass asserts to. A region may move
// from Unknown to any method and may be re-asserted with the method it
// already has; every other move is rejected.
func (m Method) transition(to Method) (Method, error) {
	switch {
	case to == Unknown && m != Unknown:
		return m, errors.E(errors.Precondition, fmt.Sprintf("copynumber: cannot reset method %s to UNKNOWN", m))
	case m == Unknown, m == to:
		return to, nil
	}
	return m, errors.E(errors.Precondition, fmt.Sprintf("copynumber: cannot replace method %s with %s", m, to))
}
