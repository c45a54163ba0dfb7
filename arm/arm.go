// Package arm summarises copy-number segments per chromosome arm.
package arm

import (
	"io"
	"strings"

	"github.com/grailbio/base/tsv"

	"github.com/brentp/svcn/region"
)

// Arm is a chromosome arm.
type Arm int

const (
	P Arm = iota
	Q
)

func (a Arm) String() string {
	if a == P {
		return "P"
	}
	return "Q"
}

// Header is the header row of the arm table.
const Header = "chromosome\tarm\tmeanCopyNumber\tmedianCopyNumber\tminCopyNumber\tmaxCopyNumber"

// CopyNumber is the copy-number summary of one arm.
type CopyNumber struct {
	Chrom  string
	Arm    Arm
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// IncludeInReport is false for the P arm of acrocentric chromosomes.
func (c CopyNumber) IncludeInReport() bool {
	return !(c.Arm == P && region.IsAcrocentric(c.Chrom))
}

func (c CopyNumber) String() string {
	var b strings.Builder
	out := tsv.NewWriter(&b)
	c.write(out)
	if err := out.EndLine(); err != nil {
		return err.Error()
	}
	if err := out.Flush(); err != nil {
		return err.Error()
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (c CopyNumber) write(out *tsv.Writer) {
	out.WriteString(region.ShortName(c.Chrom))
	out.WriteString(c.Arm.String())
	out.WriteFloat64(c.Mean, 'f', 4)
	out.WriteFloat64(c.Median, 'f', 4)
	out.WriteFloat64(c.Min, 'f', 4)
	out.WriteFloat64(c.Max, 'f', 4)
}

// Write writes the header and the arms that are included in reports.
func Write(w io.Writer, arms []CopyNumber) error {
	out := tsv.NewWriter(w)
	out.WriteString(Header)
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, c := range arms {
		if !c.IncludeInReport() {
			continue
		}
		c.write(out)
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}
