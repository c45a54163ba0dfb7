package region

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"go4.org/sort"
)

// Gender of the sample; it determines the expected copy number of the sex chromosomes.
type Gender int

const (
	Female Gender = iota
	Male
)

func (g Gender) String() string {
	if g == Male {
		return "MALE"
	}
	return "FEMALE"
}

// ParseGender accepts male/female in any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(s) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return Female, errors.E(errors.Invalid, fmt.Sprintf("region: unknown gender %q", s))
}

// ShortName strips any "chr" prefix so "chr1" and "1" compare equal.
func ShortName(chrom string) string {
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		return chrom[3:]
	}
	return chrom
}

// IsAcrocentric is true for 13, 14, 15, 21 and 22, whose P arms are not
// resolvable by short-read depth.
func IsAcrocentric(chrom string) bool {
	switch ShortName(chrom) {
	case "13", "14", "15", "21", "22":
		return true
	}
	return false
}

// TypicalCopyNumber is the copy number of chrom in a normal cell.
func TypicalCopyNumber(chrom string, g Gender) float64 {
	switch ShortName(chrom) {
	case "X":
		if g == Male {
			return 1
		}
		return 2
	case "Y":
		if g == Male {
			return 1
		}
		return 0
	}
	return 2
}

// rank orders autosomes numerically, then X, Y, MT, then everything else.
func rank(chrom string) int {
	s := ShortName(chrom)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	switch s {
	case "X":
		return 100
	case "Y":
		return 101
	case "M", "MT":
		return 102
	}
	return 1000
}

// Less orders chromosome names in karyotype order.
func Less(a, b string) bool {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// SortChroms sorts names in place in karyotype order.
func SortChroms(chroms []string) {
	sort.Slice(chroms, func(i, j int) bool { return Less(chroms[i], chroms[j]) })
}
