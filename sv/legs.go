package sv

import (
	"math"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

type legKey struct {
	chrom       string
	position    int
	orientation int8
}

type legRef struct {
	legs  int // index into the output
	start bool
}

// NewLegs converts variants to one leg pair each. Breakends that share a
// position and orientation (the same junction reported by more than one
// caller path) are collapsed to a single representative which stays with
// the variant that owned it; the other variants lose that leg, and a variant
// left with no legs is dropped.
func NewLegs(variants []StructuralVariant) ([]Legs, error) {
	out := make([]Legs, 0, len(variants))
	for _, v := range variants {
		l := Legs{ID: v.ID}
		if err := checkLeg(v.ID, v.Start); err != nil {
			return nil, err
		}
		s := v.Start
		l.Start = &s
		if v.End != nil {
			if err := checkLeg(v.ID, *v.End); err != nil {
				return nil, err
			}
			e := *v.End
			l.End = &e
		}
		out = append(out, l)
	}

	groups := make(map[legKey][]legRef)
	var keys []legKey
	add := func(i int, leg *Leg, start bool) {
		if leg == nil {
			return
		}
		k := legKey{leg.Chrom, leg.CNAPosition(), leg.Orientation}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], legRef{legs: i, start: start})
	}
	for i := range out {
		add(i, out[i].Start, true)
		add(i, out[i].End, false)
	}

	for _, k := range keys {
		refs := groups[k]
		if len(refs) < 2 {
			continue
		}
		candidates := make([]Leg, len(refs))
		for i, r := range refs {
			candidates[i] = *out[r.legs].get(r.start)
		}
		keep := reduce(candidates)
		log.Debug.Printf("sv: %d breakends at %s:%d collapsed to %s", len(refs), k.chrom, k.position, candidates[keep])
		for i, r := range refs {
			if i != keep {
				out[r.legs].set(r.start, nil)
			}
		}
	}

	result := out[:0]
	for _, l := range out {
		if l.Start == nil && l.End == nil {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func checkLeg(id string, l Leg) error {
	if l.Orientation != 1 && l.Orientation != -1 {
		return errors.E(errors.Invalid, "sv: variant", id, "has orientation", strconv.Itoa(int(l.Orientation)))
	}
	if l.Position < 1 {
		return errors.E(errors.Invalid, "sv: variant", id, "has non-positive position")
	}
	return nil
}

func (l *Legs) get(start bool) *Leg {
	if start {
		return l.Start
	}
	return l.End
}

func (l *Legs) set(start bool, leg *Leg) {
	if start {
		l.Start = leg
	} else {
		l.End = leg
	}
}

// reduce returns the index of the representative of legs that share a
// position and orientation: the largest allele frequency magnitude, then the
// most supporting fragments, then the first seen.
func reduce(legs []Leg) int {
	best := 0
	for i := 1; i < len(legs); i++ {
		a, b := math.Abs(legs[i].AlleleFrequency), math.Abs(legs[best].AlleleFrequency)
		if a > b || (a == b && legs[i].Fragments > legs[best].Fragments) {
			best = i
		}
	}
	return best
}
