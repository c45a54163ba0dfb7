package copynumber

import (
	"github.com/biogo/store/interval"

	"github.com/brentp/svcn/sv"
)

// cnRange is a resolved region in 0-based half-open coordinates.
type cnRange struct {
	Start, End int
	UID        uintptr
	cn         float64
}

func (i cnRange) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.End > b.Start && i.Start < b.End
}
func (i cnRange) ID() uintptr              { return i.UID }
func (i cnRange) Range() interval.IntRange { return interval.IntRange{Start: i.Start, End: i.End} }

var _ sv.CopyNumberLookup = resolvedLookup(nil)

// resolvedLookup answers copy number queries from a snapshot of the resolved
// regions of every chromosome. Later changes to the regions are not seen.
type resolvedLookup map[string]*interval.IntTree

func newResolvedLookup(byChrom map[string][]*CombinedRegion) resolvedLookup {
	l := make(resolvedLookup, len(byChrom))
	k := 0
	for chrom, regions := range byChrom {
		tree := &interval.IntTree{}
		for _, r := range regions {
			if !r.IsProcessed() {
				continue
			}
			if err := tree.Insert(cnRange{Start: r.Start - 1, End: r.End, UID: uintptr(k), cn: r.TumorCopyNumber()}, true); err != nil {
				panic(err)
			}
			k++
		}
		tree.AdjustRanges()
		l[chrom] = tree
	}
	return l
}

// CopyNumber returns the copy number of the resolved region covering the
// 1-based position pos.
func (l resolvedLookup) CopyNumber(chrom string, pos int) (float64, bool) {
	tree := l[chrom]
	if tree == nil {
		return 0, false
	}
	var cn float64
	found := false
	tree.DoMatching(func(iv interval.IntInterface) bool {
		cn, found = iv.(cnRange).cn, true
		return true
	}, cnRange{Start: pos - 1, End: pos})
	return cn, found
}
