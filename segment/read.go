package segment

import (
	"io"
	"strconv"

	"github.com/biogo/hts/fai"
	"github.com/brentp/xopen"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"go4.org/sort"

	"github.com/brentp/svcn/region"
	"github.com/brentp/svcn/sv"
)

type regionRow struct {
	Chrom                   string  `tsv:"chromosome"`
	Start                   int64   `tsv:"start"`
	End                     int64   `tsv:"end"`
	TumorCopyNumber         float64 `tsv:"tumorCopyNumber"`
	RefNormalisedCopyNumber float64 `tsv:"refNormalisedCopyNumber"`
	ObservedBAF             float64 `tsv:"observedBAF"`
	TumorBAF                float64 `tsv:"tumorBAF"`
	BAFCount                int64   `tsv:"bafCount"`
	DepthWindowCount        int64   `tsv:"depthWindowCount"`
	ObservedTumorRatio      float64 `tsv:"observedTumorRatio"`
	ObservedNormalRatio     float64 `tsv:"observedNormalRatio"`
	Germline                string  `tsv:"germlineStatus"`
	Support                 string  `tsv:"support"`
}

func (r regionRow) observed() (region.Observed, error) {
	g, err := region.ParseGermlineStatus(r.Germline)
	if err != nil {
		return region.Observed{}, err
	}
	s, err := region.ParseSupport(r.Support)
	if err != nil {
		return region.Observed{}, err
	}
	return region.Observed{
		Chrom:                   r.Chrom,
		Start:                   int(r.Start),
		End:                     int(r.End),
		TumorCopyNumber:         r.TumorCopyNumber,
		RefNormalisedCopyNumber: r.RefNormalisedCopyNumber,
		ObservedBAF:             r.ObservedBAF,
		TumorBAF:                r.TumorBAF,
		BAFCount:                int(r.BAFCount),
		DepthWindowCount:        int(r.DepthWindowCount),
		ObservedTumorRatio:      r.ObservedTumorRatio,
		ObservedNormalRatio:     r.ObservedNormalRatio,
		Germline:                g,
		Support:                 s,
	}, nil
}

func readRegions(path string) ([]region.Observed, error) {
	rdr, err := xopen.Ropen(path)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	return parseRegions(rdr)
}

func parseRegions(r io.Reader) ([]region.Observed, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	tr.Comment = '#'
	var out []region.Observed
	for {
		var row regionRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, err
		}
		o, err := row.observed()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
}

// svRow leaves the end leg as text because single breakends carry "." there.
type svRow struct {
	ID               string  `tsv:"id"`
	Type             string  `tsv:"type"`
	StartChrom       string  `tsv:"startChromosome"`
	StartPosition    int64   `tsv:"startPosition"`
	StartOrientation int64   `tsv:"startOrientation"`
	StartAF          float64 `tsv:"startAF"`
	StartFragments   int64   `tsv:"startFragments"`
	StartHomology    int64   `tsv:"startHomology"`
	StartAnchor      int64   `tsv:"startAnchor"`
	EndChrom         string  `tsv:"endChromosome"`
	EndPosition      string  `tsv:"endPosition"`
	EndOrientation   string  `tsv:"endOrientation"`
	EndAF            string  `tsv:"endAF"`
	EndFragments     string  `tsv:"endFragments"`
	EndHomology      string  `tsv:"endHomology"`
	EndAnchor        string  `tsv:"endAnchor"`
}

func (r svRow) variant() (sv.StructuralVariant, error) {
	t, err := sv.ParseType(r.Type)
	if err != nil {
		return sv.StructuralVariant{}, err
	}
	v := sv.StructuralVariant{
		ID:   r.ID,
		Type: t,
		Start: sv.Leg{
			Chrom:           r.StartChrom,
			Position:        int(r.StartPosition),
			Orientation:     int8(r.StartOrientation),
			AlleleFrequency: r.StartAF,
			Fragments:       int(r.StartFragments),
			Homology:        int(r.StartHomology),
			AnchorDistance:  int(r.StartAnchor),
		},
	}
	if r.EndChrom == "." || r.EndChrom == "" {
		return v, nil
	}
	var p fieldParser
	end := sv.Leg{
		Chrom:           r.EndChrom,
		Position:        p.int(r.EndPosition),
		Orientation:     int8(p.int(r.EndOrientation)),
		AlleleFrequency: p.float(r.EndAF),
		Fragments:       p.int(r.EndFragments),
		Homology:        p.int(r.EndHomology),
		AnchorDistance:  p.int(r.EndAnchor),
	}
	if p.err != nil {
		return v, errors.E(errors.Invalid, "segment: bad end leg for", r.ID, p.err)
	}
	v.End = &end
	return v, nil
}

// fieldParser keeps the first parse error.
type fieldParser struct {
	err error
}

func (p *fieldParser) int(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

func (p *fieldParser) float(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

func readVariants(path string) ([]sv.StructuralVariant, error) {
	rdr, err := xopen.Ropen(path)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	return parseVariants(rdr)
}

func parseVariants(r io.Reader) ([]sv.StructuralVariant, error) {
	tr := tsv.NewReader(r)
	tr.HasHeaderRow = true
	tr.UseHeaderNames = true
	tr.Comment = '#'
	var out []sv.StructuralVariant
	for {
		var row svRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				return out, nil
			}
			return nil, err
		}
		v, err := row.variant()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// readFai returns chromosome lengths and the chromosomes in index order.
func readFai(path string) (map[string]int, []string, error) {
	rdr, err := xopen.Ropen(path)
	if err != nil {
		return nil, nil, err
	}
	defer rdr.Close()
	return parseFai(rdr)
}

func parseFai(r io.Reader) (map[string]int, []string, error) {
	idx, err := fai.ReadFrom(r)
	if err != nil {
		return nil, nil, err
	}
	type named struct {
		name  string
		start int64
	}
	records := make([]named, 0, len(idx))
	lengths := make(map[string]int, len(idx))
	for name, rec := range idx {
		lengths[name] = rec.Length
		records = append(records, named{name: name, start: rec.Start})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].start < records[j].start })
	chroms := make([]string, len(records))
	for i, rec := range records {
		chroms[i] = rec.name
	}
	return lengths, chroms, nil
}
