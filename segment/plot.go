package segment

import (
	"fmt"
	"os"

	chartjs "github.com/brentp/go-chartjs"
	"github.com/brentp/go-chartjs/types"

	"github.com/brentp/svcn/copynumber"
	"github.com/brentp/svcn/region"
)

// cnMax caps the plotted copy number.
const cnMax = 6

type vs struct {
	xs []float64
	ys []float64
}

func (v *vs) Xs() []float64 { return v.xs }
func (v *vs) Ys() []float64 { return v.ys }
func (v *vs) Rs() []float64 { return nil }

// steps draws each segment as a flat line from its start to its end.
func steps(segments []copynumber.Segment) chartjs.Values {
	v := vs{xs: make([]float64, 0, 2*len(segments)), ys: make([]float64, 0, 2*len(segments))}
	for _, s := range segments {
		cn := s.CopyNumber
		if cn > cnMax {
			cn = cnMax
		}
		v.xs = append(v.xs, float64(s.Start), float64(s.End))
		v.ys = append(v.ys, cn, cn)
	}
	return &v
}

var (
	totalColor = &types.RGBA{R: 31, G: 119, B: 180, A: 240}
	minorColor = &types.RGBA{R: 214, G: 39, B: 40, A: 200}
)

func minorSteps(segments []copynumber.Segment) chartjs.Values {
	minor := make([]copynumber.Segment, len(segments))
	for i, s := range segments {
		minor[i] = s
		minor[i].CopyNumber = s.MinorAlleleCopyNumber()
	}
	return steps(minor)
}

func plotCopyNumber(segments []copynumber.Segment, chrom string, base string) error {
	chart := chartjs.Chart{Label: chrom}
	xa, err := chart.AddXAxis(chartjs.Axis{Type: chartjs.Linear, Position: chartjs.Bottom, ScaleLabel: &chartjs.ScaleLabel{FontSize: 16, LabelString: "position on " + chrom, Display: chartjs.True}})
	if err != nil {
		return err
	}
	ya, err := chart.AddYAxis(chartjs.Axis{Type: chartjs.Linear, Position: chartjs.Left,
		Tick:       &chartjs.Tick{Min: 0, Max: cnMax},
		ScaleLabel: &chartjs.ScaleLabel{FontSize: 16, LabelString: "copy number", Display: chartjs.True}})
	if err != nil {
		return err
	}

	for _, d := range []struct {
		label  string
		values chartjs.Values
		color  *types.RGBA
	}{
		{"copy number", steps(segments), totalColor},
		{"minor allele", minorSteps(segments), minorColor},
	} {
		dataset := chartjs.Dataset{Data: d.values, Label: d.label, Fill: chartjs.False, PointRadius: 0, BorderWidth: 2,
			BorderColor: d.color, BackgroundColor: d.color, PointHitRadius: 6}
		dataset.XAxisID = xa
		dataset.YAxisID = ya
		chart.AddDataset(dataset)
	}
	chart.Options.Responsive = chartjs.False
	chart.Options.Tooltip = &chartjs.Tooltip{Mode: "nearest"}
	wtr, err := os.Create(plotPath(base, chrom))
	if err != nil {
		return err
	}
	if err := chart.SaveHTML(wtr, map[string]interface{}{"width": 850, "height": 550}); err != nil {
		wtr.Close()
		return err
	}
	return wtr.Close()
}

func plotPath(base, chrom string) string {
	return fmt.Sprintf("%s-cn-%s.html", base, region.ShortName(chrom))
}
