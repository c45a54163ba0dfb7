package segment

import (
	"io"

	"github.com/grailbio/base/tsv"

	"github.com/brentp/svcn/copynumber"
)

const segmentHeader = "chromosome\tstart\tend\tcopyNumber\tbafCount\tobservedBAF\tbaf\tminorAlleleCopyNumber\tmajorAlleleCopyNumber\tsegmentStartSupport\tsegmentEndSupport\tmethod\tdepthWindowCount"

func writeSegments(w io.Writer, segments []copynumber.Segment) error {
	out := tsv.NewWriter(w)
	out.WriteString(segmentHeader)
	if err := out.EndLine(); err != nil {
		return err
	}
	for _, s := range segments {
		out.WriteString(s.Chrom)
		out.WriteInt64(int64(s.Start))
		out.WriteInt64(int64(s.End))
		out.WriteFloat64(s.CopyNumber, 'f', 4)
		out.WriteInt64(int64(s.BAFCount))
		out.WriteFloat64(s.ObservedBAF, 'f', 4)
		out.WriteFloat64(s.BAF, 'f', 4)
		out.WriteFloat64(s.MinorAlleleCopyNumber(), 'f', 4)
		out.WriteFloat64(s.MajorAlleleCopyNumber(), 'f', 4)
		out.WriteString(s.StartSupport.String())
		out.WriteString(s.EndSupport.String())
		out.WriteString(s.Method.String())
		out.WriteInt64(int64(s.DepthWindowCount))
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}
