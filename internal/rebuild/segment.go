package rebuild

import (
	"math"

	"restitch/internal/media/analysis"
)

// SegmentKind tags a segment as backed by source data or by synthesized
// filler.
type SegmentKind string

const (
	SegmentSource SegmentKind = "source"
	SegmentGap    SegmentKind = "gap"
)

// Segment is a maximal contiguous sub-interval of the logical timeline.
type Segment struct {
	Start float64
	End   float64
	Kind  SegmentKind
}

// RoundedDuration returns the segment duration rounded to millisecond
// granularity. Rendering rounded durations bounds cumulative drift to at
// most half a millisecond per segment.
func (s Segment) RoundedDuration() float64 {
	return math.Round((s.End-s.Start)*1000) / 1000
}

// Plan partitions [0, endTime] into ordered, contiguous, non-overlapping
// segments. Gaps must already be validated (ascending, non-overlapping,
// within bounds); zero-length gaps are dropped since they describe no
// missing interval.
func Plan(gaps []analysis.Gap, endTime float64) []Segment {
	segments := make([]Segment, 0, len(gaps)*2+1)
	cursor := 0.0
	for _, gap := range gaps {
		if gap.End == gap.Start {
			continue
		}
		if gap.Start > cursor {
			segments = append(segments, Segment{Start: cursor, End: gap.Start, Kind: SegmentSource})
		}
		segments = append(segments, Segment{Start: gap.Start, End: gap.End, Kind: SegmentGap})
		cursor = gap.End
	}
	if cursor < endTime {
		segments = append(segments, Segment{Start: cursor, End: endTime, Kind: SegmentSource})
	}
	return segments
}
