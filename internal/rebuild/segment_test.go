package rebuild

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"restitch/internal/media/analysis"
)

func TestPlanConcreteScenario(t *testing.T) {
	segments := Plan([]analysis.Gap{{Start: 2.0, End: 2.5}}, 5.0)
	want := []Segment{
		{Start: 0, End: 2.0, Kind: SegmentSource},
		{Start: 2.0, End: 2.5, Kind: SegmentGap},
		{Start: 2.5, End: 5.0, Kind: SegmentSource},
	}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Fatalf("segment plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanNoGapsYieldsSingleSourceSegment(t *testing.T) {
	segments := Plan(nil, 7.25)
	want := []Segment{{Start: 0, End: 7.25, Kind: SegmentSource}}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Fatalf("segment plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanLeadingGapSuppressesSourceSegment(t *testing.T) {
	segments := Plan([]analysis.Gap{{Start: 0, End: 1.5}}, 4.0)
	want := []Segment{
		{Start: 0, End: 1.5, Kind: SegmentGap},
		{Start: 1.5, End: 4.0, Kind: SegmentSource},
	}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Fatalf("segment plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanTrailingGapSuppressesSourceSegment(t *testing.T) {
	segments := Plan([]analysis.Gap{{Start: 3.0, End: 4.0}}, 4.0)
	want := []Segment{
		{Start: 0, End: 3.0, Kind: SegmentSource},
		{Start: 3.0, End: 4.0, Kind: SegmentGap},
	}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Fatalf("segment plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanAdjacentGapsProduceNoInterveningSource(t *testing.T) {
	segments := Plan([]analysis.Gap{{Start: 1, End: 2}, {Start: 2, End: 3}}, 5)
	want := []Segment{
		{Start: 0, End: 1, Kind: SegmentSource},
		{Start: 1, End: 2, Kind: SegmentGap},
		{Start: 2, End: 3, Kind: SegmentGap},
		{Start: 3, End: 5, Kind: SegmentSource},
	}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Fatalf("segment plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanDropsZeroLengthGaps(t *testing.T) {
	segments := Plan([]analysis.Gap{{Start: 2, End: 2}}, 5)
	want := []Segment{{Start: 0, End: 5, Kind: SegmentSource}}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Fatalf("segment plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanPartitionProperty(t *testing.T) {
	cases := []struct {
		name    string
		gaps    []analysis.Gap
		endTime float64
	}{
		{"no gaps", nil, 10},
		{"single gap", []analysis.Gap{{Start: 2, End: 3}}, 10},
		{"leading and trailing", []analysis.Gap{{Start: 0, End: 0.5}, {Start: 9, End: 10}}, 10},
		{"adjacent", []analysis.Gap{{Start: 1, End: 2}, {Start: 2, End: 4}, {Start: 4, End: 4.5}}, 10},
		{"fractional", []analysis.Gap{{Start: 0.333, End: 1.667}, {Start: 5.125, End: 7.875}}, 9.001},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segments := Plan(tc.gaps, tc.endTime)
			if len(segments) == 0 {
				t.Fatal("expected at least one segment")
			}
			if segments[0].Start != 0 {
				t.Fatalf("first segment must start at 0, got %v", segments[0].Start)
			}
			if segments[len(segments)-1].End != tc.endTime {
				t.Fatalf("last segment must end at endTime, got %v", segments[len(segments)-1].End)
			}
			total := 0.0
			for i, segment := range segments {
				if segment.End <= segment.Start {
					t.Fatalf("segment %d is empty or inverted: %+v", i, segment)
				}
				if i > 0 && segments[i-1].End != segment.Start {
					t.Fatalf("segments %d and %d are not contiguous", i-1, i)
				}
				total += segment.End - segment.Start
			}
			if math.Abs(total-tc.endTime) > 1e-9 {
				t.Fatalf("durations sum to %v, want %v", total, tc.endTime)
			}
		})
	}
}

func TestRoundedDurationBound(t *testing.T) {
	gaps := []analysis.Gap{
		{Start: 0.1001, End: 0.2004},
		{Start: 1.0005, End: 1.5006},
		{Start: 3.3337, End: 4.4443},
	}
	endTime := 6.0001
	segments := Plan(gaps, endTime)

	total := 0.0
	for _, segment := range segments {
		total += segment.RoundedDuration()
	}
	bound := float64(len(segments)) * 0.0005
	if math.Abs(total-endTime) > bound+1e-9 {
		t.Fatalf("rounded total %v deviates from %v beyond %v", total, endTime, bound)
	}
}

func TestRoundedDurationMillisecondGranularity(t *testing.T) {
	segment := Segment{Start: 0, End: 1.23456}
	if got := segment.RoundedDuration(); got != 1.235 {
		t.Fatalf("expected 1.235, got %v", got)
	}
}
