package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"restitch/internal/services"
)

// DefaultFrameRate applies when the analysis record omits a frame rate.
const DefaultFrameRate = 30

// Size is the recording's pixel geometry.
type Size struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Gap is a sub-interval of the logical timeline with no source data.
type Gap struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Track is the analysis record for one recording. Gaps stays nil when the
// record omits the field entirely, which is distinct from an empty list.
type Track struct {
	IsVideo   bool    `json:"isVideo"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	VideoSize *Size   `json:"videoSize"`
	FrameRate float64 `json:"frameRate"`
	Gaps      []Gap   `json:"gaps"`
}

// Load reads a track analysis record from a JSON file.
func Load(path string) (Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Track{}, fmt.Errorf("read analysis: %w", err)
	}
	var track Track
	if err := json.Unmarshal(data, &track); err != nil {
		return Track{}, fmt.Errorf("parse analysis %s: %w", path, err)
	}
	return track, nil
}

// FrameRateOrDefault returns the analysed frame rate, defaulting to 30.
func (t Track) FrameRateOrDefault() float64 {
	if t.FrameRate > 0 {
		return t.FrameRate
	}
	return DefaultFrameRate
}

// ValidateVideo checks every precondition a video reconstruction needs.
func (t Track) ValidateVideo() error {
	if !t.IsVideo {
		return services.Wrap(services.ErrValidation, "analysis", "", "record is not marked as video", nil)
	}
	if t.StartTime < 0 {
		return services.Wrap(services.ErrValidation, "analysis", "", "startTime must not be negative", nil)
	}
	if t.EndTime <= 0 {
		return services.Wrap(services.ErrValidation, "analysis", "", "endTime is required for video", nil)
	}
	if t.StartTime >= t.EndTime {
		return services.Wrap(services.ErrValidation, "analysis", "", "startTime must precede endTime", nil)
	}
	if t.VideoSize == nil || t.VideoSize.Width <= 0 || t.VideoSize.Height <= 0 {
		return services.Wrap(services.ErrValidation, "analysis", "", "videoSize is required for video", nil)
	}
	if t.Gaps == nil {
		return services.Wrap(services.ErrValidation, "analysis", "", "gap list is required for video", nil)
	}
	return t.validateGaps()
}

// ValidateAudio checks every precondition an audio alignment needs.
func (t Track) ValidateAudio() error {
	if t.IsVideo {
		return services.Wrap(services.ErrValidation, "analysis", "", "record is marked as video", nil)
	}
	if t.StartTime < 0 {
		return services.Wrap(services.ErrValidation, "analysis", "", "startTime must not be negative", nil)
	}
	return nil
}

// validateGaps enforces the gap-list invariant up front: ascending order,
// no overlap, and bounds within [0, endTime]. Zero-length gaps pass here and
// are dropped during planning.
func (t Track) validateGaps() error {
	cursor := 0.0
	for i, gap := range t.Gaps {
		if gap.Start < 0 {
			return services.Wrap(services.ErrValidation, "analysis", "",
				fmt.Sprintf("gap %d starts before the timeline (%.3f)", i, gap.Start), nil)
		}
		if gap.End < gap.Start {
			return services.Wrap(services.ErrValidation, "analysis", "",
				fmt.Sprintf("gap %d ends before it starts", i), nil)
		}
		if gap.End > t.EndTime {
			return services.Wrap(services.ErrValidation, "analysis", "",
				fmt.Sprintf("gap %d extends past endTime (%.3f > %.3f)", i, gap.End, t.EndTime), nil)
		}
		if gap.Start < cursor {
			return services.Wrap(services.ErrValidation, "analysis", "",
				fmt.Sprintf("gap %d overlaps or precedes gap %d", i, i-1), nil)
		}
		cursor = gap.End
	}
	return nil
}
