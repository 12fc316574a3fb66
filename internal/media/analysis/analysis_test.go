package analysis

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"restitch/internal/services"
)

func writeRecord(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write analysis: %v", err)
	}
	return path
}

func validVideo() Track {
	return Track{
		IsVideo:   true,
		StartTime: 0.2,
		EndTime:   5.0,
		VideoSize: &Size{Width: 1280, Height: 720},
		FrameRate: 30,
		Gaps:      []Gap{{Start: 2.0, End: 2.5}},
	}
}

func TestLoadParsesRecord(t *testing.T) {
	path := writeRecord(t, `{"isVideo":true,"startTime":0.2,"endTime":5.0,"videoSize":{"w":1280,"h":720},"frameRate":30,"gaps":[{"start":2.0,"end":2.5}]}`)
	track, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !track.IsVideo || track.EndTime != 5.0 || track.VideoSize.Width != 1280 {
		t.Fatalf("unexpected record: %+v", track)
	}
	if len(track.Gaps) != 1 || track.Gaps[0].End != 2.5 {
		t.Fatalf("unexpected gaps: %+v", track.Gaps)
	}
}

func TestFrameRateDefaults(t *testing.T) {
	track := Track{}
	if got := track.FrameRateOrDefault(); got != 30 {
		t.Fatalf("expected default frame rate 30, got %v", got)
	}
	track.FrameRate = 25
	if got := track.FrameRateOrDefault(); got != 25 {
		t.Fatalf("expected analysed frame rate 25, got %v", got)
	}
}

func TestEmptyGapListIsPresent(t *testing.T) {
	path := writeRecord(t, `{"isVideo":true,"startTime":0,"endTime":5.0,"videoSize":{"w":640,"h":480},"gaps":[]}`)
	track, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if track.Gaps == nil {
		t.Fatal("empty gap list should decode as non-nil")
	}
	if err := track.ValidateVideo(); err != nil {
		t.Fatalf("empty gap list should validate: %v", err)
	}
}

func TestValidateVideoRejections(t *testing.T) {
	cases := map[string]func(*Track){
		"audio record":      func(tr *Track) { tr.IsVideo = false },
		"negative start":    func(tr *Track) { tr.StartTime = -1 },
		"missing end":       func(tr *Track) { tr.EndTime = 0 },
		"start after end":   func(tr *Track) { tr.StartTime = 6 },
		"missing size":      func(tr *Track) { tr.VideoSize = nil },
		"zero width":        func(tr *Track) { tr.VideoSize = &Size{Width: 0, Height: 720} },
		"missing gaps":      func(tr *Track) { tr.Gaps = nil },
		"negative gap":      func(tr *Track) { tr.Gaps = []Gap{{Start: -0.5, End: 1}} },
		"inverted gap":      func(tr *Track) { tr.Gaps = []Gap{{Start: 2, End: 1}} },
		"out of range gap":  func(tr *Track) { tr.Gaps = []Gap{{Start: 4, End: 6}} },
		"unsorted gaps":     func(tr *Track) { tr.Gaps = []Gap{{Start: 3, End: 4}, {Start: 1, End: 2}} },
		"overlapping gaps":  func(tr *Track) { tr.Gaps = []Gap{{Start: 1, End: 2.5}, {Start: 2, End: 3}} },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			track := validVideo()
			mutate(&track)
			err := track.ValidateVideo()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected validation marker, got %v", err)
			}
		})
	}
}

func TestValidateVideoAcceptsAdjacentGaps(t *testing.T) {
	track := validVideo()
	track.Gaps = []Gap{{Start: 1, End: 2}, {Start: 2, End: 3}}
	if err := track.ValidateVideo(); err != nil {
		t.Fatalf("adjacent gaps should validate: %v", err)
	}
}

func TestValidateAudio(t *testing.T) {
	track := Track{IsVideo: false, StartTime: 1.234}
	if err := track.ValidateAudio(); err != nil {
		t.Fatalf("audio record should validate: %v", err)
	}
	track.StartTime = -0.1
	if err := track.ValidateAudio(); err == nil {
		t.Fatal("expected error for negative startTime")
	}
	track = Track{IsVideo: true}
	if err := track.ValidateAudio(); err == nil {
		t.Fatal("expected error for video record on audio path")
	}
}
