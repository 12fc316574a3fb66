package rebuild

import (
	"context"
	"errors"
	"strings"
	"testing"

	"restitch/internal/encoders"
	"restitch/internal/media/analysis"
	"restitch/internal/services"
	"restitch/internal/testsupport"
)

func audioTrack(startTime float64) analysis.Track {
	return analysis.Track{IsVideo: false, StartTime: startTime}
}

func TestParseAudioCodec(t *testing.T) {
	if _, err := ParseAudioCodec("aac"); err != nil {
		t.Fatalf("aac should parse: %v", err)
	}
	if _, err := ParseAudioCodec("wav"); err != nil {
		t.Fatalf("wav should parse: %v", err)
	}
	_, err := ParseAudioCodec("opus")
	if err == nil {
		t.Fatal("expected error for unsupported codec")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestAlignAudioWAVFilterOrdering(t *testing.T) {
	runner := &testsupport.ScriptRunner{}
	pipeline := newVideoPipeline(t, runner)

	outputPath, err := pipeline.AlignAudio(context.Background(), "/in/mic.mka", audioTrack(1.234), CodecWAV)
	if err != nil {
		t.Fatalf("align audio: %v", err)
	}
	if !strings.HasSuffix(outputPath, "mic_audio.wav") {
		t.Fatalf("unexpected output path %q", outputPath)
	}

	args := runner.ArgsFor("align")
	filter := ""
	for i, arg := range args {
		if arg == "-af" && i+1 < len(args) {
			filter = args[i+1]
		}
	}
	// The resample stage must come first; delay length is defined against
	// the normalized rate. floor(1.234 * 1000) = 1234 ms of padding.
	if filter != "aresample=16000,adelay=1234:all=1" {
		t.Fatalf("unexpected filter chain %q", filter)
	}
	if strings.Index(filter, "aresample") > strings.Index(filter, "adelay") {
		t.Fatalf("resample must precede delay in %q", filter)
	}

	joined := strings.Join(args, " ")
	for _, fragment := range []string{"-ac 1", "-c:a pcm_s16le", "-ar 16000"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("wav encode missing %q: %s", fragment, joined)
		}
	}
}

func TestAlignAudioDelayTruncatesToMilliseconds(t *testing.T) {
	runner := &testsupport.ScriptRunner{}
	pipeline := newVideoPipeline(t, runner)

	if _, err := pipeline.AlignAudio(context.Background(), "/in/mic.mka", audioTrack(0.9999), CodecWAV); err != nil {
		t.Fatalf("align audio: %v", err)
	}
	joined := strings.Join(runner.ArgsFor("align"), " ")
	if !strings.Contains(joined, "adelay=999:all=1") {
		t.Fatalf("expected floor to 999 ms, got %s", joined)
	}
}

func TestAlignAudioAACUsesResolvedEncoder(t *testing.T) {
	runner := &testsupport.ScriptRunner{EncoderNames: []string{"libfdk_aac"}}
	pipeline := newVideoPipeline(t, runner)

	outputPath, err := pipeline.AlignAudio(context.Background(), "/in/mic.mka", audioTrack(0.5), CodecAAC)
	if err != nil {
		t.Fatalf("align audio: %v", err)
	}
	if !strings.HasSuffix(outputPath, "mic_audio.m4a") {
		t.Fatalf("unexpected output path %q", outputPath)
	}

	joined := strings.Join(runner.ArgsFor("align"), " ")
	for _, fragment := range []string{"-c:a libfdk_aac", "-b:a 256k", "-ar 48000", "-profile:a aac_low", "aresample=48000,adelay=500:all=1"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("aac encode missing %q: %s", fragment, joined)
		}
	}
}

func TestAlignAudioAACFallbackEncoder(t *testing.T) {
	runner := &testsupport.ScriptRunner{EncoderNames: []string{"aac"}}
	pipeline := newVideoPipeline(t, runner)

	if _, err := pipeline.AlignAudio(context.Background(), "/in/mic.mka", audioTrack(0), CodecAAC); err != nil {
		t.Fatalf("align audio: %v", err)
	}
	joined := strings.Join(runner.ArgsFor("align"), " ")
	fallback := encoders.FallbackConfig()
	if !strings.Contains(joined, "-c:a "+fallback.Codec) || !strings.Contains(joined, "-b:a "+fallback.Bitrate) {
		t.Fatalf("expected fallback encoder parameters, got %s", joined)
	}
}

func TestAlignAudioRejectsVideoRecord(t *testing.T) {
	runner := &testsupport.ScriptRunner{}
	pipeline := newVideoPipeline(t, runner)

	_, err := pipeline.AlignAudio(context.Background(), "/in/mic.mka", analysis.Track{IsVideo: true}, CodecWAV)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(runner.Calls) != 0 {
		t.Fatalf("no external process may run on validation failure, saw %v", runner.Labels())
	}
}

func TestAlignAudioRejectsUnsupportedCodec(t *testing.T) {
	runner := &testsupport.ScriptRunner{}
	pipeline := newVideoPipeline(t, runner)

	if _, err := pipeline.AlignAudio(context.Background(), "/in/mic.mka", audioTrack(0), AudioCodec("flac")); err == nil {
		t.Fatal("expected validation error for unsupported codec")
	}
}
