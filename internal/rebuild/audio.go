package rebuild

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"restitch/internal/logging"
	"restitch/internal/media/analysis"
	"restitch/internal/runlog"
	"restitch/internal/services"
)

const stageAlign = "align"

// AudioCodec selects the alignment output encoding.
type AudioCodec string

const (
	// CodecAAC is the lossy compressed path using the resolved encoder.
	CodecAAC AudioCodec = "aac"
	// CodecWAV is the lossless PCM path: fixed sample rate, mono, 16-bit.
	CodecWAV AudioCodec = "wav"
)

// ParseAudioCodec validates a requested codec name.
func ParseAudioCodec(value string) (AudioCodec, error) {
	switch AudioCodec(value) {
	case CodecAAC:
		return CodecAAC, nil
	case CodecWAV:
		return CodecWAV, nil
	default:
		return "", services.Wrap(services.ErrValidation, stageAlign, "",
			fmt.Sprintf("unsupported audio codec %q (aac or wav)", value), nil)
	}
}

// AlignAudio pads an audio track's start with silence equal to its recording
// offset and encodes it with the requested codec. The resample stage runs
// before the delay; the ordering is semantically required.
func (p *Pipeline) AlignAudio(ctx context.Context, inputPath string, track analysis.Track, codec AudioCodec) (string, error) {
	if err := track.ValidateAudio(); err != nil {
		return "", err
	}
	if _, err := ParseAudioCodec(string(codec)); err != nil {
		return "", err
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return "", services.Wrap(services.ErrConfiguration, stageAlign, "", err.Error(), nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithStage(ctx, stageAlign)
	logger := logging.WithContext(ctx, p.logger).With(slog.String(logging.FieldComponent, "rebuild"))

	p.startRun(ctx, runID, runlog.KindAudio, inputPath)

	delayMS := int64(math.Floor(track.StartTime * 1000))

	var outputPath string
	var args []string
	switch codec {
	case CodecWAV:
		outputPath = p.outputPath(inputPath, "_audio.wav")
		args = alignWAVArgs(inputPath, delayMS, p.cfg.Audio.WAVSampleRate, outputPath)
	case CodecAAC:
		enc := p.resolver.Resolve(ctx)
		outputPath = p.outputPath(inputPath, "_audio.m4a")
		args = alignAACArgs(inputPath, delayMS, enc, outputPath)
	}

	if err := p.runner.Execute(ctx, stageAlign, args); err != nil {
		p.failRun(ctx, runID, stageAlign, err)
		return "", err
	}

	p.finishRun(ctx, runID, outputPath)
	logger.Info("audio aligned",
		slog.String(logging.FieldInput, inputPath),
		slog.String("output", outputPath),
		slog.Int64("delay_ms", delayMS),
		slog.String("codec", string(codec)),
	)
	return outputPath, nil
}
