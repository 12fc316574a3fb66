package rebuild

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"

	"restitch/internal/logging"
	"restitch/internal/media/analysis"
	"restitch/internal/runlog"
	"restitch/internal/services"
)

const (
	stageNormalize = "normalize"
	stageConcat    = "concat"
)

// RebuildVideo reconstructs one gapped video recording into a continuous
// track whose duration matches the logical timeline. The returned path is
// final; every intermediate artifact is removed before returning, on
// success and failure alike.
func (p *Pipeline) RebuildVideo(ctx context.Context, inputPath string, track analysis.Track) (string, error) {
	if err := track.ValidateVideo(); err != nil {
		return "", err
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return "", services.Wrap(services.ErrConfiguration, stageNormalize, "", err.Error(), nil)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger).With(slog.String(logging.FieldComponent, "rebuild"))

	p.startRun(ctx, runID, runlog.KindVideo, inputPath)

	temps := NewTempSet(p.cfg.Paths.TempDir, runID, logger)
	defer temps.Cleanup()

	intermediate := temps.Path("full.mp4")
	if err := p.runner.Execute(services.WithStage(ctx, stageNormalize), stageNormalize,
		normalizeArgs(inputPath, intermediate, track, p.cfg.Video)); err != nil {
		p.failRun(ctx, runID, stageNormalize, err)
		return "", err
	}

	segments := Plan(track.Gaps, track.EndTime)
	logger.Info("segment plan derived",
		slog.Int("segments", len(segments)),
		slog.Int("gaps", len(track.Gaps)),
		slog.Float64("end_time", track.EndTime),
	)

	segmentPaths := make([]string, 0, len(segments))
	for i, segment := range segments {
		label := fmt.Sprintf("seg%d", i)
		segmentPath := temps.Path(label + ".mp4")

		var args []string
		if segment.Kind == SegmentGap {
			args = synthArgs(segment.RoundedDuration(), track, p.cfg.Video, segmentPath)
		} else {
			// The intermediate clip's timeline starts at the raw track's
			// first sample, not at absolute zero.
			offset := segment.Start - track.StartTime
			if offset < 0 {
				offset = 0
			}
			args = extractArgs(intermediate, offset, segment.RoundedDuration(), segmentPath)
		}

		if err := p.runner.Execute(services.WithStage(ctx, label), label, args); err != nil {
			p.failRun(ctx, runID, label, err)
			return "", err
		}
		logger.Debug("segment rendered",
			slog.Int(logging.FieldSegment, i),
			slog.String("kind", string(segment.Kind)),
			slog.Float64("duration", segment.RoundedDuration()),
		)
		segmentPaths = append(segmentPaths, segmentPath)
	}

	manifest := temps.Path("concat.txt")
	if err := writeManifest(manifest, segmentPaths); err != nil {
		wrapped := services.Wrap(services.ErrExternalTool, stageConcat, "manifest", "", err)
		p.failRun(ctx, runID, stageConcat, wrapped)
		return "", wrapped
	}

	outputPath := p.outputPath(inputPath, "_video.mp4")
	if err := p.runner.Execute(services.WithStage(ctx, stageConcat), stageConcat,
		concatArgs(manifest, outputPath)); err != nil {
		p.failRun(ctx, runID, stageConcat, err)
		return "", err
	}

	p.verifyDuration(ctx, logger, outputPath, track, len(segments))
	p.finishRun(ctx, runID, outputPath)
	logger.Info("video reconstructed",
		slog.String(logging.FieldInput, inputPath),
		slog.String("output", outputPath),
		slog.Int("segments", len(segments)),
	)
	return outputPath, nil
}

// writeManifest writes the concat manifest atomically, referencing segment
// files in the exact order they were rendered. Ordering is a strict
// contract; any reordering corrupts playback continuity.
func writeManifest(path string, segmentPaths []string) error {
	var b strings.Builder
	for _, segmentPath := range segmentPaths {
		b.WriteString("file '")
		b.WriteString(segmentPath)
		b.WriteString("'\n")
	}
	if err := renameio.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	return nil
}

// verifyDuration compares the assembled output's duration against the
// logical timeline. Each rendered segment may deviate by at most half a
// millisecond, plus one frame of container slack. Drift is reported, not
// fatal.
func (p *Pipeline) verifyDuration(ctx context.Context, logger *slog.Logger, path string, track analysis.Track, segmentCount int) {
	if p.probe == nil {
		return
	}
	result, err := p.probe(ctx, path)
	if err != nil {
		logger.Warn("output inspection failed", slog.String("error", err.Error()))
		return
	}
	drift := math.Abs(result.DurationSeconds() - track.EndTime)
	tolerance := float64(segmentCount)*0.0005 + 1.0/track.FrameRateOrDefault()
	if drift > tolerance {
		logger.Warn("assembled duration drifts from timeline",
			slog.Float64("expected", track.EndTime),
			slog.Float64("actual", result.DurationSeconds()),
			slog.Float64("drift", drift),
		)
	}
}
