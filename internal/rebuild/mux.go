package rebuild

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"restitch/internal/logging"
	"restitch/internal/runlog"
	"restitch/internal/services"
)

const stageMux = "mux"

// Mux multiplexes a reconstructed video file and an aligned AAC audio file
// into one container via stream copy, then deletes the two elementary
// inputs.
func (p *Pipeline) Mux(ctx context.Context, videoPath, audioPath string) (string, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithStage(ctx, stageMux)
	logger := logging.WithContext(ctx, p.logger).With(slog.String(logging.FieldComponent, "rebuild"))

	p.startRun(ctx, runID, runlog.KindMux, videoPath)

	if err := p.checkMuxInputs(ctx, videoPath, audioPath); err != nil {
		p.failRun(ctx, runID, stageMux, err)
		return "", err
	}

	outputPath := p.muxOutputPath(videoPath)
	if err := p.runner.Execute(ctx, stageMux, muxArgs(videoPath, audioPath, outputPath)); err != nil {
		p.failRun(ctx, runID, stageMux, err)
		return "", err
	}

	for _, path := range []string{videoPath, audioPath} {
		if err := os.Remove(path); err != nil {
			logger.Warn("failed to remove elementary stream file",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	p.finishRun(ctx, runID, outputPath)
	logger.Info("streams muxed", slog.String("output", outputPath))
	return outputPath, nil
}

// checkMuxInputs verifies each input carries the expected elementary stream
// before spawning the mux process. Skipped when no probe is configured.
func (p *Pipeline) checkMuxInputs(ctx context.Context, videoPath, audioPath string) error {
	if p.probe == nil {
		return nil
	}
	videoResult, err := p.probe(ctx, videoPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stageMux, "probe video", "", err)
	}
	if videoResult.VideoStreamCount() != 1 {
		return services.Wrap(services.ErrValidation, stageMux, "",
			"video input must carry exactly one video stream", nil)
	}
	audioResult, err := p.probe(ctx, audioPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, stageMux, "probe audio", "", err)
	}
	if audioResult.AudioStreamCount() != 1 {
		return services.Wrap(services.ErrValidation, stageMux, "",
			"audio input must carry exactly one audio stream", nil)
	}
	return nil
}

// muxOutputPath derives the combined output name from the video file,
// replacing the elementary-stream suffix.
func (p *Pipeline) muxOutputPath(videoPath string) string {
	stem := strings.TrimSuffix(videoPath, "_video.mp4")
	if stem == videoPath {
		return p.outputPath(videoPath, "_final.mp4")
	}
	return stem + "_final.mp4"
}
