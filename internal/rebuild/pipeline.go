package rebuild

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"restitch/internal/config"
	"restitch/internal/encoders"
	"restitch/internal/logging"
	"restitch/internal/media/analysis"
	"restitch/internal/media/ffprobe"
	"restitch/internal/runlog"
	"restitch/internal/services"
	ffmpegsvc "restitch/internal/services/ffmpeg"
)

// ProbeFunc inspects a produced container. Nil disables inspection.
type ProbeFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// Pipeline reconstructs tracks. One Pipeline may serve many runs; each run
// is an independent forward pass with its own temp artifacts.
type Pipeline struct {
	cfg      *config.Config
	runner   ffmpegsvc.Runner
	resolver *encoders.Resolver
	store    *runlog.Store
	logger   *slog.Logger
	probe    ProbeFunc
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStore records every run in the given ledger.
func WithStore(store *runlog.Store) Option {
	return func(p *Pipeline) { p.store = store }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithProbe enables container inspection for mux preconditions and output
// duration verification.
func WithProbe(probe ProbeFunc) Option {
	return func(p *Pipeline) { p.probe = probe }
}

// New constructs a Pipeline.
func New(cfg *config.Config, runner ffmpegsvc.Runner, resolver *encoders.Resolver, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, runner: runner, resolver: resolver, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Input pairs a media file with its analysis record.
type Input struct {
	Path     string
	Analysis analysis.Track
}

// Request describes one invocation. Video and Audio are independent; when
// both are present and the audio codec is AAC, the results are muxed into
// one container.
type Request struct {
	Video      *Input
	Audio      *Input
	AudioCodec AudioCodec
}

// Result holds the produced output paths. After a mux the elementary video
// and audio files no longer exist and only MuxedPath is set.
type Result struct {
	VideoPath string
	AudioPath string
	MuxedPath string
}

// Process runs the requested reconstructions in order: video, audio, then
// the combined mux when both were produced.
func (p *Pipeline) Process(ctx context.Context, req Request) (Result, error) {
	var res Result
	if req.Video == nil && req.Audio == nil {
		return res, services.Wrap(services.ErrValidation, "process", "", "no input supplied", nil)
	}

	codec := req.AudioCodec
	if codec == "" {
		codec = CodecAAC
	}

	if req.Video != nil {
		videoPath, err := p.RebuildVideo(ctx, req.Video.Path, req.Video.Analysis)
		if err != nil {
			return res, err
		}
		res.VideoPath = videoPath
	}

	if req.Audio != nil {
		audioPath, err := p.AlignAudio(ctx, req.Audio.Path, req.Audio.Analysis, codec)
		if err != nil {
			return res, err
		}
		res.AudioPath = audioPath
	}

	if res.VideoPath != "" && res.AudioPath != "" && codec == CodecAAC {
		muxedPath, err := p.Mux(ctx, res.VideoPath, res.AudioPath)
		if err != nil {
			return res, err
		}
		res.MuxedPath = muxedPath
		res.VideoPath = ""
		res.AudioPath = ""
	}

	return res, nil
}

// outputPath derives an output file name from the input's stem.
func (p *Pipeline) outputPath(inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(p.cfg.Paths.OutputDir, stem+suffix)
}

func (p *Pipeline) startRun(ctx context.Context, runID string, kind runlog.Kind, inputPath string) {
	if p.store == nil {
		return
	}
	if err := p.store.Start(ctx, runID, kind, inputPath); err != nil {
		p.logger.Warn("failed to record run start",
			slog.String(logging.FieldComponent, "rebuild"),
			slog.String(logging.FieldRunID, runID),
			slog.String("error", err.Error()),
		)
	}
}

func (p *Pipeline) finishRun(ctx context.Context, runID, outputPath string) {
	if p.store == nil {
		return
	}
	if err := p.store.Finish(ctx, runID, outputPath); err != nil {
		p.logger.Warn("failed to record run completion",
			slog.String(logging.FieldComponent, "rebuild"),
			slog.String(logging.FieldRunID, runID),
			slog.String("error", err.Error()),
		)
	}
}

func (p *Pipeline) failRun(ctx context.Context, runID, stage string, cause error) {
	if p.store == nil {
		return
	}
	if err := p.store.Fail(ctx, runID, stage, cause); err != nil {
		p.logger.Warn("failed to record run failure",
			slog.String(logging.FieldComponent, "rebuild"),
			slog.String(logging.FieldRunID, runID),
			slog.String("error", err.Error()),
		)
	}
}
