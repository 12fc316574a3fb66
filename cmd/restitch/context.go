package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"restitch/internal/config"
	"restitch/internal/encoders"
	"restitch/internal/logging"
	"restitch/internal/media/ffprobe"
	"restitch/internal/rebuild"
	"restitch/internal/runlog"
	"restitch/internal/services/ffmpeg"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) newRunner() (ffmpeg.Runner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return ffmpeg.NewCLI(ffmpeg.WithBinary(cfg.Tools.FFmpeg), ffmpeg.WithLogger(logger)), nil
}

// newPipeline wires the full processing stack. The returned store must be
// closed by the caller once the pipeline is done.
func (c *commandContext) newPipeline() (*rebuild.Pipeline, *runlog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	runner, err := c.newRunner()
	if err != nil {
		return nil, nil, err
	}
	store, err := runlog.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	resolver := encoders.NewResolver(runner, logger)
	probe := func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, cfg.Tools.FFprobe, path)
	}
	pipeline := rebuild.New(cfg, runner, resolver,
		rebuild.WithStore(store),
		rebuild.WithLogger(logger),
		rebuild.WithProbe(probe),
	)
	return pipeline, store, nil
}
