package config

import (
	"errors"
	"fmt"
	"regexp"
)

var bitratePattern = regexp.MustCompile(`^[0-9]+[kKmM]?$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateSweep(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.TempDir == "" {
		return errors.New("paths.temp_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.TempDir == c.Paths.OutputDir {
		return errors.New("paths.temp_dir and paths.output_dir must differ")
	}
	return nil
}

func (c *Config) validateVideo() error {
	if !bitratePattern.MatchString(c.Video.Bitrate) {
		return fmt.Errorf("video.bitrate %q is not a valid bitrate (expected e.g. 3000k)", c.Video.Bitrate)
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.WAVSampleRate <= 0 {
		return errors.New("audio.wav_sample_rate must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not supported (console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateSweep() error {
	if c.Sweep.MaxAgeHours <= 0 {
		return errors.New("sweep.max_age_hours must be positive")
	}
	if c.Preflight.MinFreeGiB < 0 {
		return errors.New("preflight.min_free_gib must not be negative")
	}
	return nil
}
