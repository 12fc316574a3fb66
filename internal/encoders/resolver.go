package encoders

import (
	"context"
	"log/slog"
	"sync"

	"restitch/internal/logging"
	"restitch/internal/services/ffmpeg"
)

const preferredEncoder = "libfdk_aac"

// Config is the immutable encoder selection for the rest of the process.
type Config struct {
	Codec      string
	Bitrate    string
	SampleRate int
	Profile    string
	Fallback   bool
}

// Preferred returns the high-quality configuration used when libfdk_aac is
// available.
func Preferred() Config {
	return Config{Codec: preferredEncoder, Bitrate: "256k", SampleRate: 48000, Profile: "aac_low"}
}

// FallbackConfig returns the configuration used when the preferred encoder
// is absent or the probe fails.
func FallbackConfig() Config {
	return Config{Codec: "aac", Bitrate: "192k", SampleRate: 48000, Fallback: true}
}

// Resolver caches the probe result for the lifetime of the process.
type Resolver struct {
	runner ffmpeg.Runner
	logger *slog.Logger

	once sync.Once
	cfg  Config
}

// NewResolver constructs a resolver backed by the given runner.
func NewResolver(runner ffmpeg.Runner, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{runner: runner, logger: logger}
}

// Resolve probes the encoder set on first call and returns the cached
// configuration thereafter.
func (r *Resolver) Resolve(ctx context.Context) Config {
	r.once.Do(func() {
		r.cfg = r.probe(ctx)
	})
	return r.cfg
}

func (r *Resolver) probe(ctx context.Context) Config {
	names, err := r.runner.Encoders(ctx)
	if err != nil {
		r.logger.Warn("encoder probe failed, using fallback encoder",
			slog.String(logging.FieldComponent, "encoders"),
			slog.String("error", err.Error()),
		)
		return FallbackConfig()
	}
	for _, name := range names {
		if name == preferredEncoder {
			return Preferred()
		}
	}
	r.logger.Warn("preferred encoder unavailable, using fallback encoder",
		slog.String(logging.FieldComponent, "encoders"),
		slog.String("preferred", preferredEncoder),
		slog.String("fallback", FallbackConfig().Codec),
	)
	return FallbackConfig()
}
