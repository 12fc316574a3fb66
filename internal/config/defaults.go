package config

const (
	defaultTempDir       = "~/.local/share/restitch/tmp"
	defaultOutputDir     = "~/recordings/processed"
	defaultLogDir        = "~/.local/share/restitch/logs"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultVideoCodec    = "libx264"
	defaultVideoBitrate  = "3000k"
	defaultFillColor     = "black"
	defaultWAVSampleRate = 16000
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultSweepAgeHours = 24
	defaultMinFreeGiB    = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TempDir:   defaultTempDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Video: Video{
			Codec:     defaultVideoCodec,
			Bitrate:   defaultVideoBitrate,
			FillColor: defaultFillColor,
		},
		Audio: Audio{
			WAVSampleRate: defaultWAVSampleRate,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Sweep: Sweep{
			MaxAgeHours: defaultSweepAgeHours,
		},
		Preflight: Preflight{
			MinFreeGiB: defaultMinFreeGiB,
		},
	}
}
