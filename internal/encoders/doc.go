// Package encoders resolves the audio encoder configuration once per
// process. The preferred high-quality encoder is used when the ffmpeg build
// carries it; otherwise the built-in encoder is selected with a warning.
// A failed probe selects the fallback, never an error.
package encoders
