// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// The pipeline uses it in two places: verifying mux preconditions (exactly
// one video and one audio elementary stream) and checking the duration of an
// assembled output against the logical timeline.
package ffprobe
