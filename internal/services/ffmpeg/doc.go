// Package ffmpeg wraps the external ffmpeg binary behind a small Runner
// interface. Every invocation carries a stage label used purely for failure
// attribution; a non-zero exit aborts the calling run with that label.
package ffmpeg
