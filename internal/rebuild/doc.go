// Package rebuild reconstructs gapped recordings into continuously-playable
// tracks.
//
// A video run is a single forward pass: normalize the raw input into a
// seek-friendly intermediate, plan segments from the gap list, render each
// segment in timeline order (lossless extraction for source segments,
// synthesized filler for gaps), concatenate via stream copy, clean up.
// Audio runs pad the track's start with silence via a resample-then-delay
// filter chain. When one invocation produces both, the pair is muxed into a
// single container.
//
// Every intermediate artifact embeds the run identifier in its name so
// concurrent runs can share one temp directory, and every run's artifacts
// are released on all exit paths.
package rebuild
