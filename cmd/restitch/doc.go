// Command restitch reconstructs continuous, time-aligned media tracks from
// gapped recordings. It reads per-track analysis sidecars, drives ffmpeg to
// rebuild video timelines and align audio, and muxes matched pairs.
package main
