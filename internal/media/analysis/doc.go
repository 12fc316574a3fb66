// Package analysis defines the track analysis record consumed by the
// reconstruction pipeline.
//
// Records are produced by an external analysis step and supplied as JSON.
// The pipeline validates every precondition here before any external process
// is invoked; gap lists are checked for ordering, overlap, and bounds rather
// than trusted.
package analysis
