// Package services defines shared utilities consumed by the reconstruction
// pipeline and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and stage labels for logging.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (validation vs external tool) uniform across stages.
//
// Use these helpers when wiring new stage logic so operational behaviour
// stays consistent across the pipeline.
package services
