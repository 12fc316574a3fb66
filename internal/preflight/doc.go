// Package preflight verifies the runtime environment before a
// reconstruction run starts: external tool availability, temp directory
// access, and free disk space. Failures surface before any external process
// is spawned.
package preflight
