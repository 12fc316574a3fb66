// Package sweep removes stale intermediate artifacts left behind in the temp
// directory by interrupted runs. An flock on the temp directory prevents two
// sweeps from racing each other.
package sweep
