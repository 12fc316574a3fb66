// Package runlog persists one record per reconstruction run in SQLite.
//
// The ledger answers two operator questions: which stage a failed run died
// in, and which run identifier a crashed run's leftover temp artifacts
// belong to. It carries no workflow state; each run is a single forward pass
// recorded at start and at completion or failure.
package runlog
