package runlog

import "time"

// Status represents the lifecycle of a run record.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Kind identifies what a run produced.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindMux   Kind = "mux"
)

// Run is one reconstruction run.
type Run struct {
	ID           int64
	RunID        string
	Kind         Kind
	InputPath    string
	OutputPath   string
	Status       Status
	Stage        string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
