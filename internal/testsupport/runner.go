package testsupport

import (
	"context"
	"fmt"
	"os"
	"sync"

	"restitch/internal/services"
)

// Call records one Execute invocation made against a ScriptRunner.
type Call struct {
	Label string
	Args  []string
}

// ScriptRunner is an in-memory ffmpeg.Runner for tests. It records every
// invocation and optionally fails at a chosen stage label. When CreateOutput
// is set, the last argument of each invocation is treated as an output path
// and an empty file is created there, mimicking ffmpeg's side effect.
type ScriptRunner struct {
	mu sync.Mutex

	Calls        []Call
	FailLabel    string
	CreateOutput bool

	EncoderNames  []string
	EncodersErr   error
	EncoderProbes int
}

// Execute records the call and honours FailLabel/CreateOutput.
func (r *ScriptRunner) Execute(_ context.Context, label string, args []string) error {
	r.mu.Lock()
	r.Calls = append(r.Calls, Call{Label: label, Args: append([]string(nil), args...)})
	r.mu.Unlock()

	if r.FailLabel != "" && label == r.FailLabel {
		return services.Wrap(services.ErrExternalTool, label, "ffmpeg", "scripted failure", fmt.Errorf("exit status 1"))
	}
	if r.CreateOutput && len(args) > 0 {
		if err := os.WriteFile(args[len(args)-1], nil, 0o644); err != nil {
			return fmt.Errorf("create scripted output: %w", err)
		}
	}
	return nil
}

// Encoders returns the scripted encoder list.
func (r *ScriptRunner) Encoders(context.Context) ([]string, error) {
	r.mu.Lock()
	r.EncoderProbes++
	r.mu.Unlock()
	if r.EncodersErr != nil {
		return nil, r.EncodersErr
	}
	return append([]string(nil), r.EncoderNames...), nil
}

// Labels returns the stage labels in invocation order.
func (r *ScriptRunner) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	labels := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		labels = append(labels, call.Label)
	}
	return labels
}

// ArgsFor returns the argument vector recorded for a stage label, or nil.
func (r *ScriptRunner) ArgsFor(label string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, call := range r.Calls {
		if call.Label == label {
			return call.Args
		}
	}
	return nil
}
