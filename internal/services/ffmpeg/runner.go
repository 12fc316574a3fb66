package ffmpeg

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"restitch/internal/logging"
	"restitch/internal/services"
)

var commandContext = exec.CommandContext

// Runner executes labelled ffmpeg invocations.
type Runner interface {
	// Execute runs one ffmpeg process to completion. label identifies the
	// pipeline stage for failure attribution and logging.
	Execute(ctx context.Context, label string, args []string) error
	// Encoders returns the names of the encoders the binary supports.
	Encoders(ctx context.Context) ([]string, error)
}

// Option configures the CLI runner.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogger attaches a logger to the runner.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI wraps the ffmpeg command-line tool.
type CLI struct {
	binary string
	logger *slog.Logger
}

// NewCLI constructs a runner using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Execute launches ffmpeg with the literal argument vector and waits for it
// to exit. Output is captured and folded into the error on failure.
func (c *CLI) Execute(ctx context.Context, label string, args []string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("stage label required")
	}
	if len(args) == 0 {
		return errors.New("argument vector required")
	}

	c.logger.Debug("running ffmpeg",
		slog.String(logging.FieldComponent, "ffmpeg"),
		slog.String(logging.FieldStage, label),
		slog.String("args", strings.Join(args, " ")),
	)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, label, "ffmpeg", tail(output), err)
	}
	return nil
}

// Encoders probes the binary's encoder list. Callers treat any error as
// "preferred encoder unsupported" rather than a fatal condition.
func (c *CLI) Encoders(ctx context.Context) ([]string, error) {
	cmd := commandContext(ctx, c.binary, "-hide_banner", "-encoders")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "probe", "ffmpeg -encoders", tail(output), err)
	}
	return parseEncoders(string(output)), nil
}

// parseEncoders extracts encoder names from `ffmpeg -encoders` output. Rows
// look like " A....D aac  AAC (Advanced Audio Coding)" after a "------"
// separator line.
func parseEncoders(output string) []string {
	var names []string
	seen := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if !seen {
			if strings.HasPrefix(trimmed, "------") {
				seen = true
			}
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		names = append(names, fields[1])
	}
	return names
}

// tail returns the last few lines of process output, which is where ffmpeg
// reports the actual failure.
func tail(output []byte) string {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 4 {
		lines = lines[len(lines)-4:]
	}
	return strings.Join(lines, " | ")
}
