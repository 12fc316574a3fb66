package rebuild

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"restitch/internal/logging"
)

// ArtifactPrefix starts every temp artifact name. The sweep command relies
// on it to identify leftovers from crashed runs.
const ArtifactPrefix = "restitch_"

// TempSet tracks every intermediate artifact one run creates. Paths are
// registered when allocated, before the artifact exists, so cleanup covers
// every exit path including failures partway through a render.
type TempSet struct {
	dir    string
	runID  string
	logger *slog.Logger

	mu    sync.Mutex
	paths []string
}

// NewTempSet creates a registry for one run's artifacts under dir.
func NewTempSet(dir, runID string, logger *slog.Logger) *TempSet {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TempSet{dir: dir, runID: runID, logger: logger}
}

// Path allocates and registers the artifact path for a role, e.g. "full.mp4"
// or "seg3.mp4". Names embed the run identifier so concurrent runs sharing
// the temp directory never collide.
func (t *TempSet) Path(role string) string {
	path := filepath.Join(t.dir, ArtifactPrefix+t.runID+"_"+role)
	t.mu.Lock()
	t.paths = append(t.paths, path)
	t.mu.Unlock()
	return path
}

// Cleanup removes every registered artifact. Missing files are fine; other
// removal failures are logged and left for the sweep command.
func (t *TempSet) Cleanup() {
	t.mu.Lock()
	paths := append([]string(nil), t.paths...)
	t.paths = nil
	t.mu.Unlock()

	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.logger.Warn("failed to remove temp artifact",
				slog.String(logging.FieldComponent, "rebuild"),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}
}
