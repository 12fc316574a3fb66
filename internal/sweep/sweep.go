package sweep

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"restitch/internal/config"
	"restitch/internal/logging"
	"restitch/internal/rebuild"
	"restitch/internal/services"
)

const lockFileName = "sweep.lock"

// Sweeper removes aged intermediate files from the temp directory.
type Sweeper struct {
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Sweeper.
type Option func(*Sweeper)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Sweeper for the given config.
func New(cfg *config.Config, opts ...Option) *Sweeper {
	s := &Sweeper{
		cfg:    cfg,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run deletes intermediate artifacts in the temp directory older than the
// configured maximum age and returns how many entries were removed. A second
// concurrent sweep is refused rather than queued.
func (s *Sweeper) Run() (int, error) {
	tempDir := s.cfg.Paths.TempDir
	if _, err := os.Stat(tempDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat temp dir: %w", err)
	}

	lock := flock.New(filepath.Join(tempDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire sweep lock: %w", err)
	}
	if !ok {
		return 0, services.Wrap(services.ErrValidation, "sweep", "", "another sweep is already running", nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			s.logger.Warn("failed to release sweep lock", "error", unlockErr)
		}
	}()

	maxAge := time.Duration(s.cfg.Sweep.MaxAgeHours) * time.Hour
	cutoff := s.now().Add(-maxAge)

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return 0, fmt.Errorf("read temp dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), rebuild.ArtifactPrefix) {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			s.logger.Warn("skipping unreadable temp entry", "entry", entry.Name(), "error", infoErr)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(tempDir, entry.Name())
		if removeErr := os.RemoveAll(path); removeErr != nil {
			s.logger.Warn("failed to remove stale artifact", "path", path, "error", removeErr)
			continue
		}
		s.logger.Info("removed stale artifact", "path", path, "age", s.now().Sub(info.ModTime()).Round(time.Minute).String())
		removed++
	}
	return removed, nil
}
