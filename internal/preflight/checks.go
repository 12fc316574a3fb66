package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"restitch/internal/config"
	"restitch/internal/services"
)

// Result captures one check outcome.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run evaluates every check for the given config and returns the results.
func Run(cfg *config.Config) []Result {
	return []Result{
		CheckBinary("ffmpeg", cfg.Tools.FFmpeg),
		CheckBinary("ffprobe", cfg.Tools.FFprobe),
		CheckDirectoryAccess("temp directory", cfg.Paths.TempDir),
		CheckFreeSpace("temp free space", cfg.Paths.TempDir, cfg.Preflight.MinFreeGiB),
	}
}

// Check runs every check and folds failures into one configuration error.
func Check(cfg *config.Config) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "preflight", "", err.Error(), nil)
	}
	var failures []string
	for _, result := range Run(cfg) {
		if !result.Passed {
			failures = append(failures, result.Name+": "+result.Detail)
		}
	}
	if len(failures) > 0 {
		return services.Wrap(services.ErrConfiguration, "preflight", "", strings.Join(failures, "; "), nil)
	}
	return nil
}

// CheckBinary verifies the tool is resolvable, either as an absolute path
// or via PATH.
func CheckBinary(name, binary string) Result {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return Result{Name: name, Detail: "binary not configured"}
	}
	if strings.ContainsRune(binary, os.PathSeparator) {
		if _, err := os.Stat(binary); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", binary, err)}
		}
		return Result{Name: name, Passed: true, Detail: binary}
	}
	resolved, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found in PATH", binary)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path has at least
// minFreeGiB available.
func CheckFreeSpace(name, path string, minFreeGiB int) Result {
	if minFreeGiB <= 0 {
		return Result{Name: name, Passed: true, Detail: "not enforced"}
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	freeBytes := stat.Bavail * uint64(stat.Bsize)
	required := uint64(minFreeGiB) << 30
	if freeBytes < required {
		return Result{Name: name, Detail: fmt.Sprintf("%.1f GiB free, %d GiB required", float64(freeBytes)/(1<<30), minFreeGiB)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB free", float64(freeBytes)/(1<<30))}
}
