package preflight

import (
	"strings"
	"testing"

	"restitch/internal/testsupport"
)

func TestCheckPassesWithStubbedBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WithStubbedBinaries(t)(cfg)
	cfg.Preflight.MinFreeGiB = 0

	if err := Check(cfg); err != nil {
		t.Fatalf("expected preflight to pass: %v", err)
	}
}

func TestCheckReportsMissingBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Tools.FFmpeg = "definitely-not-a-real-ffmpeg-binary"
	cfg.Preflight.MinFreeGiB = 0

	err := Check(cfg)
	if err == nil {
		t.Fatal("expected preflight failure for missing binary")
	}
	if !strings.Contains(err.Error(), "ffmpeg") {
		t.Fatalf("expected failing check name in error, got %q", err.Error())
	}
}

func TestCheckBinaryAbsolutePath(t *testing.T) {
	result := CheckBinary("ffmpeg", "/nonexistent/path/ffmpeg")
	if result.Passed {
		t.Fatal("expected failure for missing absolute binary")
	}
}

func TestCheckDirectoryAccessMissing(t *testing.T) {
	result := CheckDirectoryAccess("temp directory", "/nonexistent/restitch-tmp")
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckFreeSpaceNotEnforced(t *testing.T) {
	result := CheckFreeSpace("temp free space", t.TempDir(), 0)
	if !result.Passed {
		t.Fatalf("zero threshold must pass, got %+v", result)
	}
}

func TestCheckFreeSpaceHugeThresholdFails(t *testing.T) {
	// No test machine has an exbibyte free.
	result := CheckFreeSpace("temp free space", t.TempDir(), 1<<30)
	if result.Passed {
		t.Fatalf("expected failure for absurd threshold, got %+v", result)
	}
}
