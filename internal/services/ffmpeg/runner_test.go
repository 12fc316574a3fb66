package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"restitch/internal/services"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/ffmpeg"))
	if cli.binary != "/opt/ffmpeg" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestExecuteRequiresLabel(t *testing.T) {
	cli := NewCLI()
	if err := cli.Execute(context.Background(), "", []string{"-version"}); err == nil {
		t.Fatal("expected error when stage label is empty")
	}
}

func TestExecuteRequiresArgs(t *testing.T) {
	cli := NewCLI()
	if err := cli.Execute(context.Background(), "normalize", nil); err == nil {
		t.Fatal("expected error when argument vector is empty")
	}
}

func TestExecutePassesLiteralArgs(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	args := []string{"-y", "-i", "in.mp4", "-c", "copy", "out.mp4"}
	if err := NewCLI().Execute(context.Background(), "concat", args); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if strings.Join(capturedArgs, " ") != strings.Join(args, " ") {
		t.Fatalf("expected argv passthrough, got %v", capturedArgs)
	}
}

func TestExecuteFailureCarriesLabel(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE=failure")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	err := NewCLI().Execute(context.Background(), "seg4", []string{"-y"})
	if err == nil {
		t.Fatal("expected failure for non-zero exit")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "seg4") {
		t.Fatalf("expected stage label in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "No such filter") {
		t.Fatalf("expected captured diagnostics in error, got %q", err.Error())
	}
}

func TestEncodersParsesNames(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE=encoders")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	names, err := NewCLI().Encoders(context.Background())
	if err != nil {
		t.Fatalf("Encoders returned error: %v", err)
	}
	want := []string{"aac", "libfdk_aac", "libx264"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestParseEncodersIgnoresHeader(t *testing.T) {
	output := "Encoders:\n V..... = Video\n ------\n V....D libx264    H.264\n"
	names := parseEncoders(output)
	if len(names) != 1 || names[0] != "libx264" {
		t.Fatalf("expected only libx264, got %v", names)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "[AVFilterGraph] No such filter: 'bogus'")
		os.Exit(1)
	case "encoders":
		fmt.Println("Encoders:")
		fmt.Println(" V..... = Video")
		fmt.Println(" ------")
		fmt.Println(" A....D aac                  AAC (Advanced Audio Coding)")
		fmt.Println(" A....D libfdk_aac           Fraunhofer FDK AAC")
		fmt.Println(" V....D libx264              H.264 / AVC")
		os.Exit(0)
	default:
		os.Exit(0)
	}
}
