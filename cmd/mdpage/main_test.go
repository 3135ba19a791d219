package main

// Notes:
// - runMain: we test dispatch and exit codes with an injected Environment;
//   actual page builds are covered in build_test.go
// - isCommand/looksLikeMarkdown/verboseRequested: pure argument helpers
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpage/internal/config"
)

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    time.Now,
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
	}, stdout, stderr
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"mdpage"}, ExitUsage, "", "Usage: mdpage"},
		{"version", []string{"mdpage", "version"}, ExitSuccess, "go-mdpage " + Version, ""},
		{"version flag", []string{"mdpage", "--version"}, ExitSuccess, "go-mdpage", ""},
		{"help", []string{"mdpage", "help"}, ExitSuccess, "Commands:", ""},
		{"help short flag", []string{"mdpage", "-h"}, ExitSuccess, "Commands:", ""},
		{"help build", []string{"mdpage", "help", "build"}, ExitSuccess, "--image-policy", ""},
		{"completion bash", []string{"mdpage", "completion", "bash"}, ExitSuccess, "_mdpage_completions", ""},
		{"completion unknown shell", []string{"mdpage", "completion", "tcsh"}, ExitUsage, "", "unsupported shell"},
		{"unknown command", []string{"mdpage", "serve"}, ExitUsage, "", "Unknown command: serve"},
		{"build help", []string{"mdpage", "build", "--help"}, ExitSuccess, "", "Usage: mdpage build"},
		{"bad flag", []string{"mdpage", "build", "--nope"}, ExitUsage, "", "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestArgumentHelpers - Pre-parse argument inspection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg, name string
		want      bool
	}{
		{"version", "version", true},
		{"--version", "version", true},
		{"-h", "help", true},
		{"-h", "version", false},
		{"build", "version", false},
	}

	for _, tt := range tests {
		if got := isCommand(tt.arg, tt.name); got != tt.want {
			t.Errorf("isCommand(%q, %q) = %v, want %v", tt.arg, tt.name, got, tt.want)
		}
	}
}

func TestLooksLikeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"README.md", true},
		{"docs/GUIDE.MD", true},
		{"notes.markdown", true},
		{"page.html", false},
		{"md", false},
	}

	for _, tt := range tests {
		if got := looksLikeMarkdown(tt.arg); got != tt.want {
			t.Errorf("looksLikeMarkdown(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestVerboseRequested(t *testing.T) {
	t.Parallel()

	if !verboseRequested([]string{"mdpage", "build", "a.md", "-v"}) {
		t.Error("-v not detected")
	}
	if !verboseRequested([]string{"mdpage", "--verbose"}) {
		t.Error("--verbose not detected")
	}
	if verboseRequested([]string{"mdpage", "build", "-vq"}) {
		t.Error("combined short flags are not inspected")
	}
}

func TestMaxprocsLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	maxprocsLogger(false, &buf)("maxprocs: %d", 4)
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}

	maxprocsLogger(true, &buf)("maxprocs: %d", 4)
	if buf.String() != "maxprocs: 4\n" {
		t.Errorf("verbose logger wrote %q", buf.String())
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}
