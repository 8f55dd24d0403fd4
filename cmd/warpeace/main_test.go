package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/warpeace/internal/app"
)

const book = `CHAPTER 1 The war began and the battle raged.
CHAPTER 2 Then came peace and love and more peace.
*** END OF THE PROJECT GUTENBERG EBOOK ***
`

// workspace writes a book and both term lists into a fresh directory and isolates
// the run from any user configuration.
func workspace(t *testing.T) (dir string, args []string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("HOME", t.TempDir())

	files := map[string]string{
		"book.txt":        book,
		"war_terms.txt":   "war\nbattle\n",
		"peace_terms.txt": "peace\nlove\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	return dir, []string{
		"--war-terms", filepath.Join(dir, "war_terms.txt"),
		"--peace-terms", filepath.Join(dir, "peace_terms.txt"),
		"--quiet",
	}
}

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunClassifiesBook(t *testing.T) {
	dir, args := workspace(t)

	tests := []struct {
		name  string
		extra []string
		want  string
	}{
		{
			name: "frequency",
			want: "Chapter 1: WAR\nChapter 2: PEACE\n",
		},
		{
			name:  "weighted",
			extra: []string{"--strategy", "weighted"},
			want:  "Chapter 1: WAR\nChapter 2: PEACE\n",
		},
		{
			name:  "bare with summary",
			extra: []string{"--bare", "--summary"},
			want:  "WAR\nPEACE\nWar: 1, Peace: 1, Undecided: 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv := append(append(append([]string{}, args...), tt.extra...), filepath.Join(dir, "book.txt"))
			code, stdout, stderr := execute(t, argv...)
			if code != 0 {
				t.Fatalf("run() = %d, want 0; stderr:\n%s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("run() stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRunArgumentCount(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, argv := range [][]string{{}, {"a.txt", "b.txt"}} {
		code, stdout, stderr := execute(t, argv...)
		if code != 1 {
			t.Errorf("run(%q) = %d, want 1", argv, code)
		}
		if stdout != "" {
			t.Errorf("run(%q) wrote to stdout: %q", argv, stdout)
		}
		if !strings.Contains(stderr, "invalid number of arguments") || !strings.Contains(stderr, "Usage: warpeace") {
			t.Errorf("run(%q) stderr = %q, want argument error and usage", argv, stderr)
		}
	}
}

func TestRunFailuresExitOne(t *testing.T) {
	dir, args := workspace(t)

	tests := []struct {
		name      string
		argv      []string
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "missing war terms",
			argv:      []string{"--war-terms", filepath.Join(dir, "missing.txt"), filepath.Join(dir, "book.txt")},
			wantLevel: "level=FATAL",
			wantMsg:   "could not read war terms",
		},
		{
			name:      "missing book",
			argv:      append(append([]string{}, args...), filepath.Join(dir, "missing-book.txt")),
			wantLevel: "level=ERROR",
			wantMsg:   "could not read file",
		},
		{
			name:      "unknown format",
			argv:      append(append([]string{}, args...), "--format", "xml", filepath.Join(dir, "book.txt")),
			wantLevel: "level=ERROR",
			wantMsg:   "unknown output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, tt.argv...)
			if code != 1 {
				t.Errorf("run() = %d, want 1", code)
			}
			if stdout != "" {
				t.Errorf("run() wrote partial output: %q", stdout)
			}
			if !strings.Contains(stderr, tt.wantLevel) || !strings.Contains(stderr, tt.wantMsg) {
				t.Errorf("run() stderr = %q, want %s and %q", stderr, tt.wantLevel, tt.wantMsg)
			}
		})
	}
}

func TestRunNoChapters(t *testing.T) {
	dir, args := workspace(t)
	empty := filepath.Join(dir, "preface.txt")
	if err := os.WriteFile(empty, []byte("Only a preface here."), 0o644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := execute(t, append(args, empty)...)
	if code != 1 || stdout != "" {
		t.Errorf("run() = %d with stdout %q, want 1 and no output", code, stdout)
	}
	if !strings.Contains(stderr, "could not find chapters") {
		t.Errorf("run() stderr = %q, want chapter error", stderr)
	}
}

func TestConfigPrecedence(t *testing.T) {
	dir, args := workspace(t)
	configPath := filepath.Join(dir, "warpeace.yaml")
	if err := os.WriteFile(configPath, []byte("strategy: weighted\nformat: yaml\nbare: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WARPEACE_FORMAT", "json")

	// config file sets the strategy, env overrides its format, the flag overrides both
	code, stdout, stderr := execute(t, "config", "show", "--config", configPath)
	if code != 0 {
		t.Fatalf("config show = %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{"strategy: weighted", "format: json", "bare: true"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show output missing %q:\n%s", want, stdout)
		}
	}

	argv := append(append([]string{"--config", configPath, "--format", "text"}, args...), filepath.Join(dir, "book.txt"))
	code, stdout, stderr = execute(t, argv...)
	if code != 0 {
		t.Fatalf("run() = %d, stderr:\n%s", code, stderr)
	}
	if stdout != "WAR\nPEACE\n" {
		t.Errorf("run() stdout = %q, want bare text output", stdout)
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	code, stdout, _ := execute(t, "version")
	if code != 0 || strings.TrimSpace(stdout) != version {
		t.Errorf("version = %d %q, want 0 %q", code, stdout, version)
	}
}

func TestSetupLoggerFatalLevel(t *testing.T) {
	var buf bytes.Buffer
	setupLogger(&buf, false, true)
	logFailure(os.ErrNotExist)
	if !strings.Contains(buf.String(), "level=ERROR") {
		t.Errorf("plain failure logged as %q, want ERROR", buf.String())
	}

	buf.Reset()
	setupLogger(&buf, false, false)
	defer setupLogger(os.Stderr, false, false)
	logFailure(&app.Error{Stage: app.Loading, Kind: app.KindFatal, Op: "could not read war terms", Err: os.ErrNotExist})
	if !strings.Contains(buf.String(), "level=FATAL") {
		t.Errorf("fatal record logged as %q, want FATAL", buf.String())
	}
}
