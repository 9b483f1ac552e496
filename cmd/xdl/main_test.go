package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunFile(t *testing.T) {
	isolate(t)
	filename := writeTempXDLFile(t, "x = 2 + 3\nPRINT, 'x is', x\n")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{filename})
	})

	if code != exitOK {
		t.Fatalf("run exit=%d\nstderr:\n%s", code, errOut)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	if out != "x is 5\n" {
		t.Fatalf("stdout = %q, want %q", out, "x is 5\n")
	}
}

func TestRunEval(t *testing.T) {
	isolate(t)
	setFlag(t, evalSrc, "PRINT, TOTAL([1, 2, 3])")
	code, out, errOut := captureOutput(t, func() int {
		return run(nil)
	})
	if code != exitOK || out != "6.0\n" {
		t.Fatalf("exit=%d stdout=%q stderr=%q", code, out, errOut)
	}
}

func TestRunStdin(t *testing.T) {
	isolate(t)
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdin: %v", err)
	}
	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = old
		_ = r.Close()
	})
	if _, err := w.WriteString("FOR i = 1, 3 DO PRINT, i * i\n"); err != nil {
		t.Fatal(err)
	}
	_ = w.Close()

	code, out, errOut := captureOutput(t, func() int {
		return run(nil)
	})
	if code != exitOK || out != "1\n4\n9\n" {
		t.Fatalf("exit=%d stdout=%q stderr=%q", code, out, errOut)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    int
		stdout  string
		wantErr []string
	}{
		{
			name:    "unknown procedure",
			src:     "FOO_BAR, 1",
			code:    exitRuntime,
			wantErr: []string{"% UnknownProcedure: ", "is not defined", " at <command line>:1:"},
		},
		{
			name:    "output before error is kept",
			src:     "PRINT, 1\nPRINT, nothing_here",
			code:    exitRuntime,
			stdout:  "1\n",
			wantErr: []string{"% UnknownVariable: ", "<command line>:2:"},
		},
		{
			name:    "division by zero",
			src:     "x = 1 / 0",
			code:    exitRuntime,
			wantErr: []string{"% Arithmetic: "},
		},
		{
			name:    "incomplete",
			src:     "x = (1 +",
			code:    exitSyntax,
			wantErr: []string{"% ParseError: "},
		},
		{
			name:    "unterminated string",
			src:     "x = 'abc",
			code:    exitSyntax,
			wantErr: []string{"% LexError: string literal not terminated at <command line>:1:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			setFlag(t, evalSrc, tt.src)
			code, out, errOut := captureOutput(t, func() int {
				return run(nil)
			})
			if code != tt.code {
				t.Fatalf("exit=%d, want %d\nstderr:\n%s", code, tt.code, errOut)
			}
			if out != tt.stdout {
				t.Errorf("stdout = %q, want %q", out, tt.stdout)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(errOut, want) {
					t.Errorf("stderr missing %q:\n%s", want, errOut)
				}
			}
		})
	}
}

func TestRunSystemErrors(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "missing.pro")
	code, _, errOut := captureOutput(t, func() int {
		return run([]string{missing})
	})
	if code != exitSystem || !strings.HasPrefix(errOut, "% System: ") {
		t.Fatalf("missing file: exit=%d stderr=%q", code, errOut)
	}

	code, _, _ = captureOutput(t, func() int {
		return run([]string{missing, missing})
	})
	if code != exitSystem {
		t.Fatalf("two files: exit=%d, want %d", code, exitSystem)
	}

	bad := writeTempFile(t, "bad.yaml", "colour: never\n")
	setFlag(t, configPath, bad)
	setFlag(t, evalSrc, "PRINT, 1")
	code, out, errOut := captureOutput(t, func() int {
		return run(nil)
	})
	if code != exitSystem || out != "" {
		t.Fatalf("bad config: exit=%d stdout=%q stderr=%q", code, out, errOut)
	}
}

func TestRunEmitTokens(t *testing.T) {
	isolate(t)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTokens(newLogger(os.Stderr, false), "t.pro", []byte("x = 42 ; answer"))
	})
	if code != exitOK {
		t.Fatalf("runEmitTokens exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"POSITION", "t.pro:1:1", "42 (int)", "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("token output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "answer") {
		t.Errorf("comment text leaked into tokens:\n%s", out)
	}

	code, _, errOut = captureOutput(t, func() int {
		return runEmitTokens(newLogger(os.Stderr, false), "t.pro", []byte("x = 'open"))
	})
	if code != exitSyntax || !strings.Contains(errOut, "% LexError: ") {
		t.Fatalf("lex error: exit=%d stderr=%q", code, errOut)
	}
}

func TestRunEmitAST(t *testing.T) {
	isolate(t)
	src := []byte("FUNCTION sq, x\n  RETURN, x * x\nEND\nPRINT, sq(3)\n")

	setFlag(t, astFormat, "json")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(newLogger(os.Stderr, false), "t.pro", src)
	})
	if code != exitOK {
		t.Fatalf("runEmitAST exit=%d\nstderr:\n%s", code, errOut)
	}
	if !json.Valid([]byte(out)) {
		t.Fatalf("json AST output is not valid JSON:\n%s", out)
	}
	if !strings.Contains(out, `"type": "File"`) {
		t.Errorf("json AST missing File node:\n%s", out)
	}

	setFlag(t, astFormat, "text")
	code, out, _ = captureOutput(t, func() int {
		return runEmitAST(newLogger(os.Stderr, false), "t.pro", src)
	})
	if code != exitOK || out == "" {
		t.Fatalf("text AST: exit=%d stdout=%q", code, out)
	}

	setFlag(t, astFormat, "yaml")
	code, _, _ = captureOutput(t, func() int {
		return runEmitAST(newLogger(os.Stderr, false), "t.pro", src)
	})
	if code != exitSystem {
		t.Fatalf("unknown format: exit=%d, want %d", code, exitSystem)
	}
}

func TestTrace(t *testing.T) {
	isolate(t)
	setFlag(t, trace, true)
	setFlag(t, evalSrc, "x = 1")
	code, _, errOut := captureOutput(t, func() int {
		return run(nil)
	})
	if code != exitOK {
		t.Fatalf("exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"% trace lex", "% trace parse", "% trace run", "tokens", "nodes"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("trace output missing %q:\n%s", want, errOut)
		}
	}
}

func TestStartupScripts(t *testing.T) {
	isolate(t)
	lib := writeTempFile(t, "lib.pro", "FUNCTION sq, x\n  RETURN, x * x\nEND\nscale = 10\n")
	cfg := writeTempFile(t, "xdlrc.yaml", "startup:\n  - "+lib+"\ncolor: never\n")
	setFlag(t, configPath, cfg)
	setFlag(t, evalSrc, "PRINT, sq(4) + scale")

	code, out, errOut := captureOutput(t, func() int {
		return run(nil)
	})
	if code != exitOK || out != "26\n" {
		t.Fatalf("exit=%d stdout=%q stderr=%q", code, out, errOut)
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"x = 1", false},
		{"PRINT, [1, 2,", true},
		{"FOR i = 0, 2 DO BEGIN", true},
		{"FOR i = 0, 2 DO BEGIN\n PRINT, i\nENDFOR", false},
		{"PRO hello", true},
		{"x = )", false},
	}
	for _, tt := range tests {
		if got := needsMore(tt.src); got != tt.want {
			t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"exit", "EXIT"},
		{" .reset ", ".RESET"},
		{"PRINT, 1", "?"},
		{"x = 1", "?"},
	}
	for _, tt := range tests {
		if got := command(tt.src); got != tt.want {
			t.Errorf("command(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, true).system(errors.New("disk on fire"))
	got := buf.String()
	if !strings.HasPrefix(got, ansiRedBold+"% System: ") || !strings.Contains(got, ansiReset) {
		t.Errorf("colored output = %q", got)
	}

	buf.Reset()
	newLogger(&buf, false).report(errors.New("plain failure"))
	if got := buf.String(); got != "% Runtime: plain failure\n" {
		t.Errorf("plain output = %q", got)
	}
}

// isolate points HOME at an empty directory so no user configuration is
// read, and restores the command line flags afterwards.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	setFlag(t, evalSrc, "")
	setFlag(t, configPath, "")
	setFlag(t, trace, false)
	setFlag(t, astFormat, "text")
}

func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func writeTempXDLFile(t *testing.T, src string) string {
	t.Helper()
	return writeTempFile(t, "input.pro", src)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
