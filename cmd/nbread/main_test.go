package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tnwei/nbread/internal/app"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

const notebookJSON = `{"cells": [
  {"cell_type": "code", "execution_count": 1, "source": "a\nb\nc\nd",
   "outputs": [{"output_type": "execute_result", "execution_count": 1, "data": {"text/plain": "42"}}]}
]}`

func runCLI(t *testing.T, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	if env == nil {
		env = map[string]string{}
	}
	if _, ok := env["NBREAD_CONFIG"]; !ok {
		env["NBREAD_CONFIG"] = filepath.Join(t.TempDir(), "absent.toml")
	}
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, envFrom(env))
	return code, stdout.String(), stderr.String()
}

func TestRenderNotebook(t *testing.T) {
	path := writeFile(t, "nb.ipynb", notebookJSON)
	code, stdout, stderr := runCLI(t, nil, path)
	if code != app.ExitOK {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"In [1]:", "Out[1]:", "42"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestHeadFlag(t *testing.T) {
	path := writeFile(t, "nb.ipynb", notebookJSON)
	code, stdout, stderr := runCLI(t, nil, "--head", "2", "--paging", "never", path)
	if code != app.ExitOK {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "│ b") || strings.Contains(stdout, "│ c") {
		t.Fatalf("head 2 should keep only the first two lines:\n%s", stdout)
	}
}

func TestUsageAndConfigErrors(t *testing.T) {
	path := writeFile(t, "nb.ipynb", notebookJSON)
	tests := []struct {
		name string
		env  map[string]string
		args []string
		msg  string
	}{
		{"no path", nil, nil, "expected one notebook path"},
		{"unknown flag", nil, []string{"--bogus", path}, "unknown flag"},
		{"head and tail", nil, []string{"--head", "1", "--tail", "1", path}, "cannot specify both head and tail"},
		{"bad paging", nil, []string{"--paging", "sometimes", path}, "paging"},
		{"paging is case-sensitive", nil, []string{"--paging", "AUTO", path}, "invalid mode"},
		{"bad env paging", map[string]string{"NBREAD_PAGING": "maybe"}, []string{path}, "NBREAD_PAGING"},
		{"unknown theme", nil, []string{"--theme", "nope", path}, "unknown theme"},
		{"explicit config missing", nil, []string{"--config", filepath.Join(t.TempDir(), "x.toml"), path}, "cannot read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.env, tt.args...)
			if code != app.ExitConfigError {
				t.Fatalf("exit %d, want %d; stderr: %s", code, app.ExitConfigError, stderr)
			}
			if !strings.Contains(stderr, tt.msg) {
				t.Fatalf("stderr %q should mention %q", stderr, tt.msg)
			}
			if stdout != "" {
				t.Fatalf("nothing should be rendered, got %q", stdout)
			}
		})
	}
}

func TestLoadErrorExitCode(t *testing.T) {
	code, _, stderr := runCLI(t, nil, filepath.Join(t.TempDir(), "missing.ipynb"))
	if code != app.ExitFailure {
		t.Fatalf("exit %d, want %d", code, app.ExitFailure)
	}
	if !strings.Contains(stderr, "cannot read") {
		t.Fatalf("stderr should explain the load failure: %q", stderr)
	}
}

func TestPrecedence(t *testing.T) {
	nb := writeFile(t, "nb.ipynb", notebookJSON)
	cfg := writeFile(t, "config.toml", "line_numbers = true\npaging = \"never\"\ntheme = \"monokai\"\n")

	code, stdout, stderr := runCLI(t, map[string]string{"NBREAD_CONFIG": cfg}, nb)
	if code != app.ExitOK {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, " 1 a") {
		t.Fatalf("config file should enable line numbers:\n%s", stdout)
	}

	code, stdout, stderr = runCLI(t, map[string]string{"NBREAD_CONFIG": cfg}, "--line-numbers=false", nb)
	if code != app.ExitOK {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if strings.Contains(stdout, " 1 a") {
		t.Fatalf("flag should override the config file:\n%s", stdout)
	}

	code, _, stderr = runCLI(t, map[string]string{"NBREAD_CONFIG": cfg, "NBREAD_THEME": "nope"}, nb)
	if code != app.ExitConfigError || !strings.Contains(stderr, "unknown theme") {
		t.Fatalf("environment should override the config file: exit %d, %s", code, stderr)
	}
}

func TestDebugLogging(t *testing.T) {
	path := writeFile(t, "nb.ipynb", notebookJSON)
	code, _, stderr := runCLI(t, nil, "--debug", path)
	if code != app.ExitOK {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, "notebook loaded") {
		t.Fatalf("debug logging should report the load: %q", stderr)
	}
}
