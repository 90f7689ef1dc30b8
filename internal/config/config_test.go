package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParsePagingMode(t *testing.T) {
	for _, in := range []string{"auto", "never", "always"} {
		mode, err := ParsePagingMode(in)
		if err != nil {
			t.Fatalf("ParsePagingMode(%q): %v", in, err)
		}
		if string(mode) != in {
			t.Fatalf("ParsePagingMode(%q) = %q", in, mode)
		}
	}
	for _, in := range []string{"sometimes", "", "AUTO", " Always ", "Never", "auto "} {
		_, err := ParsePagingMode(in)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("ParsePagingMode(%q): expected ConfigError, got %v", in, err)
		}
		if cfgErr.Field != "paging" {
			t.Fatalf("expected paging field, got %q", cfgErr.Field)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{"defaults", func(*Options) {}, ""},
		{"head only", func(o *Options) { o.Head = 5 }, ""},
		{"tail only", func(o *Options) { o.Tail = 3 }, ""},
		{"head and tail", func(o *Options) { o.Head, o.Tail = 5, 3 }, "cannot specify both head and tail"},
		{"negative head", func(o *Options) { o.Head = -1 }, "head"},
		{"bad paging", func(o *Options) { o.Paging = "maybe" }, "invalid mode"},
		{"empty theme", func(o *Options) { o.Theme = " " }, "theme"},
		{"empty pager", func(o *Options) { o.Pager = "" }, "pager"},
		{"empty pager without paging", func(o *Options) { o.Pager, o.Paging = "", PagingNever }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileAppliesKeys(t *testing.T) {
	path := writeConfig(t, `
theme = "monokai"
line_numbers = true
word_wrap = true
paging = "never"
pager = "most"
`)
	o := Default()
	if err := LoadFile(path, true, &o); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if o.Theme != "monokai" || !o.LineNumbers || !o.WordWrap || o.Paging != PagingNever || o.Pager != "most" {
		t.Fatalf("unexpected options: %+v", o)
	}
	if o.IndentGuides || o.Hyperlinks || o.Lexer != "" {
		t.Fatalf("absent keys should keep defaults: %+v", o)
	}
}

func TestLoadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	o := Default()
	if err := LoadFile(path, false, &o); err != nil {
		t.Fatalf("missing optional config should be ignored, got %v", err)
	}
	if err := LoadFile(path, true, &o); err == nil {
		t.Fatalf("missing explicit config should fail")
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "theme = \"monokai\"\ncolour = \"red\"\n")
	o := Default()
	err := LoadFile(path, true, &o)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(err.Error(), "colour") {
		t.Fatalf("error should name the unknown key: %v", err)
	}
}

func TestLoadFileSyntaxError(t *testing.T) {
	path := writeConfig(t, "theme = \n")
	o := Default()
	err := LoadFile(path, true, &o)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
}

func TestLoadFileBadPaging(t *testing.T) {
	path := writeConfig(t, "paging = \"sometimes\"\n")
	o := Default()
	if err := LoadFile(path, true, &o); err == nil {
		t.Fatalf("expected invalid paging error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"NBREAD_THEME":  "ansi_light",
		"NBREAD_PAGING": "always",
		"NBREAD_PAGER":  "moar",
		"NBREAD_DEBUG":  "1",
		"NO_COLOR":      "1",
	}
	getenv := func(k string) string { return env[k] }
	o := Default()
	if err := ApplyEnv(getenv, &o); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if o.Theme != "ansi_light" || o.Paging != PagingAlways || o.Pager != "moar" || !o.Debug || !o.NoColor {
		t.Fatalf("unexpected options: %+v", o)
	}

	env["NBREAD_PAGING"] = "bogus"
	if err := ApplyEnv(getenv, &o); err == nil {
		t.Fatalf("expected error for invalid NBREAD_PAGING")
	}
}

func TestDefaultFilePath(t *testing.T) {
	got := DefaultFilePath(func(k string) string {
		if k == "NBREAD_CONFIG" {
			return "/tmp/custom.toml"
		}
		return ""
	})
	if got != "/tmp/custom.toml" {
		t.Fatalf("expected NBREAD_CONFIG to win, got %q", got)
	}
}

func TestColumns(t *testing.T) {
	if got := Columns(func(string) string { return "120" }); got != 120 {
		t.Fatalf("Columns = %d", got)
	}
	if got := Columns(func(string) string { return "wide" }); got != 0 {
		t.Fatalf("invalid COLUMNS should give 0, got %d", got)
	}
}
