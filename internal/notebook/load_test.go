package notebook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": ["# Title\n", "Some *text*"]
  },
  {
   "cell_type": "code",
   "execution_count": 3,
   "metadata": {},
   "outputs": [
    {"output_type": "stream", "name": "stdout", "text": ["hello\n", "world"]},
    {"output_type": "display_data", "data": {"text/plain": ["<Figure>"]}},
    {"output_type": "execute_result", "execution_count": 3, "data": {"text/plain": "42"}},
    {"output_type": "error", "ename": "ValueError", "evalue": "x", "traceback": ["\u001b[31mValueError\u001b[0m", "  at line 1   "]}
   ],
   "source": "print('hello')\nprint('world')"
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {"vscode": {"languageId": "sql"}},
   "outputs": [],
   "source": []
  },
  {
   "cell_type": "raw",
   "metadata": {},
   "source": "raw text"
  }
 ],
 "metadata": {
  "kernelspec": {"display_name": "Python 3", "language": "python", "name": "python3"},
  "language_info": {"name": "python", "file_extension": ".py"}
 },
 "nbformat": 4,
 "nbformat_minor": 5
}`

func TestParseBuildsTaggedCells(t *testing.T) {
	doc, err := Parse("sample.ipynb", []byte(sampleNotebook))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(doc.Cells))
	}
	if doc.Language != "python" || doc.LanguageName != "python" || doc.FileExtension != ".py" {
		t.Fatalf("unexpected metadata: %+v", doc)
	}

	md := doc.Cells[0]
	if md.Kind != CellMarkdown || md.Source != "# Title\nSome *text*" {
		t.Fatalf("unexpected markdown cell: %+v", md)
	}
	if md.ExecutionCount.Present {
		t.Fatalf("markdown cell has no execution_count key")
	}

	code := doc.Cells[1]
	if code.Kind != CellCode || code.ExecutionCount != (ExecutionCount{Present: true, Value: 3}) {
		t.Fatalf("unexpected code cell: %+v", code)
	}
	if len(code.Outputs) != 4 {
		t.Fatalf("expected 4 outputs, got %d", len(code.Outputs))
	}
	if out := code.Outputs[0]; out.Kind != OutputStream || out.Text != "hello\nworld" {
		t.Fatalf("unexpected stream output: %+v", out)
	}
	if out := code.Outputs[1]; out.Kind != OutputIgnored || out.Type != "display_data" {
		t.Fatalf("display_data should be ignored: %+v", out)
	}
	if out := code.Outputs[2]; out.Kind != OutputExecuteResult || out.PlainText != "42" || out.ExecutionCount.Value != 3 {
		t.Fatalf("unexpected execute_result: %+v", out)
	}
	if out := code.Outputs[3]; out.Kind != OutputError || len(out.Traceback) != 2 || out.Traceback[0] != "\x1b[31mValueError\x1b[0m" {
		t.Fatalf("unexpected error output: %+v", out)
	}

	empty := doc.Cells[2]
	if !empty.ExecutionCount.Present || empty.ExecutionCount.Value != 0 || empty.ExecutionCount.Label() != " " {
		t.Fatalf("null execution_count should be present and blank: %+v", empty.ExecutionCount)
	}
	if empty.Source != "" || empty.Language != "sql" {
		t.Fatalf("unexpected empty cell: %+v", empty)
	}

	raw := doc.Cells[3]
	if raw.Kind != CellOther || raw.Type != "raw" || raw.Source != "raw text" {
		t.Fatalf("unexpected raw cell: %+v", raw)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  LoadErrorKind
		field string
	}{
		{"not json", `{"cells": [`, LoadParse, ""},
		{"top level array", `[1, 2]`, LoadParse, ""},
		{"missing cells", `{"metadata": {}}`, LoadMissingField, "cells"},
		{"cells not array", `{"cells": {}}`, LoadMissingField, "cells"},
		{"missing cell_type", `{"cells": [{"source": "x"}]}`, LoadMissingField, "cells[0].cell_type"},
		{"missing output_type", `{"cells": [{"cell_type": "code", "source": "", "outputs": [{"text": "x"}]}]}`, LoadMissingField, "cells[0].outputs[0].output_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.ipynb", []byte(tt.input))
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected LoadError, got %v", err)
			}
			if loadErr.Kind != tt.kind || loadErr.Field != tt.field {
				t.Fatalf("got kind=%v field=%q, want kind=%v field=%q", loadErr.Kind, loadErr.Field, tt.kind, tt.field)
			}
			if loadErr.Path != "bad.ipynb" {
				t.Fatalf("expected path in error, got %q", loadErr.Path)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.ipynb")
	_, err := Load(path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Kind != LoadRead {
		t.Fatalf("expected read LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped not-exist error, got %v", err)
	}
}

func TestLoadToleratesInvalidUTF8(t *testing.T) {
	content := []byte("{\"cells\": [{\"cell_type\": \"code\", \"source\": \"x = '\xff'\"}]}")
	path := filepath.Join(t.TempDir(), "broken.ipynb")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := doc.Cells[0].Source; got != "x = '\uFFFD'" {
		t.Fatalf("expected replacement characters, got %q", got)
	}
}

func TestParseStripsBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"cells": []}`)...)
	doc, err := Parse("bom.ipynb", content)
	if err != nil {
		t.Fatalf("Parse with BOM: %v", err)
	}
	if len(doc.Cells) != 0 {
		t.Fatalf("expected no cells, got %d", len(doc.Cells))
	}
}

func TestParseUTF16(t *testing.T) {
	text := `{"cells": [{"cell_type": "markdown", "source": "hi"}]}`
	content := []byte{0xFF, 0xFE}
	for _, r := range text {
		content = append(content, byte(r), 0x00)
	}
	doc, err := Parse("utf16.ipynb", content)
	if err != nil {
		t.Fatalf("Parse UTF-16: %v", err)
	}
	if doc.Cells[0].Source != "hi" {
		t.Fatalf("unexpected source %q", doc.Cells[0].Source)
	}
}

func TestExecutionCountLabel(t *testing.T) {
	tests := []struct {
		count ExecutionCount
		want  string
	}{
		{ExecutionCount{Present: true, Value: 7}, "7"},
		{ExecutionCount{Present: true}, " "},
		{ExecutionCount{}, " "},
	}
	for _, tt := range tests {
		if got := tt.count.Label(); got != tt.want {
			t.Fatalf("Label(%+v) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
