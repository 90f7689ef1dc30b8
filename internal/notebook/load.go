package notebook

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

var errNotJSON = errors.New("content is not valid JSON")

// Load reads and parses the notebook at path.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: LoadRead, Err: err}
	}
	return Parse(path, content)
}

// Parse builds a Document from raw file content. path is only used for
// error messages and Document.Path.
func Parse(path string, content []byte) (*Document, error) {
	text := decodeText(content)
	if !gjson.ValidBytes(text) {
		return nil, &LoadError{Path: path, Kind: LoadParse, Err: errNotJSON}
	}
	root := gjson.ParseBytes(text)
	if !root.IsObject() {
		return nil, &LoadError{Path: path, Kind: LoadParse, Err: fmt.Errorf("top level is %s, not an object", kindName(root))}
	}

	cells := root.Get("cells")
	if !cells.IsArray() {
		return nil, &LoadError{Path: path, Kind: LoadMissingField, Field: "cells"}
	}

	doc := &Document{
		Path:          path,
		Language:      stringField(root, "metadata.kernelspec.language"),
		LanguageName:  stringField(root, "metadata.language_info.name"),
		FileExtension: stringField(root, "metadata.language_info.file_extension"),
	}

	for i, raw := range cells.Array() {
		cell, field := parseCell(raw)
		if field != "" {
			return nil, &LoadError{Path: path, Kind: LoadMissingField, Field: fmt.Sprintf("cells[%d].%s", i, field)}
		}
		doc.Cells = append(doc.Cells, cell)
	}
	return doc, nil
}

// parseCell returns the name of the first missing required field, if any.
func parseCell(raw gjson.Result) (Cell, string) {
	if !raw.IsObject() {
		return Cell{}, "cell_type"
	}
	tag := raw.Get("cell_type")
	if tag.Type != gjson.String {
		return Cell{}, "cell_type"
	}

	cell := Cell{
		Kind:           cellKindOf(tag.Str),
		Type:           tag.Str,
		Source:         joinText(raw.Get("source")),
		ExecutionCount: executionCount(raw),
		Language:       cellLanguage(raw),
	}
	if cell.Kind != CellCode {
		return cell, ""
	}

	for j, out := range raw.Get("outputs").Array() {
		output, ok := parseOutput(out)
		if !ok {
			return Cell{}, fmt.Sprintf("outputs[%d].output_type", j)
		}
		cell.Outputs = append(cell.Outputs, output)
	}
	return cell, ""
}

func parseOutput(raw gjson.Result) (Output, bool) {
	tag := raw.Get("output_type")
	if !raw.IsObject() || tag.Type != gjson.String {
		return Output{}, false
	}

	out := Output{Kind: outputKindOf(tag.Str), Type: tag.Str}
	switch out.Kind {
	case OutputStream:
		out.Text = joinText(raw.Get("text"))
	case OutputError:
		tb := raw.Get("traceback")
		if tb.IsArray() {
			for _, line := range tb.Array() {
				out.Traceback = append(out.Traceback, line.String())
			}
		} else if tb.Type == gjson.String {
			out.Traceback = []string{tb.Str}
		}
	case OutputExecuteResult:
		out.ExecutionCount = executionCount(raw)
		out.PlainText = joinText(raw.Get(`data.text/plain`))
	}
	return out, true
}

func executionCount(raw gjson.Result) ExecutionCount {
	v := raw.Get("execution_count")
	if !v.Exists() {
		return ExecutionCount{}
	}
	count := ExecutionCount{Present: true}
	if v.Type == gjson.Number {
		count.Value = int(v.Int())
	}
	return count
}

func cellLanguage(raw gjson.Result) string {
	if lang := stringField(raw, "metadata.vscode.languageId"); lang != "" {
		return lang
	}
	return stringField(raw, "metadata.language")
}

// joinText accepts either a string or an array of strings.
func joinText(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.Str
	case v.IsArray():
		var b strings.Builder
		for _, part := range v.Array() {
			b.WriteString(part.String())
		}
		return b.String()
	default:
		return ""
	}
}

func stringField(v gjson.Result, path string) string {
	r := v.Get(path)
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

func kindName(v gjson.Result) string {
	switch {
	case v.IsArray():
		return "an array"
	case v.Type == gjson.String:
		return "a string"
	case v.Type == gjson.Number:
		return "a number"
	case v.Type == gjson.True, v.Type == gjson.False:
		return "a boolean"
	default:
		return "null"
	}
}
