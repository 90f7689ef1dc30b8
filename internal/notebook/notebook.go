// Package notebook reads .ipynb documents into tagged cell and output
// variants. Every optional field has exactly one default, listed on the
// type that carries it, so callers never re-derive them.
package notebook

import "strconv"

// CellKind is the tag of a cell.
type CellKind int

const (
	// CellOther covers raw cells and any cell_type this package does not
	// know. Such cells are shown as plain source text.
	CellOther CellKind = iota
	CellCode
	CellMarkdown
)

func (k CellKind) String() string {
	switch k {
	case CellCode:
		return "code"
	case CellMarkdown:
		return "markdown"
	default:
		return "other"
	}
}

func cellKindOf(tag string) CellKind {
	switch tag {
	case "code":
		return CellCode
	case "markdown":
		return CellMarkdown
	default:
		return CellOther
	}
}

// OutputKind is the tag of a code cell output.
type OutputKind int

const (
	// OutputIgnored covers display_data and any output_type not rendered.
	OutputIgnored OutputKind = iota
	OutputStream
	OutputError
	OutputExecuteResult
)

func (k OutputKind) String() string {
	switch k {
	case OutputStream:
		return "stream"
	case OutputError:
		return "error"
	case OutputExecuteResult:
		return "execute_result"
	default:
		return "ignored"
	}
}

func outputKindOf(tag string) OutputKind {
	switch tag {
	case "stream":
		return OutputStream
	case "error":
		return OutputError
	case "execute_result":
		return OutputExecuteResult
	default:
		return OutputIgnored
	}
}

// ExecutionCount is an optional execution counter. Present reports whether
// the key exists at all; a null or non-numeric value leaves Value at 0.
type ExecutionCount struct {
	Present bool
	Value   int
}

// Label is the text shown between the brackets of In [..] and Out[..].
// Zero and null both show as a single blank.
func (c ExecutionCount) Label() string {
	if c.Value == 0 {
		return " "
	}
	return strconv.Itoa(c.Value)
}

// Document is a parsed notebook. It is not modified after Parse returns.
//
// Defaults: Language, LanguageName and FileExtension are "" when the
// corresponding metadata is missing.
type Document struct {
	Path  string
	Cells []Cell

	// Language is metadata.kernelspec.language.
	Language string
	// LanguageName is metadata.language_info.name.
	LanguageName string
	// FileExtension is metadata.language_info.file_extension, e.g. ".py".
	FileExtension string
}

// Cell is one notebook cell.
//
// Defaults: Source is "" when missing, ExecutionCount.Present is false
// when the key is missing, Outputs is empty for non-code cells and when
// missing, Language is "" unless the cell carries metadata.vscode.languageId
// or metadata.language.
type Cell struct {
	Kind           CellKind
	Type           string
	Source         string
	ExecutionCount ExecutionCount
	Outputs        []Output
	Language       string
}

// Output is one entry of a code cell's outputs.
//
// Defaults: Text is "" when missing, Traceback is empty when missing,
// ExecutionCount.Present is false when the key is missing, PlainText is ""
// when data has no text/plain entry.
type Output struct {
	Kind OutputKind
	Type string

	// Text is the concatenated stream text (stream outputs).
	Text string
	// Traceback holds the traceback lines (error outputs).
	Traceback []string
	// ExecutionCount and PlainText belong to execute_result outputs.
	ExecutionCount ExecutionCount
	PlainText      string
}
