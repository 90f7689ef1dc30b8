package notebook

import "fmt"

// LoadErrorKind classifies why a document could not be loaded.
type LoadErrorKind int

const (
	// LoadRead means the file is missing or unreadable.
	LoadRead LoadErrorKind = iota
	// LoadParse means the content is not a JSON object.
	LoadParse
	// LoadMissingField means a required field is absent or has the wrong
	// shape.
	LoadMissingField
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadRead:
		return "read"
	case LoadParse:
		return "parse"
	case LoadMissingField:
		return "missing field"
	default:
		return "unknown"
	}
}

// LoadError reports a document that could not be turned into a Document.
// Decoding never produces one: invalid bytes are replaced instead.
type LoadError struct {
	Path  string
	Kind  LoadErrorKind
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case LoadRead:
		return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
	case LoadParse:
		if e.Err != nil {
			return fmt.Sprintf("%s is not a valid notebook: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("%s is not a valid notebook", e.Path)
	case LoadMissingField:
		return fmt.Sprintf("%s is not a valid notebook: missing required field %q", e.Path, e.Field)
	default:
		return fmt.Sprintf("cannot load %s", e.Path)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
