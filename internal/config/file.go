package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// fileOptions mirrors the config file. Pointers distinguish "absent" from
// the zero value so that absent keys leave the defaults alone.
type fileOptions struct {
	Theme        *string `toml:"theme"`
	Lexer        *string `toml:"lexer"`
	LineNumbers  *bool   `toml:"line_numbers"`
	IndentGuides *bool   `toml:"indent_guides"`
	WordWrap     *bool   `toml:"word_wrap"`
	Paging       *string `toml:"paging"`
	Hyperlinks   *bool   `toml:"hyperlinks"`
	Pager        *string `toml:"pager"`
}

// DefaultFilePath returns the config file location: NBREAD_CONFIG when
// set, else nbread/config.toml under the user config directory. It returns
// "" when neither can be determined.
func DefaultFilePath(getenv func(string) string) string {
	if p := getenv("NBREAD_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nbread", "config.toml")
}

// LoadFile applies the config file at path onto o. A missing file is not
// an error unless required is set.
func LoadFile(path string, required bool, o *Options) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return &ConfigError{Field: "config", Message: fmt.Sprintf("cannot read %s", path), Err: err}
	}
	return applyFile(path, data, o)
}

func applyFile(path string, data []byte, o *Options) error {
	var fo fileOptions
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fo); err != nil {
		return &ConfigError{Field: "config", Message: describeTOMLError(path, err), Err: err}
	}

	if fo.Theme != nil {
		o.Theme = *fo.Theme
	}
	if fo.Lexer != nil {
		o.Lexer = *fo.Lexer
	}
	if fo.LineNumbers != nil {
		o.LineNumbers = *fo.LineNumbers
	}
	if fo.IndentGuides != nil {
		o.IndentGuides = *fo.IndentGuides
	}
	if fo.WordWrap != nil {
		o.WordWrap = *fo.WordWrap
	}
	if fo.Hyperlinks != nil {
		o.Hyperlinks = *fo.Hyperlinks
	}
	if fo.Pager != nil {
		o.Pager = *fo.Pager
	}
	if fo.Paging != nil {
		mode, err := ParsePagingMode(*fo.Paging)
		if err != nil {
			return &ConfigError{Field: "config", Message: fmt.Sprintf("%s: invalid paging mode %q", path, *fo.Paging)}
		}
		o.Paging = mode
	}
	return nil
}

func describeTOMLError(path string, err error) string {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		keys := make([]string, 0, len(strict.Errors))
		for _, e := range strict.Errors {
			keys = append(keys, strings.Join(e.Key(), "."))
		}
		return fmt.Sprintf("%s: unknown key(s) %s", path, strings.Join(keys, ", "))
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Sprintf("%s:%d:%d: malformed config", path, row, col)
	}
	return fmt.Sprintf("%s: malformed config", path)
}
