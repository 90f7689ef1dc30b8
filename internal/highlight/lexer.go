package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ResolveLexer finds a lexer for name, trying it as a lexer name or alias
// and then as a file extension. When nothing matches and analyse is set,
// the source itself is analysed. The plain-text lexer is the last resort.
func ResolveLexer(name, source string, analyse bool) chroma.Lexer {
	if lexer := lookupLexer(name); lexer != nil {
		return chroma.Coalesce(lexer)
	}
	if analyse && strings.TrimSpace(source) != "" {
		if lexer := lexers.Analyse(source); lexer != nil {
			return chroma.Coalesce(lexer)
		}
	}
	return chroma.Coalesce(plainText())
}

// plainText is the generic lexer: the registered plaintext lexer, or
// chroma's fallback if that is missing.
func plainText() chroma.Lexer {
	if lexer := lexers.Get("plaintext"); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}

func lookupLexer(name string) chroma.Lexer {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return nil
	}
	if lexer := lexers.Get(name); lexer != nil {
		return lexer
	}
	return lexers.Match("file." + strings.TrimPrefix(name, "."))
}
