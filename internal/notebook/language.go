package notebook

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LanguageHint picks the language name for a code cell. The cell's own
// metadata wins, then override, then the document's kernel language, then
// language_info, then a guess from language_info.file_extension. It
// returns "" when nothing is known.
func (d *Document) LanguageHint(c Cell, override string) string {
	for _, candidate := range []string{c.Language, override, d.Language, d.LanguageName} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return languageFromExtension(d.FileExtension)
}

func languageFromExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	lang, _ := enry.GetLanguageByExtension("notebook" + ext)
	return lang
}
