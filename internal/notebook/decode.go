package notebook

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText converts raw file content to valid UTF-8. A BOM selects
// UTF-8 or UTF-16; everything else is read as UTF-8. Invalid sequences
// become U+FFFD, so decoding never fails.
func decodeText(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	var decoder transform.Transformer
	switch {
	case bytes.HasPrefix(content, bomUTF16LE):
		decoder = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case bytes.HasPrefix(content, bomUTF16BE):
		decoder = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	default:
		decoder = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}

	out, _, err := transform.Bytes(decoder, content)
	if err != nil {
		out = bytes.TrimPrefix(content, bomUTF8)
	}
	return bytes.ToValidUTF8(out, []byte("\uFFFD"))
}
