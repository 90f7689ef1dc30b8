package styled

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"
)

func TestFromANSIInterpretsSGR(t *testing.T) {
	lines := FromANSI("plain \x1b[1;31mbold red\x1b[0m done")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0]
	if got := line.Plain(); got != "plain bold red done" {
		t.Fatalf("plain text mismatch: %q", got)
	}
	if len(line) != 3 {
		t.Fatalf("expected 3 segments, got %d: %#v", len(line), line)
	}
	red := line[1].Style
	if red.Fg != tcell.PaletteColor(1) {
		t.Fatalf("expected palette red foreground, got %v", red.Fg)
	}
	if red.Attrs&AttrBold == 0 {
		t.Fatalf("expected bold attribute")
	}
	if !line[2].Style.IsZero() {
		t.Fatalf("expected reset style after SGR 0, got %#v", line[2].Style)
	}
}

func stripANSI(s string) string {
	return PlainText(FromANSI(s))
}

func TestFromANSIPlainTextStripsExactlyEscapes(t *testing.T) {
	inputs := []string{
		"\x1b[32mok\x1b[39m",
		"\x1b[38;5;208morange\x1b[m and \x1b[48;2;10;20;30mbg\x1b[0m",
		"\x1b]8;;https://example.com\x1b\\link\x1b]8;;\x1b\\",
		"\x1b[2K\x1b[1Gcleared",
	}
	wants := []string{"ok", "orange and bg", "link", "cleared"}
	for i, in := range inputs {
		if got := stripANSI(in); got != wants[i] {
			t.Fatalf("plain text of %q = %q want %q", in, got, wants[i])
		}
	}
}

func TestFromANSIExtendedColors(t *testing.T) {
	line := FromANSI("\x1b[38;5;208ma\x1b[38;2;1;2;3mb\x1b[38:2::4:5:6mc\x1b[94md")[0]
	if line[0].Style.Fg != tcell.PaletteColor(208) {
		t.Fatalf("256-colour mismatch: %v", line[0].Style.Fg)
	}
	if line[1].Style.Fg != tcell.NewRGBColor(1, 2, 3) {
		t.Fatalf("rgb mismatch: %v", line[1].Style.Fg)
	}
	if line[2].Style.Fg != tcell.NewRGBColor(4, 5, 6) {
		t.Fatalf("colon rgb mismatch: %v", line[2].Style.Fg)
	}
	if line[3].Style.Fg != tcell.PaletteColor(12) {
		t.Fatalf("bright colour mismatch: %v", line[3].Style.Fg)
	}
}

func TestFromANSIStyleCarriesAcrossLines(t *testing.T) {
	lines := FromANSI("\x1b[31mone\ntwo\x1b[0m\nthree")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1][0].Style.Fg != tcell.PaletteColor(1) {
		t.Fatalf("expected style to continue on second line")
	}
	if !lines[2][0].Style.IsZero() {
		t.Fatalf("expected reset on third line")
	}
}

func TestFromANSILineHandling(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{""}},
		{"trailing newline", "hello\n", []string{"hello"}},
		{"interior newline", "hello\nworld", []string{"hello", "world"}},
		{"blank line kept", "a\n\n", []string{"a", ""}},
		{"crlf", "a\r\nb", []string{"a", "b"}},
		{"carriage return overwrites", "10%\r50%\r100%", []string{"100%"}},
		{"controls dropped", "a\x07b\x08c", []string{"abc"}},
		{"tabs expanded", "a\tb", []string{"a       b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := FromANSI(tt.in)
			if len(lines) != len(tt.want) {
				t.Fatalf("FromANSI(%q) produced %d lines, want %d", tt.in, len(lines), len(tt.want))
			}
			for i := range lines {
				if got := lines[i].Plain(); got != tt.want[i] {
					t.Fatalf("line %d = %q, want %q", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestFromANSIHyperlink(t *testing.T) {
	line := FromANSI("see \x1b]8;;https://example.com\x07here\x1b]8;;\x07.")[0]
	if len(line) != 3 {
		t.Fatalf("expected 3 segments, got %#v", line)
	}
	if line[1].Style.Link != "https://example.com" {
		t.Fatalf("expected link on middle segment, got %q", line[1].Style.Link)
	}
	if line[2].Style.Link != "" {
		t.Fatalf("expected link to end, got %q", line[2].Style.Link)
	}
}

func TestTruncateAndWrap(t *testing.T) {
	line := Line{{Text: "abc"}, {Text: "def", Style: Style{Attrs: AttrBold}}}
	if got := line.Truncate(4).Plain(); got != "abcd" {
		t.Fatalf("Truncate(4)=%q", got)
	}
	if got := line.Truncate(4); len(got) != 2 || got[1].Style.Attrs != AttrBold {
		t.Fatalf("Truncate should keep segment styles: %#v", got)
	}
	rows := line.WrapWords(4)
	if len(rows) != 2 || rows[0].Plain() != "abcd" || rows[1].Plain() != "ef" {
		t.Fatalf("WrapWords(4) = %q", PlainText(rows))
	}
	wide := Line{{Text: "你好世界"}}
	if got := wide.Truncate(5).Plain(); got != "你好" {
		t.Fatalf("wide truncate = %q", got)
	}
}

func TestWrapWords(t *testing.T) {
	line := Line{{Text: "the quick brown fox"}}
	rows := line.WrapWords(10)
	got := PlainText(rows)
	if got != "the quick\nbrown fox" {
		t.Fatalf("WrapWords(10) = %q", got)
	}

	long := Line{{Text: "abcdefghijkl xy"}}
	got = PlainText(long.WrapWords(5))
	if got != "abcde\nfghij\nkl xy" {
		t.Fatalf("WrapWords long word = %q", got)
	}

	if rows := (Line{}).WrapWords(3); len(rows) != 1 {
		t.Fatalf("expected empty line to stay one row, got %d", len(rows))
	}
}

func TestPad(t *testing.T) {
	line := Line{{Text: "ab"}}
	if got := line.Pad(5, Style{}).Plain(); got != "ab   " {
		t.Fatalf("Pad(5)=%q", got)
	}
	if got := line.Pad(1, Style{}).Plain(); got != "ab" {
		t.Fatalf("Pad shorter than line should not truncate, got %q", got)
	}
}

func TestEncoderAsciiEmitsPlainText(t *testing.T) {
	enc := Encoder{Profile: termenv.Ascii, Hyperlinks: true}
	line := Line{{Text: "red", Style: Style{Fg: tcell.PaletteColor(1), Attrs: AttrBold, Link: "https://x"}}}
	if got := enc.Encode(line); got != "red" {
		t.Fatalf("ascii encode = %q", got)
	}
}

func TestEncoderANSIRoundTrip(t *testing.T) {
	enc := Encoder{Profile: termenv.ANSI}
	src := Line{{Text: "warn", Style: Style{Fg: tcell.PaletteColor(3), Attrs: AttrBold}}, {Text: " plain"}}
	out := enc.Encode(src)
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected escape sequences, got %q", out)
	}
	back := FromANSI(out)[0]
	if back.Plain() != "warn plain" {
		t.Fatalf("round trip plain = %q", back.Plain())
	}
	if back[0].Style.Fg != tcell.PaletteColor(3) || back[0].Style.Attrs&AttrBold == 0 {
		t.Fatalf("round trip lost style: %#v", back[0].Style)
	}
}

func TestPaletteIndex(t *testing.T) {
	if idx, ok := PaletteIndex(tcell.PaletteColor(42)); !ok || idx != 42 {
		t.Fatalf("PaletteIndex = (%d,%v)", idx, ok)
	}
	if _, ok := PaletteIndex(tcell.NewRGBColor(1, 2, 3)); ok {
		t.Fatalf("rgb colours have no palette index")
	}
	if _, ok := PaletteIndex(tcell.ColorDefault); ok {
		t.Fatalf("default colour has no palette index")
	}
}
