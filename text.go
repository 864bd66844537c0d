package gui

import (
	"strings"
	"unicode"
)

// tooltipMaxWidth is the width past which tooltip text wraps.
const tooltipMaxWidth = 320

// WrapText breaks text into lines no wider than maxWidth. Latin text breaks
// at spaces, CJK runs break between any two runes. Explicit newlines are kept.
// A word wider than maxWidth gets a line of its own.
func WrapText(ctx *Context, text string, maxWidth float32) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapParagraph(ctx, para, maxWidth)...)
	}
	return lines
}

func wrapParagraph(ctx *Context, text string, maxWidth float32) []string {
	var lines []string
	var line strings.Builder
	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
		}
	}
	for _, tok := range splitBreakable(text) {
		next := line.String() + tok
		if line.Len() > 0 && ctx.MeasureText(strings.TrimRight(next, " ")).X > maxWidth {
			flush()
			tok = strings.TrimLeft(tok, " ")
		}
		line.WriteString(tok)
	}
	flush()
	return lines
}

// splitBreakable cuts text at its break opportunities. Each token keeps
// the spaces that follow it; every CJK rune is a token of its own.
func splitBreakable(text string) []string {
	var toks []string
	start := 0
	inSpace := false
	for i, r := range text {
		switch {
		case isCJKRune(r):
			if i > start {
				toks = append(toks, text[start:i])
			}
			toks = append(toks, string(r))
			start = i + len(string(r))
			inSpace = false
		case r == ' ':
			inSpace = true
		case inSpace:
			toks = append(toks, text[start:i])
			start = i
			inSpace = false
		}
	}
	if start < len(text) {
		toks = append(toks, text[start:])
	}
	return toks
}

func isCJKRune(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// MeasureWrappedText returns the size of text wrapped at maxWidth.
func MeasureWrappedText(ctx *Context, text string, maxWidth float32) Vec2 {
	lines := WrapText(ctx, text, maxWidth)
	var w float32
	for _, l := range lines {
		w = maxf(w, ctx.MeasureText(l).X)
	}
	return Vec2{X: w, Y: float32(len(lines)) * ctx.lineHeight()}
}

// Ellipsize shortens text to fit maxWidth, ending it with "..". Text that
// already fits is returned as is; when not even the suffix fits the result
// is empty.
func Ellipsize(ctx *Context, text string, maxWidth float32) string {
	if ctx.MeasureText(text).X <= maxWidth {
		return text
	}
	const suffix = ".."
	if ctx.MeasureText(suffix).X > maxWidth {
		return ""
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		s := strings.TrimRight(string(runes), " ") + suffix
		if ctx.MeasureText(s).X <= maxWidth {
			return s
		}
	}
	return suffix
}
