// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type glyph struct {
	s       string
	width   int
	isSpace bool
}

// buildGlyphs styles each target rune against the typed input. Wrong
// keystrokes keep the target character visible; a mistyped space shows a
// dot so the error has a visible mark.
func buildGlyphs(targetRunes, inputRunes []rune, cursorIndex int) []glyph {
	words := findWords(targetRunes)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]glyph, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		style := pendingStyle
		typed := i < len(inputRunes)
		if typed {
			switch {
			case target == ' ' && inputRunes[i] != ' ':
				displayed = '•'
				style = incorrectStyle
			case inputRunes[i] == target:
				style = correctStyle
			default:
				style = incorrectStyle
			}
		} else if target != ' ' {
			if currentWord != nil && i >= currentWord.start && i < currentWord.end {
				style = currentWordStyle
			} else {
				style = pendingStyle
			}
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = style.Underline(true)
		}
		out = append(out, glyph{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return &words[len(words)-1]
}

func renderGlyphs(glyphs []glyph) string {
	var b strings.Builder
	for _, item := range glyphs {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapGlyphs wraps at the last space that fits, falling back to a hard
// break for words wider than the line.
func wrapGlyphs(glyphs []glyph, width int) string {
	if width <= 0 {
		return renderGlyphs(glyphs)
	}
	var out strings.Builder
	line := make([]glyph, 0, len(glyphs))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(glyphs); {
		item := glyphs[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpace >= 0 {
				out.WriteString(renderGlyphs(line[:lastSpace]))
				out.WriteRune('\n')
				line = append([]glyph{}, line[lastSpace+1:]...)
			} else {
				out.WriteString(renderGlyphs(line))
				out.WriteRune('\n')
				line = line[:0]
			}
			lineWidth = 0
			lastSpace = -1
			for j, g := range line {
				lineWidth += g.width
				if g.isSpace {
					lastSpace = j
				}
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	out.WriteString(renderGlyphs(line))
	return out.String()
}
