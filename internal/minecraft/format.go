// Package minecraft parses the "§" formatting codes used in Minecraft texts.
package minecraft

import (
	"strings"

	"github.com/pable/go-mc-reports/internal/model"
)

const codePrefix = '§'

var colorCodes = map[rune]model.TeamColor{
	'0': model.ColorBlack,
	'1': model.ColorDarkBlue,
	'2': model.ColorDarkGreen,
	'3': model.ColorDarkAqua,
	'4': model.ColorDarkRed,
	'5': model.ColorDarkPurple,
	'6': model.ColorGold,
	'7': model.ColorGray,
	'8': model.ColorDarkGray,
	'9': model.ColorBlue,
	'a': model.ColorGreen,
	'b': model.ColorAqua,
	'c': model.ColorRed,
	'd': model.ColorLightPurple,
	'e': model.ColorYellow,
	'f': model.ColorWhite,
}

// Format is a set of text decorations.
type Format struct {
	Obfuscated    bool
	Bold          bool
	Strikethrough bool
	Underline     bool
	Italic        bool
}

// Segment is a run of text sharing one color and format.
type Segment struct {
	Text   string
	Color  model.TeamColor // empty when uncolored
	Format Format
}

// Parse splits s into formatted segments. A color code resets decorations,
// as in the game; "§r" resets everything. Unknown codes are kept as text.
func Parse(s string) []Segment {
	var (
		out  []Segment
		cur  Segment
		text strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			cur.Text = text.String()
			out = append(out, cur)
			text.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != codePrefix || i+1 >= len(runes) {
			text.WriteRune(r)
			continue
		}
		code := toLower(runes[i+1])
		next, ok := apply(cur, code)
		if !ok {
			text.WriteRune(r)
			continue
		}
		flush()
		cur = next
		i++
	}
	flush()
	return out
}

func apply(cur Segment, code rune) (Segment, bool) {
	if c, ok := colorCodes[code]; ok {
		return Segment{Color: c}, true
	}
	switch code {
	case 'k':
		cur.Format.Obfuscated = true
	case 'l':
		cur.Format.Bold = true
	case 'm':
		cur.Format.Strikethrough = true
	case 'n':
		cur.Format.Underline = true
	case 'o':
		cur.Format.Italic = true
	case 'r':
		return Segment{}, true
	default:
		return cur, false
	}
	return cur, true
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// StripColorCodes removes every valid formatting code from s.
func StripColorCodes(s string) string {
	var b strings.Builder
	for _, seg := range Parse(s) {
		b.WriteString(seg.Text)
	}
	return b.String()
}
