package transcript

import (
	"github.com/fatih/color"
)

// Style is an abstract output styling token. The emitter attaches a
// Style to every displayed line; a Palette resolves it to a concrete
// color at the transport boundary.
type Style int

const (
	StyleNone Style = iota
	StyleTask
	StyleDebug
	StyleOk
	StyleChanged
	StyleError
	StyleUnreachable
)

// Palette maps styles to colors. A nil Palette, or a missing entry,
// falls back to uncolored output.
type Palette map[Style]*color.Color

func DefaultPalette() Palette {
	return Palette{
		StyleTask:        color.New(color.FgBlue),
		StyleDebug:       color.New(color.FgCyan),
		StyleOk:          color.New(color.FgGreen),
		StyleChanged:     color.New(color.FgYellow),
		StyleError:       color.New(color.FgRed),
		StyleUnreachable: color.New(color.FgRed, color.Bold),
	}
}

func (p Palette) Sprint(style Style, line string) string {
	if p == nil {
		return line
	}

	c, ok := p[style]
	if !ok || c == nil {
		return line
	}

	return c.Sprint(line)
}
