package track

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var (
	dimColor    = hexOr("#464646", colorful.Color{})
	labelColor  = hexOr("#AAAAAA", colorful.Color{})
	finishColor = hexOr("#E6E6E6", colorful.Color{})
)

// terminalProfile is the colour depth lipgloss detected for stdout.
func terminalProfile() termenv.Profile {
	return lipgloss.ColorProfile()
}

// hexOr parses "#RRGGBB". Malformed input yields fallback.
func hexOr(s string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return c
}

// fade moves from dim toward c as heat goes from 0 to 1.
func fade(c colorful.Color, heat float64) colorful.Color {
	heat = min(max(heat, 0), 1)
	return dimColor.BlendRgb(c, heat).Clamped()
}

// pen writes foreground escapes for one row, skipping repeats so runs of
// same-coloured cells cost one sequence.
type pen struct {
	profile termenv.Profile
	current string
}

func newPen(p termenv.Profile) pen {
	return pen{profile: p}
}

func (p *pen) set(sb *strings.Builder, c colorful.Color) {
	if p.profile == termenv.Ascii {
		return
	}
	seq := p.profile.FromColor(c).Sequence(false)
	if seq == "" || seq == p.current {
		return
	}
	sb.WriteString(termenv.CSI + seq + "m")
	p.current = seq
}

func (p *pen) reset(sb *strings.Builder) {
	if p.current == "" {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	p.current = ""
}
