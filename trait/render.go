package trait

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tylerlengyel/compressedPhil/pvg"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Render rebuilds SVG markup from a decoded document. Gradient and
// filter records land in a defs block with ordinal ids (g0, g1, ... and
// f0, f1, ...), which is what the 0xFF color form and filter bytes
// reference.
func Render(doc *pvg.Document) string {
	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="`)
	sb.WriteString(doc.ViewBox.String())
	sb.WriteString(`">`)

	gradients := doc.Gradients()
	filters := doc.Filters()
	if len(gradients) > 0 || len(filters) > 0 {
		sb.WriteString("<defs>")
		for i, g := range gradients {
			writeGradient(&sb, i, g)
		}
		for i, f := range filters {
			writeFilter(&sb, i, f)
		}
		sb.WriteString("</defs>")
	}

	for _, rec := range doc.Records {
		switch r := rec.(type) {
		case *pvg.Path:
			writePath(&sb, r)
		case *pvg.CircleGroup:
			for _, c := range r.Circles {
				fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
					num(c.CX), num(c.CY), num(c.R), c.Fill)
			}
		case *pvg.Rect:
			writeRect(&sb, r)
		case *pvg.Line:
			writeLine(&sb, r)
		case *pvg.Text:
			writeText(&sb, r)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writePath(sb *strings.Builder, p *pvg.Path) {
	sb.WriteString(`<path d="`)
	sb.WriteString(pvg.FormatPathData(p.Commands))
	sb.WriteString(`" fill="`)
	sb.WriteString(p.Fill.String())
	sb.WriteByte('"')
	if p.Stroke.Kind != pvg.ColorNone {
		fmt.Fprintf(sb, ` stroke="%s"`, p.Stroke)
	}
	if p.StrokeWidth > 0 {
		fmt.Fprintf(sb, ` stroke-width="%s"`, num(p.StrokeWidth))
	}
	if p.Opacity < 1 {
		fmt.Fprintf(sb, ` opacity="%s"`, num(p.Opacity))
	}
	if p.Filter >= 0 {
		fmt.Fprintf(sb, ` filter="url(#f%d)"`, p.Filter)
	}
	sb.WriteString("/>")
}

func writeRect(sb *strings.Builder, r *pvg.Rect) {
	fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s"`,
		num(r.X), num(r.Y), num(r.W), num(r.H))
	if r.RX > 0 {
		fmt.Fprintf(sb, ` rx="%s"`, num(r.RX))
	}
	fmt.Fprintf(sb, ` fill="%s"`, r.Fill)
	if r.Stroke.Kind != pvg.ColorNone {
		fmt.Fprintf(sb, ` stroke="%s"`, r.Stroke)
	}
	if r.StrokeWidth > 0 {
		fmt.Fprintf(sb, ` stroke-width="%s"`, num(r.StrokeWidth))
	}
	if r.Filter >= 0 {
		fmt.Fprintf(sb, ` filter="url(#f%d)"`, r.Filter)
	}
	sb.WriteString("/>")
}

func writeLine(sb *strings.Builder, l *pvg.Line) {
	fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"`,
		num(l.X1), num(l.Y1), num(l.X2), num(l.Y2), l.Stroke)
	if l.StrokeWidth > 0 {
		fmt.Fprintf(sb, ` stroke-width="%s"`, num(l.StrokeWidth))
	}
	if l.Cap != pvg.CapButt {
		fmt.Fprintf(sb, ` stroke-linecap="%s"`, l.Cap)
	}
	sb.WriteString("/>")
}

func writeText(sb *strings.Builder, t *pvg.Text) {
	fmt.Fprintf(sb, `<text x="%s" y="%s" font-size="%s"`, num(t.X), num(t.Y), num(t.Size))
	if t.Family != "" {
		fmt.Fprintf(sb, ` font-family="%s"`, textEscaper.Replace(t.Family))
	}
	if t.Anchor != pvg.AnchorStart {
		fmt.Fprintf(sb, ` text-anchor="%s"`, t.Anchor)
	}
	fmt.Fprintf(sb, ` fill="%s">`, t.Fill)
	sb.WriteString(textEscaper.Replace(t.Content))
	sb.WriteString("</text>")
}

func writeGradient(sb *strings.Builder, ord int, g *pvg.Gradient) {
	if g.Kind == pvg.GradientRadial {
		fmt.Fprintf(sb, `<radialGradient id="g%d" cx="%s" cy="%s" r="%s">`,
			ord, pct(g.CX), pct(g.CY), pct(g.R))
	} else {
		fmt.Fprintf(sb, `<linearGradient id="g%d" x1="%s" y1="%s" x2="%s" y2="%s">`,
			ord, pct(g.X1), pct(g.Y1), pct(g.X2), pct(g.Y2))
	}
	for _, s := range g.Stops {
		fmt.Fprintf(sb, `<stop offset="%s" stop-color="%s"`, pct(s.Offset), s.Color)
		if s.Opacity < 1 {
			fmt.Fprintf(sb, ` stop-opacity="%s"`, num(s.Opacity))
		}
		sb.WriteString("/>")
	}
	if g.Kind == pvg.GradientRadial {
		sb.WriteString("</radialGradient>")
	} else {
		sb.WriteString("</linearGradient>")
	}
}

func writeFilter(sb *strings.Builder, ord int, f *pvg.Turbulence) {
	fmt.Fprintf(sb, `<filter id="f%d"><feTurbulence type="%s" baseFrequency="%s" numOctaves="%d" seed="%d"/></filter>`,
		ord, f.Type, num(f.BaseFreq), f.Octaves, f.Seed)
}

// num formats a coordinate with no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pct formats a fraction as the percentage form the corpus uses.
func pct(v float64) string {
	return strconv.FormatFloat(v*100, 'f', -1, 64) + "%"
}
