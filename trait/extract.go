package trait

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tylerlengyel/compressedPhil/pvg"
)

// Element and attribute patterns for the fixed SVG vocabulary of the
// corpus. This is pattern matching against hand-authored markup, not an
// XML parser; elements outside the vocabulary are ignored.
var (
	reViewBox = regexp.MustCompile(`viewBox="([^"]*)"`)
	rePath    = regexp.MustCompile(`<path\b[^>]*>`)
	reCircle  = regexp.MustCompile(`<circle\b[^>]*>`)
	reRect    = regexp.MustCompile(`<rect\b[^>]*>`)
	reLine    = regexp.MustCompile(`<line\b[^>]*>`)
	reText    = regexp.MustCompile(`(?s)<text\b[^>]*>(.*?)</text>`)
	reLinGrad = regexp.MustCompile(`(?s)<linearGradient\b[^>]*>.*?</linearGradient>`)
	reRadGrad = regexp.MustCompile(`(?s)<radialGradient\b[^>]*>.*?</radialGradient>`)
	reStop    = regexp.MustCompile(`<stop\b[^>]*/?>`)
	reFilter  = regexp.MustCompile(`(?s)<filter\b[^>]*>.*?</filter>`)
	reTurb    = regexp.MustCompile(`<feTurbulence\b[^>]*/?>`)
	reURLRef  = regexp.MustCompile(`url\(#([^)]+)\)`)
)

var attrNames = []string{
	"id", "d", "fill", "stroke", "stroke-width", "stroke-linecap",
	"opacity", "filter", "cx", "cy", "r", "x", "y", "width", "height",
	"rx", "x1", "y1", "x2", "y2", "font-size", "font-family",
	"text-anchor", "offset", "stop-color", "stop-opacity",
	"type", "baseFrequency", "numOctaves", "seed",
}

var attrPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(attrNames))
	for _, name := range attrNames {
		m[name] = regexp.MustCompile(`\s` + name + `="([^"]*)"`)
	}
	return m
}()

// attr pulls one attribute value out of an element's markup.
func attr(elem, name string) (string, bool) {
	m := attrPatterns[name].FindStringSubmatch(elem)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func attrFloat(elem, name string, def float64) float64 {
	s, ok := attr(elem, name)
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "px")), 64)
	if err != nil {
		return def
	}
	return v
}

// fraction parses gradient geometry and stop offsets, which the corpus
// writes either as percentages ("35%") or bare fractions ("0.35").
func fraction(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return def
	}
	if pct {
		v /= 100
	}
	return v
}

var textUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", `"`, "&amp;", "&")

// Extract pattern-matches an SVG source into a pvg.Document.
// Unparseable attributes degrade per the codec's fallback policy
// (black, none, zero); Extract itself only fails on broken path data.
func Extract(svg string) (*pvg.Document, error) {
	doc := &pvg.Document{ViewBox: parseViewBox(svg)}

	type placed struct {
		at  int
		rec pvg.Record
	}
	var items []placed

	// Definitions first: gradient and filter ordinals are their
	// positions among records of their kind, and paints reference them
	// by id in the source markup.
	gradIndex := make(map[string]int)
	filtIndex := make(map[string]int)

	var gradMatches [][]int
	gradMatches = append(gradMatches, reLinGrad.FindAllStringIndex(svg, -1)...)
	gradMatches = append(gradMatches, reRadGrad.FindAllStringIndex(svg, -1)...)
	sort.Slice(gradMatches, func(i, j int) bool { return gradMatches[i][0] < gradMatches[j][0] })
	for _, loc := range gradMatches {
		g := parseGradient(svg[loc[0]:loc[1]])
		if g.ID != "" {
			gradIndex[g.ID] = len(gradIndex)
		}
		items = append(items, placed{loc[0], g})
	}

	for _, loc := range reFilter.FindAllStringIndex(svg, -1) {
		t := parseTurbulence(svg[loc[0]:loc[1]])
		if t == nil {
			continue
		}
		if t.ID != "" {
			filtIndex[t.ID] = len(filtIndex)
		}
		items = append(items, placed{loc[0], t})
	}

	paint := func(s string) pvg.Color {
		if m := reURLRef.FindStringSubmatch(s); m != nil {
			if ord, ok := gradIndex[m[1]]; ok {
				return pvg.GradientRef(ord)
			}
			return pvg.FallbackBlack
		}
		return pvg.ParseColor(s)
	}
	filterRef := func(elem string) int {
		s, ok := attr(elem, "filter")
		if !ok {
			return -1
		}
		if m := reURLRef.FindStringSubmatch(s); m != nil {
			if ord, ok := filtIndex[m[1]]; ok {
				return ord
			}
		}
		return -1
	}

	for _, loc := range rePath.FindAllStringIndex(svg, -1) {
		elem := svg[loc[0]:loc[1]]
		d, _ := attr(elem, "d")
		cmds, err := pvg.ParsePathData(d)
		if err != nil {
			return nil, err
		}
		fill := pvg.FallbackBlack
		if s, ok := attr(elem, "fill"); ok {
			fill = paint(s)
		}
		stroke := pvg.None
		if s, ok := attr(elem, "stroke"); ok {
			stroke = paint(s)
		}
		items = append(items, placed{loc[0], &pvg.Path{
			Fill:        fill,
			Stroke:      stroke,
			StrokeWidth: attrFloat(elem, "stroke-width", 0),
			Opacity:     attrFloat(elem, "opacity", 1),
			Filter:      filterRef(elem),
			Commands:    cmds,
		}})
	}

	for _, loc := range reCircle.FindAllStringIndex(svg, -1) {
		elem := svg[loc[0]:loc[1]]
		fill := pvg.FallbackBlack
		if s, ok := attr(elem, "fill"); ok {
			fill = paint(s)
		}
		items = append(items, placed{loc[0], &pvg.CircleGroup{Circles: []pvg.Circle{{
			CX:   attrFloat(elem, "cx", 0),
			CY:   attrFloat(elem, "cy", 0),
			R:    attrFloat(elem, "r", 0),
			Fill: fill,
		}}}})
	}

	for _, loc := range reRect.FindAllStringIndex(svg, -1) {
		elem := svg[loc[0]:loc[1]]
		fill := pvg.FallbackBlack
		if s, ok := attr(elem, "fill"); ok {
			fill = paint(s)
		}
		stroke := pvg.None
		if s, ok := attr(elem, "stroke"); ok {
			stroke = paint(s)
		}
		items = append(items, placed{loc[0], &pvg.Rect{
			X:           attrFloat(elem, "x", 0),
			Y:           attrFloat(elem, "y", 0),
			W:           attrFloat(elem, "width", 0),
			H:           attrFloat(elem, "height", 0),
			RX:          attrFloat(elem, "rx", 0),
			Fill:        fill,
			Stroke:      stroke,
			StrokeWidth: attrFloat(elem, "stroke-width", 0),
			Filter:      filterRef(elem),
		}})
	}

	for _, loc := range reLine.FindAllStringIndex(svg, -1) {
		elem := svg[loc[0]:loc[1]]
		stroke := pvg.FallbackBlack
		if s, ok := attr(elem, "stroke"); ok {
			stroke = paint(s)
		}
		items = append(items, placed{loc[0], &pvg.Line{
			X1:          attrFloat(elem, "x1", 0),
			Y1:          attrFloat(elem, "y1", 0),
			X2:          attrFloat(elem, "x2", 0),
			Y2:          attrFloat(elem, "y2", 0),
			Stroke:      stroke,
			StrokeWidth: attrFloat(elem, "stroke-width", 0),
			Cap:         lineCap(elem),
		}})
	}

	for _, m := range reText.FindAllStringSubmatchIndex(svg, -1) {
		elem := svg[m[0]:m[1]]
		content := textUnescaper.Replace(strings.TrimSpace(svg[m[2]:m[3]]))
		fill := pvg.FallbackBlack
		if s, ok := attr(elem, "fill"); ok {
			fill = paint(s)
		}
		family, _ := attr(elem, "font-family")
		items = append(items, placed{m[0], &pvg.Text{
			X:       attrFloat(elem, "x", 0),
			Y:       attrFloat(elem, "y", 0),
			Size:    attrFloat(elem, "font-size", 16),
			Fill:    fill,
			Anchor:  textAnchor(elem),
			Family:  family,
			Content: content,
		}})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].at < items[j].at })

	// Consecutive circles collapse into one group record.
	for _, it := range items {
		if g, ok := it.rec.(*pvg.CircleGroup); ok && len(doc.Records) > 0 {
			if prev, ok := doc.Records[len(doc.Records)-1].(*pvg.CircleGroup); ok {
				prev.Circles = append(prev.Circles, g.Circles...)
				continue
			}
		}
		doc.Records = append(doc.Records, it.rec)
	}
	return doc, nil
}

func parseViewBox(svg string) pvg.ViewBox {
	m := reViewBox.FindStringSubmatch(svg)
	if m == nil {
		return pvg.ViewBox{W: 1000, H: 1000}
	}
	fields := strings.FieldsFunc(m[1], func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 4 {
		return pvg.ViewBox{W: 1000, H: 1000}
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return pvg.ViewBox{W: 1000, H: 1000}
		}
		v[i] = n
	}
	return pvg.ViewBox{MinX: v[0], MinY: v[1], W: v[2], H: v[3]}
}

func parseGradient(elem string) *pvg.Gradient {
	g := &pvg.Gradient{}
	g.ID, _ = attr(elem, "id")
	if strings.HasPrefix(elem, "<radialGradient") {
		g.Kind = pvg.GradientRadial
		cx, _ := attr(elem, "cx")
		cy, _ := attr(elem, "cy")
		r, _ := attr(elem, "r")
		g.CX = fraction(cx, 0.5)
		g.CY = fraction(cy, 0.5)
		g.R = fraction(r, 0.5)
	} else {
		g.Kind = pvg.GradientLinear
		x1, _ := attr(elem, "x1")
		y1, _ := attr(elem, "y1")
		x2, _ := attr(elem, "x2")
		y2, _ := attr(elem, "y2")
		g.X1 = fraction(x1, 0)
		g.Y1 = fraction(y1, 0)
		g.X2 = fraction(x2, 1)
		g.Y2 = fraction(y2, 0)
	}
	for _, stop := range reStop.FindAllString(elem, -1) {
		off, _ := attr(stop, "offset")
		col, _ := attr(stop, "stop-color")
		op, hasOp := attr(stop, "stop-opacity")
		opacity := 1.0
		if hasOp {
			opacity = fraction(op, 1)
		}
		g.Stops = append(g.Stops, pvg.Stop{
			Offset:  fraction(off, 0),
			Color:   pvg.ParseColor(col),
			Opacity: opacity,
		})
	}
	return g
}

func parseTurbulence(elem string) *pvg.Turbulence {
	m := reTurb.FindString(elem)
	if m == "" {
		return nil
	}
	t := &pvg.Turbulence{}
	t.ID, _ = attr(elem, "id")
	if s, ok := attr(m, "type"); ok && strings.TrimSpace(s) == "turbulence" {
		t.Type = pvg.NoiseTurbulence
	}
	t.BaseFreq = attrFloat(m, "baseFrequency", 0)
	oct := attrFloat(m, "numOctaves", 1)
	if oct < 0 {
		oct = 0
	}
	if oct > 255 {
		oct = 255
	}
	t.Octaves = uint8(oct)
	seed := attrFloat(m, "seed", 0)
	if seed < 0 {
		seed = 0
	}
	t.Seed = uint32(seed)
	return t
}

func lineCap(elem string) pvg.LineCap {
	switch s, _ := attr(elem, "stroke-linecap"); strings.TrimSpace(s) {
	case "round":
		return pvg.CapRound
	case "square":
		return pvg.CapSquare
	default:
		return pvg.CapButt
	}
}

func textAnchor(elem string) pvg.TextAnchor {
	switch s, _ := attr(elem, "text-anchor"); strings.TrimSpace(s) {
	case "middle":
		return pvg.AnchorMiddle
	case "end":
		return pvg.AnchorEnd
	default:
		return pvg.AnchorStart
	}
}
