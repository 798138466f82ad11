package pvg

import "fmt"

// Tag identifies the record kind. Decoding dispatches purely on the tag;
// an unrecognized tag aborts the scan rather than skipping bytes.
type Tag uint8

const (
	TagMeta       Tag = 1 // quantized viewBox
	TagPath       Tag = 2 // path with delta-encoded command stream
	TagCircles    Tag = 3 // circle group, centers delta-chained
	TagRect       Tag = 4 // rectangle
	TagLine       Tag = 5 // line segment
	TagText       Tag = 6 // positioned text run
	TagGradient   Tag = 7 // linear/radial gradient stop list
	TagTurbulence Tag = 8 // feTurbulence filter definition
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagMeta:
		return "meta"
	case TagPath:
		return "path"
	case TagCircles:
		return "circles"
	case TagRect:
		return "rect"
	case TagLine:
		return "line"
	case TagText:
		return "text"
	case TagGradient:
		return "gradient"
	case TagTurbulence:
		return "turbulence"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Record is one drawable primitive in a document.
type Record interface {
	Tag() Tag

	// appendBody writes the record body (everything after the tag byte).
	appendBody(buf []byte, st *coder) []byte
}

// coder carries the shared quantization and dictionary state for one
// encode or decode pass.
type coder struct {
	scale   int
	palette *Palette
}

func (st *coder) q(v float64) int32  { return Quantize(v, st.scale) }
func (st *coder) dq(q int32) float64 { return Dequantize(q, st.scale) }

// ============================================================
// Circle group
// ============================================================

// Circle is one member of a CircleGroup.
type Circle struct {
	CX, CY float64
	R      float64
	Fill   Color
}

// CircleGroup packs a cluster of circles with delta-chained centers.
type CircleGroup struct {
	Circles []Circle
}

func (g *CircleGroup) Tag() Tag { return TagCircles }

func (g *CircleGroup) appendBody(buf []byte, st *coder) []byte {
	buf = AppendUvarint(buf, uint32(len(g.Circles)))
	var px, py int32
	for _, c := range g.Circles {
		qx, qy := st.q(c.CX), st.q(c.CY)
		buf = AppendSvarint(buf, qx-px)
		buf = AppendSvarint(buf, qy-py)
		px, py = qx, qy
		r := st.q(c.R)
		if r < 0 {
			r = 0
		}
		buf = AppendUvarint(buf, uint32(r))
		buf = appendColor(buf, c.Fill, st.palette)
	}
	return buf
}

func readCircleGroup(c *Cursor, st *coder) (*CircleGroup, error) {
	n, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("circle count: %w", err)
	}
	g := &CircleGroup{Circles: make([]Circle, 0, n)}
	var px, py int32
	for i := uint32(0); i < n; i++ {
		dx, err := c.Svarint()
		if err != nil {
			return nil, fmt.Errorf("circle %d cx: %w", i, err)
		}
		dy, err := c.Svarint()
		if err != nil {
			return nil, fmt.Errorf("circle %d cy: %w", i, err)
		}
		px += dx
		py += dy
		r, err := c.Uvarint()
		if err != nil {
			return nil, fmt.Errorf("circle %d r: %w", i, err)
		}
		fill, err := readColor(c, st.palette)
		if err != nil {
			return nil, fmt.Errorf("circle %d fill: %w", i, err)
		}
		g.Circles = append(g.Circles, Circle{
			CX:   st.dq(px),
			CY:   st.dq(py),
			R:    st.dq(int32(r)),
			Fill: fill,
		})
	}
	return g, nil
}

// ============================================================
// Rect
// ============================================================

// Rect is a rectangle, optionally rounded and filtered.
type Rect struct {
	X, Y, W, H  float64
	RX          float64 // corner radius, 0 for square corners
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Filter      int // turbulence ordinal, -1 for none
}

func (r *Rect) Tag() Tag { return TagRect }

func (r *Rect) appendBody(buf []byte, st *coder) []byte {
	buf = AppendSvarint(buf, st.q(r.X))
	buf = AppendSvarint(buf, st.q(r.Y))
	buf = AppendSvarint(buf, st.q(r.W))
	buf = AppendSvarint(buf, st.q(r.H))
	buf = AppendSvarint(buf, st.q(r.RX))
	buf = appendColor(buf, r.Fill, st.palette)
	buf = appendColor(buf, r.Stroke, st.palette)
	buf = AppendUvarint(buf, uint32(max(st.q(r.StrokeWidth), 0)))
	buf = append(buf, filterByte(r.Filter))
	return buf
}

func readRect(c *Cursor, st *coder) (*Rect, error) {
	var q [5]int32
	for i := range q {
		v, err := c.Svarint()
		if err != nil {
			return nil, fmt.Errorf("rect geometry: %w", err)
		}
		q[i] = v
	}
	fill, err := readColor(c, st.palette)
	if err != nil {
		return nil, fmt.Errorf("rect fill: %w", err)
	}
	stroke, err := readColor(c, st.palette)
	if err != nil {
		return nil, fmt.Errorf("rect stroke: %w", err)
	}
	sw, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("rect stroke-width: %w", err)
	}
	fb, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("rect filter: %w", err)
	}
	return &Rect{
		X: st.dq(q[0]), Y: st.dq(q[1]), W: st.dq(q[2]), H: st.dq(q[3]),
		RX:          st.dq(q[4]),
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: st.dq(int32(sw)),
		Filter:      filterOrdinal(fb),
	}, nil
}

// ============================================================
// Line
// ============================================================

// LineCap mirrors the SVG stroke-linecap values.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// String returns the SVG attribute value.
func (lc LineCap) String() string {
	switch lc {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

// Line is a stroked segment; the endpoint is stored as a delta.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Color
	StrokeWidth    float64
	Cap            LineCap
}

func (l *Line) Tag() Tag { return TagLine }

func (l *Line) appendBody(buf []byte, st *coder) []byte {
	x1, y1 := st.q(l.X1), st.q(l.Y1)
	buf = AppendSvarint(buf, x1)
	buf = AppendSvarint(buf, y1)
	buf = AppendSvarint(buf, st.q(l.X2)-x1)
	buf = AppendSvarint(buf, st.q(l.Y2)-y1)
	buf = appendColor(buf, l.Stroke, st.palette)
	buf = AppendUvarint(buf, uint32(max(st.q(l.StrokeWidth), 0)))
	buf = append(buf, byte(l.Cap))
	return buf
}

func readLine(c *Cursor, st *coder) (*Line, error) {
	x1, err := c.Svarint()
	if err != nil {
		return nil, fmt.Errorf("line x1: %w", err)
	}
	y1, err := c.Svarint()
	if err != nil {
		return nil, fmt.Errorf("line y1: %w", err)
	}
	dx, err := c.Svarint()
	if err != nil {
		return nil, fmt.Errorf("line x2: %w", err)
	}
	dy, err := c.Svarint()
	if err != nil {
		return nil, fmt.Errorf("line y2: %w", err)
	}
	stroke, err := readColor(c, st.palette)
	if err != nil {
		return nil, fmt.Errorf("line stroke: %w", err)
	}
	sw, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("line stroke-width: %w", err)
	}
	lc, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("line cap: %w", err)
	}
	return &Line{
		X1: st.dq(x1), Y1: st.dq(y1),
		X2: st.dq(x1 + dx), Y2: st.dq(y1 + dy),
		Stroke:      stroke,
		StrokeWidth: st.dq(int32(sw)),
		Cap:         LineCap(lc),
	}, nil
}

// ============================================================
// Text
// ============================================================

// TextAnchor mirrors the SVG text-anchor values.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// String returns the SVG attribute value.
func (a TextAnchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// Text is a positioned text run.
type Text struct {
	X, Y    float64
	Size    float64
	Fill    Color
	Anchor  TextAnchor
	Family  string
	Content string
}

func (t *Text) Tag() Tag { return TagText }

func (t *Text) appendBody(buf []byte, st *coder) []byte {
	buf = AppendSvarint(buf, st.q(t.X))
	buf = AppendSvarint(buf, st.q(t.Y))
	buf = AppendUvarint(buf, uint32(max(st.q(t.Size), 0)))
	buf = appendColor(buf, t.Fill, st.palette)
	buf = append(buf, byte(t.Anchor))
	buf = AppendUvarint(buf, uint32(len(t.Family)))
	buf = append(buf, t.Family...)
	buf = AppendUvarint(buf, uint32(len(t.Content)))
	buf = append(buf, t.Content...)
	return buf
}

func readText(c *Cursor, st *coder) (*Text, error) {
	x, err := c.Svarint()
	if err != nil {
		return nil, fmt.Errorf("text x: %w", err)
	}
	y, err := c.Svarint()
	if err != nil {
		return nil, fmt.Errorf("text y: %w", err)
	}
	size, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("text size: %w", err)
	}
	fill, err := readColor(c, st.palette)
	if err != nil {
		return nil, fmt.Errorf("text fill: %w", err)
	}
	anchor, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("text anchor: %w", err)
	}
	family, err := c.String()
	if err != nil {
		return nil, fmt.Errorf("text family: %w", err)
	}
	content, err := c.String()
	if err != nil {
		return nil, fmt.Errorf("text content: %w", err)
	}
	return &Text{
		X: st.dq(x), Y: st.dq(y),
		Size:    st.dq(int32(size)),
		Fill:    fill,
		Anchor:  TextAnchor(anchor),
		Family:  family,
		Content: content,
	}, nil
}

// ============================================================
// Gradient
// ============================================================

// GradientKind discriminates linear and radial gradients.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
)

// Stop is one gradient color stop. Offset and Opacity are fractions in
// [0, 1]; on the wire they are single bytes (percent and 0..255).
type Stop struct {
	Offset  float64
	Color   Color
	Opacity float64
}

// Gradient is a linear or radial gradient definition. Geometry values
// are fractions of the bounding box, stored as per-mille on the wire.
// Gradients are referenced by ordinal position through the 0xFF color
// form; ID is only used while extracting, to map url(#id) references.
type Gradient struct {
	ID    string
	Kind  GradientKind
	X1    float64 // linear
	Y1    float64
	X2    float64
	Y2    float64
	CX    float64 // radial
	CY    float64
	R     float64
	Stops []Stop
}

func (g *Gradient) Tag() Tag { return TagGradient }

func (g *Gradient) appendBody(buf []byte, st *coder) []byte {
	buf = append(buf, byte(g.Kind))
	if g.Kind == GradientRadial {
		buf = AppendSvarint(buf, perMille(g.CX))
		buf = AppendSvarint(buf, perMille(g.CY))
		buf = AppendSvarint(buf, perMille(g.R))
	} else {
		buf = AppendSvarint(buf, perMille(g.X1))
		buf = AppendSvarint(buf, perMille(g.Y1))
		buf = AppendSvarint(buf, perMille(g.X2))
		buf = AppendSvarint(buf, perMille(g.Y2))
	}
	buf = AppendUvarint(buf, uint32(len(g.Stops)))
	for _, s := range g.Stops {
		buf = append(buf, percentByte(s.Offset))
		buf = appendColor(buf, s.Color, st.palette)
		buf = append(buf, opacityByte(s.Opacity))
	}
	return buf
}

func readGradient(c *Cursor, st *coder) (*Gradient, error) {
	kind, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("gradient kind: %w", err)
	}
	g := &Gradient{Kind: GradientKind(kind)}
	ncoords := 4
	if g.Kind == GradientRadial {
		ncoords = 3
	}
	coords := make([]float64, ncoords)
	for i := range coords {
		v, err := c.Svarint()
		if err != nil {
			return nil, fmt.Errorf("gradient geometry: %w", err)
		}
		coords[i] = float64(v) / 1000
	}
	if g.Kind == GradientRadial {
		g.CX, g.CY, g.R = coords[0], coords[1], coords[2]
	} else {
		g.X1, g.Y1, g.X2, g.Y2 = coords[0], coords[1], coords[2], coords[3]
	}
	n, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("gradient stop count: %w", err)
	}
	g.Stops = make([]Stop, 0, n)
	for i := uint32(0); i < n; i++ {
		off, err := c.Byte()
		if err != nil {
			return nil, fmt.Errorf("stop %d offset: %w", i, err)
		}
		col, err := readColor(c, st.palette)
		if err != nil {
			return nil, fmt.Errorf("stop %d color: %w", i, err)
		}
		op, err := c.Byte()
		if err != nil {
			return nil, fmt.Errorf("stop %d opacity: %w", i, err)
		}
		g.Stops = append(g.Stops, Stop{
			Offset:  float64(off) / 100,
			Color:   col,
			Opacity: float64(op) / 255,
		})
	}
	return g, nil
}

// ============================================================
// Turbulence filter
// ============================================================

// NoiseType mirrors the feTurbulence type attribute.
type NoiseType uint8

const (
	NoiseFractal NoiseType = iota // fractalNoise
	NoiseTurbulence
)

// String returns the SVG attribute value.
func (n NoiseType) String() string {
	if n == NoiseTurbulence {
		return "turbulence"
	}
	return "fractalNoise"
}

// Turbulence is an feTurbulence filter definition, referenced by ordinal
// from path and rect records. BaseFreq is stored as ×10⁴ on the wire.
type Turbulence struct {
	ID       string
	Type     NoiseType
	BaseFreq float64
	Octaves  uint8
	Seed     uint32
}

func (t *Turbulence) Tag() Tag { return TagTurbulence }

func (t *Turbulence) appendBody(buf []byte, st *coder) []byte {
	buf = append(buf, byte(t.Type))
	bf := int32(t.BaseFreq*10000 + 0.5)
	if bf < 0 {
		bf = 0
	}
	buf = AppendUvarint(buf, uint32(bf))
	buf = append(buf, t.Octaves)
	buf = AppendUvarint(buf, t.Seed)
	return buf
}

func readTurbulence(c *Cursor, st *coder) (*Turbulence, error) {
	typ, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("turbulence type: %w", err)
	}
	bf, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("turbulence baseFrequency: %w", err)
	}
	oct, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("turbulence octaves: %w", err)
	}
	seed, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("turbulence seed: %w", err)
	}
	return &Turbulence{
		Type:     NoiseType(typ),
		BaseFreq: float64(bf) / 10000,
		Octaves:  oct,
		Seed:     seed,
	}, nil
}

// ============================================================
// Small helpers
// ============================================================

// filterByte maps a -1-based filter ordinal to the wire byte (0 = none).
func filterByte(ord int) byte {
	if ord < 0 || ord > 254 {
		return 0
	}
	return byte(ord + 1)
}

// filterOrdinal inverts filterByte.
func filterOrdinal(b byte) int {
	return int(b) - 1
}

// perMille quantizes a bounding-box fraction to thousandths.
func perMille(v float64) int32 {
	return Quantize(v, 1000)
}

// percentByte clamps a fraction to a 0..100 byte.
func percentByte(v float64) byte {
	n := int(v*100 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 100 {
		n = 100
	}
	return byte(n)
}

// opacityByte clamps a fraction to a 0..255 byte.
func opacityByte(v float64) byte {
	n := int(v*255 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return byte(n)
}
