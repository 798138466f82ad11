package pvg

import (
	"fmt"
	"strconv"
	"strings"
)

// Path command opcodes on the wire: low nibble is the op index, bit 0x10
// marks a command that was relative in the source (it is re-emitted
// relative, recomputed against the pen).
const (
	opClose   = 0
	opMove    = 1
	opLine    = 2
	opHoriz   = 3
	opVert    = 4
	opCubic   = 5
	opSmoothC = 6
	opQuad    = 7
	opSmoothQ = 8
	opArc     = 9

	opRelFlag = 0x10
)

var opLetters = [...]byte{'Z', 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A'}

// argCount is the number of coordinate values per op (arc flags included).
var argCount = [...]int{0, 2, 2, 1, 1, 6, 4, 4, 2, 7}

func opIndex(letter byte) (int, bool) {
	for i, l := range opLetters {
		if l == letter {
			return i, true
		}
	}
	return 0, false
}

// PathCommand is one SVG path command with coordinates resolved to
// absolute values. Rel records whether the source wrote it relative, so
// rendering can reproduce the original spelling.
type PathCommand struct {
	Op   byte // canonical uppercase letter: M L H V C S Q T A Z
	Rel  bool
	Args []float64
}

// Path is a filled/stroked path with a delta-encoded command stream.
type Path struct {
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Opacity     float64 // 0..1; 1 when the source has no opacity attribute
	Filter      int     // turbulence ordinal, -1 for none
	Commands    []PathCommand
}

func (p *Path) Tag() Tag { return TagPath }

// ============================================================
// d attribute parsing
// ============================================================

// ParsePathData parses an SVG path data string into absolute commands.
// It understands the command vocabulary of the hand-authored corpus
// (M L H V C S Q T A Z, both cases, implicit repeats) and is not a
// general path parser. The pen and subpath start are tracked exactly as
// SVG specifies so relative commands resolve correctly.
func ParsePathData(d string) ([]PathCommand, error) {
	var cmds []PathCommand
	var penX, penY, startX, startY float64

	s := strings.TrimSpace(d)
	pos := 0
	skip := func() {
		for pos < len(s) && (s[pos] == ' ' || s[pos] == ',' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
			pos++
		}
	}

	var op byte
	var rel bool
	for {
		skip()
		if pos >= len(s) {
			return cmds, nil
		}

		ch := s[pos]
		if ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' {
			upper := ch &^ 0x20
			if _, ok := opIndex(upper); !ok {
				return cmds, fmt.Errorf("path command %q", string(ch))
			}
			op = upper
			rel = ch >= 'a'
			pos++
			if op == 'Z' {
				cmds = append(cmds, PathCommand{Op: 'Z', Rel: rel})
				penX, penY = startX, startY
				continue
			}
			skip()
		} else if op == 0 {
			return cmds, fmt.Errorf("path data starts with %q, want a command", string(ch))
		} else if op == 'Z' {
			// Close takes no values; a repeat here would consume nothing.
			return cmds, fmt.Errorf("path data continues after close command")
		} else if op == 'M' {
			// Implicit repeat after moveto is lineto, same case.
			op = 'L'
		}

		idx, _ := opIndex(op)
		n := argCount[idx]
		args := make([]float64, n)
		for i := 0; i < n; i++ {
			skip()
			v, w := scanNumber(s[pos:])
			if w == 0 {
				return cmds, fmt.Errorf("path %c: want %d values, got %d", op, n, i)
			}
			args[i] = v
			pos += w
		}

		cmd := PathCommand{Op: op, Rel: rel, Args: args}
		switch op {
		case 'M', 'L', 'T':
			if rel {
				cmd.Args[0] += penX
				cmd.Args[1] += penY
			}
			penX, penY = cmd.Args[0], cmd.Args[1]
			if op == 'M' {
				startX, startY = penX, penY
			}
		case 'H':
			if rel {
				cmd.Args[0] += penX
			}
			penX = cmd.Args[0]
		case 'V':
			if rel {
				cmd.Args[0] += penY
			}
			penY = cmd.Args[0]
		case 'C', 'S', 'Q':
			if rel {
				for i := 0; i < len(cmd.Args); i += 2 {
					cmd.Args[i] += penX
					cmd.Args[i+1] += penY
				}
			}
			penX, penY = cmd.Args[len(cmd.Args)-2], cmd.Args[len(cmd.Args)-1]
		case 'A':
			// rx ry xrot large sweep x y: only the endpoint is positional.
			if rel {
				cmd.Args[5] += penX
				cmd.Args[6] += penY
			}
			penX, penY = cmd.Args[5], cmd.Args[6]
		}
		cmds = append(cmds, cmd)
	}
}

// scanNumber reads one float (sign, decimals, exponent) from the front
// of s, returning the value and bytes consumed (0 if none).
func scanNumber(s string) (float64, int) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := false
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		if s[i] != '.' {
			digits = true
		}
		i++
	}
	if digits && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > i+1 {
			i = j
		}
	}
	if !digits {
		return 0, 0
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, 0
	}
	return v, i
}

// ============================================================
// Wire form
// ============================================================

func (p *Path) appendBody(buf []byte, st *coder) []byte {
	buf = appendColor(buf, p.Fill, st.palette)
	buf = appendColor(buf, p.Stroke, st.palette)
	buf = AppendUvarint(buf, uint32(max(st.q(p.StrokeWidth), 0)))
	buf = append(buf, opacityByte(p.Opacity))
	buf = append(buf, filterByte(p.Filter))
	buf = AppendUvarint(buf, uint32(len(p.Commands)))

	var penX, penY, startX, startY int32
	for _, cmd := range p.Commands {
		idx, _ := opIndex(cmd.Op)
		b := byte(idx)
		if cmd.Rel {
			b |= opRelFlag
		}
		buf = append(buf, b)

		switch cmd.Op {
		case 'Z':
			penX, penY = startX, startY
		case 'H':
			qx := st.q(cmd.Args[0])
			buf = AppendSvarint(buf, qx-penX)
			penX = qx
		case 'V':
			qy := st.q(cmd.Args[0])
			buf = AppendSvarint(buf, qy-penY)
			penY = qy
		case 'A':
			buf = AppendUvarint(buf, uint32(max(st.q(cmd.Args[0]), 0)))
			buf = AppendUvarint(buf, uint32(max(st.q(cmd.Args[1]), 0)))
			buf = AppendSvarint(buf, st.q(cmd.Args[2]))
			var flags byte
			if cmd.Args[3] != 0 {
				flags |= 1
			}
			if cmd.Args[4] != 0 {
				flags |= 2
			}
			buf = append(buf, flags)
			qx, qy := st.q(cmd.Args[5]), st.q(cmd.Args[6])
			buf = AppendSvarint(buf, qx-penX)
			buf = AppendSvarint(buf, qy-penY)
			penX, penY = qx, qy
		default:
			// Point lists: every point is a delta against the pen at
			// command start; the pen advances to the final point.
			var lastX, lastY int32 = penX, penY
			for i := 0; i < len(cmd.Args); i += 2 {
				qx, qy := st.q(cmd.Args[i]), st.q(cmd.Args[i+1])
				buf = AppendSvarint(buf, qx-penX)
				buf = AppendSvarint(buf, qy-penY)
				lastX, lastY = qx, qy
			}
			penX, penY = lastX, lastY
			if cmd.Op == 'M' {
				startX, startY = penX, penY
			}
		}
	}
	return buf
}

func readPath(c *Cursor, st *coder) (*Path, error) {
	fill, err := readColor(c, st.palette)
	if err != nil {
		return nil, fmt.Errorf("path fill: %w", err)
	}
	stroke, err := readColor(c, st.palette)
	if err != nil {
		return nil, fmt.Errorf("path stroke: %w", err)
	}
	sw, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("path stroke-width: %w", err)
	}
	op, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("path opacity: %w", err)
	}
	fb, err := c.Byte()
	if err != nil {
		return nil, fmt.Errorf("path filter: %w", err)
	}
	ncmd, err := c.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("path command count: %w", err)
	}

	p := &Path{
		Fill:        fill,
		Stroke:      stroke,
		StrokeWidth: st.dq(int32(sw)),
		Opacity:     float64(op) / 255,
		Filter:      filterOrdinal(fb),
		Commands:    make([]PathCommand, 0, ncmd),
	}

	var penX, penY, startX, startY int32
	for i := uint32(0); i < ncmd; i++ {
		b, err := c.Byte()
		if err != nil {
			return nil, fmt.Errorf("path command %d: %w", i, err)
		}
		idx := int(b &^ opRelFlag)
		if idx >= len(opLetters) {
			return nil, fmt.Errorf("path command %d: opcode %d: %w", i, idx, ErrUnknownTag)
		}
		cmd := PathCommand{Op: opLetters[idx], Rel: b&opRelFlag != 0}

		switch cmd.Op {
		case 'Z':
			penX, penY = startX, startY
		case 'H':
			d, err := c.Svarint()
			if err != nil {
				return nil, fmt.Errorf("path command %d: %w", i, err)
			}
			penX += d
			cmd.Args = []float64{st.dq(penX)}
		case 'V':
			d, err := c.Svarint()
			if err != nil {
				return nil, fmt.Errorf("path command %d: %w", i, err)
			}
			penY += d
			cmd.Args = []float64{st.dq(penY)}
		case 'A':
			rx, err := c.Uvarint()
			if err != nil {
				return nil, fmt.Errorf("path command %d rx: %w", i, err)
			}
			ry, err := c.Uvarint()
			if err != nil {
				return nil, fmt.Errorf("path command %d ry: %w", i, err)
			}
			rot, err := c.Svarint()
			if err != nil {
				return nil, fmt.Errorf("path command %d rotation: %w", i, err)
			}
			flags, err := c.Byte()
			if err != nil {
				return nil, fmt.Errorf("path command %d flags: %w", i, err)
			}
			dx, err := c.Svarint()
			if err != nil {
				return nil, fmt.Errorf("path command %d x: %w", i, err)
			}
			dy, err := c.Svarint()
			if err != nil {
				return nil, fmt.Errorf("path command %d y: %w", i, err)
			}
			qx, qy := penX+dx, penY+dy
			cmd.Args = []float64{
				st.dq(int32(rx)), st.dq(int32(ry)), st.dq(rot),
				float64(flags & 1), float64(flags >> 1 & 1),
				st.dq(qx), st.dq(qy),
			}
			penX, penY = qx, qy
		default:
			n := argCount[idx]
			cmd.Args = make([]float64, n)
			var lastX, lastY int32 = penX, penY
			for j := 0; j < n; j += 2 {
				dx, err := c.Svarint()
				if err != nil {
					return nil, fmt.Errorf("path command %d point: %w", i, err)
				}
				dy, err := c.Svarint()
				if err != nil {
					return nil, fmt.Errorf("path command %d point: %w", i, err)
				}
				qx, qy := penX+dx, penY+dy
				cmd.Args[j] = st.dq(qx)
				cmd.Args[j+1] = st.dq(qy)
				lastX, lastY = qx, qy
			}
			penX, penY = lastX, lastY
			if cmd.Op == 'M' {
				startX, startY = penX, penY
			}
		}
		p.Commands = append(p.Commands, cmd)
	}
	return p, nil
}

// ============================================================
// d attribute rendering
// ============================================================

// FormatPathData renders commands back to an SVG d string. Commands
// flagged relative are spelled lowercase with coordinates recomputed
// against the pen, so a parse/format round trip preserves the source's
// absolute-versus-relative structure.
func FormatPathData(cmds []PathCommand) string {
	var sb strings.Builder
	var penX, penY, startX, startY float64

	writeNum := func(v float64) {
		sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	writePair := func(x, y float64) {
		writeNum(x)
		sb.WriteByte(',')
		writeNum(y)
	}

	for i, cmd := range cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		letter := cmd.Op
		if cmd.Rel {
			letter |= 0x20
		}
		sb.WriteByte(letter)

		switch cmd.Op {
		case 'Z':
			penX, penY = startX, startY
			continue
		case 'H':
			if cmd.Rel {
				writeNum(cmd.Args[0] - penX)
			} else {
				writeNum(cmd.Args[0])
			}
			penX = cmd.Args[0]
			continue
		case 'V':
			if cmd.Rel {
				writeNum(cmd.Args[0] - penY)
			} else {
				writeNum(cmd.Args[0])
			}
			penY = cmd.Args[0]
			continue
		case 'A':
			writePair(cmd.Args[0], cmd.Args[1])
			sb.WriteByte(' ')
			writeNum(cmd.Args[2])
			sb.WriteByte(' ')
			writeNum(cmd.Args[3])
			sb.WriteByte(' ')
			writeNum(cmd.Args[4])
			sb.WriteByte(' ')
			if cmd.Rel {
				writePair(cmd.Args[5]-penX, cmd.Args[6]-penY)
			} else {
				writePair(cmd.Args[5], cmd.Args[6])
			}
			penX, penY = cmd.Args[5], cmd.Args[6]
			continue
		}

		for j := 0; j < len(cmd.Args); j += 2 {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if cmd.Rel {
				writePair(cmd.Args[j]-penX, cmd.Args[j+1]-penY)
			} else {
				writePair(cmd.Args[j], cmd.Args[j+1])
			}
		}
		penX, penY = cmd.Args[len(cmd.Args)-2], cmd.Args[len(cmd.Args)-1]
		if cmd.Op == 'M' {
			startX, startY = penX, penY
		}
	}
	return sb.String()
}
