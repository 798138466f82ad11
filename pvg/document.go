package pvg

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// Format versions. Version 1 documents carry only a version byte and a
// count byte before the record stream; version 2 adds a flags byte and
// the quantization scale, so the encoder's scale travels with the data
// instead of living in per-script comments.
const (
	Version1 = 1
	Version  = 2
)

// Header flag bits (version >= 2).
const (
	flagCompressed = 0x01 // record stream is zstd-compressed
)

// DefaultScale is the fixed-point multiplier used when none is configured
// and when decoding version-1 documents that predate the scale byte.
const DefaultScale = 10

// ViewBox is the document's coordinate window.
type ViewBox struct {
	MinX, MinY float64
	W, H       float64
}

// String returns the SVG viewBox attribute value.
func (vb ViewBox) String() string {
	return fmt.Sprintf("%s %s %s %s",
		trimFloat(vb.MinX), trimFloat(vb.MinY), trimFloat(vb.W), trimFloat(vb.H))
}

// Document is one encoded artwork: a viewBox plus a flat sequence of
// drawable records. Documents are built once per source image and
// consumed once to rebuild markup; there is no mutation after assembly.
type Document struct {
	ViewBox ViewBox
	Records []Record
}

// Gradients returns the gradient records in document order. Their
// positions define the ordinals used by the 0xFF color form.
func (d *Document) Gradients() []*Gradient {
	var gs []*Gradient
	for _, r := range d.Records {
		if g, ok := r.(*Gradient); ok {
			gs = append(gs, g)
		}
	}
	return gs
}

// Filters returns the turbulence records in document order.
func (d *Document) Filters() []*Turbulence {
	var fs []*Turbulence
	for _, r := range d.Records {
		if f, ok := r.(*Turbulence); ok {
			fs = append(fs, f)
		}
	}
	return fs
}

// EncodeOptions configures document assembly.
type EncodeOptions struct {
	Scale    int      // fixed-point multiplier; DefaultScale if zero
	Palette  *Palette // per-trait color dictionary; may be nil
	Compress bool     // zstd the record stream before base64
}

// Encode assembles the document into its base64 storage form.
func (d *Document) Encode(opts EncodeOptions) (string, error) {
	raw, err := d.EncodeBytes(opts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// EncodeBytes assembles the document into raw bytes: header, meta
// record, then one record per primitive.
func (d *Document) EncodeBytes(opts EncodeOptions) ([]byte, error) {
	if len(d.Records) > 255 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyRecords, len(d.Records))
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	if scale > 255 {
		return nil, fmt.Errorf("pvg: scale %d does not fit the header byte", scale)
	}
	st := &coder{scale: scale, palette: opts.Palette}

	body := make([]byte, 0, 256)
	body = append(body, byte(TagMeta))
	body = AppendSvarint(body, st.q(d.ViewBox.MinX))
	body = AppendSvarint(body, st.q(d.ViewBox.MinY))
	body = AppendSvarint(body, st.q(d.ViewBox.W))
	body = AppendSvarint(body, st.q(d.ViewBox.H))

	for _, r := range d.Records {
		body = append(body, byte(r.Tag()))
		body = r.appendBody(body, st)
	}

	var flags byte
	if opts.Compress {
		flags |= flagCompressed
		body = compressBody(body)
	}

	out := make([]byte, 0, len(body)+4)
	out = append(out, Version, flags, byte(len(d.Records)), byte(scale))
	out = append(out, body...)
	return out, nil
}

// Header is the decoded document header, for inspection without a full
// record-stream decode.
type Header struct {
	Version    uint8
	Count      int
	Scale      int // 0 for version-1 documents, which carry no scale byte
	Compressed bool
}

// ParseHeader reads just the header bytes of a raw document.
func ParseHeader(raw []byte) (Header, error) {
	c := NewCursor(raw)
	version, err := c.Byte()
	if err != nil {
		return Header{}, fmt.Errorf("version: %w", ErrHeader)
	}
	if version < Version1 || version > Version {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, version)
	}
	h := Header{Version: version}
	var flags byte
	if version >= 2 {
		if flags, err = c.Byte(); err != nil {
			return Header{}, fmt.Errorf("flags: %w", ErrHeader)
		}
		h.Compressed = flags&flagCompressed != 0
	}
	count, err := c.Byte()
	if err != nil {
		return Header{}, fmt.Errorf("count: %w", ErrHeader)
	}
	h.Count = int(count)
	if version >= 2 {
		sb, err := c.Byte()
		if err != nil {
			return Header{}, fmt.Errorf("scale: %w", ErrHeader)
		}
		h.Scale = int(sb)
	}
	return h, nil
}

// DecodeOptions configures document decoding.
type DecodeOptions struct {
	Palette     *Palette // per-trait color dictionary; may be nil
	LegacyScale int      // scale assumed for version-1 documents
}

// Decode parses the base64 storage form back into a Document.
//
// On ErrUnknownTag and ErrTruncated the records decoded before the
// failure are returned alongside the error, so callers can keep partial
// output or substitute fallback artwork.
func Decode(s string, opts DecodeOptions) (*Document, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrHeader, err)
	}
	return DecodeBytes(raw, opts)
}

// DecodeBytes parses raw document bytes.
func DecodeBytes(raw []byte, opts DecodeOptions) (*Document, error) {
	hdr, err := ParseHeader(raw)
	if err != nil {
		return nil, err
	}

	scale := hdr.Scale
	if scale <= 0 {
		scale = opts.LegacyScale
	}
	if scale <= 0 {
		scale = DefaultScale
	}

	hdrLen := 2
	if hdr.Version >= 2 {
		hdrLen = 4
	}
	body := raw[hdrLen:]
	if hdr.Compressed {
		if body, err = decompressBody(body); err != nil {
			return nil, err
		}
	}

	doc := &Document{}
	st := &coder{scale: scale, palette: opts.Palette}
	bc := NewCursor(body)

	// Single scanning state: read a tag, dispatch, advance by bytes
	// consumed. End of buffer is success; an unknown tag aborts with
	// whatever was parsed so far.
	for !bc.Done() {
		tb, err := bc.Byte()
		if err != nil {
			return doc, err
		}
		tag := Tag(tb)

		if tag == TagMeta {
			var q [4]int32
			for i := range q {
				v, err := bc.Svarint()
				if err != nil {
					return doc, fmt.Errorf("meta viewBox: %w", err)
				}
				q[i] = v
			}
			doc.ViewBox = ViewBox{
				MinX: st.dq(q[0]), MinY: st.dq(q[1]),
				W: st.dq(q[2]), H: st.dq(q[3]),
			}
			continue
		}

		var rec Record
		switch tag {
		case TagPath:
			rec, err = readPath(bc, st)
		case TagCircles:
			rec, err = readCircleGroup(bc, st)
		case TagRect:
			rec, err = readRect(bc, st)
		case TagLine:
			rec, err = readLine(bc, st)
		case TagText:
			rec, err = readText(bc, st)
		case TagGradient:
			rec, err = readGradient(bc, st)
		case TagTurbulence:
			rec, err = readTurbulence(bc, st)
		default:
			return doc, fmt.Errorf("%w: %d at offset %d", ErrUnknownTag, tb, bc.Offset()-1)
		}
		if err != nil {
			return doc, err
		}
		doc.Records = append(doc.Records, rec)
	}

	if len(doc.Records) != hdr.Count {
		return doc, fmt.Errorf("record count mismatch: header says %d, stream has %d", hdr.Count, len(doc.Records))
	}
	return doc, nil
}

// trimFloat formats a coordinate with no trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
