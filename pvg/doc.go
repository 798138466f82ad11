// Package pvg implements PVG, a packed binary codec for hand-authored
// vector graphics.
//
// PVG is designed to be:
//   - Byte-cheap (varint coordinates, delta encoding, dictionary colors)
//   - Self-describing (tagged records, version + scale carried in the header)
//   - Round-trippable (an encoded document reconstructs an equivalent SVG)
//   - Storage-friendly (base64 text, optional zstd body)
//
// # Document Layout
//
// A document is a small header followed by a flat record stream:
//
//	version  1 byte
//	flags    1 byte   (version >= 2; bit 0 = zstd body)
//	count    1 byte   (number of primitive records)
//	scale    1 byte   (version >= 2; fixed-point quantization multiplier)
//	meta     record   (quantized viewBox)
//	records  ...      (one tagged record per drawable primitive)
//
// There is no end marker; the stream terminates at end of buffer.
//
// # Records
//
// Each record begins with a one-byte tag (path, circle group, rect, line,
// text, gradient, turbulence filter). Coordinates are quantized to fixed
// point (round(value * scale)) and written as zigzag varints, path and
// circle coordinates as deltas against a running origin.
//
// # Colors
//
// A color token is one of:
//
//	0x00              none
//	0x01..0xFD        1-based index into a per-trait palette
//	0xFE r g b        explicit RGB triple
//	0xFF <uvarint>    reference to the Nth gradient definition
//
// Colors that cannot be parsed degrade to black via an explicit fallback
// policy; decoding never fails on a color.
//
// # Error Tolerance
//
// Decoding has exactly two failure modes: a truncated buffer
// (ErrTruncated) and an unrecognized record tag (ErrUnknownTag). Both
// abort the scan and surface the records parsed so far, so callers can
// substitute fallback artwork without losing partial output.
package pvg
