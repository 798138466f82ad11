package pvg

import "math"

// AppendUvarint appends n as a base-128 varint: 7-bit groups, least
// significant first, continuation bit in the high bit of each byte.
// Zero encodes as a single zero byte.
func AppendUvarint(buf []byte, n uint32) []byte {
	for n >= 0x80 {
		buf = append(buf, byte(n)|0x80)
		n >>= 7
	}
	return append(buf, byte(n))
}

// AppendSvarint appends n using zigzag mapping over the 32-bit signed
// domain, so small magnitudes of either sign stay short.
func AppendSvarint(buf []byte, n int32) []byte {
	return AppendUvarint(buf, Zigzag(n))
}

// Zigzag maps a signed 32-bit integer to unsigned: 0, -1, 1, -2, 2, ...
func Zigzag(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// Unzigzag inverts Zigzag.
func Unzigzag(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// Quantize converts a coordinate to fixed point: round(v * scale) to
// nearest, ties away from zero.
func Quantize(v float64, scale int) int32 {
	return int32(math.Round(v * float64(scale)))
}

// Dequantize converts a fixed-point value back to a coordinate.
func Dequantize(q int32, scale int) float64 {
	return float64(q) / float64(scale)
}
