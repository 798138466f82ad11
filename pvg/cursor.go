package pvg

import "fmt"

// Cursor is a bounds-checked reader over an encoded record stream.
// Every read returns ErrTruncated (wrapped with context) when the buffer
// runs out mid-value; this is the single place the bounds check lives.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor creates a cursor over buf starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the current read offset.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Done reports whether the cursor has consumed the whole buffer.
func (c *Cursor) Done() bool {
	return c.off >= len(c.buf)
}

// Byte reads a single byte.
func (c *Cursor) Byte() (byte, error) {
	if c.off >= len(c.buf) {
		return 0, fmt.Errorf("byte at offset %d: %w", c.off, ErrTruncated)
	}
	b := c.buf[c.off]
	c.off++
	return b, nil
}

// Take reads exactly n bytes. The returned slice aliases the buffer.
func (c *Cursor) Take(n int) ([]byte, error) {
	if n < 0 || c.off+n > len(c.buf) {
		return nil, fmt.Errorf("%d bytes at offset %d: %w", n, c.off, ErrTruncated)
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Uvarint reads a base-128 varint. It stops at the first byte with the
// high bit clear and errors if the buffer ends before that.
func (c *Cursor) Uvarint() (uint32, error) {
	var v uint32
	var shift uint
	for {
		if c.off >= len(c.buf) {
			return 0, fmt.Errorf("varint at offset %d: %w", c.off, ErrTruncated)
		}
		b := c.buf[c.off]
		c.off++
		v |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, fmt.Errorf("varint at offset %d exceeds 32 bits", c.off)
		}
	}
}

// Svarint reads a zigzag-mapped signed varint.
func (c *Cursor) Svarint() (int32, error) {
	u, err := c.Uvarint()
	if err != nil {
		return 0, err
	}
	return Unzigzag(u), nil
}

// String reads a length-prefixed UTF-8 string.
func (c *Cursor) String() (string, error) {
	n, err := c.Uvarint()
	if err != nil {
		return "", err
	}
	b, err := c.Take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
