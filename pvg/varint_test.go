package pvg

import (
	"bytes"
	"errors"
	"testing"
)

// ============================================================
// Varint Tests
// ============================================================

func TestUvarint_RoundTrip(t *testing.T) {
	values := []uint32{
		0, 1, 2, 127, 128, 129, 255, 256, 16383, 16384,
		2097151, 2097152, 1<<28 - 1,
	}
	for _, v := range values {
		buf := AppendUvarint(nil, v)
		c := NewCursor(buf)
		got, err := c.Uvarint()
		if err != nil {
			t.Fatalf("Uvarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
		if !c.Done() {
			t.Errorf("value %d: %d bytes left over", v, c.Remaining())
		}
	}
}

func TestUvarint_ZeroIsSingleByte(t *testing.T) {
	buf := AppendUvarint(nil, 0)
	if !bytes.Equal(buf, []byte{0}) {
		t.Errorf("encoding of 0: got %v, want [0]", buf)
	}
}

func TestUvarint_StopsAtClearHighBit(t *testing.T) {
	// 0x85 0x01 encodes 133; the trailing 0x7F must not be consumed.
	c := NewCursor([]byte{0x85, 0x01, 0x7F})
	v, err := c.Uvarint()
	if err != nil {
		t.Fatalf("Uvarint: %v", err)
	}
	if v != 133 {
		t.Errorf("got %d, want 133", v)
	}
	if c.Offset() != 2 {
		t.Errorf("consumed %d bytes, want 2", c.Offset())
	}
}

func TestSvarint_RoundTrip(t *testing.T) {
	values := []int32{
		0, 1, -1, 2, -2, 63, -64, 64, -65, 1000, -1000,
		1<<27 - 1, -(1 << 27) + 1,
	}
	for _, v := range values {
		buf := AppendSvarint(nil, v)
		got, err := NewCursor(buf).Svarint()
		if err != nil {
			t.Fatalf("Svarint(%d): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestZigzag_SmallMagnitudesStayCompact(t *testing.T) {
	tests := []struct {
		n    int32
		want uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
	}
	for _, tt := range tests {
		if got := Zigzag(tt.n); got != tt.want {
			t.Errorf("Zigzag(%d) = %d, want %d", tt.n, got, tt.want)
		}
		if back := Unzigzag(tt.want); back != tt.n {
			t.Errorf("Unzigzag(%d) = %d, want %d", tt.want, back, tt.n)
		}
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		v     float64
		scale int
		want  int32
	}{
		{0, 10, 0},
		{1.0, 10, 10},
		{1.04, 10, 10},
		{1.05, 10, 11},
		{-1.05, 10, -11},
		{3.333, 15, 50},
		{2.5, 20, 50},
	}
	for _, tt := range tests {
		if got := Quantize(tt.v, tt.scale); got != tt.want {
			t.Errorf("Quantize(%v, %d) = %d, want %d", tt.v, tt.scale, got, tt.want)
		}
	}
}

// ============================================================
// Cursor Tests
// ============================================================

func TestCursor_TruncatedVarint(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"continuation only", []byte{0x80}},
		{"two continuations", []byte{0xFF, 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCursor(tt.buf).Uvarint()
			if !errors.Is(err, ErrTruncated) {
				t.Errorf("got %v, want ErrTruncated", err)
			}
		})
	}
}

func TestCursor_TakePastEnd(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3})
	if _, err := c.Take(2); err != nil {
		t.Fatalf("Take(2): %v", err)
	}
	if _, err := c.Take(2); !errors.Is(err, ErrTruncated) {
		t.Errorf("Take past end: got %v, want ErrTruncated", err)
	}
}

func TestCursor_String(t *testing.T) {
	buf := AppendUvarint(nil, 5)
	buf = append(buf, "hello"...)
	s, err := NewCursor(buf).String()
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if s != "hello" {
		t.Errorf("got %q, want %q", s, "hello")
	}

	// Length prefix promising more bytes than exist.
	buf = AppendUvarint(nil, 10)
	buf = append(buf, "short"...)
	if _, err := NewCursor(buf).String(); !errors.Is(err, ErrTruncated) {
		t.Errorf("truncated string: got %v, want ErrTruncated", err)
	}
}

func TestCursor_OverlongVarint(t *testing.T) {
	c := NewCursor([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
	if _, err := c.Uvarint(); err == nil {
		t.Error("varint wider than 32 bits decoded without error")
	}
}
