package pvg

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", RGB(0xFF, 0, 0)},
		{"#FF8040", RGB(0xFF, 0x80, 0x40)},
		{"#f00", RGB(0xFF, 0, 0)},
		{"#abc", RGB(0xAA, 0xBB, 0xCC)},
		{"rgb(12, 34, 56)", RGB(12, 34, 56)},
		{"rgb(255,0,255)", RGB(255, 0, 255)},
		{"red", RGB(0xFF, 0, 0)},
		{"Gold", RGB(0xFF, 0xD7, 0)},
		{"none", None},
		{"transparent", None},
		{"", None},
		{"url(#grad1)", Color{Kind: ColorGradient, Ref: -1}},

		// Unparseable inputs degrade to black rather than failing.
		{"#12345", FallbackBlack},
		{"rgb(300,0,0)", FallbackBlack},
		{"rgb(1,2)", FallbackBlack},
		{"chartreuse-ish", FallbackBlack},
		{"hsl(120,50%,50%)", FallbackBlack},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseColor(tt.in); got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColor_String(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{RGB(0xFF, 0x80, 0x00), "#ff8000"},
		{None, "none"},
		{GradientRef(2), "url(#g2)"},
		{FallbackBlack, "#000000"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestPalette_Lookup(t *testing.T) {
	p := NewPalette("#ff0000", "#00ff00", "#0000ff", "#ff0000", "none")
	if p.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (duplicate and none skipped)", p.Len())
	}
	i, ok := p.Lookup(RGB(0, 0xFF, 0))
	if !ok || i != 2 {
		t.Errorf("Lookup green = (%d, %v), want (2, true)", i, ok)
	}
	if _, ok := p.Lookup(RGB(1, 2, 3)); ok {
		t.Error("Lookup found a color not in the dictionary")
	}
	c, ok := p.At(3)
	if !ok || c != RGB(0, 0, 0xFF) {
		t.Errorf("At(3) = (%+v, %v), want blue", c, ok)
	}
	if _, ok := p.At(0); ok {
		t.Error("At(0) must miss: index 0 is the none token")
	}
}

func TestColorToken_RoundTrip(t *testing.T) {
	p := NewPalette("#ff0000", "#00ff00")
	tests := []struct {
		name  string
		c     Color
		bytes int
	}{
		{"none", None, 1},
		{"dictionary hit", RGB(0xFF, 0, 0), 1},
		{"dictionary miss", RGB(0x12, 0x34, 0x56), 4},
		{"gradient ref", GradientRef(1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := appendColor(nil, tt.c, p)
			if len(buf) != tt.bytes {
				t.Errorf("token width %d, want %d", len(buf), tt.bytes)
			}
			got, err := readColor(NewCursor(buf), p)
			if err != nil {
				t.Fatalf("readColor: %v", err)
			}
			if got != tt.c {
				t.Errorf("round trip %+v, got %+v", tt.c, got)
			}
		})
	}
}

func TestColorToken_ExplicitRGBExact(t *testing.T) {
	// Colors outside the dictionary must survive byte for byte, not snap
	// to a nearest palette entry.
	p := NewPalette("#ff0000")
	c := RGB(0xFE, 0x01, 0x02)
	got, err := readColor(NewCursor(appendColor(nil, c, p)), p)
	if err != nil {
		t.Fatalf("readColor: %v", err)
	}
	if got != c {
		t.Errorf("got %+v, want %+v", got, c)
	}
}

func TestReadColor_StalePaletteIndex(t *testing.T) {
	// An index that points past the decoder's dictionary degrades to
	// black instead of erroring.
	small := NewPalette("#ff0000")
	got, err := readColor(NewCursor([]byte{7}), small)
	if err != nil {
		t.Fatalf("readColor: %v", err)
	}
	if got != FallbackBlack {
		t.Errorf("got %+v, want FallbackBlack", got)
	}
}
