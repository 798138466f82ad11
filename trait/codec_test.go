package trait

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/tylerlengyel/compressedPhil/pvg"
)

func testProfile() *Profile {
	return &Profile{
		Name:    "test",
		Scale:   10,
		Palette: []string{"#ff0000", "#00ff00", "#000000", "#ffffff"},
	}
}

func TestCompressDecompress_MinimalPath(t *testing.T) {
	p := testProfile()
	svg := `<svg viewBox="0 0 100 100"><path d="M0,0 L10,10 Z" fill="#FF0000"/></svg>`

	stored, err := Compress(svg, p, false)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	out, err := Decompress(stored, p)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
		`<path d="M0,0 L10,10 Z" fill="#ff0000"/></svg>`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
}

// Compressing the output of a decompress must reproduce both the stored
// form and the markup exactly; grid coordinates survive quantization.
func TestCompressDecompress_Stable(t *testing.T) {
	p := testProfile()
	for _, zs := range []bool{false, true} {
		name := "plain"
		if zs {
			name = "zstd"
		}
		t.Run(name, func(t *testing.T) {
			stored, err := Compress(sampleSVG, p, zs)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			svg1, err := Decompress(stored, p)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			stored2, err := Compress(svg1, p, zs)
			if err != nil {
				t.Fatalf("Compress of decompressed output: %v", err)
			}
			if stored2 != stored {
				t.Errorf("stored form not stable:\n first %s\nsecond %s", stored, stored2)
			}
			svg2, err := Decompress(stored2, p)
			if err != nil {
				t.Fatalf("second Decompress: %v", err)
			}
			if svg2 != svg1 {
				t.Errorf("markup not stable:\n first %s\nsecond %s", svg1, svg2)
			}
		})
	}
}

func TestCompress_DictionarySavesBytes(t *testing.T) {
	p := testProfile()
	bare := &Profile{Name: "bare", Scale: 10}
	withDict, err := Compress(sampleSVG, p, false)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	without, err := Compress(sampleSVG, bare, false)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(withDict) >= len(without) {
		t.Errorf("dictionary form %d chars >= bare %d chars", len(withDict), len(without))
	}
}

func TestDecompress_TruncatedFallsBack(t *testing.T) {
	p := testProfile()
	stored, err := Compress(sampleSVG, p, false)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		t.Fatalf("decode stored form: %v", err)
	}
	cut := base64.StdEncoding.EncodeToString(raw[:len(raw)-5])

	svg, err := Decompress(cut, p)
	if err == nil {
		t.Fatal("truncated document decompressed without error")
	}
	if svg != p.FallbackSVG() {
		t.Errorf("got %q, want the fallback artwork", svg)
	}
}

func TestDecompress_UnknownTagKeepsPartial(t *testing.T) {
	p := testProfile()
	stored, err := Compress(sampleSVG, p, false)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		t.Fatalf("decode stored form: %v", err)
	}
	poisoned := base64.StdEncoding.EncodeToString(append(raw, 99))

	svg, err := Decompress(poisoned, p)
	if err == nil {
		t.Fatal("unknown tag decompressed without error")
	}
	if svg == p.FallbackSVG() {
		t.Error("partial document discarded for fallback")
	}
	if !strings.Contains(svg, "<path") || !strings.Contains(svg, "<text") {
		t.Errorf("partial markup missing records: %s", svg)
	}
}

func TestDecompress_Garbage(t *testing.T) {
	p := testProfile()
	svg, err := Decompress("@@not base64@@", p)
	if err == nil {
		t.Fatal("garbage input decompressed without error")
	}
	if svg != p.FallbackSVG() {
		t.Errorf("got %q, want the fallback artwork", svg)
	}
}

func TestDecompress_LegacyScaleFromProfile(t *testing.T) {
	// Version-1 documents carry no scale byte; the profile supplies it.
	raw := []byte{pvg.Version1, 1}
	raw = append(raw, byte(pvg.TagMeta))
	for _, q := range []int32{0, 0, 10000, 10000} {
		raw = pvg.AppendSvarint(raw, q)
	}
	raw = append(raw, byte(pvg.TagLine))
	raw = pvg.AppendSvarint(raw, 100)
	raw = pvg.AppendSvarint(raw, 100)
	raw = pvg.AppendSvarint(raw, 50)
	raw = pvg.AppendSvarint(raw, 0)
	raw = append(raw, 0x00) // stroke none
	raw = pvg.AppendUvarint(raw, 10)
	raw = append(raw, 0)

	svg, err := Decompress(base64.StdEncoding.EncodeToString(raw), testProfile())
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !strings.Contains(svg, `x1="10"`) || !strings.Contains(svg, `x2="15"`) {
		t.Errorf("legacy scale not applied: %s", svg)
	}
}
