package pvg

import (
	"reflect"
	"testing"
	"time"
)

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []PathCommand
	}{
		{
			"absolute move line close",
			"M0,0 L10,10 Z",
			[]PathCommand{
				{Op: 'M', Args: []float64{0, 0}},
				{Op: 'L', Args: []float64{10, 10}},
				{Op: 'Z'},
			},
		},
		{
			"relative resolves against pen",
			"m10,10 l5,0 l0,5",
			[]PathCommand{
				{Op: 'M', Rel: true, Args: []float64{10, 10}},
				{Op: 'L', Rel: true, Args: []float64{15, 10}},
				{Op: 'L', Rel: true, Args: []float64{15, 15}},
			},
		},
		{
			"implicit lineto after moveto",
			"M0,0 10,10 20,0",
			[]PathCommand{
				{Op: 'M', Args: []float64{0, 0}},
				{Op: 'L', Args: []float64{10, 10}},
				{Op: 'L', Args: []float64{20, 0}},
			},
		},
		{
			"horizontal and vertical",
			"M1,2 H10 v3",
			[]PathCommand{
				{Op: 'M', Args: []float64{1, 2}},
				{Op: 'H', Args: []float64{10}},
				{Op: 'V', Rel: true, Args: []float64{5}},
			},
		},
		{
			"relative cubic",
			"M0,0 c1,1 2,1 3,0",
			[]PathCommand{
				{Op: 'M', Args: []float64{0, 0}},
				{Op: 'C', Rel: true, Args: []float64{1, 1, 2, 1, 3, 0}},
			},
		},
		{
			"close resets pen for next relative",
			"M10,10 L20,10 Z l1,1",
			[]PathCommand{
				{Op: 'M', Args: []float64{10, 10}},
				{Op: 'L', Args: []float64{20, 10}},
				{Op: 'Z'},
				{Op: 'L', Rel: true, Args: []float64{11, 11}},
			},
		},
		{
			"arc endpoint is positional",
			"M0,0 a5,5 0 0 1 10,0",
			[]PathCommand{
				{Op: 'M', Args: []float64{0, 0}},
				{Op: 'A', Rel: true, Args: []float64{5, 5, 0, 0, 1, 10, 0}},
			},
		},
		{
			"negative numbers without separators",
			"M10-5L-3.5-2",
			[]PathCommand{
				{Op: 'M', Args: []float64{10, -5}},
				{Op: 'L', Args: []float64{-3.5, -2}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePathData(tt.d)
			if err != nil {
				t.Fatalf("ParsePathData(%q): %v", tt.d, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePathData(%q)\n got %+v\nwant %+v", tt.d, got, tt.want)
			}
		})
	}
}

func TestParsePathData_Errors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"unknown command", "M0,0 X5"},
		{"leading number", "10,10 L0,0"},
		{"short argument list", "M0,0 L5"},
		{"trailing value after close", "M0,0 L10,10 Z 5"},
		{"values after relative close", "m0,0 l1,1 z 3,4 5,6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePathData(tt.d); err == nil {
				t.Errorf("ParsePathData(%q) succeeded, want error", tt.d)
			}
		})
	}
}

func TestParsePathData_TrailingDataAfterCloseTerminates(t *testing.T) {
	// Close consumes no values, so a value in repeat position must error
	// rather than spin without advancing.
	done := make(chan error, 1)
	go func() {
		_, err := ParsePathData("M0,0 L10,10 Z 5")
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Error("trailing data after close parsed without error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("parser did not return on trailing data after close")
	}
}

func TestFormatPathData_PreservesSpelling(t *testing.T) {
	// Relative commands must come back lowercase with pen-relative
	// coordinates, absolute ones unchanged.
	tests := []string{
		"M0,0 L10,10 Z",
		"m10,10 l5,0 l0,5 z",
		"M1,2 H10 v3",
		"M0,0 c1,1 2,1 3,0 s2,-1 3,0",
		"M0,0 Q5,5 10,0 t10,0",
		"M0,0 a5,5 0 0 1 10,0",
	}
	for _, d := range tests {
		t.Run(d, func(t *testing.T) {
			cmds, err := ParsePathData(d)
			if err != nil {
				t.Fatalf("ParsePathData: %v", err)
			}
			if got := FormatPathData(cmds); got != d {
				t.Errorf("got %q, want %q", got, d)
			}
		})
	}
}

func TestPath_WireRoundTrip(t *testing.T) {
	// Coordinates sit on the scale-10 grid so the decode is exact.
	d := "M10.5,20 L30,40.5 h-5.5 v2 c1,1 2,1 3,0 Z m1,1 a2,2 0 1 0 4,0 z"
	cmds, err := ParsePathData(d)
	if err != nil {
		t.Fatalf("ParsePathData: %v", err)
	}
	p := &Path{
		Fill:        RGB(0xFF, 0, 0),
		Stroke:      None,
		StrokeWidth: 1.5,
		Opacity:     1,
		Filter:      -1,
		Commands:    cmds,
	}

	st := &coder{scale: 10, palette: NewPalette("#ff0000")}
	buf := p.appendBody(nil, st)
	got, err := readPath(NewCursor(buf), st)
	if err != nil {
		t.Fatalf("readPath: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("round trip\n got %+v\nwant %+v", got, p)
	}
	if out := FormatPathData(got.Commands); out != d {
		t.Errorf("d after round trip %q, want %q", out, d)
	}
}

func TestPath_WireRoundTripFilterRef(t *testing.T) {
	cmds, _ := ParsePathData("M0,0 L10,0")
	p := &Path{
		Fill:     RGB(1, 2, 3),
		Stroke:   RGB(4, 5, 6),
		Opacity:  1,
		Filter:   2,
		Commands: cmds,
	}
	st := &coder{scale: 10}
	got, err := readPath(NewCursor(p.appendBody(nil, st)), st)
	if err != nil {
		t.Fatalf("readPath: %v", err)
	}
	if got.Filter != 2 {
		t.Errorf("filter ordinal %d, want 2", got.Filter)
	}
}

func TestPath_QuantizationSnapsToGrid(t *testing.T) {
	cmds, _ := ParsePathData("M10.04,10.06 L20.55,0")
	p := &Path{Fill: RGB(0, 0, 0), Opacity: 1, Filter: -1, Commands: cmds}
	st := &coder{scale: 10}
	got, err := readPath(NewCursor(p.appendBody(nil, st)), st)
	if err != nil {
		t.Fatalf("readPath: %v", err)
	}
	want := [][]float64{{10, 10.1}, {20.6, 0}}
	for i, w := range want {
		if !reflect.DeepEqual(got.Commands[i].Args, w) {
			t.Errorf("command %d args %v, want %v", i, got.Commands[i].Args, w)
		}
	}
}
