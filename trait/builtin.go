package trait

// Built-in profiles, one per trait family of the artwork batch. Palettes
// are the hand-picked dictionaries of each batch, in dictionary order;
// reordering an entry changes the wire index and breaks stored documents.
var builtinProfiles = []*Profile{
	{
		Name:  "background",
		Scale: 10,
		Palette: []string{
			"#0b0b14", "#11131f", "#1a1c2c", "#232741", "#2d3257",
			"#3b4272", "#4a528e", "#5b64aa", "#6d77c5", "#8089dc",
			"#95581e", "#b06a24", "#cc7d2b", "#e89132", "#ffa53a",
			"#14532d", "#166534", "#15803d", "#16a34a", "#22c55e",
		},
		Fallback: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000"><rect x="0" y="0" width="1000" height="1000" fill="#1a1c2c"/></svg>`,
	},
	{
		Name:  "nose",
		Scale: 15,
		Palette: []string{
			"#2b1700", "#3d2200", "#4f2d00", "#613800", "#734300",
			"#854e00", "#975900", "#a96400", "#bb6f00", "#cd7a00",
			"#f4c18a", "#e8ab6b", "#dc954c", "#d07f2d",
		},
		Fallback: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000"><path d="M480,520 Q500,560 520,520 L510,480 Q500,470 490,480 Z" fill="#734300"/></svg>`,
	},
	{
		Name:  "top",
		Scale: 20,
		Palette: []string{
			"#1c1c1c", "#2e2e2e", "#404040", "#525252", "#646464",
			"#7a0b0b", "#921212", "#aa1919", "#c22020", "#da2727",
			"#0b3d7a", "#124b92", "#1959aa", "#2067c2", "#2775da",
			"#f5e6c8", "#ead2a4", "#dfbe80", "#d4aa5c", "#c99638",
		},
		Fallback: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000"><path d="M300,400 C350,250 650,250 700,400 L680,420 C600,320 400,320 320,420 Z" fill="#2e2e2e"/></svg>`,
	},
	{
		Name:  "spikes",
		Scale: 10,
		Palette: []string{
			"#0f3d0f", "#145214", "#1a661a", "#1f7a1f", "#248f24",
			"#29a329", "#2eb82e", "#33cc33", "#47d147", "#5cd65c",
			"#663300", "#7a3d00", "#8f4700", "#a35200",
		},
		Fallback: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000"><path d="M200,300 L250,150 L300,300 M350,280 L400,120 L450,280 M500,300 L550,150 L600,300" fill="none" stroke="#1f7a1f" stroke-width="18"/></svg>`,
	},
}

// placeholderSVG is the neutral artwork used when a trait has no
// fallback of its own.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 1000"><rect x="0" y="0" width="1000" height="1000" fill="#000000"/></svg>`
