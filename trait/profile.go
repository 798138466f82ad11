// Package trait maps hand-authored SVG trait artwork onto the pvg codec.
//
// Each trait family (background, nose, top, spikes) has its own profile:
// a hand-picked color dictionary, a quantization scale tuned to the
// coordinate range of that artwork batch, and fallback artwork used when
// a stored document cannot be decoded. Extraction pattern-matches the
// fixed SVG vocabulary of the corpus; it is deliberately not a general
// SVG parser.
package trait

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tylerlengyel/compressedPhil/pvg"
)

// Profile describes one trait family's encoding parameters.
type Profile struct {
	Name     string   `yaml:"name"`
	Scale    int      `yaml:"scale"`
	Palette  []string `yaml:"palette"`
	Fallback string   `yaml:"fallback"`

	palette *pvg.Palette
}

// Dict returns the compiled color dictionary.
func (p *Profile) Dict() *pvg.Palette {
	if p.palette == nil {
		p.palette = pvg.NewPalette(p.Palette...)
	}
	return p.palette
}

// EncodeOptions returns the pvg options for this trait.
func (p *Profile) EncodeOptions(compress bool) pvg.EncodeOptions {
	return pvg.EncodeOptions{Scale: p.Scale, Palette: p.Dict(), Compress: compress}
}

// DecodeOptions returns the pvg options for this trait.
func (p *Profile) DecodeOptions() pvg.DecodeOptions {
	return pvg.DecodeOptions{Palette: p.Dict(), LegacyScale: p.Scale}
}

// FallbackSVG returns the hard-coded artwork substituted when decoding
// fails. Profiles without their own fallback share a neutral placeholder.
func (p *Profile) FallbackSVG() string {
	if p.Fallback != "" {
		return p.Fallback
	}
	return placeholderSVG
}

// ============================================================
// Registry
// ============================================================

// Registry holds the known trait profiles.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry returns a registry seeded with the built-in trait profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Profile)}
	for _, p := range builtinProfiles {
		r.profiles[p.Name] = p
	}
	return r
}

// Lookup returns the profile for a trait name. Unknown names get a
// generic profile (default scale, empty dictionary) so encoding still
// works, just without dictionary savings.
func (r *Registry) Lookup(name string) *Profile {
	if p, ok := r.profiles[name]; ok {
		return p
	}
	return &Profile{Name: name, Scale: pvg.DefaultScale}
}

// Names returns the registered trait names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		names = append(names, n)
	}
	return names
}

// profileFile is the YAML document shape for LoadFile.
type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadFile merges profiles from a YAML file into the registry,
// overriding built-ins with the same name.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parse profiles: %w", err)
	}
	for _, p := range pf.Profiles {
		if p.Name == "" {
			return fmt.Errorf("parse profiles: profile without a name")
		}
		if p.Scale <= 0 {
			p.Scale = pvg.DefaultScale
		}
		r.profiles[p.Name] = p
	}
	return nil
}
