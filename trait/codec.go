package trait

import (
	"errors"

	"github.com/tylerlengyel/compressedPhil/pvg"
)

// Compress extracts an SVG source and encodes it with the trait profile,
// returning the base64 storage form.
func Compress(svg string, p *Profile, zs bool) (string, error) {
	doc, err := Extract(svg)
	if err != nil {
		return "", err
	}
	return doc.Encode(p.EncodeOptions(zs))
}

// Decompress decodes a stored document back to SVG markup. A truncated
// buffer substitutes the trait's fallback artwork; an unknown record tag
// keeps the partial document decoded up to that point. Either way the
// error is returned alongside something drawable.
func Decompress(stored string, p *Profile) (string, error) {
	doc, err := pvg.Decode(stored, p.DecodeOptions())
	if err != nil {
		if errors.Is(err, pvg.ErrUnknownTag) && doc != nil && len(doc.Records) > 0 {
			return Render(doc), err
		}
		return p.FallbackSVG(), err
	}
	return Render(doc), nil
}
