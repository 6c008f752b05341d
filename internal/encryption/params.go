package encryption

import (
	"fmt"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"

	"github.com/cipherloom-go/internal/errors"
	"github.com/cipherloom-go/internal/keysched"
)

// Params is the loose, cipher-independent form of a key and its options, as
// it arrives from HTTP bodies, batch files, presets and CLI flags. Each
// factory reads the fields its cipher needs and ignores the rest.
type Params struct {
	Shift        int    `mapstructure:"shift" json:"shift,omitempty" yaml:"shift,omitempty"`
	Key          string `mapstructure:"key" json:"key,omitempty" yaml:"key,omitempty"`
	A            int    `mapstructure:"a" json:"a,omitempty" yaml:"a,omitempty"`
	B            int    `mapstructure:"b" json:"b,omitempty" yaml:"b,omitempty"`
	Ascending    bool   `mapstructure:"ascending" json:"ascending" yaml:"ascending"`
	InitialShift int    `mapstructure:"initial_shift" json:"initial_shift,omitempty" yaml:"initial_shift,omitempty"`
	Alphabet     string `mapstructure:"alphabet" json:"alphabet,omitempty" yaml:"alphabet,omitempty"`
	Passphrase   string `mapstructure:"passphrase" json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
	Filler       string `mapstructure:"filler" json:"filler,omitempty" yaml:"filler,omitempty"`
	RemoveFiller *bool  `mapstructure:"remove_filler" json:"remove_filler,omitempty" yaml:"remove_filler,omitempty"`
	Raw          bool   `mapstructure:"raw" json:"raw,omitempty" yaml:"raw,omitempty"`
}

// DefaultParams returns Params with Trithemius ascending and no overrides
func DefaultParams() Params {
	return Params{Ascending: true}
}

// Merge decodes raw over a copy of p, so keys present in raw override p.
// Strings such as "3" or "true" are accepted for numeric and boolean fields;
// unknown keys are an error.
func (p Params) Merge(raw map[string]interface{}) (Params, error) {
	out := p
	if len(raw) == 0 {
		return out, nil
	}
	if p.RemoveFiller != nil {
		v := *p.RemoveFiller
		out.RemoveFiller = &v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return p, errors.NewInternalWithCause("failed to create params decoder", err)
	}
	if err := dec.Decode(raw); err != nil {
		return p, errors.NewBadRequestWithCause("invalid cipher params", err)
	}
	return out, nil
}

// Options converts the filler fields into cipher options
func (p Params) Options() ([]Option, error) {
	var opts []Option
	if p.Filler != "" {
		r, size := utf8.DecodeRuneInString(p.Filler)
		if size != len(p.Filler) {
			return nil, errors.NewBadRequest(fmt.Sprintf("filler must be a single letter, got %q", p.Filler))
		}
		opts = append(opts, WithFiller(r))
	}
	if p.RemoveFiller != nil {
		opts = append(opts, WithFillerRemoval(*p.RemoveFiller))
	}
	if p.Raw {
		opts = append(opts, WithRawTransposition())
	}
	return opts, nil
}

// SubstitutionAlphabet returns Alphabet, or one derived from Passphrase
func (p Params) SubstitutionAlphabet() (string, error) {
	if p.Alphabet != "" || p.Passphrase == "" {
		return p.Alphabet, nil
	}
	a, err := keysched.DeriveAlphabet(p.Passphrase)
	if err != nil {
		return "", errors.NewBadRequestWithCause("cannot derive alphabet", err)
	}
	return a, nil
}
