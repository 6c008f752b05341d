package encryption

import (
	"sort"
	"strings"
	"sync"

	"github.com/cipherloom-go/internal/errors"
)

// CipherFactory creates a cipher from loose params
type CipherFactory func(p Params) (Cipher, error)

// Info describes a registered cipher for listings
type Info struct {
	Kind        Kind     `json:"kind"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
	SelfInverse bool     `json:"self_inverse,omitempty"`
}

type registration struct {
	info    Info
	factory CipherFactory
}

// registry holds registered cipher factories
var (
	registryMu sync.RWMutex
	registry   = make(map[Kind]registration)
)

func init() {
	Register(Info{Kind: KindCaesar, Description: "shift every letter by a fixed amount", Params: []string{"shift"}},
		func(p Params) (Cipher, error) {
			return NewCaesar(p.Shift), nil
		})
	Register(Info{Kind: KindROT13, Description: "Caesar shift of 13, self-inverse"},
		func(Params) (Cipher, error) {
			return NewROT13(), nil
		})
	Register(Info{Kind: KindTrithemius, Description: "progressive Caesar shift by letter position", Params: []string{"ascending", "initial_shift"}},
		func(p Params) (Cipher, error) {
			return NewTrithemius(p.Ascending, p.InitialShift), nil
		})
	Register(Info{Kind: KindAtbash, Description: "reversed-alphabet substitution, self-inverse"},
		func(Params) (Cipher, error) {
			return NewAtbash(), nil
		})
	Register(Info{Kind: KindMonoalphabetic, Description: "substitution through a 26-letter alphabet", Params: []string{"alphabet", "passphrase"}},
		func(p Params) (Cipher, error) {
			a, err := p.SubstitutionAlphabet()
			if err != nil {
				return nil, err
			}
			return NewMonoalphabetic(a)
		})
	Register(Info{Kind: KindVigenere, Description: "repeated-key polyalphabetic shift", Params: []string{"key"}},
		func(p Params) (Cipher, error) {
			return NewVigenere(p.Key)
		})
	Register(Info{Kind: KindTransposition, Description: "columnar transposition ordered by key letters", Params: []string{"key", "filler", "remove_filler", "raw"}},
		func(p Params) (Cipher, error) {
			opts, err := p.Options()
			if err != nil {
				return nil, err
			}
			return NewTransposition(p.Key, opts...)
		})
	Register(Info{Kind: KindAffine, Description: "a*x + b mod 26, a coprime with 26", Params: []string{"a", "b"}},
		func(p Params) (Cipher, error) {
			return NewAffine(p.A, p.B)
		})
	Register(Info{Kind: KindHill, Description: "block matrix multiplication mod 26, square-length key", Params: []string{"key", "filler", "remove_filler"}},
		func(p Params) (Cipher, error) {
			opts, err := p.Options()
			if err != nil {
				return nil, err
			}
			return NewHill(p.Key, opts...)
		})
	Register(Info{Kind: KindPlayfair, Description: "digraph substitution on a keyed 5x5 square", Params: []string{"key", "filler", "remove_filler"}},
		func(p Params) (Cipher, error) {
			opts, err := p.Options()
			if err != nil {
				return nil, err
			}
			return NewPlayfair(p.Key, opts...)
		})
}

// Register adds a cipher factory to the registry
func Register(info Info, factory CipherFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[info.Kind] = registration{info: info, factory: factory}
}

// ParseKind normalises a user-supplied cipher name
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	switch k {
	case "rot-13":
		k = KindROT13
	case "mono", "substitution":
		k = KindMonoalphabetic
	case "vigenère":
		k = KindVigenere
	}
	if !IsRegistered(k) {
		return "", errors.NewUnknownCipher(name)
	}
	return k, nil
}

// NewCipher creates a cipher using the registry
func NewCipher(kind Kind, p Params) (Cipher, error) {
	registryMu.RLock()
	reg, ok := registry[kind]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.NewUnknownCipher(string(kind))
	}
	return reg.factory(p)
}

// ListRegistered returns all registered cipher kinds, sorted
func ListRegistered() []Kind {
	registryMu.RLock()
	defer registryMu.RUnlock()

	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// IsRegistered checks if a cipher kind is registered
func IsRegistered(kind Kind) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[kind]
	return ok
}

// Describe returns the registry metadata, sorted by kind
func Describe() []Info {
	registryMu.RLock()
	defer registryMu.RUnlock()

	infos := make([]Info, 0, len(registry))
	for _, reg := range registry {
		info := reg.info
		info.SelfInverse = IsSelfInverse(info.Kind)
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Kind < infos[j].Kind })
	return infos
}

// IsSelfInverse reports whether encrypting twice returns the input
func IsSelfInverse(kind Kind) bool {
	return kind == KindROT13 || kind == KindAtbash
}
