package poh

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Algorithm is the hash capability a chain is built on. Any fixed-output
// digest plugs in; the output width is fixed for the lifetime of a chain
// and never mixed within one.
type Algorithm struct {
	Name string
	Size int
	New  func() hash.Hash
}

var (
	SHA256    = Algorithm{Name: "sha256", Size: sha256.Size, New: sha256.New}
	SHA3256   = Algorithm{Name: "sha3-256", Size: 32, New: sha3.New256}
	Keccak256 = Algorithm{Name: "keccak256", Size: 32, New: sha3.NewLegacyKeccak256}
	Blake3    = Algorithm{Name: "blake3", Size: 32, New: func() hash.Hash { return blake3.New() }}
)

var algorithms = map[string]Algorithm{
	SHA256.Name:    SHA256,
	SHA3256.Name:   SHA3256,
	Keccak256.Name: Keccak256,
	Blake3.Name:    Blake3,
}

// AlgorithmByName resolves a config-supplied algorithm name.
func AlgorithmByName(name string) (Algorithm, error) {
	alg, ok := algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("unknown hash algorithm %q", name)
	}
	return alg, nil
}

// Algorithms returns every registered algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA3256, Keccak256, Blake3}
}

// Zero returns the all-zero commitment of the algorithm's output width.
func (a Algorithm) Zero() []byte {
	return make([]byte, a.Size)
}

// HashString digests a string into the algorithm's output width, e.g. to
// derive a chain seed from a well-known phrase.
func (a Algorithm) HashString(s string) []byte {
	d := a.New()
	d.Write([]byte(s))
	return d.Sum(nil)
}
