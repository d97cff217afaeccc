package poh

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// generateChain returns [seed, t1..tn] plus the commitment used at every
// position; commitment i belongs to the tick at slice index i.
func generateChain(alg Algorithm, seedPhrase string, n int, rnd *rand.Rand) ([][]byte, [][]byte) {
	seed := alg.HashString(seedPhrase)
	gen := NewTicks(alg, seed)

	ticks := make([][]byte, 0, n+1)
	commitments := make([][]byte, 0, n+1)
	ticks = append(ticks, seed)
	commitments = append(commitments, alg.Zero())

	for i := 0; i < n; i++ {
		c := alg.Zero()
		if rnd != nil && rnd.IntN(4) == 0 {
			c = make([]byte, alg.Size)
			for j := range c {
				c[j] = byte(rnd.UintN(256))
			}
		}
		ticks = append(ticks, gen.NextWithData(c))
		commitments = append(commitments, c)
	}
	return ticks, commitments
}

func commitmentFunc(commitments [][]byte) DataFunc {
	return func(ix int, _ []byte) []byte {
		return commitments[ix]
	}
}

func TestVerifyChainConsistency(t *testing.T) {
	var chacha [32]byte
	rnd := rand.New(rand.NewChaCha8(chacha))

	for _, alg := range Algorithms() {
		ticks, commitments := generateChain(alg, "consistency", 512, rnd)
		require.NoError(t, Verify(alg, ticks, commitmentFunc(commitments)), alg.Name)
	}
}

func TestVerifyShortSequences(t *testing.T) {
	alg := SHA256
	require.NoError(t, Verify(alg, nil, nil))
	require.NoError(t, Verify(alg, [][]byte{alg.HashString("solo")}, nil))
}

func TestVerifySingleBitCorruption(t *testing.T) {
	alg := SHA256
	ticks, _ := generateChain(alg, "corruption", 64, nil)
	n := len(ticks)

	for k := 1; k < n-1; k++ {
		for bit := 0; bit < 8; bit++ {
			corrupted := make([][]byte, n)
			copy(corrupted, ticks)
			tampered := make([]byte, len(ticks[k]))
			copy(tampered, ticks[k])
			tampered[0] ^= 1 << bit
			corrupted[k] = tampered

			err := Verify(alg, corrupted, nil)
			require.Error(t, err, "bit flip at index %d went undetected", k)

			var broken *ChainBrokenError
			require.ErrorAs(t, err, &broken)
			require.True(t, broken.Index == k || broken.Index == k+1,
				"corrupted index %d reported as %d", k, broken.Index)
		}
	}
}

func TestVerifyReportsEarliestFailure(t *testing.T) {
	alg := SHA3256
	ticks, _ := generateChain(alg, "earliest", 128, nil)

	corrupted := make([][]byte, len(ticks))
	copy(corrupted, ticks)
	for _, k := range []int{97, 23} {
		tampered := make([]byte, len(ticks[k]))
		copy(tampered, ticks[k])
		tampered[5] ^= 0x80
		corrupted[k] = tampered
	}

	var broken *ChainBrokenError
	err := Verify(alg, corrupted, nil)
	require.ErrorAs(t, err, &broken)
	require.Equal(t, 23, broken.Index)
}

func TestVerifyLargeSequenceNoFalsePositives(t *testing.T) {
	alg := SHA256
	gen := NewTicks(alg, alg.Zero())
	ticks := make([][]byte, 1<<16)
	for i := range ticks {
		ticks[i] = gen.Next()
	}

	// Re-verification of an unmodified sequence is idempotent.
	require.NoError(t, Verify(alg, ticks, nil))
	require.NoError(t, Verify(alg, ticks, nil))
}

func TestVerifyDoesNotMutateInput(t *testing.T) {
	alg := Keccak256
	ticks, _ := generateChain(alg, "immutable", 32, nil)

	snapshot := make([][]byte, len(ticks))
	for i, tk := range ticks {
		snapshot[i] = append([]byte(nil), tk...)
	}

	require.NoError(t, Verify(alg, ticks, nil))
	for i := range ticks {
		require.True(t, bytes.Equal(ticks[i], snapshot[i]), "tick %d mutated", i)
	}
}

func TestBoundaryContinuity(t *testing.T) {
	alg := Keccak256
	ticks, _ := generateChain(alg, "boundary", 16, nil)
	tail := ticks[len(ticks)-1]

	// A block whose head chains from the tail passes the two-tick window.
	head := Tick(alg, tail, alg.Zero())
	require.NoError(t, Verify(alg, [][]byte{tail, head}, nil))

	// A head derived from any other seed fails it.
	foreign := NewTicks(alg, alg.HashString("some other chain")).Next()
	err := Verify(alg, [][]byte{tail, foreign}, nil)
	var broken *ChainBrokenError
	require.ErrorAs(t, err, &broken)
	require.Equal(t, 1, broken.Index)
}
