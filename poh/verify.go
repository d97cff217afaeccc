package poh

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"
)

// DataFunc maps a tick's position within the verified slice, and its hash,
// to the data commitment mixed into it. It is invoked concurrently from
// verifier workers and must not mutate shared state. A nil DataFunc means
// every position used the zero commitment.
type DataFunc func(ix int, hash []byte) []byte

// ChainBrokenError reports the earliest position whose tick does not
// follow from its predecessor under the chain relation.
type ChainBrokenError struct {
	Index int
}

func (e *ChainBrokenError) Error() string {
	return fmt.Sprintf("poh: chain broken at index %d", e.Index)
}

// Verify checks that ticks[i] == Tick(ticks[i-1], data(i, ticks[i])) for
// every i in 1..len-1 and returns a ChainBrokenError carrying the smallest
// failing index, or nil if the whole sequence is valid.
//
// Adjacent-pair checks are independent of each other, so they are sharded
// across all CPUs and reduced to the minimum failing index. Production is
// stuck hashing sequentially while verification scales with cores; that
// asymmetry is what lets a verifier catch up to a live producer.
func Verify(alg Algorithm, ticks [][]byte, data DataFunc) error {
	pairs := len(ticks) - 1
	if pairs < 1 {
		return nil
	}
	if data == nil {
		zero := alg.Zero()
		data = func(int, []byte) []byte { return zero }
	}

	workers := runtime.NumCPU()
	if workers > pairs {
		workers = pairs
	}
	chunk := (pairs + workers - 1) / workers

	// Earliest failing pair per worker, pairs when the shard is clean.
	firsts := make([]int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			lo := w * chunk
			hi := lo + chunk
			if hi > pairs {
				hi = pairs
			}
			firsts[w] = pairs
			for ix := lo; ix < hi; ix++ {
				next := ticks[ix+1]
				if !bytes.Equal(Tick(alg, ticks[ix], data(ix+1, next)), next) {
					firsts[w] = ix
					break
				}
			}
		}(w)
	}
	wg.Wait()

	first := pairs
	for _, ix := range firsts {
		if ix < first {
			first = ix
		}
	}
	if first < pairs {
		return &ChainBrokenError{Index: first + 1}
	}
	return nil
}
