package poh

import (
	"fmt"
	"sync"

	"tickchain/logx"
)

// Recorder owns the producer-side view of a chain: the generator, the
// history emitted so far and the commitments registered along the way.
// Exactly one producer appends to a given recorder.
type Recorder struct {
	mu      sync.Mutex
	gen     *Ticks
	store   *CommitmentStore
	history [][]byte
	flushed uint64
}

// NewRecorder wraps a generator and a commitment store into a recorder.
func NewRecorder(gen *Ticks, store *CommitmentStore) *Recorder {
	return &Recorder{
		gen:     gen,
		store:   store,
		history: [][]byte{},
	}
}

// Record hashes the payloads into a commitment, advances the chain with it
// and registers the commitment at the new tick's position.
func (r *Recorder) Record(payloads [][]byte) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	commitment := HashPayloads(r.gen.alg, payloads)
	tick := r.gen.NextWithData(commitment)
	pos := uint64(len(r.history))
	r.store.Put(pos, commitment)
	r.history = append(r.history, tick)
	logx.Debug("Recorder", fmt.Sprintf("Recorded %d payloads at position %d", len(payloads), pos))
	return tick
}

// TickOnly advances the chain with the zero commitment.
func (r *Recorder) TickOnly() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	tick := r.gen.Next()
	r.history = append(r.history, tick)
	return tick
}

// Height returns the number of ticks emitted so far.
func (r *Recorder) Height() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint64(len(r.history))
}

// History returns the full history. The returned slice is a copy; the
// ticks themselves are never mutated after creation.
func (r *Recorder) History() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, len(r.history))
	copy(out, r.history)
	return out
}

// Slice returns the ticks covering positions [start, end).
func (r *Recorder) Slice(start, end uint64) [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, end-start)
	copy(out, r.history[start:end])
	return out
}

// DrainNew returns the ticks emitted since the previous drain.
func (r *Recorder) DrainNew() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]byte, uint64(len(r.history))-r.flushed)
	copy(out, r.history[r.flushed:])
	r.flushed = uint64(len(r.history))
	return out
}

// Store returns the commitment store shared with verifiers.
func (r *Recorder) Store() *CommitmentStore {
	return r.store
}
