package poh

import (
	"sync"
)

const (
	// This bounds the commitment store. Sized to hold the commitments of
	// more than three default blocks (1M ticks, one commitment every 16th),
	// so a verifier trailing the capacity-1 channel by a full block never
	// loses a commitment it still has to read.
	MaxCommitmentStoreSize = 200000
)

// CommitmentStore keeps the data commitments mixed into a chain, keyed by
// tick position. The payloads themselves live with the application; only
// their fixed-size commitments are retained here. Keying by position
// instead of tick hash avoids conflating commitments should two positions
// ever repeat a hash.
//
// Positions are sparse (the producer registers one only when a payload is
// mixed in), so eviction runs on insertion order: once the store is over
// capacity, the oldest inserted entry goes first.
//
// Put is called by the producer; Get and DataFunc are safe to call
// concurrently from verifier workers.
type CommitmentStore struct {
	mu      sync.RWMutex
	alg     Algorithm
	byPos   map[uint64][]byte
	order   []uint64 // insertion order, oldest first
	maxSize int
}

// NewCommitmentStore creates a store bounded to maxSize positions; sizes
// <= 0 fall back to MaxCommitmentStoreSize.
func NewCommitmentStore(alg Algorithm, maxSize int) *CommitmentStore {
	if maxSize <= 0 {
		maxSize = MaxCommitmentStoreSize
	}
	return &CommitmentStore{
		alg:     alg,
		byPos:   make(map[uint64][]byte),
		maxSize: maxSize,
	}
}

// Put registers the commitment for a tick position, evicting the oldest
// inserted entry once the store is over capacity.
func (s *CommitmentStore) Put(pos uint64, commitment []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := make([]byte, s.alg.Size)
	copy(c, normalize(s.alg, commitment))
	if _, exists := s.byPos[pos]; exists {
		s.byPos[pos] = c
		return
	}

	s.byPos[pos] = c
	s.order = append(s.order, pos)
	if len(s.byPos) > s.maxSize {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.byPos, oldest)
	}
}

// Get retrieves the commitment registered at a position.
func (s *CommitmentStore) Get(pos uint64) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byPos[pos]
	return c, ok
}

// Len returns the number of commitments currently held.
func (s *CommitmentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byPos)
}

// DataFunc adapts the store for verifying a slice whose first element sits
// at global position base. Unregistered positions resolve to the zero
// commitment.
func (s *CommitmentStore) DataFunc(base uint64) DataFunc {
	zero := s.alg.Zero()
	return func(ix int, _ []byte) []byte {
		if c, ok := s.Get(base + uint64(ix)); ok {
			return c
		}
		return zero
	}
}

// HashPayloads folds raw payloads into one fixed-size commitment.
func HashPayloads(alg Algorithm, payloads [][]byte) []byte {
	d := alg.New()
	for _, p := range payloads {
		d.Write(p)
	}
	return d.Sum(nil)
}
