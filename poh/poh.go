package poh

// Tick computes one link of the chain: a single digest of the previous
// value and the data commitment. Both inputs are normalized to the digest
// width so every tick costs exactly one fixed-size hash evaluation and the
// tick rate stays a meaningful clock.
func Tick(alg Algorithm, seed, data []byte) []byte {
	d := alg.New()
	d.Write(normalize(alg, seed))
	d.Write(normalize(alg, data))
	return d.Sum(nil)
}

// normalize zero-pads or truncates b to the digest width.
func normalize(alg Algorithm, b []byte) []byte {
	if len(b) == alg.Size {
		return b
	}
	out := make([]byte, alg.Size)
	copy(out, b)
	return out
}

// Ticks produces the chain one hash at a time. The current value is the
// only state; each call feeds on the previous one, so the sequence is
// infinite, non-restartable and owned by exactly one producer.
type Ticks struct {
	alg Algorithm
	cur []byte
}

// NewTicks starts a generator from the given seed. The seed is normalized
// to the digest width once, up front.
func NewTicks(alg Algorithm, seed []byte) *Ticks {
	cur := make([]byte, alg.Size)
	copy(cur, normalize(alg, seed))
	return &Ticks{alg: alg, cur: cur}
}

// Next advances the chain with the zero commitment and returns the new tick.
func (t *Ticks) Next() []byte {
	return t.NextWithData(t.alg.Zero())
}

// NextWithData advances the chain mixing in the given commitment and
// returns the new tick.
func (t *Ticks) NextWithData(data []byte) []byte {
	t.cur = Tick(t.alg, t.cur, data)
	return t.cur
}

// Current returns a copy of the latest value without advancing.
func (t *Ticks) Current() []byte {
	cur := make([]byte, len(t.cur))
	copy(cur, t.cur)
	return cur
}

// Clone returns an independent generator continuing from the same point.
func (t *Ticks) Clone() *Ticks {
	return NewTicks(t.alg, t.cur)
}

// Algorithm returns the hash capability this generator runs on.
func (t *Ticks) Algorithm() Algorithm {
	return t.alg
}
