package poh

import (
	"bytes"
	"testing"
)

func TestTickDeterministic(t *testing.T) {
	for _, alg := range Algorithms() {
		seed := alg.HashString("seed")
		data := alg.HashString("data")

		a := Tick(alg, seed, data)
		b := Tick(alg, seed, data)
		if !bytes.Equal(a, b) {
			t.Errorf("%s: tick is not deterministic", alg.Name)
		}
		if len(a) != alg.Size {
			t.Errorf("%s: tick output size = %d, want %d", alg.Name, len(a), alg.Size)
		}
	}
}

func TestTickNormalizesInputWidth(t *testing.T) {
	alg := SHA256

	short := []byte("abc")
	padded := make([]byte, alg.Size)
	copy(padded, short)

	if !bytes.Equal(Tick(alg, short, nil), Tick(alg, padded, alg.Zero())) {
		t.Error("short inputs must hash identically to their zero-padded form")
	}
}

func TestTicksMatchesTickFunction(t *testing.T) {
	alg := Keccak256
	seed := alg.HashString("Hello World!")

	gen := NewTicks(alg, seed)
	cur := seed
	for i := 0; i < 100; i++ {
		want := Tick(alg, cur, alg.Zero())
		got := gen.Next()
		if !bytes.Equal(got, want) {
			t.Fatalf("tick %d: generator diverged from tick function", i)
		}
		cur = want
	}
}

func TestTicksWithData(t *testing.T) {
	alg := SHA3256
	gen := NewTicks(alg, alg.Zero())
	data := alg.HashString("payload")

	first := gen.NextWithData(data)
	if !bytes.Equal(first, Tick(alg, alg.Zero(), data)) {
		t.Fatal("NextWithData did not mix the commitment")
	}
	second := gen.Next()
	if !bytes.Equal(second, Tick(alg, first, alg.Zero())) {
		t.Fatal("Next did not chain from the previous tick")
	}
}

func TestTicksClone(t *testing.T) {
	alg := Blake3
	gen := NewTicks(alg, alg.HashString("fork point"))
	for i := 0; i < 10; i++ {
		gen.Next()
	}

	clone := gen.Clone()
	if !bytes.Equal(gen.Current(), clone.Current()) {
		t.Fatal("clone does not start at the parent's current value")
	}

	// The two generators advance independently from the same point.
	a := gen.Next()
	b := clone.Next()
	if !bytes.Equal(a, b) {
		t.Fatal("clone diverged on the first advance")
	}
	gen.Next()
	if !bytes.Equal(gen.Current(), Tick(alg, a, alg.Zero())) {
		t.Fatal("parent state corrupted by clone")
	}
}

func TestAlgorithmByName(t *testing.T) {
	for _, alg := range Algorithms() {
		got, err := AlgorithmByName(alg.Name)
		if err != nil {
			t.Fatalf("AlgorithmByName(%q): %v", alg.Name, err)
		}
		if got.Name != alg.Name || got.Size != alg.Size {
			t.Fatalf("AlgorithmByName(%q) returned %q", alg.Name, got.Name)
		}
	}
	if _, err := AlgorithmByName("md5"); err == nil {
		t.Fatal("expected error for unregistered algorithm")
	}
}
