package poh

import (
	"testing"
)

func BenchmarkTicks(b *testing.B) {
	for _, alg := range Algorithms() {
		b.Run(alg.Name, func(b *testing.B) {
			gen := NewTicks(alg, alg.Zero())
			b.SetBytes(int64(alg.Size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				gen.Next()
			}
		})
	}
}

func BenchmarkVerify(b *testing.B) {
	for _, alg := range Algorithms() {
		b.Run(alg.Name, func(b *testing.B) {
			gen := NewTicks(alg, alg.Zero())
			ticks := make([][]byte, 1<<16)
			for i := range ticks {
				ticks[i] = gen.Next()
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := Verify(alg, ticks, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
