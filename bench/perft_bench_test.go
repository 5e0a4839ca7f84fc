package bench

import (
	"context"
	"testing"

	"chess-movegen/bitmg"
)

func benchPerft(b *testing.B, fen string, depth int) {
	p := mustPosition(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bitmg.Perft(p, depth); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B)  { benchPerft(b, bitmg.FENStartPos, 4) }
func BenchmarkPerft_Kiwipete_D3(b *testing.B) { benchPerft(b, kiwipete, 3) }

func BenchmarkPerftParallel_Initial_D5(b *testing.B) {
	p := mustPosition(b, bitmg.FENStartPos)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bitmg.PerftParallel(context.Background(), p, 5, 0); err != nil {
			b.Fatal(err)
		}
	}
}
