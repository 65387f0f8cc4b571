package crypto

import (
	"errors"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCryptoSourceRange(t *testing.T) {
	src := CryptoSource()
	for i := 0; i < 1000; i++ {
		v, err := src.Intn(7)
		if err != nil {
			t.Fatalf("Intn() unexpected error: %v", err)
		}
		if v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d, out of range", v)
		}
	}
}

func TestSourcesRejectNonPositiveBound(t *testing.T) {
	seeded, err := NewSeededSource([]byte("bound"))
	if err != nil {
		t.Fatalf("NewSeededSource() unexpected error: %v", err)
	}

	for _, src := range []RandomSource{CryptoSource(), seeded} {
		for _, n := range []int{0, -1} {
			if _, err := src.Intn(n); !errors.Is(err, ErrInvalidBound) {
				t.Errorf("%T.Intn(%d) error = %v, want %v", src, n, err, ErrInvalidBound)
			}
		}
	}
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	a, err := NewSeededSource([]byte("seed"))
	if err != nil {
		t.Fatalf("NewSeededSource() unexpected error: %v", err)
	}
	b, err := NewSeededSource([]byte("seed"))
	if err != nil {
		t.Fatalf("NewSeededSource() unexpected error: %v", err)
	}

	for i := 0; i < 200; i++ {
		x, _ := a.Intn(1000)
		y, _ := b.Intn(1000)
		if x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestSeededSourceDifferentSeedsDiverge(t *testing.T) {
	a, _ := NewSeededSource([]byte("seed-a"))
	b, _ := NewSeededSource([]byte("seed-b"))

	same := 0
	for i := 0; i < 64; i++ {
		x, _ := a.Intn(1 << 20)
		y, _ := b.Intn(1 << 20)
		if x == y {
			same++
		}
	}
	if same == 64 {
		t.Error("different seeds produced identical streams")
	}
}

func TestSeededSourceCoversRangeEvenly(t *testing.T) {
	src, err := NewSeededSource([]byte("distribution"))
	if err != nil {
		t.Fatalf("NewSeededSource() unexpected error: %v", err)
	}

	const buckets, draws = 10, 10000
	var counts [buckets]int
	for i := 0; i < draws; i++ {
		v, err := src.Intn(buckets)
		if err != nil {
			t.Fatalf("Intn() unexpected error: %v", err)
		}
		counts[v]++
	}

	for i, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("bucket %d has %d hits, expected roughly %d", i, c, draws/buckets)
		}
	}
}
