package crypto

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

// sequenceSource replays fixed values, reduced modulo n.
type sequenceSource struct {
	mu   sync.Mutex
	vals []int
	pos  int
}

func (s *sequenceSource) Intn(n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return v % n, nil
}

type failingSource struct{ err error }

func (f failingSource) Intn(int) (int, error) { return 0, f.err }

func allSubsets() []GeneratorOptions {
	var subsets []GeneratorOptions
	for mask := 0; mask < 16; mask++ {
		subsets = append(subsets, GeneratorOptions{
			Lowercase: mask&1 != 0,
			Uppercase: mask&2 != 0,
			Numbers:   mask&4 != 0,
			Symbols:   mask&8 != 0,
		})
	}
	return subsets
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		opts    GeneratorOptions
		wantErr error
	}{
		{
			name:    "default options",
			opts:    DefaultOptions(),
			wantErr: nil,
		},
		{
			name: "all options enabled",
			opts: GeneratorOptions{
				Length: 32, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true,
			},
			wantErr: nil,
		},
		{
			name:    "no character types selected falls back to lowercase",
			opts:    GeneratorOptions{Length: 16},
			wantErr: nil,
		},
		{
			name:    "length below usual range is still honoured",
			opts:    GeneratorOptions{Length: 3, Numbers: true},
			wantErr: nil,
		},
		{
			name:    "length above usual range is still honoured",
			opts:    GeneratorOptions{Length: 200, Uppercase: true},
			wantErr: nil,
		},
		{
			name:    "zero length",
			opts:    GeneratorOptions{Length: 0, Lowercase: true},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "negative length",
			opts:    GeneratorOptions{Length: -5, Lowercase: true},
			wantErr: ErrInvalidLength,
		},
		{
			name: "require each class with too few characters",
			opts: GeneratorOptions{
				Length: 3, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true, RequireEachClass: true,
			},
			wantErr: ErrLengthInsufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.opts)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.opts.Length {
				t.Errorf("Generate() length = %d, want %d", len(result), tt.opts.Length)
			}
		})
	}
}

func TestGenerateDrawsOnlyFromComposedAlphabet(t *testing.T) {
	for _, base := range allSubsets() {
		alphabet := Alphabet(base.Classes())
		for length := 8; length <= 32; length++ {
			opts := base
			opts.Length = length

			password, err := Generate(opts)
			if err != nil {
				t.Fatalf("Generate(%+v) unexpected error: %v", opts, err)
			}
			if len(password) != length {
				t.Errorf("Generate(%+v) length = %d, want %d", opts, len(password), length)
			}
			for _, ch := range password {
				if !strings.ContainsRune(alphabet, ch) {
					t.Errorf("password %q contains %q outside alphabet %q", password, string(ch), alphabet)
				}
			}
		}
	}
}

func TestAlphabet(t *testing.T) {
	tests := []struct {
		name    string
		classes []CharClass
		want    string
	}{
		{"empty selection", nil, lowercaseChars},
		{"lowercase", []CharClass{Lowercase}, lowercaseChars},
		{"numbers only", []CharClass{Numbers}, numberChars},
		{"canonical order", AllClasses(), lowercaseChars + uppercaseChars + numberChars + symbolChars},
		{"upper and symbols", []CharClass{Uppercase, Symbols}, uppercaseChars + symbolChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Alphabet(tt.classes); got != tt.want {
				t.Errorf("Alphabet() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptionsClassesOrder(t *testing.T) {
	opts := GeneratorOptions{Symbols: true, Numbers: true, Uppercase: true, Lowercase: true}
	got := opts.Classes()
	want := AllClasses()
	if len(got) != len(want) {
		t.Fatalf("Classes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Classes()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAlphabetsAreDisjoint(t *testing.T) {
	owner := make(map[rune]CharClass)
	for _, c := range AllClasses() {
		for _, ch := range c.Alphabet() {
			if prev, ok := owner[ch]; ok {
				t.Errorf("character %q appears in both %v and %v", string(ch), prev, c)
			}
			owner[ch] = c
		}
	}
}

func TestGeneratorUsesInjectedSource(t *testing.T) {
	src := &sequenceSource{vals: []int{0, 1, 25, 26, 35}}
	g := NewGenerator(src)

	got, err := g.Generate(GeneratorOptions{Length: 5, Lowercase: true, Numbers: true})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got != "abz09" {
		t.Errorf("Generate() = %q, want %q", got, "abz09")
	}
}

func TestGeneratorFallbackUsesLowercase(t *testing.T) {
	g := NewGenerator(&sequenceSource{vals: []int{2, 0, 1, 0, 2, 0, 1, 0}})

	got, err := g.Generate(GeneratorOptions{Length: 8})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if got != "cabacaba" {
		t.Errorf("Generate() = %q, want %q", got, "cabacaba")
	}
}

func TestGeneratorIsReproducibleWithSameSeed(t *testing.T) {
	seed := []byte("reproducible-seed")
	opts := GeneratorOptions{Length: 32, Lowercase: true, Uppercase: true, Numbers: true, Symbols: true}

	first, err := NewSeededSource(seed)
	if err != nil {
		t.Fatalf("NewSeededSource() unexpected error: %v", err)
	}
	second, err := NewSeededSource(seed)
	if err != nil {
		t.Fatalf("NewSeededSource() unexpected error: %v", err)
	}

	g1, g2 := NewGenerator(first), NewGenerator(second)
	for i := 0; i < 10; i++ {
		a, err := g1.Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		b, err := g2.Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if a != b {
			t.Errorf("round %d: %q != %q for identical seeds", i, a, b)
		}
	}
}

func TestGeneratorPropagatesSourceError(t *testing.T) {
	boom := errors.New("entropy exhausted")
	g := NewGenerator(failingSource{err: boom})

	for _, require := range []bool{false, true} {
		_, err := g.Generate(GeneratorOptions{Length: 8, Lowercase: true, RequireEachClass: require})
		if !errors.Is(err, boom) {
			t.Errorf("Generate(RequireEachClass=%v) error = %v, want %v", require, err, boom)
		}
	}
}

func TestGenerateRequireEachClassContainsAllTypes(t *testing.T) {
	opts := GeneratorOptions{
		Length:           8,
		Uppercase:        true,
		Lowercase:        true,
		Numbers:          true,
		Symbols:          true,
		RequireEachClass: true,
	}

	// Run multiple times to reduce flakiness from randomness.
	for i := 0; i < 50; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}

		for _, c := range opts.Classes() {
			if !strings.ContainsAny(password, c.Alphabet()) {
				t.Errorf("password %q missing %v character", password, c)
			}
		}
	}
}

func TestGenerateRequireEachClassWithEmptySelection(t *testing.T) {
	password, err := Generate(GeneratorOptions{Length: 4, RequireEachClass: true})
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, ch := range password {
		if !strings.ContainsRune(lowercaseChars, ch) {
			t.Errorf("password %q contains non-lowercase %q", password, string(ch))
		}
	}
}

func TestGenerateSingleTypeContainsOnlyThatType(t *testing.T) {
	for _, c := range AllClasses() {
		t.Run(c.String(), func(t *testing.T) {
			opts := GeneratorOptions{Length: 32}
			switch c {
			case Lowercase:
				opts.Lowercase = true
			case Uppercase:
				opts.Uppercase = true
			case Numbers:
				opts.Numbers = true
			case Symbols:
				opts.Symbols = true
			}

			password, err := Generate(opts)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			for _, ch := range password {
				if !strings.ContainsRune(c.Alphabet(), ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), c.Alphabet())
				}
			}
		})
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	opts := DefaultOptions()
	opts.Length = 16
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

func TestGenerateConcurrently(t *testing.T) {
	src, err := NewSeededSource([]byte("concurrent"))
	if err != nil {
		t.Fatalf("NewSeededSource() unexpected error: %v", err)
	}
	g := NewGenerator(src)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				pw, err := g.Generate(DefaultOptions())
				if err != nil {
					errs <- err
					return
				}
				if len(pw) != DefaultLength {
					errs <- errors.New("unexpected password length")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Generate() error: %v", err)
	}
}
