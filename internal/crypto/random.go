package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"golang.org/x/crypto/chacha20"
)

// ErrInvalidBound is returned by a RandomSource when asked for a value in an empty range.
var ErrInvalidBound = errors.New("random bound must be positive")

// RandomSource yields uniformly distributed integers in [0, n).
type RandomSource interface {
	Intn(n int) (int, error)
}

type cryptoSource struct{}

// CryptoSource returns a RandomSource backed by crypto/rand. It is safe for concurrent use.
func CryptoSource() RandomSource {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SeededSource is a deterministic RandomSource driven by a ChaCha20 keystream.
// The same seed always produces the same sequence of values.
type SeededSource struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
}

// NewSeededSource derives a ChaCha20 key from seed and returns a reproducible source.
func NewSeededSource(seed []byte) (*SeededSource, error) {
	key := sha256.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, fmt.Errorf("creating chacha20 stream: %w", err)
	}

	return &SeededSource{cipher: c}, nil
}

// Intn uses rejection sampling over 64-bit draws so every value in [0, n) is equally likely.
func (s *SeededSource) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidBound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % bound)

	var buf [8]byte
	for {
		clear(buf[:])
		s.cipher.XORKeyStream(buf[:], buf[:])
		v := binary.LittleEndian.Uint64(buf[:])
		if v < limit {
			return int(v % bound), nil
		}
	}
}

var (
	_ RandomSource = cryptoSource{}
	_ RandomSource = (*SeededSource)(nil)
)
