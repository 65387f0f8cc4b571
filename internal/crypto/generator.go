package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// DefaultLength matches the initial length offered to users.
	DefaultLength = 12
)

var (
	ErrInvalidLength      = errors.New("password length must be positive")
	ErrLengthInsufficient = errors.New("password length must be at least equal to the number of selected character types")
)

// CharClass is a named, fixed alphabet that can be toggled on or off.
type CharClass int

const (
	Lowercase CharClass = iota
	Uppercase
	Numbers
	Symbols
)

// AllClasses returns every class in canonical union order.
func AllClasses() []CharClass {
	return []CharClass{Lowercase, Uppercase, Numbers, Symbols}
}

// Alphabet returns the immutable character set bound to the class.
func (c CharClass) Alphabet() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Numbers:
		return numberChars
	case Symbols:
		return symbolChars
	}
	return ""
}

func (c CharClass) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Numbers:
		return "numbers"
	case Symbols:
		return "symbols"
	}
	return fmt.Sprintf("CharClass(%d)", int(c))
}

// GeneratorOptions configures the password generator.
//
// Length is not range-checked beyond being positive; callers decide the
// acceptable window. By default characters are drawn uniformly from the whole
// composed alphabet, so a password is not guaranteed to contain every enabled
// class. Set RequireEachClass to get that guarantee.
type GeneratorOptions struct {
	Length    int
	Lowercase bool
	Uppercase bool
	Numbers   bool
	Symbols   bool

	RequireEachClass bool
}

// DefaultOptions returns 12 characters with every class enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    DefaultLength,
		Lowercase: true,
		Uppercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Classes returns the enabled classes in canonical order.
func (o GeneratorOptions) Classes() []CharClass {
	var classes []CharClass
	if o.Lowercase {
		classes = append(classes, Lowercase)
	}
	if o.Uppercase {
		classes = append(classes, Uppercase)
	}
	if o.Numbers {
		classes = append(classes, Numbers)
	}
	if o.Symbols {
		classes = append(classes, Symbols)
	}
	return classes
}

// Alphabet composes the alphabet for the given classes.
// An empty selection yields the lowercase alphabet.
func Alphabet(classes []CharClass) string {
	if len(classes) == 0 {
		return lowercaseChars
	}

	var sb strings.Builder
	for _, c := range classes {
		sb.WriteString(c.Alphabet())
	}
	return sb.String()
}

// Generator draws passwords from an injected RandomSource.
// It is safe for concurrent use when the source is.
type Generator struct {
	src RandomSource
}

// NewGenerator returns a Generator reading from src. A nil src falls back to crypto/rand.
func NewGenerator(src RandomSource) *Generator {
	if src == nil {
		src = CryptoSource()
	}
	return &Generator{src: src}
}

var defaultGenerator = NewGenerator(CryptoSource())

// Generate creates a cryptographically secure random password based on the given options.
func Generate(opts GeneratorOptions) (string, error) {
	return defaultGenerator.Generate(opts)
}

// Generate builds a password of opts.Length characters.
func (g *Generator) Generate(opts GeneratorOptions) (string, error) {
	if opts.Length <= 0 {
		return "", ErrInvalidLength
	}

	classes := opts.Classes()
	pool := Alphabet(classes)

	if !opts.RequireEachClass {
		result := make([]byte, opts.Length)
		for i := range result {
			ch, err := g.randChar(pool)
			if err != nil {
				return "", err
			}
			result[i] = ch
		}
		return string(result), nil
	}

	if len(classes) == 0 {
		classes = []CharClass{Lowercase}
	}
	if opts.Length < len(classes) {
		return "", ErrLengthInsufficient
	}

	result := make([]byte, opts.Length)

	// One character from each selected class first.
	for i, c := range classes {
		ch, err := g.randChar(c.Alphabet())
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	for i := len(classes); i < opts.Length; i++ {
		ch, err := g.randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := g.shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

func (g *Generator) randChar(charset string) (byte, error) {
	n, err := g.src.Intn(len(charset))
	if err != nil {
		return 0, fmt.Errorf("drawing random index: %w", err)
	}
	return charset[n], nil
}

// shuffle performs a Fisher-Yates shuffle using the generator's source.
func (g *Generator) shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := g.src.Intn(i + 1)
		if err != nil {
			return fmt.Errorf("shuffling password: %w", err)
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
