package crypto

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Strength is a coarse three-level rating derived from length and character variety.
type Strength int

const (
	Weak Strength = iota
	Moderate
	Strong
)

// Classification thresholds.
const (
	WeakBelow     = 8
	StrongFrom    = 12
	StrongVariety = 3
)

// Detection uses the same symbol alphabet the generator draws from.
var symbolSet = buildSet(symbolChars)

func buildSet(chars string) [256]bool {
	var set [256]bool
	for i := 0; i < len(chars); i++ {
		set[chars[i]] = true
	}
	return set
}

func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Moderate:
		return "moderate"
	case Strong:
		return "strong"
	}
	return fmt.Sprintf("Strength(%d)", int(s))
}

func (s Strength) MarshalText() ([]byte, error) {
	switch s {
	case Weak, Moderate, Strong:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("unknown strength %d", int(s))
}

func (s *Strength) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "weak":
		*s = Weak
	case "moderate":
		*s = Moderate
	case "strong":
		*s = Strong
	default:
		return fmt.Errorf("unknown strength %q", text)
	}
	return nil
}

// VarietyScore counts how many of lowercase, uppercase, digit and symbol
// characters appear in password (0-4).
func VarietyScore(password string) int {
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for i := 0; i < len(password); i++ {
		b := password[i]
		switch {
		case b >= 'a' && b <= 'z':
			hasLower = true
		case b >= 'A' && b <= 'Z':
			hasUpper = true
		case b >= '0' && b <= '9':
			hasDigit = true
		case symbolSet[b]:
			hasSymbol = true
		}
	}

	score := 0
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if ok {
			score++
		}
	}
	return score
}

// CharCount is the length of password in characters, not bytes.
func CharCount(password string) int {
	return utf8.RuneCountInString(password)
}

// Classify rates a password. The first matching rule wins: empty or shorter
// than 8 characters is Weak, 12 or more with a variety of at least 3 is
// Strong, anything else is Moderate.
func Classify(password string) Strength {
	if password == "" {
		return Weak
	}

	variety := VarietyScore(password)
	length := CharCount(password)

	if length < WeakBelow {
		return Weak
	}
	if length >= StrongFrom && variety >= StrongVariety {
		return Strong
	}
	return Moderate
}
