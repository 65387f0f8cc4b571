package model

import "github.com/vaultpass/passgen/internal/crypto"

var strengthMessages = map[crypto.Strength]string{
	crypto.Weak:     "Weak: Add more characters and variety",
	crypto.Moderate: "Moderate: Not bad, but not Fort Knox either",
	crypto.Strong:   "Strong: This password means business!",
}

// StrengthMessage returns the display text for a strength tier.
func StrengthMessage(s crypto.Strength) string {
	return strengthMessages[s]
}
