package model

import "github.com/vaultpass/passgen/internal/crypto"

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length           int   `json:"length"`
	Lowercase        *bool `json:"lowercase"`
	Uppercase        *bool `json:"uppercase"`
	Numbers          *bool `json:"numbers"`
	Symbols          *bool `json:"symbols"`
	RequireEachClass bool  `json:"require_each_class"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string          `json:"password" yaml:"password"`
	Length   int             `json:"length" yaml:"length"`
	Strength crypto.Strength `json:"strength" yaml:"strength"`
	Message  string          `json:"message" yaml:"message"`
}

// StrengthRequest asks for the rating of an existing password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse carries the rating of a password.
type StrengthResponse struct {
	Strength     crypto.Strength `json:"strength" yaml:"strength"`
	VarietyScore int             `json:"variety_score" yaml:"variety_score"`
	Length       int             `json:"length" yaml:"length"`
	Message      string          `json:"message" yaml:"message"`
}
