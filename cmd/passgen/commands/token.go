package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
)

// RunIssueToken mints an API bearer token for subject, signed with the
// configured JWT secret, and prints it.
func RunIssueToken(logger *slog.Logger, out io.Writer, subject string, cfg config.Config) error {
	if err := cfg.CheckJWTSecret(); err != nil {
		return err
	}

	token, err := crypto.GenerateToken(subject, cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("issued api token", slog.String("subject", subject), slog.Duration("expiry", cfg.JWTExpiry))

	_, err = fmt.Fprintln(out, token)
	return err
}
