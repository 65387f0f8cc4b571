package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

// RunStrength rates password. When password is empty, the first line of in is
// used so the secret need not appear in shell history.
func RunStrength(in io.Reader, out io.Writer, password, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if password == "" && in != nil {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	strength := crypto.Classify(password)
	resp := model.StrengthResponse{
		Strength:     strength,
		VarietyScore: crypto.VarietyScore(password),
		Length:       crypto.CharCount(password),
		Message:      model.StrengthMessage(strength),
	}

	if format != FormatText {
		return writeStructured(out, format, resp)
	}

	_, err := fmt.Fprintln(out, resp.Message)
	return err
}
