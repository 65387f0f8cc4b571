package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

// GenerateParams holds the flags of the generate command.
type GenerateParams struct {
	Options crypto.GeneratorOptions
	Count   int
	Seed    string
	Format  string
}

// RunGenerate writes Count passwords to out. A non-empty Seed makes the output reproducible.
func RunGenerate(ctx context.Context, logger *slog.Logger, out io.Writer, p GenerateParams) error {
	if p.Count < 1 {
		return fmt.Errorf("count must be a positive number, got: %d", p.Count)
	}
	if err := validateFormat(p.Format); err != nil {
		return err
	}

	src := crypto.CryptoSource()
	workers := runtime.GOMAXPROCS(0)
	if p.Seed != "" {
		seeded, err := crypto.NewSeededSource([]byte(p.Seed))
		if err != nil {
			return err
		}
		src = seeded
		// Seeded draws must happen in order to be reproducible.
		workers = 1
	}
	gen := crypto.NewGenerator(src)

	logger.Debug("generating passwords",
		slog.Int("count", p.Count),
		slog.Int("length", p.Options.Length),
		slog.Bool("seeded", p.Seed != ""),
	)

	results := make([]model.GenerateResponse, p.Count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			password, err := gen.Generate(p.Options)
			if err != nil {
				return err
			}
			strength := crypto.Classify(password)
			results[i] = model.GenerateResponse{
				Password: password,
				Length:   crypto.CharCount(password),
				Strength: strength,
				Message:  model.StrengthMessage(strength),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to generate password: %w", err)
	}

	if p.Format != FormatText {
		if len(results) == 1 {
			return writeStructured(out, p.Format, results[0])
		}
		return writeStructured(out, p.Format, results)
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", r.Password, r.Strength); err != nil {
			return err
		}
	}
	return nil
}
