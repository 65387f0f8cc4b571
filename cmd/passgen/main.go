// Package main provides the passgen command line tool.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/vaultpass/passgen/cmd/passgen/commands"
	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	cmd := &cli.Command{
		Name:    "passgen",
		Usage:   "Generate passwords and rate their strength",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate one or more random passwords",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "length",
						Aliases: []string{"l"},
						Value:   cfg.DefaultLength,
						Usage:   "Password length",
					},
					&cli.BoolFlag{Name: "lowercase", Value: true, Usage: "Include lowercase letters"},
					&cli.BoolFlag{Name: "uppercase", Value: true, Usage: "Include uppercase letters"},
					&cli.BoolFlag{Name: "numbers", Value: true, Usage: "Include digits"},
					&cli.BoolFlag{Name: "symbols", Value: true, Usage: "Include symbols"},
					&cli.BoolFlag{
						Name:  "require-each",
						Usage: "Guarantee at least one character from every enabled class",
					},
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"c"},
						Value:   1,
						Usage:   "Number of passwords to generate",
					},
					&cli.StringFlag{
						Name:  "seed",
						Usage: "Deterministic seed (for reproducible output; never use for real secrets)",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerate(ctx, logger, os.Stdout, commands.GenerateParams{
						Options: crypto.GeneratorOptions{
							Length:           cmd.Int("length"),
							Lowercase:        cmd.Bool("lowercase"),
							Uppercase:        cmd.Bool("uppercase"),
							Numbers:          cmd.Bool("numbers"),
							Symbols:          cmd.Bool("symbols"),
							RequireEachClass: cmd.Bool("require-each"),
						},
						Count:  cmd.Int("count"),
						Seed:   cmd.String("seed"),
						Format: cmd.String("format"),
					})
				},
			},
			{
				Name:      "strength",
				Usage:     "Rate a password (reads stdin when no argument is given)",
				ArgsUsage: "[password]",
				Flags:     []cli.Flag{formatFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunStrength(os.Stdin, os.Stdout, cmd.Args().First(), cmd.String("format"))
				},
			},
			{
				Name:  "token",
				Usage: "Issue an API bearer token signed with JWT_SECRET",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Name of the API client",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunIssueToken(logger, os.Stdout, cmd.String("subject"), cfg)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   "Output format: 'text', 'json' or 'yaml'",
	}
}
