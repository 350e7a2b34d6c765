package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/gasbot/internal/config"
	"github.com/gasbot/internal/report"
)

// GenerateCommand returns the generate command
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Parse a gas-snapshot diff and write the Markdown report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Gas diff `FILE` to read (overrides config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report `FILE` to write (overrides config)",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	inputPath := cfg.Report.DiffFile
	if override := c.String("input"); override != "" {
		inputPath = override
	}
	outputPath := cfg.Report.OutputFile
	if override := c.String("output"); override != "" {
		outputPath = override
	}

	// A missing diff file is fatal: no partial report gets written.
	diff, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read gas diff %s: %w", inputPath, err)
	}

	md := report.Compose(string(diff), cfg.PRInfo(), time.Now())

	if err := os.WriteFile(outputPath, []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", outputPath, err)
	}

	log.Info().
		Str("input", inputPath).
		Str("output", outputPath).
		Int("bytes", len(md)).
		Msg("gas report written")
	return nil
}
