package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gasbot/internal/config"
)

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a new configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "gasbot.toml",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShow,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	outputPath := c.String("output")

	if err := config.InitConfig(outputPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Created configuration file at %s\n", outputPath)
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("repository:    %s\n", cfg.GitHub.Repository)
	fmt.Printf("server_url:    %s\n", cfg.GitHub.ServerURL)
	fmt.Printf("run_id:        %d\n", cfg.GitHub.RunID)
	fmt.Printf("base_branch:   %s\n", cfg.Report.BaseBranch)
	fmt.Printf("head_branch:   %s\n", cfg.Report.HeadBranch)
	fmt.Printf("commit_sha:    %s\n", cfg.Report.CommitSHA)
	fmt.Printf("diff_file:     %s\n", cfg.Report.DiffFile)
	fmt.Printf("output_file:   %s\n", cfg.Report.OutputFile)
	fmt.Printf("artifact_name: %s\n", cfg.Report.ArtifactName)
	return nil
}
