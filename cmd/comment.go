package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/gasbot/internal/config"
	gh "github.com/gasbot/internal/github"
	"github.com/gasbot/internal/report"
)

// CommentCommand returns the comment command
func CommentCommand() *cli.Command {
	return &cli.Command{
		Name:  "comment",
		Usage: "Fetch the gas-report artifact from a workflow run and post it on the pull request",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "run-id",
				Aliases: []string{"r"},
				Usage:   "Workflow run `ID` to fetch the artifact from (overrides config)",
			},
			&cli.IntFlag{
				Name:    "pr",
				Aliases: []string{"p"},
				Usage:   "Pull request `NUMBER` (overrides the number in the artifact)",
			},
			&cli.StringFlag{
				Name:  "marker",
				Usage: "Marker substring identifying the bot comment",
				Value: report.Marker,
			},
		},
		Action: runComment,
	}
}

func runComment(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if runID := c.Int64("run-id"); runID != 0 {
		cfg.GitHub.RunID = runID
	}
	if err := config.ValidateForComment(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	owner, repo, err := cfg.SplitRepository()
	if err != nil {
		return err
	}

	client := gh.NewClient(cfg.GitHub.Token, nil)
	ctx := context.Background()

	artifact, ok, err := gh.FindArtifact(ctx, client, owner, repo, cfg.GitHub.RunID, cfg.Report.ArtifactName)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("artifact %q not found on run %d", cfg.Report.ArtifactName, cfg.GitHub.RunID)
	}

	workDir, err := os.MkdirTemp("", "gasbot-artifact-")
	if err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	if err := gh.FetchArtifact(ctx, client, http.DefaultClient, owner, repo, artifact, workDir); err != nil {
		return err
	}

	prNumber := c.Int("pr")
	if prNumber == 0 {
		n, ok := gh.ReadPRNumber(workDir)
		if !ok {
			return fmt.Errorf("pull request number not found in artifact %q", cfg.Report.ArtifactName)
		}
		prNumber = n
	}

	body, ok := gh.ReadReport(filepath.Join(workDir, cfg.Report.OutputFile))
	if !ok {
		return fmt.Errorf("report file %q not found in artifact", cfg.Report.OutputFile)
	}

	if err := gh.UpsertComment(ctx, client, owner, repo, prNumber, c.String("marker"), body); err != nil {
		return err
	}

	log.Info().
		Int("pr", prNumber).
		Str("repository", cfg.GitHub.Repository).
		Msg("gas report comment in place")
	return nil
}
