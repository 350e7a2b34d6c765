package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/gasbot/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()

	app := &cli.App{
		Name:    "gasbot",
		Usage:   "CI helpers for posting contract gas-usage reports on pull requests",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			cmd.GenerateCommand(),
			cmd.CommentCommand(),
			cmd.ConfigCommand(),
		},
		// Missing or unknown subcommands fail the CI step instead of
		// exiting zero after printing help.
		Action: func(c *cli.Context) error {
			cli.ShowAppHelp(c)
			if c.Args().Present() {
				return fmt.Errorf("unknown command %q", c.Args().First())
			}
			return fmt.Errorf("no command given")
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
