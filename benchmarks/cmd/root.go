package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gridworld-rl",
		Short:         "Compare scripted policies on a one dimensional grid world",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			UpdateFlags()
			setupLogging(flags.Debug)
			return flags.Record()
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		RunCommand(),
		EpisodeCommand(),
		PoliciesCommand(),
	)

	return cmd
}

func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
