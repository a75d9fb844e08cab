package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zeu5/gridworld-rl/benchmarks/gridworld1d"
	"github.com/zeu5/gridworld-rl/policies"
)

// interruptContext is cancelled on the first interrupt or when done is closed
func interruptContext() (context.Context, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os

	doneCh := make(chan struct{}) // channel for done signal from application

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("interrupted, stopping")
		case <-doneCh:
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}

func RunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every selected policy for a number of episodes and report average return and length",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, done := interruptContext()
			defer done()

			out := cmd.OutOrStdout()
			rConfig := gridworld1d.RunConfig(flags)
			log.Info().Msgf("running %d episodes per policy on a grid of size %d (seed %d)", flags.Episodes, flags.Size, flags.Seed)

			if flags.Parallelism > 1 {
				cmp, err := gridworld1d.PrepareParallelComparison(flags, out)
				if err != nil {
					return err
				}
				cmp.Out = cmd.ErrOrStderr()
				_, err = cmp.Run(ctx, flags.NumRuns, rConfig, flags.Parallelism)
				return err
			}

			cmp, err := gridworld1d.PrepareComparison(flags, out)
			if err != nil {
				return err
			}
			_, err = cmp.Run(ctx, flags.NumRuns, rConfig)
			return err
		},
	}

	return cmd
}

func EpisodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "episode [policy]",
		Args:  cobra.ExactArgs(1),
		Short: "Run a single episode and print its trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := gridworld1d.TraceEpisode(flags, args[0], cmd.OutOrStdout())
			return err
		},
	}

	return cmd
}

func PoliciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the available policies",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range policies.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
