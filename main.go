package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zeu5/gridworld-rl/benchmarks/cmd"
)

// main entry point to all the experiments
func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
