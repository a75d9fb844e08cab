package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/gridworld-rl/benchmarks/common"
)

var (
	flags        *common.Flags = common.DefaultFlags()
	savePath     string
	size         int
	stepLimit    int
	seed         uint64
	policyNames  []string
	debug        bool
	plot         bool
	showVisits   bool
	recordTraces bool

	numRuns              int
	episodes             int
	horizon              int
	maxConsecutiveErrors int
	parallelism          int
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results, nothing is saved when empty")
	cmd.PersistentFlags().IntVar(&size, "size", flags.Size, "Number of cells of the grid")
	cmd.PersistentFlags().IntVar(&stepLimit, "step-limit", flags.StepLimit, "Steps allowed before an episode is cut off with a penalty")
	cmd.PersistentFlags().Uint64Var(&seed, "seed", flags.Seed, "Seed of the environment random source")
	cmd.PersistentFlags().StringSliceVar(&policyNames, "policies", flags.Policies, "Policies to compare")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&plot, "plot", flags.Plot, "Save a bar chart of the average returns under the save path")
	cmd.PersistentFlags().BoolVar(&showVisits, "visits", flags.ShowVisits, "Print per cell visit counts")
	cmd.PersistentFlags().BoolVar(&recordTraces, "record-traces", flags.RecordTraces, "Save every episode trace under the save path")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes per policy")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Maximum steps per episode, 0 uses the step limit")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive failed episodes")
	cmd.PersistentFlags().IntVar(&parallelism, "parallelism", flags.Parallelism, "Number of policies run in parallel, each on its own environment")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.Size = size
	flags.StepLimit = stepLimit
	flags.Seed = seed
	flags.Policies = policyNames
	flags.Debug = debug
	flags.Plot = plot
	flags.ShowVisits = showVisits
	flags.RecordTraces = recordTraces

	flags.NumRuns = numRuns
	flags.Episodes = episodes
	flags.Horizon = horizon
	flags.MaxConsecutiveErrors = maxConsecutiveErrors
	flags.Parallelism = parallelism
}
