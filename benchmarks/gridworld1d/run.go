package gridworld1d

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/zeu5/gridworld-rl/analysis"
	"github.com/zeu5/gridworld-rl/benchmarks/common"
	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/gridworld"
	"github.com/zeu5/gridworld-rl/policies"
)

var ErrNoPolicies = errors.New("no policies selected")

const (
	ReturnsAnalysis = "Returns"
	VisitsAnalysis  = "Visits"
	DebugAnalysis   = "Debug"
)

// PrepareComparison runs every selected policy in sequence against a single
// seeded environment, the way the experiment is classically reported
func PrepareComparison(flags *common.Flags, out io.Writer) (*core.Comparison, error) {
	if len(flags.Policies) == 0 {
		return nil, ErrNoPolicies
	}
	env, err := gridworld.NewGridWorld1D(flags.Size, flags.StepLimit, flags.Seed)
	if err != nil {
		return nil, err
	}

	cmp := core.NewComparison()
	for _, name := range flags.Policies {
		policy, err := policies.New(name)
		if err != nil {
			return nil, err
		}
		cmp.AddExperiment(&core.Experiment{
			Name:        name,
			Environment: env,
			Policy:      policy,
		})
	}

	if flags.NumRuns > 1 {
		// every run reports under its own header and directory
		cmp.AddAnalysis(ReturnsAnalysis, analysis.NewReturnAnalyzer(), analysis.NewPerRun(returnsComparators(flags, out)))
	} else {
		returns := analysis.Multi{analysis.NewReportComparator(out)}
		if flags.SavePath != "" {
			returns = append(returns, analysis.NewSaveComparator(flags.SavePath, "returns"))
			if flags.Plot {
				returns = append(returns, analysis.NewPlotComparator(path.Join(flags.SavePath, "returns.png")))
			}
		}
		cmp.AddAnalysis(ReturnsAnalysis, analysis.NewReturnAnalyzer(), returns)
	}
	if flags.ShowVisits {
		cmp.AddAnalysis(VisitsAnalysis, analysis.NewVisitAnalyzer(), analysis.NewVisitComparator(out))
	}
	if flags.RecordTraces && flags.SavePath != "" {
		cmp.AddAnalysis(DebugAnalysis, analysis.NewPrintDebugAnalyzer(flags.SavePath, 0), analysis.NewNoOpComparator())
	}
	return cmp, nil
}

// PrepareParallelComparison gives every policy its own environment instance
// so the experiments can run on separate workers
func PrepareParallelComparison(flags *common.Flags, out io.Writer) (*core.ParallelComparison, error) {
	if len(flags.Policies) == 0 {
		return nil, ErrNoPolicies
	}
	// fail fast on a bad configuration instead of in every worker
	if _, err := gridworld.NewGridWorld1D(flags.Size, flags.StepLimit, flags.Seed); err != nil {
		return nil, err
	}
	envConstructor := gridworld.NewEnvConstructor(flags.Size, flags.StepLimit, flags.Seed)

	cmp := core.NewParallelComparison()
	for _, name := range flags.Policies {
		policy, err := policies.Constructor(name)
		if err != nil {
			return nil, err
		}
		cmp.AddExperiment(&core.ParallelExperiment{
			Name:        name,
			Environment: envConstructor,
			Policy:      policy,
		})
	}

	cmp.AddAnalysis(ReturnsAnalysis, analysis.NewReturnAnalyzerConstructor(), returnsComparators(flags, out))
	if flags.ShowVisits {
		cmp.AddAnalysis(VisitsAnalysis, analysis.NewVisitAnalyzerConstructor(), analysis.NewVisitComparatorConstructor(out))
	}
	if flags.RecordTraces && flags.SavePath != "" {
		cmp.AddAnalysis(DebugAnalysis, analysis.NewPrintDebugAnalyzerConstructor(flags.SavePath, 0), analysis.NewNoOpComparatorConstructor())
	}
	return cmp, nil
}

// returnsComparators reports the returns of a run and, with a save path,
// writes them and their plot under <save path>/<run>
func returnsComparators(flags *common.Flags, out io.Writer) analysis.MultiConstructor {
	comparators := analysis.MultiConstructor{analysis.NewReportComparatorConstructor(out)}
	if flags.SavePath != "" {
		comparators = append(comparators, analysis.NewSaveComparatorConstructor(flags.SavePath, "returns"))
		if flags.Plot {
			comparators = append(comparators, analysis.NewPlotComparatorConstructor(flags.SavePath))
		}
	}
	return comparators
}

// RunConfig translates the flags for the runner
func RunConfig(flags *common.Flags) *core.RunConfig {
	return &core.RunConfig{
		Episodes:                   flags.Episodes,
		Horizon:                    flags.EffectiveHorizon(),
		ThresholdConsecutiveErrors: flags.MaxConsecutiveErrors,
	}
}

// TraceEpisode runs a single episode of the named policy and writes its
// step-by-step trace, the hidden goal and the outcome to out
func TraceEpisode(flags *common.Flags, policyName string, out io.Writer) (*core.EpisodeResult, error) {
	env, err := gridworld.NewGridWorld1D(flags.Size, flags.StepLimit, flags.Seed)
	if err != nil {
		return nil, err
	}
	policy, err := policies.New(policyName)
	if err != nil {
		return nil, err
	}

	eCtx := core.NewEpisodeContext(context.Background())
	eCtx.Horizon = flags.EffectiveHorizon()
	result, err := core.RunEpisode(eCtx, env, policy)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Policy: %s, Size: %d, Goal: %d\n", policyName, env.Size(), env.Goal())
	fmt.Fprint(out, analysis.TraceToString(eCtx.Trace))
	fmt.Fprintf(out, "Return: %.3f, Steps: %d, Truncated: %t\n", result.Return, result.Steps, result.Truncated)
	return result, nil
}
