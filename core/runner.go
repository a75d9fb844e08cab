package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/zeu5/gridworld-rl/util"
)

var (
	ErrTooManyErrors = errors.New("too many errors")
	ErrCancelled     = errors.New("context cancelled")
)

type experimentRunContext struct {
	run       int
	ctx       context.Context
	analyzers map[string]Analyzer

	writer io.Writer

	*RunConfig
}

func (e *Experiment) run(ctx *experimentRunContext) *ExperimentResult {
	result := newExperimentResult()
	e.Policy.Reset()

	consecutiveErrors := 0
EpisodeLoop:
	for episode := 0; episode < ctx.Episodes; episode++ {
		select {
		case <-ctx.ctx.Done():
			result.Error = ErrCancelled
			break EpisodeLoop
		default:
		}

		fmt.Fprintf(
			ctx.writer,
			"Experiment: %s, Run %d, Episode %d/%d, Timesteps: %d, Error: %d, Truncated: %d\n",
			e.Name, ctx.run, episode, ctx.Episodes, result.TotalTimeSteps, result.ErrorEpisodes, result.TruncatedEpisodes,
		)
		eCtx := NewEpisodeContext(ctx.ctx)
		eCtx.Experiment = e.Name
		eCtx.Run = ctx.run
		eCtx.Episode = episode
		eCtx.Horizon = ctx.Horizon

		episodeResult, err := RunEpisode(eCtx, e.Environment, e.Policy)
		result.TotalEpisodes++
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				result.Error = ErrCancelled
				break EpisodeLoop
			}
			result.ErrorEpisodes++
			log.Error().Err(err).Str("experiment", e.Name).Int("run", ctx.run).Int("episode", episode).Msg("episode failed")
			if consecutiveErrors++; consecutiveErrors >= ctx.errorThreshold() {
				result.Error = fmt.Errorf("%w: %w", ErrTooManyErrors, err)
				break EpisodeLoop
			}
			continue
		}
		consecutiveErrors = 0
		result.addEpisode(episodeResult)

		for _, a := range ctx.analyzers {
			a.Analyze(eCtx, eCtx.Trace)
		}
	}
	if result.Error != nil {
		fmt.Fprintf(ctx.writer, "Experiment: %s, Run %d, Error: %v\n", e.Name, ctx.run, result.Error)
	} else {
		avgReturn, avgSteps := result.Averages()
		log.Info().Msgf("completed experiment %s run %d: avg return %.3f, avg steps %.2f", e.Name, ctx.run, avgReturn, avgSteps)
	}

	for name, a := range ctx.analyzers {
		result.Datasets[name] = a.DataSet()
	}

	e.Policy.Reset()
	return result
}

// Run executes every experiment sequentially for the given number of runs and
// returns the results of each run keyed by experiment name. The returned error
// is the first experiment error encountered.
func (c *Comparison) Run(ctx context.Context, runs int, rConfig *RunConfig) ([]map[string]*ExperimentResult, error) {
	allResults := make([]map[string]*ExperimentResult, 0, runs)
	var firstErr error
	for run := 0; run < runs; run++ {
		select {
		case <-ctx.Done():
			return allResults, ErrCancelled
		default:
		}

		results := make(map[string]*ExperimentResult)

		for _, e := range c.Experiments {
			log.Info().Msgf("starting experiment %s run %d...", e.Name, run)
			eCtx := &experimentRunContext{
				run:       run,
				ctx:       ctx,
				analyzers: make(map[string]Analyzer),
				writer:    c.Out,
				RunConfig: rConfig,
			}

			for name, a := range c.Analyzers {
				a.Reset()
				eCtx.analyzers[name] = a
			}

			result := e.run(eCtx)
			results[e.Name] = result
			if result.IsError() && firstErr == nil {
				firstErr = fmt.Errorf("experiment %s: %w", e.Name, result.Error)
			}
		}
		allResults = append(allResults, results)

		names, datasets := gatherDatasets(c.experimentNames(), c.analysisOrder, results)
		for _, name := range c.analysisOrder {
			c.Comparators[name].Compare(names, datasets[name])
		}
	}
	return allResults, firstErr
}

func (c *Comparison) experimentNames() []string {
	names := make([]string, len(c.Experiments))
	for i, e := range c.Experiments {
		names[i] = e.Name
	}
	return names
}

// gatherDatasets arranges the datasets of each analysis in experiment order.
// Errored experiments contribute a nil dataset.
func gatherDatasets(experimentNames, analyzerNames []string, results map[string]*ExperimentResult) ([]string, map[string][]DataSet) {
	datasets := make(map[string][]DataSet)
	names := make([]string, 0, len(experimentNames))
	for _, expName := range experimentNames {
		result, ok := results[expName]
		if !ok {
			continue
		}
		names = append(names, expName)
		for _, name := range analyzerNames {
			if _, ok := datasets[name]; !ok {
				datasets[name] = make([]DataSet, 0)
			}
			if result.IsError() {
				datasets[name] = append(datasets[name], nil)
			} else {
				datasets[name] = append(datasets[name], result.Datasets[name])
			}
		}
	}
	return names, datasets
}

// parallelWorker is a worker that runs experiments
type parallelWorker struct {
	id int
}

// parallelWork is a struct that contains all the information needed to run an experiment
type parallelWork struct {
	experiment *ParallelExperiment
	comp       *ParallelComparison
	index      int
	runNumber  int
	writer     io.Writer
	rConfig    *RunConfig
}

// parallelResult is a struct that contains the result of running an experiment
type parallelResult struct {
	experimentName string
	run            int
	result         *ExperimentResult
}

// Worker main loop that consumes work from a channel
func (w *parallelWorker) run(ctx context.Context, workCh <-chan *parallelWork, resultsCh chan<- *parallelResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case work, more := <-workCh:
			if !more {
				return
			}
			resultsCh <- w.runWork(ctx, work)
		}
	}
}

// Run an experiment by constructing the environment and policy of the work item
func (w *parallelWorker) runWork(ctx context.Context, work *parallelWork) *parallelResult {
	eCtx := &experimentRunContext{
		run:       work.runNumber,
		ctx:       ctx,
		analyzers: make(map[string]Analyzer),
		writer:    work.writer,
		RunConfig: work.rConfig,
	}

	for name, aC := range work.comp.Analyzers {
		eCtx.analyzers[name] = aC.NewAnalyzer(work.experiment.Name, work.runNumber)
	}

	// Environments are indexed by run and experiment so that results do not
	// depend on which worker picked the work up, and runs do not repeat
	instance := work.runNumber*len(work.comp.Experiments) + work.index
	env, err := work.experiment.Environment.NewEnvironment(instance)
	if err != nil {
		result := newExperimentResult()
		result.Error = fmt.Errorf("creating environment: %w", err)
		return &parallelResult{experimentName: work.experiment.Name, run: work.runNumber, result: result}
	}

	exp := &Experiment{
		Name:        work.experiment.Name,
		Environment: env,
		Policy:      work.experiment.Policy.NewPolicy(),
	}
	log.Debug().Int("worker", w.id).Str("experiment", exp.Name).Int("run", work.runNumber).Msg("picked up experiment")

	return &parallelResult{
		experimentName: work.experiment.Name,
		run:            work.runNumber,
		result:         exp.run(eCtx),
	}
}

// Run executes the experiments of each run on a pool of parallelism workers.
// Every experiment gets its own environment and policy instances.
func (c *ParallelComparison) Run(ctx context.Context, runs int, rConfig *RunConfig, parallelism int) ([]map[string]*ExperimentResult, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	allResults := make([]map[string]*ExperimentResult, 0, runs)
	var firstErr error
	for run := 0; run < runs; run++ {
		select {
		case <-ctx.Done():
			return allResults, ErrCancelled
		default:
		}

		printer := util.NewTerminalPrinter(c.Out, c.RefreshInterval)
		outputs := make([]io.Writer, len(c.Experiments))
		for i := range c.Experiments {
			outputs[i] = printer.NewOutput()
		}
		printer.Start(ctx)

		workCh := make(chan *parallelWork, parallelism)
		resultsCh := make(chan *parallelResult, len(c.Experiments))

		wg := new(sync.WaitGroup)
		for i := 0; i < parallelism; i++ {
			wg.Add(1)
			worker := &parallelWorker{id: i}
			go func() {
				defer wg.Done()
				worker.run(ctx, workCh, resultsCh)
			}()
		}

		go func(run int) {
			defer close(workCh)
			for i, e := range c.Experiments {
				select {
				case <-ctx.Done():
					return
				case workCh <- &parallelWork{
					experiment: e,
					comp:       c,
					index:      i,
					runNumber:  run,
					rConfig:    rConfig,
					writer:     outputs[i],
				}:
				}
			}
		}(run)

		wg.Wait()
		close(resultsCh)
		printer.Stop()

		results := make(map[string]*ExperimentResult)
		for r := range resultsCh {
			results[r.experimentName] = r.result
		}
		allResults = append(allResults, results)

		names := make([]string, 0, len(c.Experiments))
		for _, e := range c.Experiments {
			names = append(names, e.Name)
			if r, ok := results[e.Name]; ok && r.IsError() && firstErr == nil {
				firstErr = fmt.Errorf("experiment %s: %w", e.Name, r.Error)
			}
		}
		if len(results) < len(c.Experiments) {
			return allResults, ErrCancelled
		}

		names, datasets := gatherDatasets(names, c.analysisOrder, results)
		for _, name := range c.analysisOrder {
			c.Comparators[name].NewComparator(run).Compare(names, datasets[name])
		}
	}
	return allResults, firstErr
}
