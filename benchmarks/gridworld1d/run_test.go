package gridworld1d

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/gridworld-rl/analysis"
	"github.com/zeu5/gridworld-rl/benchmarks/common"
	"github.com/zeu5/gridworld-rl/gridworld"
	"github.com/zeu5/gridworld-rl/policies"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func runSequential(t *testing.T, flags *common.Flags) (string, map[string]*analysis.ReturnsDataset) {
	t.Helper()
	out := new(bytes.Buffer)
	cmp, err := PrepareComparison(flags, out)
	require.NoError(t, err)

	results, err := cmp.Run(context.Background(), flags.NumRuns, RunConfig(flags))
	require.NoError(t, err)
	require.Len(t, results, flags.NumRuns)

	datasets := make(map[string]*analysis.ReturnsDataset)
	for name, r := range results[0] {
		require.False(t, r.IsError())
		require.Equal(t, flags.Episodes, r.CompletedEpisodes)
		datasets[name] = r.Datasets[ReturnsAnalysis].(*analysis.ReturnsDataset)
	}
	return out.String(), datasets
}

func TestComparisonReport(t *testing.T) {
	flags := common.DefaultFlags()
	report, datasets := runSequential(t, flags)

	lines := strings.Split(strings.TrimSpace(report), "\n")
	require.Len(t, lines, 3)
	for i, name := range policies.Names() {
		require.True(t, strings.HasPrefix(lines[i], "Policy: "+name))
		require.Contains(t, lines[i], "| Avg Return: ")
		require.Contains(t, lines[i], "| Avg Steps: ")
		require.Equal(t, flags.Episodes, datasets[name].Episodes())
	}

	// a sweep in one direction then the other always finds the goal
	require.Equal(t, 1.0, datasets[policies.MonotonousName].SuccessRate())
	_, avgSteps := datasets[policies.MonotonousName].Averages()
	require.LessOrEqual(t, avgSteps, float64(2*(flags.Size-1)))
}

func TestComparisonDeterministic(t *testing.T) {
	flags := common.DefaultFlags()
	first, firstData := runSequential(t, flags)
	second, secondData := runSequential(t, flags)

	require.Equal(t, first, second)
	require.Equal(t, firstData, secondData)

	flags.Seed = 7
	_, otherData := runSequential(t, flags)
	require.NotEqual(t, firstData[policies.RandomName].Returns, otherData[policies.RandomName].Returns)
}

func TestComparisonSavesResults(t *testing.T) {
	flags := common.DefaultFlags()
	flags.Episodes = 5
	flags.SavePath = t.TempDir()
	flags.Plot = true
	flags.ShowVisits = true
	flags.RecordTraces = true

	report, _ := runSequential(t, flags)
	require.Contains(t, report, "Visits: ")

	require.FileExists(t, filepath.Join(flags.SavePath, "returns.json"))
	require.FileExists(t, filepath.Join(flags.SavePath, "returns.png"))
	traces, err := os.ReadDir(filepath.Join(flags.SavePath, "traces"))
	require.NoError(t, err)
	require.Len(t, traces, 5*len(flags.Policies))
}

func TestParallelComparisonDeterministic(t *testing.T) {
	flags := common.DefaultFlags()
	flags.NumRuns = 2
	flags.Episodes = 20

	run := func() []float64 {
		out := new(bytes.Buffer)
		cmp, err := PrepareParallelComparison(flags, out)
		require.NoError(t, err)

		results, err := cmp.Run(context.Background(), flags.NumRuns, RunConfig(flags), 3)
		require.NoError(t, err)
		require.Len(t, results, 2)
		require.Contains(t, out.String(), "Run 0\n")
		require.Contains(t, out.String(), "Run 1\n")

		returns := make([]float64, 0)
		for _, runResults := range results {
			for _, name := range flags.Policies {
				returns = append(returns, runResults[name].Returns...)
			}
		}
		return returns
	}

	require.Equal(t, run(), run())
}

func TestPrepareErrors(t *testing.T) {
	flags := common.DefaultFlags()
	flags.Policies = nil
	_, err := PrepareComparison(flags, new(bytes.Buffer))
	require.ErrorIs(t, err, ErrNoPolicies)
	_, err = PrepareParallelComparison(flags, new(bytes.Buffer))
	require.ErrorIs(t, err, ErrNoPolicies)

	flags = common.DefaultFlags()
	flags.Policies = []string{"greedy"}
	_, err = PrepareComparison(flags, new(bytes.Buffer))
	require.ErrorIs(t, err, policies.ErrUnknownPolicy)
	_, err = PrepareParallelComparison(flags, new(bytes.Buffer))
	require.ErrorIs(t, err, policies.ErrUnknownPolicy)

	flags = common.DefaultFlags()
	flags.Size = 1
	_, err = PrepareComparison(flags, new(bytes.Buffer))
	require.ErrorIs(t, err, gridworld.ErrInvalidSize)
	_, err = PrepareParallelComparison(flags, new(bytes.Buffer))
	require.ErrorIs(t, err, gridworld.ErrInvalidSize)
}

func TestTraceEpisode(t *testing.T) {
	flags := common.DefaultFlags()
	out := new(bytes.Buffer)

	result, err := TraceEpisode(flags, policies.MonotonousName, out)
	require.NoError(t, err)
	require.True(t, result.Terminal)
	require.False(t, result.Truncated)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, result.Steps+2)
	require.True(t, strings.HasPrefix(lines[0], "Policy: monotonous, Size: 10, Goal: "))
	require.True(t, strings.HasSuffix(lines[len(lines)-2], " terminal"))
	require.True(t, strings.HasPrefix(lines[len(lines)-1], "Return: "))

	_, err = TraceEpisode(flags, "greedy", out)
	require.ErrorIs(t, err, policies.ErrUnknownPolicy)
}

func TestParallelRunsDiffer(t *testing.T) {
	flags := common.DefaultFlags()
	flags.NumRuns = 2

	cmp, err := PrepareParallelComparison(flags, new(bytes.Buffer))
	require.NoError(t, err)
	results, err := cmp.Run(context.Background(), flags.NumRuns, RunConfig(flags), 3)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, name := range []string{policies.RandomName, policies.WildcardName} {
		require.Len(t, results[1][name].Returns, flags.Episodes)
		require.NotEqual(t, results[0][name].Returns, results[1][name].Returns, name)
	}
}

func TestComparisonMultipleRuns(t *testing.T) {
	flags := common.DefaultFlags()
	flags.NumRuns = 2
	flags.Episodes = 5
	flags.SavePath = t.TempDir()
	flags.Plot = true

	report, _ := runSequential(t, flags)
	lines := strings.Split(strings.TrimSpace(report), "\n")
	require.Len(t, lines, 2*(1+len(flags.Policies)))
	require.Equal(t, "Run 0", lines[0])
	require.Equal(t, "Run 1", lines[1+len(flags.Policies)])

	for _, run := range []string{"0", "1"} {
		require.FileExists(t, filepath.Join(flags.SavePath, run, "returns.json"))
		require.FileExists(t, filepath.Join(flags.SavePath, run, "returns.png"))
	}
	require.NoFileExists(t, filepath.Join(flags.SavePath, "returns.json"))
}
