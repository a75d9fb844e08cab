package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/gridworld"
)

func pos(i int) *gridworld.Position {
	return &gridworld.Position{Index: i, Size: 10}
}

// goalTrace is the 5 -> 8 walk: two closer moves and the goal
func goalTrace() *core.Trace {
	trace := core.NewTrace()
	trace.AddStep(&core.Step{State: pos(5), Action: gridworld.Right, NextState: pos(6), Reward: gridworld.CloserPenalty})
	trace.AddStep(&core.Step{State: pos(6), Action: gridworld.Right, NextState: pos(7), Reward: gridworld.CloserPenalty})
	trace.AddStep(&core.Step{State: pos(7), Action: gridworld.Right, NextState: pos(8), Reward: gridworld.GoalReward, Terminal: true})
	return trace
}

func timeoutTrace() *core.Trace {
	trace := core.NewTrace()
	trace.AddStep(&core.Step{State: pos(0), Action: gridworld.Left, NextState: pos(0), Reward: gridworld.FartherPenalty + gridworld.TimeoutPenalty, Terminal: true})
	return trace
}

func TestReturnAnalyzer(t *testing.T) {
	a := NewReturnAnalyzer()
	eCtx := core.NewEpisodeContext(context.Background())
	a.Analyze(eCtx, goalTrace())
	a.Analyze(eCtx, timeoutTrace())

	dataset := a.DataSet().(*ReturnsDataset)
	require.Equal(t, 2, dataset.Episodes())
	require.InDelta(t, 9.8, dataset.Returns[0], 1e-9)
	require.InDelta(t, -100.2, dataset.Returns[1], 1e-9)
	require.Equal(t, []float64{3, 1}, dataset.Steps)
	require.Equal(t, 1, dataset.GoalsReached)
	require.InDelta(t, 0.5, dataset.SuccessRate(), 1e-9)

	avgReturn, avgSteps := dataset.Averages()
	require.InDelta(t, (9.8-100.2)/2, avgReturn, 1e-9)
	require.InDelta(t, 2.0, avgSteps, 1e-9)

	// the dataset is a copy
	a.Reset()
	require.Equal(t, 2, dataset.Episodes())
	require.Equal(t, 0, a.DataSet().(*ReturnsDataset).Episodes())
}

func TestReportComparator(t *testing.T) {
	out := new(bytes.Buffer)
	c := NewReportComparator(out)
	c.Compare(
		[]string{"random", "wildcard"},
		[]core.DataSet{&ReturnsDataset{Returns: []float64{9.8}, Steps: []float64{3}}, nil},
	)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Policy: random"+strings.Repeat(" ", 11)+" | Avg Return:    9.800 | Avg Steps:   3.00", lines[0])
	require.Equal(t, "Policy: wildcard"+strings.Repeat(" ", 9)+" | error", lines[1])

	out.Reset()
	NewReportComparatorConstructor(out).NewComparator(2).Compare([]string{}, []core.DataSet{})
	require.Equal(t, "Run 2\n", out.String())
}

func TestVisitAnalyzer(t *testing.T) {
	a := NewVisitAnalyzer()
	a.Analyze(core.NewEpisodeContext(context.Background()), goalTrace())
	a.Analyze(core.NewEpisodeContext(context.Background()), timeoutTrace())

	dataset := a.DataSet().(*VisitsDataset)
	require.Equal(t, []int{2, 0, 0, 0, 0, 1, 1, 1, 1, 0}, dataset.Visits)
	require.InDelta(t, 0.5, dataset.Coverage(), 1e-9)

	out := new(bytes.Buffer)
	NewVisitComparator(out).Compare([]string{"monotonous"}, []core.DataSet{dataset})
	require.Contains(t, out.String(), "Visits: monotonous")
	require.Contains(t, out.String(), "Coverage: 0.50")
}

func TestTraceToString(t *testing.T) {
	s := TraceToString(goalTrace())
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Step   1: 5 --Right--> 6 reward=-0.1 return=-0.1", lines[0])
	require.True(t, strings.HasSuffix(lines[2], "reward=10.0 return=9.8 terminal"))
}

func TestPrintDebugAnalyzer(t *testing.T) {
	dir := t.TempDir()
	a := NewPrintDebugAnalyzerConstructor(dir, 1).NewAnalyzer("wildcard", 0)

	eCtx := core.NewEpisodeContext(context.Background())
	eCtx.Episode = 0
	a.Analyze(eCtx, goalTrace())
	_, err := os.Stat(filepath.Join(dir, "traces"))
	require.True(t, os.IsNotExist(err))

	eCtx.Episode = 1
	a.Analyze(eCtx, goalTrace())
	bs, err := os.ReadFile(filepath.Join(dir, "traces", "0_wildcard_trace_1.txt"))
	require.NoError(t, err)
	require.Equal(t, TraceToString(goalTrace()), string(bs))
}

func TestSaveComparator(t *testing.T) {
	dir := t.TempDir()
	c := NewSaveComparatorConstructor(dir, "returns").NewComparator(0)
	c.Compare([]string{"random"}, []core.DataSet{&ReturnsDataset{Returns: []float64{1.5}, Steps: []float64{2}, GoalsReached: 1}})

	bs, err := os.ReadFile(filepath.Join(dir, "0", "returns.json"))
	require.NoError(t, err)
	out := make(map[string]*ReturnsDataset)
	require.NoError(t, json.Unmarshal(bs, &out))
	require.Equal(t, []float64{1.5}, out["random"].Returns)
	require.Equal(t, 1, out["random"].GoalsReached)
}

func TestPlotComparator(t *testing.T) {
	dir := t.TempDir()
	c := NewPlotComparatorConstructor(dir).NewComparator(0)
	c.Compare(
		[]string{"random", "monotonous", "broken"},
		[]core.DataSet{
			&ReturnsDataset{Returns: []float64{-40}, Steps: []float64{60}},
			&ReturnsDataset{Returns: []float64{8}, Steps: []float64{8}},
			nil,
		},
	)

	info, err := os.Stat(filepath.Join(dir, "0", "returns.png"))
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestMulti(t *testing.T) {
	out1, out2 := new(bytes.Buffer), new(bytes.Buffer)
	m := MultiConstructor{NewReportComparatorConstructor(out1), NewReportComparatorConstructor(out2), NewNoOpComparatorConstructor()}
	m.NewComparator(0).Compare([]string{"random"}, []core.DataSet{&ReturnsDataset{Returns: []float64{1}, Steps: []float64{1}}})
	require.Equal(t, out1.String(), out2.String())
	require.Contains(t, out1.String(), "Policy: random")
}

func TestPerRun(t *testing.T) {
	out := new(bytes.Buffer)
	dir := t.TempDir()
	p := NewPerRun(MultiConstructor{NewReportComparatorConstructor(out), NewSaveComparatorConstructor(dir, "returns")})
	datasets := []core.DataSet{&ReturnsDataset{Returns: []float64{1}, Steps: []float64{1}}}
	p.Compare([]string{"random"}, datasets)
	p.Compare([]string{"random"}, datasets)

	require.True(t, strings.HasPrefix(out.String(), "Run 0\n"))
	require.Contains(t, out.String(), "Run 1\n")
	require.FileExists(t, filepath.Join(dir, "0", "returns.json"))
	require.FileExists(t, filepath.Join(dir, "1", "returns.json"))
}
