package analysis

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/rs/zerolog/log"
	"github.com/zeu5/gridworld-rl/core"
)

type PrintDebugAnalyzer struct {
	// savePath is the path to save the trace
	savePath string
	exp      string
	// will save the trace to the file only after the episode number exceeds this threshold
	thresholdEpisode int
}

var _ core.Analyzer = &PrintDebugAnalyzer{}

func NewPrintDebugAnalyzer(savePath string, threshold int) *PrintDebugAnalyzer {
	return &PrintDebugAnalyzer{
		savePath:         path.Join(savePath, "traces"),
		thresholdEpisode: threshold,
	}
}

func (a *PrintDebugAnalyzer) Analyze(ctx *core.EpisodeContext, trace *core.Trace) {
	if ctx.Episode < a.thresholdEpisode {
		return
	}
	if err := os.MkdirAll(a.savePath, 0755); err != nil {
		log.Error().Err(err).Str("path", a.savePath).Msg("could not create traces directory")
		return
	}

	exp := a.exp
	if exp == "" {
		exp = ctx.Experiment
	}
	fileName := fmt.Sprintf("%d_trace_%d.txt", ctx.Run, ctx.Episode)
	if exp != "" {
		fileName = fmt.Sprintf("%d_%s_trace_%d.txt", ctx.Run, exp, ctx.Episode)
	}
	file := path.Join(a.savePath, fileName)
	if err := os.WriteFile(file, []byte(TraceToString(trace)), 0644); err != nil {
		log.Error().Err(err).Str("file", file).Msg("could not write trace")
	}
}

// TraceToString renders one line per step
func TraceToString(trace *core.Trace) string {
	buf := new(bytes.Buffer)
	total := 0.0
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		total += step.Reward
		fmt.Fprintf(buf, "Step %3d: %s --%s--> %s reward=%.1f return=%.1f", i+1, step.State.Hash(), step.Action.Hash(), step.NextState.Hash(), step.Reward, total)
		if step.Terminal {
			buf.WriteString(" terminal")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func (a *PrintDebugAnalyzer) DataSet() core.DataSet {
	return nil
}

func (a *PrintDebugAnalyzer) Reset() {
	// do nothing
}

type PrintDebugAnalyzerConstructor struct {
	SavePath         string
	ThresholdEpisode int
}

var _ core.AnalyzerConstructor = &PrintDebugAnalyzerConstructor{}

func NewPrintDebugAnalyzerConstructor(savePath string, thresholdEpisode int) *PrintDebugAnalyzerConstructor {
	return &PrintDebugAnalyzerConstructor{
		SavePath:         savePath,
		ThresholdEpisode: thresholdEpisode,
	}
}

func (c *PrintDebugAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	a := NewPrintDebugAnalyzer(c.SavePath, c.ThresholdEpisode)
	a.exp = exp
	return a
}
