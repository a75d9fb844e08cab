package analysis

import (
	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/util"
	"gonum.org/v1/gonum/stat"
)

// ReturnsDataset holds the return and length of every analyzed episode
type ReturnsDataset struct {
	Returns []float64
	Steps   []float64
	// GoalsReached counts episodes that ended with a terminal transition
	// carrying a positive reward, i.e. the goal was reached
	GoalsReached int
}

func (r *ReturnsDataset) Copy() *ReturnsDataset {
	return &ReturnsDataset{
		Returns:      util.CopyFloatSlice(r.Returns),
		Steps:        util.CopyFloatSlice(r.Steps),
		GoalsReached: r.GoalsReached,
	}
}

func (r *ReturnsDataset) Episodes() int {
	return len(r.Returns)
}

// Averages returns the mean return and mean episode length
func (r *ReturnsDataset) Averages() (float64, float64) {
	if len(r.Returns) == 0 {
		return 0, 0
	}
	return stat.Mean(r.Returns, nil), stat.Mean(r.Steps, nil)
}

// SuccessRate is the fraction of episodes that reached the goal
func (r *ReturnsDataset) SuccessRate() float64 {
	if len(r.Returns) == 0 {
		return 0
	}
	return float64(r.GoalsReached) / float64(len(r.Returns))
}

type ReturnAnalyzer struct {
	dataset *ReturnsDataset
}

var _ core.Analyzer = &ReturnAnalyzer{}

func NewReturnAnalyzer() *ReturnAnalyzer {
	r := &ReturnAnalyzer{}
	r.Reset()
	return r
}

func (r *ReturnAnalyzer) Analyze(_ *core.EpisodeContext, trace *core.Trace) {
	r.dataset.Returns = append(r.dataset.Returns, trace.Return())
	r.dataset.Steps = append(r.dataset.Steps, float64(trace.Len()))
	if last := trace.Last(); last != nil && last.Terminal && last.Reward > 0 {
		r.dataset.GoalsReached++
	}
}

func (r *ReturnAnalyzer) DataSet() core.DataSet {
	return r.dataset.Copy()
}

func (r *ReturnAnalyzer) Reset() {
	r.dataset = &ReturnsDataset{
		Returns: make([]float64, 0),
		Steps:   make([]float64, 0),
	}
}

type ReturnAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &ReturnAnalyzerConstructor{}

func NewReturnAnalyzerConstructor() *ReturnAnalyzerConstructor {
	return &ReturnAnalyzerConstructor{}
}

func (c *ReturnAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewReturnAnalyzer()
}
