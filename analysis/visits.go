package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/gridworld"
	"github.com/zeu5/gridworld-rl/util"
)

// VisitsDataset counts how often each cell was occupied, start cells included
type VisitsDataset struct {
	Visits []int
}

func (v *VisitsDataset) Copy() *VisitsDataset {
	return &VisitsDataset{Visits: util.CopyIntSlice(v.Visits)}
}

// Coverage is the fraction of cells visited at least once
func (v *VisitsDataset) Coverage() float64 {
	if len(v.Visits) == 0 {
		return 0
	}
	covered := 0
	for _, count := range v.Visits {
		if count > 0 {
			covered++
		}
	}
	return float64(covered) / float64(len(v.Visits))
}

func (v *VisitsDataset) record(pos *gridworld.Position) {
	if len(v.Visits) < pos.Size {
		grown := make([]int, pos.Size)
		copy(grown, v.Visits)
		v.Visits = grown
	}
	v.Visits[pos.Index]++
}

type VisitAnalyzer struct {
	dataset *VisitsDataset
}

var _ core.Analyzer = &VisitAnalyzer{}

func NewVisitAnalyzer() *VisitAnalyzer {
	return &VisitAnalyzer{dataset: &VisitsDataset{Visits: make([]int, 0)}}
}

func (v *VisitAnalyzer) Analyze(_ *core.EpisodeContext, trace *core.Trace) {
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		if i == 0 {
			if pos, ok := step.State.(*gridworld.Position); ok {
				v.dataset.record(pos)
			}
		}
		if pos, ok := step.NextState.(*gridworld.Position); ok {
			v.dataset.record(pos)
		}
	}
}

func (v *VisitAnalyzer) DataSet() core.DataSet {
	return v.dataset.Copy()
}

func (v *VisitAnalyzer) Reset() {
	v.dataset = &VisitsDataset{Visits: make([]int, 0)}
}

type VisitAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &VisitAnalyzerConstructor{}

func NewVisitAnalyzerConstructor() *VisitAnalyzerConstructor {
	return &VisitAnalyzerConstructor{}
}

func (c *VisitAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewVisitAnalyzer()
}

// VisitComparator prints a visit count line per experiment
type VisitComparator struct {
	out io.Writer
}

var _ core.Comparator = &VisitComparator{}

func NewVisitComparator(out io.Writer) *VisitComparator {
	return &VisitComparator{out: out}
}

func (v *VisitComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	for i, name := range experimentNames {
		dataset, ok := datasets[i].(*VisitsDataset)
		if !ok || dataset == nil {
			continue
		}
		fmt.Fprintf(v.out, "Visits: %-17s | %s | Coverage: %.2f\n", name, visitLine(dataset.Visits), dataset.Coverage())
	}
}

func visitLine(visits []int) string {
	cells := make([]string, len(visits))
	for i, count := range visits {
		if count == 0 {
			cells[i] = "    ."
		} else {
			cells[i] = fmt.Sprintf("%5d", count)
		}
	}
	return strings.Join(cells, "")
}

type VisitComparatorConstructor struct {
	out io.Writer
}

var _ core.ComparatorConstructor = &VisitComparatorConstructor{}

func NewVisitComparatorConstructor(out io.Writer) *VisitComparatorConstructor {
	return &VisitComparatorConstructor{out: out}
}

func (v *VisitComparatorConstructor) NewComparator(_ int) core.Comparator {
	return NewVisitComparator(v.out)
}
