package analysis

import (
	"fmt"
	"io"

	"github.com/zeu5/gridworld-rl/core"
)

// ReportComparator prints one aligned line per experiment with the average
// return and average episode length
type ReportComparator struct {
	out io.Writer
	run int
}

var _ core.Comparator = &ReportComparator{}

func NewReportComparator(out io.Writer) *ReportComparator {
	return &ReportComparator{out: out, run: -1}
}

func (r *ReportComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	if r.run >= 0 {
		fmt.Fprintf(r.out, "Run %d\n", r.run)
	}
	for i, name := range experimentNames {
		dataset, ok := datasets[i].(*ReturnsDataset)
		if !ok || dataset == nil {
			fmt.Fprintf(r.out, "Policy: %-17s | error\n", name)
			continue
		}
		avgReturn, avgSteps := dataset.Averages()
		fmt.Fprintf(r.out, "Policy: %-17s | Avg Return: %8.3f | Avg Steps: %6.2f\n", name, avgReturn, avgSteps)
	}
}

type ReportComparatorConstructor struct {
	out io.Writer
}

var _ core.ComparatorConstructor = &ReportComparatorConstructor{}

func NewReportComparatorConstructor(out io.Writer) *ReportComparatorConstructor {
	return &ReportComparatorConstructor{out: out}
}

func (r *ReportComparatorConstructor) NewComparator(run int) core.Comparator {
	return &ReportComparator{out: r.out, run: run}
}
