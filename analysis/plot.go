package analysis

import (
	"os"
	"path"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/zeu5/gridworld-rl/core"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotComparator draws the average return of every experiment as a bar chart
type PlotComparator struct {
	figPath string
}

var _ core.Comparator = &PlotComparator{}

func NewPlotComparator(figPath string) *PlotComparator {
	return &PlotComparator{figPath: figPath}
}

func (p *PlotComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	names := make([]string, 0, len(experimentNames))
	values := make(plotter.Values, 0, len(experimentNames))
	for i, name := range experimentNames {
		dataset, ok := datasets[i].(*ReturnsDataset)
		if !ok || dataset == nil {
			continue
		}
		avgReturn, _ := dataset.Averages()
		names = append(names, name)
		values = append(values, avgReturn)
	}
	if len(values) == 0 {
		return
	}

	if err := savePlot(p.figPath, names, values); err != nil {
		log.Error().Err(err).Str("path", p.figPath).Msg("could not save plot")
	}
}

func savePlot(figPath string, names []string, values plotter.Values) error {
	p := plot.New()
	p.Title.Text = "Average return per policy"
	p.Y.Label.Text = "Avg Return"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := os.MkdirAll(path.Dir(figPath), 0755); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, figPath)
}

type PlotComparatorConstructor struct {
	savePath string
}

var _ core.ComparatorConstructor = &PlotComparatorConstructor{}

func NewPlotComparatorConstructor(savePath string) *PlotComparatorConstructor {
	return &PlotComparatorConstructor{savePath: savePath}
}

func (p *PlotComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewPlotComparator(path.Join(p.savePath, strconv.Itoa(run), "returns.png"))
}
