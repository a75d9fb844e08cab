package analysis

import "github.com/zeu5/gridworld-rl/core"

type NoOpComparator struct{}

var _ core.Comparator = &NoOpComparator{}

func NewNoOpComparator() *NoOpComparator {
	return &NoOpComparator{}
}

func (n *NoOpComparator) Compare(_ []string, _ []core.DataSet) {}

type NoOpComparatorConstructor struct{}

var _ core.ComparatorConstructor = &NoOpComparatorConstructor{}

func NewNoOpComparatorConstructor() *NoOpComparatorConstructor {
	return &NoOpComparatorConstructor{}
}

func (n *NoOpComparatorConstructor) NewComparator(_ int) core.Comparator {
	return NewNoOpComparator()
}

// Multi fans a comparison out to several comparators, in order
type Multi []core.Comparator

var _ core.Comparator = Multi{}

func (m Multi) Compare(experimentNames []string, datasets []core.DataSet) {
	for _, c := range m {
		c.Compare(experimentNames, datasets)
	}
}

// MultiConstructor builds a Multi from several constructors
type MultiConstructor []core.ComparatorConstructor

var _ core.ComparatorConstructor = MultiConstructor{}

func (m MultiConstructor) NewComparator(run int) core.Comparator {
	out := make(Multi, len(m))
	for i, c := range m {
		out[i] = c.NewComparator(run)
	}
	return out
}

// PerRun builds a fresh comparator for every comparison it is handed,
// numbering the runs from zero. It lets a sequential comparison write
// per run output the way a parallel one does.
type PerRun struct {
	constructor core.ComparatorConstructor
	run         int
}

var _ core.Comparator = &PerRun{}

func NewPerRun(constructor core.ComparatorConstructor) *PerRun {
	return &PerRun{constructor: constructor}
}

func (p *PerRun) Compare(experimentNames []string, datasets []core.DataSet) {
	p.constructor.NewComparator(p.run).Compare(experimentNames, datasets)
	p.run++
}
