package core

import (
	"io"
	"time"
)

type ParallelExperiment struct {
	Name        string
	Environment EnvironmentConstructor
	Policy      PolicyConstructor
}

type DataSet interface{}

type Analyzer interface {
	Analyze(*EpisodeContext, *Trace)
	DataSet() DataSet
	Reset()
}

type AnalyzerConstructor interface {
	// new analyzer based on experiment name and run
	NewAnalyzer(string, int) Analyzer
}

type Comparator interface {
	Compare([]string, []DataSet)
}

type ComparatorConstructor interface {
	NewComparator(int) Comparator
}

type ParallelComparison struct {
	Experiments []*ParallelExperiment
	Analyzers   map[string]AnalyzerConstructor
	Comparators map[string]ComparatorConstructor

	// Out receives live progress lines, one per experiment
	Out io.Writer
	// RefreshInterval is how often progress lines are redrawn
	RefreshInterval time.Duration

	analysisOrder []string
}

type RunConfig struct {
	Episodes int
	// Horizon bounds the number of steps of an episode
	Horizon int

	// ThresholdConsecutiveErrors stops an experiment after that many failed
	// episodes in a row. Values below 1 are treated as 1.
	ThresholdConsecutiveErrors int
}

func (c *RunConfig) errorThreshold() int {
	if c.ThresholdConsecutiveErrors < 1 {
		return 1
	}
	return c.ThresholdConsecutiveErrors
}

func NewParallelComparison() *ParallelComparison {
	return &ParallelComparison{
		Analyzers:       make(map[string]AnalyzerConstructor),
		Comparators:     make(map[string]ComparatorConstructor),
		Experiments:     make([]*ParallelExperiment, 0),
		Out:             io.Discard,
		RefreshInterval: 200 * time.Millisecond,
		analysisOrder:   make([]string, 0),
	}
}

func (c *ParallelComparison) AddExperiment(e *ParallelExperiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *ParallelComparison) AddAnalysis(name string, a AnalyzerConstructor, cmp ComparatorConstructor) {
	if _, ok := c.Analyzers[name]; !ok {
		c.analysisOrder = append(c.analysisOrder, name)
	}
	c.Analyzers[name] = a
	c.Comparators[name] = cmp
}

type Experiment struct {
	Name        string
	Environment Environment
	Policy      Policy
}

type Comparison struct {
	Experiments []*Experiment
	Analyzers   map[string]Analyzer
	Comparators map[string]Comparator

	// Out receives a progress line per episode
	Out io.Writer

	analysisOrder []string
}

func NewComparison() *Comparison {
	return &Comparison{
		Analyzers:     make(map[string]Analyzer),
		Comparators:   make(map[string]Comparator),
		Experiments:   make([]*Experiment, 0),
		Out:           io.Discard,
		analysisOrder: make([]string, 0),
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) AddAnalysis(name string, a Analyzer, cmp Comparator) {
	if _, ok := c.Analyzers[name]; !ok {
		c.analysisOrder = append(c.analysisOrder, name)
	}
	c.Analyzers[name] = a
	c.Comparators[name] = cmp
}
