package core

import (
	"gonum.org/v1/gonum/stat"
)

type ExperimentResult struct {
	CompletedEpisodes int
	TotalEpisodes     int
	ErrorEpisodes     int
	TruncatedEpisodes int
	TotalTimeSteps    int

	// Returns and Steps hold one entry per completed episode, in order
	Returns []float64
	Steps   []float64

	Error    error
	Datasets map[string]DataSet
}

func newExperimentResult() *ExperimentResult {
	return &ExperimentResult{
		Returns:  make([]float64, 0),
		Steps:    make([]float64, 0),
		Datasets: make(map[string]DataSet),
	}
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

func (r *ExperimentResult) addEpisode(e *EpisodeResult) {
	r.Returns = append(r.Returns, e.Return)
	r.Steps = append(r.Steps, float64(e.Steps))
	r.TotalTimeSteps += e.Steps
	r.CompletedEpisodes++
	if e.Truncated {
		r.TruncatedEpisodes++
	}
}

// Averages returns the mean return and mean episode length over the
// completed episodes. Both are zero when no episode completed.
func (r *ExperimentResult) Averages() (float64, float64) {
	if len(r.Returns) == 0 {
		return 0, 0
	}
	return stat.Mean(r.Returns, nil), stat.Mean(r.Steps, nil)
}

// StdDevs returns the sample standard deviation of the returns and of the
// episode lengths. Both are zero with fewer than two completed episodes.
func (r *ExperimentResult) StdDevs() (float64, float64) {
	if len(r.Returns) < 2 {
		return 0, 0
	}
	return stat.StdDev(r.Returns, nil), stat.StdDev(r.Steps, nil)
}
