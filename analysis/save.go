package analysis

import (
	"path"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/util"
)

// SaveComparator writes the datasets of an analysis, keyed by experiment, to
// a JSON file
type SaveComparator struct {
	savePath string
}

var _ core.Comparator = &SaveComparator{}

func NewSaveComparator(savePath, analysisName string) *SaveComparator {
	return &SaveComparator{
		savePath: path.Join(savePath, analysisName+".json"),
	}
}

func (s *SaveComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]core.DataSet)
	for i, name := range experimentNames {
		out[name] = datasets[i]
	}

	if err := util.SaveJson(s.savePath, out); err != nil {
		log.Error().Err(err).Str("path", s.savePath).Msg("could not save datasets")
	}
}

type SaveComparatorConstructor struct {
	savePath     string
	analysisName string
}

var _ core.ComparatorConstructor = &SaveComparatorConstructor{}

func NewSaveComparatorConstructor(savePath, analysisName string) *SaveComparatorConstructor {
	return &SaveComparatorConstructor{
		savePath:     savePath,
		analysisName: analysisName,
	}
}

func (s *SaveComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewSaveComparator(path.Join(s.savePath, strconv.Itoa(run)), s.analysisName)
}
