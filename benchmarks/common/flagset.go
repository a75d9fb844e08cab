package common

import (
	"path"

	"github.com/zeu5/gridworld-rl/policies"
	"github.com/zeu5/gridworld-rl/util"
)

type Flags struct {
	EnvFlags
	SavePath string
	RunFlags
	Policies     []string
	Parallelism  int
	Debug        bool
	Plot         bool
	ShowVisits   bool
	RecordTraces bool
}

type EnvFlags struct {
	Size      int
	StepLimit int
	Seed      uint64
}

type RunFlags struct {
	NumRuns  int
	Episodes int
	// Horizon caps the steps of an episode, 0 means the step limit
	Horizon              int
	MaxConsecutiveErrors int
}

func DefaultFlags() *Flags {
	return &Flags{
		EnvFlags: EnvFlags{
			Size:      10,
			StepLimit: 100,
			Seed:      42,
		},
		SavePath: "",
		RunFlags: RunFlags{
			NumRuns:              1,
			Episodes:             50,
			Horizon:              0,
			MaxConsecutiveErrors: 1,
		},
		Policies:     policies.Names(),
		Parallelism:  1,
		Debug:        false,
		Plot:         false,
		ShowVisits:   false,
		RecordTraces: false,
	}
}

// EffectiveHorizon is the horizon handed to the runner
func (f *Flags) EffectiveHorizon() int {
	if f.Horizon > 0 {
		return f.Horizon
	}
	return f.StepLimit
}

// Record saves the flags to config.json under the save path, if one is set
func (f *Flags) Record() error {
	if f.SavePath == "" {
		return nil
	}
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
