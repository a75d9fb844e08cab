package gridworld

import "github.com/zeu5/gridworld-rl/core"

// EnvConstructor builds independent GridWorld1D instances for parallel runs.
// Instance i is seeded with Seed+i.
type EnvConstructor struct {
	Size      int
	StepLimit int
	Seed      uint64
}

var _ core.EnvironmentConstructor = &EnvConstructor{}

func NewEnvConstructor(size, stepLimit int, seed uint64) *EnvConstructor {
	return &EnvConstructor{
		Size:      size,
		StepLimit: stepLimit,
		Seed:      seed,
	}
}

func (e *EnvConstructor) NewEnvironment(instance int) (core.Environment, error) {
	return NewGridWorld1D(e.Size, e.StepLimit, e.Seed+uint64(instance))
}
