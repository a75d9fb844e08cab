package policies

import (
	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/gridworld"
)

// RandomPolicy moves left or right with equal probability, drawing from the
// environment's random source
type RandomPolicy struct{}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{}
}

func (r *RandomPolicy) Reset() {}

func (r *RandomPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (r *RandomPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

func (r *RandomPolicy) PickAction(step *core.StepContext, _ core.State, _ []core.Action) core.Action {
	if step.Rand.Intn(2) == 0 {
		return gridworld.Left
	}
	return gridworld.Right
}

func (r *RandomPolicy) UpdateStep(_ *core.StepContext, _ core.State, _ core.Action, _ *core.Transition) {
}

type RandomPolicyConstructor struct{}

var _ core.PolicyConstructor = &RandomPolicyConstructor{}

func (r *RandomPolicyConstructor) NewPolicy() core.Policy {
	return NewRandomPolicy()
}
