package policies

import (
	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/gridworld"
)

type monotonousState struct {
	direction gridworld.Move
}

// MonotonousPolicy sweeps the line back and forth: it keeps moving in its
// current direction and turns around only when it sits on the wall it is
// heading into. The initial direction is drawn at the start of every episode.
type MonotonousPolicy struct {
	state *monotonousState
}

var _ core.Policy = &MonotonousPolicy{}

func NewMonotonousPolicy() *MonotonousPolicy {
	return &MonotonousPolicy{}
}

func (m *MonotonousPolicy) Reset() {
	m.state = nil
}

func (m *MonotonousPolicy) ResetEpisode(eCtx *core.EpisodeContext) {
	direction := gridworld.Left
	if eCtx.Rand.Intn(2) == 1 {
		direction = gridworld.Right
	}
	m.state = &monotonousState{direction: direction}
}

func (m *MonotonousPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

// Direction returns the current direction of travel
func (m *MonotonousPolicy) Direction() gridworld.Move {
	if m.state == nil {
		return gridworld.Left
	}
	return m.state.direction
}

func (m *MonotonousPolicy) PickAction(step *core.StepContext, state core.State, _ []core.Action) core.Action {
	if m.state == nil {
		m.ResetEpisode(step.EpisodeContext)
	}
	pos := state.(*gridworld.Position)

	switch m.state.direction {
	case gridworld.Left:
		if pos.AtLeftWall() {
			m.state.direction = gridworld.Right
		}
	case gridworld.Right:
		if pos.AtRightWall() {
			m.state.direction = gridworld.Left
		}
	}
	return m.state.direction
}

func (m *MonotonousPolicy) UpdateStep(_ *core.StepContext, _ core.State, _ core.Action, _ *core.Transition) {
}

type MonotonousPolicyConstructor struct{}

var _ core.PolicyConstructor = &MonotonousPolicyConstructor{}

func (m *MonotonousPolicyConstructor) NewPolicy() core.Policy {
	return NewMonotonousPolicy()
}
