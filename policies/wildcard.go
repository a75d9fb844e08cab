package policies

import (
	"github.com/zeu5/gridworld-rl/core"
	"github.com/zeu5/gridworld-rl/gridworld"
)

type wildcardState struct {
	origin    int
	extent    int
	direction int
}

// target is the cell the sweep is currently heading to, clamped to the line
func (w *wildcardState) target(size int) int {
	t := w.origin + w.direction*w.extent
	return min(max(t, 0), size-1)
}

// WildcardPolicy searches outwards from the start cell: it goes extent cells
// to the right of the origin, then extent cells to the left, then widens the
// extent by one and repeats.
type WildcardPolicy struct {
	state *wildcardState
}

var _ core.Policy = &WildcardPolicy{}

func NewWildcardPolicy() *WildcardPolicy {
	return &WildcardPolicy{}
}

func (w *WildcardPolicy) Reset() {
	w.state = nil
}

func (w *WildcardPolicy) ResetEpisode(_ *core.EpisodeContext) {
	w.state = nil
}

func (w *WildcardPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

// Sweep returns the origin, extent and direction (+1 or -1) of the current
// sweep. ok is false before the first action of an episode.
func (w *WildcardPolicy) Sweep() (origin, extent, direction int, ok bool) {
	if w.state == nil {
		return 0, 0, 0, false
	}
	return w.state.origin, w.state.extent, w.state.direction, true
}

func (w *WildcardPolicy) PickAction(step *core.StepContext, state core.State, _ []core.Action) core.Action {
	pos := state.(*gridworld.Position)

	if step.Step == 0 || w.state == nil {
		w.state = &wildcardState{
			origin:    pos.Index,
			extent:    1,
			direction: 1,
		}
		return gridworld.Right
	}

	target := w.state.target(pos.Size)
	if pos.Index == target {
		if w.state.direction == 1 {
			w.state.direction = -1
		} else {
			w.state.direction = 1
			w.state.extent++
		}
	}

	switch {
	case pos.Index < target:
		return gridworld.Right
	case pos.Index > target:
		return gridworld.Left
	case w.state.direction == 1:
		return gridworld.Right
	default:
		return gridworld.Left
	}
}

func (w *WildcardPolicy) UpdateStep(_ *core.StepContext, _ core.State, _ core.Action, _ *core.Transition) {
}

type WildcardPolicyConstructor struct{}

var _ core.PolicyConstructor = &WildcardPolicyConstructor{}

func (w *WildcardPolicyConstructor) NewPolicy() core.Policy {
	return NewWildcardPolicy()
}
