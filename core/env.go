package core

import (
	"context"

	erand "golang.org/x/exp/rand"
)

type Environment interface {
	Reset() (State, error)
	Step(Action, *StepContext) (*Transition, error)
	// Rand returns the random source owned by the environment. Policies that
	// need randomness draw from the same source so that a fixed seed makes
	// the whole episode reproducible.
	Rand() *erand.Rand
}

type State interface {
	Hash() string
	Actions() []Action
}

type Action interface {
	Hash() string
}

// Transition is the outcome of a single environment step
type Transition struct {
	State    State
	Reward   float64
	Terminal bool
}

type EpisodeContext struct {
	Context context.Context
	// Experiment names the experiment the episode belongs to, if any
	Experiment string
	Episode    int
	Horizon    int
	Run        int

	// Rand is the environment's random source, shared with the policy
	Rand  *erand.Rand
	Trace *Trace
}

func NewEpisodeContext(ctx context.Context) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		Trace:   NewTrace(),
	}
}

type StepContext struct {
	// Step is the number of steps taken so far in the episode
	Step int
	*EpisodeContext
}

type EnvironmentConstructor interface {
	// NewEnvironment creates a new environment with the given instance number.
	NewEnvironment(int) (Environment, error)
}
