package gridworld

import (
	"errors"
	"fmt"

	"github.com/zeu5/gridworld-rl/core"
	erand "golang.org/x/exp/rand"
)

const (
	GoalReward     = 10.0
	CloserPenalty  = -0.1
	FartherPenalty = -0.2
	TimeoutPenalty = -100.0
)

var (
	ErrInvalidSize       = errors.New("grid size must be at least 2")
	ErrInvalidStepLimit  = errors.New("step limit must be positive")
	ErrInvalidAction     = errors.New("invalid action")
	ErrEpisodeNotStarted = errors.New("episode not started, call Reset first")
	ErrEpisodeFinished   = errors.New("episode already finished")
)

// GridWorld1D is a line of Size cells with a hidden goal. Every episode the
// goal and a distinct start cell are drawn from the environment's own random
// source. Moves are clamped at both walls.
type GridWorld1D struct {
	size      int
	stepLimit int

	goal       int
	current    int
	stepsTaken int

	started bool
	done    bool

	rand *erand.Rand
}

var _ core.Environment = &GridWorld1D{}

func NewGridWorld1D(size, stepLimit int, seed uint64) (*GridWorld1D, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	if stepLimit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStepLimit, stepLimit)
	}
	return &GridWorld1D{
		size:      size,
		stepLimit: stepLimit,
		rand:      erand.New(erand.NewSource(seed)),
	}, nil
}

func (g *GridWorld1D) Size() int {
	return g.size
}

func (g *GridWorld1D) StepLimit() int {
	return g.stepLimit
}

func (g *GridWorld1D) StepsTaken() int {
	return g.stepsTaken
}

// Goal exposes the hidden goal cell. Only meant for tests and trace dumps.
func (g *GridWorld1D) Goal() int {
	return g.goal
}

func (g *GridWorld1D) Position() *Position {
	return &Position{Index: g.current, Size: g.size}
}

func (g *GridWorld1D) Rand() *erand.Rand {
	return g.rand
}

// Reset starts a new episode and returns the start position
func (g *GridWorld1D) Reset() (core.State, error) {
	g.goal = g.rand.Intn(g.size)
	start := g.rand.Intn(g.size)
	for start == g.goal {
		start = g.rand.Intn(g.size)
	}
	g.current = start
	g.stepsTaken = 0
	g.started = true
	g.done = false
	return g.Position(), nil
}

// Step moves the agent one cell and computes the reward:
// reaching the goal pays GoalReward and ends the episode, even on the last
// allowed step. Otherwise the move costs CloserPenalty when it strictly
// reduced the distance to the goal and FartherPenalty when it did not. The
// step that exhausts the step limit additionally pays TimeoutPenalty and
// ends the episode.
func (g *GridWorld1D) Step(a core.Action, _ *core.StepContext) (*core.Transition, error) {
	move, ok := a.(Move)
	if !ok || !move.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAction, a)
	}
	if !g.started {
		return nil, ErrEpisodeNotStarted
	}
	if g.done {
		return nil, ErrEpisodeFinished
	}

	old := g.current
	switch move {
	case Left:
		g.current = max(g.current-1, 0)
	case Right:
		g.current = min(g.current+1, g.size-1)
	}
	g.stepsTaken++

	if g.current == g.goal {
		g.done = true
		return &core.Transition{State: g.Position(), Reward: GoalReward, Terminal: true}, nil
	}

	reward := FartherPenalty
	if absInt(g.current-g.goal) < absInt(old-g.goal) {
		reward = CloserPenalty
	}

	if g.stepsTaken >= g.stepLimit {
		g.done = true
		return &core.Transition{State: g.Position(), Reward: reward + TimeoutPenalty, Terminal: true}, nil
	}
	return &core.Transition{State: g.Position(), Reward: reward, Terminal: false}, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
