package gridworld

import (
	"strconv"

	"github.com/zeu5/gridworld-rl/core"
)

// Position is what a policy observes: the agent's cell and the length of the
// line. The goal is not part of the observation.
type Position struct {
	Index int
	Size  int
}

var _ core.State = &Position{}

func (p *Position) Hash() string {
	return strconv.Itoa(p.Index)
}

func (p *Position) Actions() []core.Action {
	return AllMoves
}

// AtLeftWall reports whether the agent sits on cell 0
func (p *Position) AtLeftWall() bool {
	return p.Index == 0
}

// AtRightWall reports whether the agent sits on the last cell
func (p *Position) AtRightWall() bool {
	return p.Index == p.Size-1
}

type Move int

const (
	Left Move = iota
	Right
)

var _ core.Action = Left

func (m Move) Hash() string {
	return m.String()
}

func (m Move) String() string {
	switch m {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Move(" + strconv.Itoa(int(m)) + ")"
	}
}

// Valid reports whether m is one of Left or Right
func (m Move) Valid() bool {
	return m == Left || m == Right
}

var AllMoves = []core.Action{Left, Right}
