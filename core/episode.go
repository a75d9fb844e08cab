package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrInvalidHorizon = errors.New("horizon must be positive")

// EpisodeResult is the outcome of running a single episode
type EpisodeResult struct {
	Return float64
	// Steps is the number of steps taken, Horizon if the episode was truncated
	Steps    int
	Terminal bool
	// Truncated is set when the horizon elapsed without a terminal transition.
	// No penalty is applied by the runner in that case.
	Truncated bool
}

// RunEpisode drives env under policy for at most eCtx.Horizon steps.
// The policy's per-episode state is reset before the environment is reset,
// and both draw from the environment's random source.
func RunEpisode(eCtx *EpisodeContext, env Environment, policy Policy) (*EpisodeResult, error) {
	if eCtx.Horizon <= 0 {
		return nil, ErrInvalidHorizon
	}
	if eCtx.Context == nil {
		eCtx.Context = context.Background()
	}
	if eCtx.Trace == nil {
		eCtx.Trace = NewTrace()
	}
	eCtx.Rand = env.Rand()
	policy.ResetEpisode(eCtx)

	state, err := env.Reset()
	if err != nil {
		return nil, fmt.Errorf("resetting environment: %w", err)
	}

	result := &EpisodeResult{}
	for step := 0; step < eCtx.Horizon; step++ {
		select {
		case <-eCtx.Context.Done():
			return nil, eCtx.Context.Err()
		default:
		}

		sCtx := &StepContext{Step: step, EpisodeContext: eCtx}
		action := policy.PickAction(sCtx, state, state.Actions())
		transition, err := env.Step(action, sCtx)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		policy.UpdateStep(sCtx, state, action, transition)
		eCtx.Trace.AddStep(&Step{
			State:     state,
			Action:    action,
			NextState: transition.State,
			Reward:    transition.Reward,
			Terminal:  transition.Terminal,
		})

		result.Return += transition.Reward
		result.Steps = step + 1
		state = transition.State
		if transition.Terminal {
			result.Terminal = true
			break
		}
	}
	if !result.Terminal {
		result.Truncated = true
		result.Steps = eCtx.Horizon
	}
	policy.UpdateEpisode(eCtx)

	log.Debug().
		Int("run", eCtx.Run).
		Int("episode", eCtx.Episode).
		Float64("return", result.Return).
		Int("steps", result.Steps).
		Bool("truncated", result.Truncated).
		Msg("episode finished")
	return result, nil
}
