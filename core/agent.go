package core

// Policy picks actions for an environment. Any memory a policy keeps must be
// scoped to the episode and reinitialised in ResetEpisode.
type Policy interface {
	ResetEpisode(*EpisodeContext)
	UpdateEpisode(*EpisodeContext)
	PickAction(*StepContext, State, []Action) Action
	UpdateStep(*StepContext, State, Action, *Transition)
	Reset()
}

type PolicyConstructor interface {
	NewPolicy() Policy
}
