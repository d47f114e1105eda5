// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/pegsolitaire/statekey"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an episode. Episode
// is the index of the episode the TimeStep belongs to and Number is the
// index of the TimeStep within that episode.
type TimeStep struct {
	stepType  StepType
	Reward    float64
	State     statekey.Key
	Remaining int // Pegs remaining on the board
	Episode   int
	Number    int
}

// New returns a new TimeStep
func New(t StepType, r float64, s statekey.Key, remaining, episode,
	n int) TimeStep {
	return TimeStep{t, r, s, remaining, episode, n}
}

// StepType returns the type of the TimeStep
func (t TimeStep) StepType() StepType {
	return t.stepType
}

// First returns whether a TimeStep is the first in an episode
func (t TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t TimeStep) Last() bool {
	return t.stepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Remaining: %d  |  " +
		"Episode: %v  |  Step Number:  %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.Remaining, t.Episode,
		t.Number)
}
