// Package agent defines the interfaces of the learners which are
// trained on board environments
package agent

import (
	"github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/statekey"
)

// SAP is a state-action pair: a move taken in some board state
type SAP struct {
	State statekey.Key
	Move  environment.Move
}

// Trace is the sequence of SAPs visited in an episode, in the order
// they were visited
type Trace []SAP

// Last returns the most recently visited SAP in the trace. Last panics
// if the trace is empty.
func (t Trace) Last() SAP {
	if len(t) == 0 {
		panic("last: empty trace")
	}
	return t[len(t)-1]
}

// Policy represents a policy over moves in board states.
//
// Policies determine how agents select moves. When in evaluation mode,
// a Policy should act greedily with respect to what it has learned.
type Policy interface {
	SelectMove(state statekey.Key, moves []environment.Move) environment.Move
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// Actor learns a policy from the TD errors computed by a Critic.
//
// HandleState must be called on every state before any of its SAPs are
// used in SelectMove or Update.
type Actor interface {
	Policy

	// ResetEligibilities clears all eligibility traces. It is called at
	// the start of each episode.
	ResetEligibilities()

	// HandleState registers all SAPs of a state with the Actor
	HandleState(state statekey.Key, moves []environment.Move)

	// Update updates the eligibility traces and preferences of all SAPs
	// visited in the trace using the TD error of the latest transition
	Update(trace Trace, tdError float64)

	// UpdateGreediness decays the exploration rate. It is called at the
	// end of each episode.
	UpdateGreediness()
}

// Critic learns a state value function with which TD errors are
// computed.
//
// HandleState must be called on every state before it is used in
// Update.
type Critic interface {
	// ResetEligibilities clears all eligibility traces. It is called at
	// the start of each episode.
	ResetEligibilities()

	// HandleState registers a state with the Critic
	HandleState(state statekey.Key)

	// TdError returns the TD error of transitioning from oldState to
	// newState with reinforcement r
	TdError(newState, oldState statekey.Key, r float64) float64

	// Update updates the eligibility traces and values of all states
	// visited in the trace using the TD error of the latest transition
	Update(trace Trace, tdError float64)
}
