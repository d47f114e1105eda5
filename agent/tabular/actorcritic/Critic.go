package actorcritic

import (
	"fmt"

	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/statekey"
)

// Critic learns a tabular state value function with TD(λ) and replacing
// eligibility traces
type Critic struct {
	values map[statekey.Key]float64
	traces map[statekey.Key]float64

	learningRate float64
	discount     float64
	decay        float64
}

var _ agent.Critic = (*Critic)(nil)

// NewCritic returns a new Critic with all state values initialized to 0
func NewCritic(c CriticConfig) (*Critic, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newCritic: %v", err)
	}

	return &Critic{
		values:       make(map[statekey.Key]float64),
		traces:       make(map[statekey.Key]float64),
		learningRate: c.LearningRate,
		discount:     c.DiscountFactor,
		decay:        c.TraceDecay,
	}, nil
}

// ResetEligibilities clears all eligibility traces
func (c *Critic) ResetEligibilities() {
	c.traces = make(map[statekey.Key]float64)
}

// HandleState registers state with a value of 0 if it has not been
// seen before
func (c *Critic) HandleState(state statekey.Key) {
	if _, ok := c.values[state]; !ok {
		c.values[state] = 0.0
	}
}

// Value returns the value of state. States which were never registered
// have a value of 0.
func (c *Critic) Value(state statekey.Key) float64 {
	return c.values[state]
}

// Eligibility returns the eligibility of state in the current episode.
// States not visited in the current episode have an eligibility of 0.
func (c *Critic) Eligibility(state statekey.Key) float64 {
	return c.traces[state]
}

// NumEligibilities returns the number of states with an eligibility
// trace in the current episode
func (c *Critic) NumEligibilities() int {
	return len(c.traces)
}

// Len returns the number of states registered with the Critic
func (c *Critic) Len() int {
	return len(c.values)
}

// TdError computes the TD error δ = r + γV(s') - V(s) of transitioning
// from oldState s to newState s' with reinforcement r
func (c *Critic) TdError(newState, oldState statekey.Key, r float64) float64 {
	return r + c.discount*c.Value(newState) - c.Value(oldState)
}

// Update updates the values of the states visited in the episode. The
// eligibility of the state of the most recent SAP in the trace is
// replaced by 1, then the value of each distinct state in the trace is
// moved in the direction of the TD error in proportion to its
// eligibility, after which its eligibility decays by γλ.
//
// Update panics if the trace is empty or holds an unregistered state.
func (c *Critic) Update(trace agent.Trace, tdError float64) {
	last := trace.Last().State
	c.mustBeRegistered(last)
	c.traces[last] = 1.0

	visited := make(map[statekey.Key]bool, len(trace))
	for _, sap := range trace {
		state := sap.State
		if visited[state] {
			continue
		}
		visited[state] = true
		c.mustBeRegistered(state)

		c.values[state] += c.learningRate * tdError * c.traces[state]
		c.traces[state] *= c.discount * c.decay
	}
}

// mustBeRegistered panics if state was never registered with HandleState
func (c *Critic) mustBeRegistered(state statekey.Key) {
	if _, ok := c.values[state]; !ok {
		panic(fmt.Sprintf("update: unregistered state %v", state))
	}
}
