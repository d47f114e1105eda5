// Package actorcritic implements a tabular Actor-Critic algorithm with
// replacing eligibility traces.
//
// The Critic learns a state value function with TD(λ). The TD error of
// each transition is the single learning signal of both the Critic and
// the Actor, which learns preferences over state-action pairs and acts
// ε-greedily with respect to them. Values and preferences are stored
// explicitly per state and per state-action pair; there is no function
// approximation.
package actorcritic

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/statekey"
	"github.com/samuelfneumann/pegsolitaire/utils/floatutils"
	"gonum.org/v1/gonum/stat/distuv"
)

// Actor learns preferences over state-action pairs (SAPs) and selects
// moves ε-greedily with respect to those preferences.
//
// The exploration rate ε decays linearly over the episode budget:
// after k completed episodes out of N,
//
//	ε = ε₀ * (N - 1 - k) / (N - 1)
//
// so that the final episode is run with ε = 0. With a budget of a single
// episode, ε is 0 from the start.
type Actor struct {
	policy map[agent.SAP]float64
	traces map[agent.SAP]float64

	learningRate float64
	discount     float64
	decay        float64

	initialEpsilon float64
	epsilon        float64
	episodes       int // Number of completed episodes
	numEpisodes    int // Episode budget
	eval           bool

	source rand.Source
}

var _ agent.Actor = (*Actor)(nil)

// NewActor returns a new Actor which will be trained for numEpisodes
// episodes. The random source is used for exploration only and may be
// shared with other components of a run.
func NewActor(c ActorConfig, numEpisodes int,
	source rand.Source) (*Actor, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newActor: %v", err)
	}
	if numEpisodes < 1 {
		return nil, fmt.Errorf("newActor: episode budget must be positive, "+
			"have %d", numEpisodes)
	}
	if source == nil {
		return nil, fmt.Errorf("newActor: nil random source")
	}

	a := &Actor{
		policy:         make(map[agent.SAP]float64),
		traces:         make(map[agent.SAP]float64),
		learningRate:   c.LearningRate,
		discount:       c.DiscountFactor,
		decay:          c.TraceDecay,
		initialEpsilon: c.EGreedy,
		numEpisodes:    numEpisodes,
		source:         source,
	}
	a.epsilon = a.scheduledEpsilon()

	return a, nil
}

// ResetEligibilities clears all eligibility traces
func (a *Actor) ResetEligibilities() {
	a.traces = make(map[agent.SAP]float64)
}

// HandleState registers each SAP of state with a preference of 0 if
// the SAP has not been seen before
func (a *Actor) HandleState(state statekey.Key, moves []environment.Move) {
	for _, m := range moves {
		sap := agent.SAP{State: state, Move: m}
		if _, ok := a.policy[sap]; !ok {
			a.policy[sap] = 0.0
		}
	}
}

// Preference returns the preference of a SAP. Preference panics if the
// SAP was never registered with HandleState.
func (a *Actor) Preference(sap agent.SAP) float64 {
	p, ok := a.policy[sap]
	if !ok {
		panic(fmt.Sprintf("preference: unregistered SAP (%v, %v)", sap.State,
			sap.Move))
	}
	return p
}

// Eligibility returns the eligibility of a SAP in the current episode.
// SAPs not visited in the current episode have an eligibility of 0.
func (a *Actor) Eligibility(sap agent.SAP) float64 {
	return a.traces[sap]
}

// NumEligibilities returns the number of SAPs with an eligibility trace
// in the current episode
func (a *Actor) NumEligibilities() int {
	return len(a.traces)
}

// Len returns the number of SAPs registered with the Actor
func (a *Actor) Len() int {
	return len(a.policy)
}

// SelectMove selects a move ε-greedily. The greedy move is the move with
// the highest preference, with ties broken in favour of the move which
// appears first in moves. Each move is selected at random with
// probability ε / len(moves) and the greedy move is additionally
// selected with probability 1 - ε. When ε is 0, no random numbers are
// drawn.
//
// SelectMove panics if moves is empty or if a move was not registered
// for state with HandleState.
func (a *Actor) SelectMove(state statekey.Key,
	moves []environment.Move) environment.Move {
	if len(moves) == 0 {
		panic("selectMove: no legal moves")
	}

	preferences := make([]float64, len(moves))
	for i, m := range moves {
		preferences[i] = a.Preference(agent.SAP{State: state, Move: m})
	}
	_, indices := floatutils.MaxSlice(preferences)
	greedyMove := indices[0]

	ε := a.Epsilon()
	if ε == 0 {
		return moves[greedyMove]
	}

	// Calculate the ε probability of choosing any move at random
	prob := ε / float64(len(moves))
	moveProbabilities := make([]float64, len(moves))
	for i := range moveProbabilities {
		moveProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy move
	moveProbabilities[greedyMove] += 1.0 - ε

	dist := distuv.NewCategorical(moveProbabilities, a.source)
	return moves[int(dist.Rand())]
}

// Update updates the preferences of the SAPs visited in the episode.
// The eligibility of the most recent SAP in the trace is replaced by 1,
// then the preference of each distinct SAP in the trace is moved in the
// direction of the TD error in proportion to its eligibility, after
// which its eligibility decays by γλ.
//
// Update panics if the trace is empty or holds an unregistered SAP.
func (a *Actor) Update(trace agent.Trace, tdError float64) {
	if a.IsEval() {
		return
	}

	last := trace.Last()
	a.Preference(last) // Ensure the SAP is registered
	a.traces[last] = 1.0

	visited := make(map[agent.SAP]bool, len(trace))
	for _, sap := range trace {
		if visited[sap] {
			continue
		}
		visited[sap] = true

		a.policy[sap] = a.Preference(sap) +
			a.learningRate*tdError*a.traces[sap]
		a.traces[sap] *= a.discount * a.decay
	}
}

// UpdateGreediness records the end of an episode and decays ε
func (a *Actor) UpdateGreediness() {
	a.episodes++
	a.epsilon = a.scheduledEpsilon()
}

// scheduledEpsilon returns the value of ε after the number of completed
// episodes recorded by the Actor
func (a *Actor) scheduledEpsilon() float64 {
	if a.numEpisodes <= 1 {
		return 0.0
	}

	remaining := float64(a.numEpisodes - 1 - a.episodes)
	ε := a.initialEpsilon * remaining / float64(a.numEpisodes-1)
	return floatutils.Clip(ε, 0.0, a.initialEpsilon)
}

// Epsilon returns the current exploration rate. In evaluation mode, the
// exploration rate is always 0.
func (a *Actor) Epsilon() float64 {
	if a.eval {
		return 0.0
	}
	return a.epsilon
}

// Episodes returns the number of episodes the Actor has completed
func (a *Actor) Episodes() int {
	return a.episodes
}

// Eval sets the Actor to evaluation mode, in which moves are selected
// greedily and Update does nothing
func (a *Actor) Eval() {
	a.eval = true
}

// Train sets the Actor to training mode
func (a *Actor) Train() {
	a.eval = false
}

// IsEval returns whether the Actor is in evaluation mode
func (a *Actor) IsEval() bool {
	return a.eval
}
