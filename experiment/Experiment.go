// Package experiment implements functionality for training learners on
// board environments and evaluating what they have learned
package experiment

import (
	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/experiment/trackers"
)

// Experiment outlines structs that can run experiments.
//
// Train runs all training episodes and returns the number of pegs
// remaining at the end of each. Test runs a single greedy episode
// without learning. Experiments send each TimeStep generated during
// training to their Trackers, and Save saves all tracked data.
type Experiment interface {
	Train() []int
	Test() (int, agent.Trace)

	// Adds a new trackers.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)

	// Save all tracked data to disk
	Save() error
}
