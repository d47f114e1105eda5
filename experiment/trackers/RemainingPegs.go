package trackers

import (
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
)

// RemainingPegs tracks and saves the number of pegs remaining on the
// board at the end of each episode in an experiment.
//
// Note: an episode must finish for this Tracker to record its data.
type RemainingPegs struct {
	remaining []int
	filename  string
}

// NewRemainingPegs returns a new RemainingPegs Tracker which will save
// its data at the specified location filename
func NewRemainingPegs(filename string) *RemainingPegs {
	return &RemainingPegs{filename: filename}
}

// Track caches the number of remaining pegs if the timestep passed to
// it is the last timestep in an episode
func (r *RemainingPegs) Track(t ts.TimeStep) {
	if t.Last() {
		r.remaining = append(r.remaining, t.Remaining)
	}
}

// Data returns a copy of the data tracked so far
func (r *RemainingPegs) Data() []int {
	data := make([]int, len(r.remaining))
	copy(data, r.remaining)
	return data
}

// Save saves the data tracked by the RemainingPegs Tracker to disk
func (r *RemainingPegs) Save() error {
	return save(r.filename, r.remaining)
}
