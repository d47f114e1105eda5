package trackers

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/pegsolitaire/statekey"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode returns the timesteps of an episode with the given rewards
// ending with remaining pegs on the board
func episode(n int, remaining int, rewards ...float64) []ts.TimeStep {
	key := statekey.Key("101")
	if len(rewards) == 0 {
		return []ts.TimeStep{ts.New(ts.Last, 0, key, remaining, n, 0)}
	}

	steps := []ts.TimeStep{ts.New(ts.First, 0, key, remaining+len(rewards), n, 0)}
	for i, r := range rewards {
		stepType := ts.Mid
		if i == len(rewards)-1 {
			stepType = ts.Last
		}
		steps = append(steps, ts.New(stepType, r, key,
			remaining+len(rewards)-i-1, n, i+1))
	}
	return steps
}

func trackAll(t Tracker, episodes ...[]ts.TimeStep) {
	for _, e := range episodes {
		for _, step := range e {
			t.Track(step)
		}
	}
}

func TestRemainingPegs(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "remaining.bin")
	tracker := NewRemainingPegs(filename)

	trackAll(tracker, episode(0, 3, 0, 0, -3), episode(1, 1, 0, 10),
		episode(2, 5))
	assert.Equal(t, []int{3, 1, 5}, tracker.Data())

	require.NoError(t, tracker.Save())
	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 5}, data)
}

func TestEpisodeLength(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	tracker := NewEpisodeLength(filename)

	trackAll(tracker, episode(0, 3, 0, 0, -3), episode(1, 1, 10))
	assert.Equal(t, []int{3, 1}, tracker.Data())

	require.NoError(t, tracker.Save())
	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, data)
}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	tracker := NewReturn(filename)

	trackAll(tracker, episode(0, 3, 0, 0, -3), episode(1, 1, 0, 10),
		episode(2, 5))
	assert.Equal(t, []float64{-3, 10, 0}, tracker.Data())

	require.NoError(t, tracker.Save())
	data, err := LoadReturns(filename)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, 10, 0}, data)
}

func TestReturnNonSequential(t *testing.T) {
	tracker := NewReturn("")
	steps := episode(0, 3, 0, 0, -3)
	tracker.Track(steps[0])
	assert.Panics(t, func() { tracker.Track(steps[2]) })
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	tracker := NewProgress(&out, 2)

	trackAll(tracker, episode(0, 3, 0, -3))
	assert.Contains(t, out.String(), "remaining pegs: 3")
	trackAll(tracker, episode(1, 1, 10))
	assert.Contains(t, out.String(), "100.00%")
	assert.NoError(t, tracker.Save())
}

func TestLoadDataMissingFile(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
