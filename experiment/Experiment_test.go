package experiment

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"github.com/samuelfneumann/pegsolitaire/experiment/trackers"
	"github.com/samuelfneumann/pegsolitaire/statekey"
	"github.com/samuelfneumann/pegsolitaire/utils/intutils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func smallConfig(episodes int) Config {
	c := DefaultConfig()
	c.NumEpisodes = episodes
	c.GameSettings.Size = 4
	return c
}

func newLearner(t *testing.T, c Config, opts ...Option) *Learner {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	l, err := NewLearner(c, opts...)
	require.NoError(t, err)
	return l
}

func writeFile(t *testing.T, name, contents string) string {
	filename := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0o644))
	return filename
}

func TestLoadConfigYAML(t *testing.T) {
	filename := writeFile(t, "config.yaml", `
num_episodes: 300
seed: 7
game_settings:
  board_type: diamond
  size: 4
  empty_start_pegs: [[1, 1], [2, 2]]
actor_settings:
  e_greedy: 0.2
`)

	c, err := LoadConfig(filename)
	require.NoError(t, err)

	assert.Equal(t, 300, c.NumEpisodes)
	assert.Equal(t, uint64(7), c.Seed)
	assert.Equal(t, pegsolitaire.Diamond, c.GameSettings.BoardType)
	assert.Equal(t, 4, c.GameSettings.Size)
	assert.Equal(t, [][2]int{{1, 1}, {2, 2}}, c.GameSettings.EmptyStartPegs)
	assert.Equal(t, 0.2, c.ActorSettings.EGreedy)

	// Missing settings keep their defaults
	defaults := DefaultConfig()
	assert.Equal(t, defaults.ActorSettings.LearningRate,
		c.ActorSettings.LearningRate)
	assert.Equal(t, defaults.CriticSettings, c.CriticSettings)
	assert.Equal(t, defaults.GameSettings.RenderDir, c.GameSettings.RenderDir)
}

func TestLoadConfigJSON(t *testing.T) {
	filename := writeFile(t, "config.json", `{
	"num_episodes": 10,
	"critic_settings": {"learning_rate": 0.1, "discount_factor": 0.9,
		"trace_decay": 0.5}
}`)

	c, err := LoadConfig(filename)
	require.NoError(t, err)

	assert.Equal(t, 10, c.NumEpisodes)
	assert.Equal(t, 0.1, c.CriticSettings.LearningRate)
	assert.Equal(t, 0.9, c.CriticSettings.DiscountFactor)
	assert.Equal(t, 0.5, c.CriticSettings.TraceDecay)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "num_episodes: [1, 2"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "invalid.yaml", `
num_episodes: 0
game_settings:
  size: 12
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number of episodes")
	assert.Contains(t, err.Error(), "game settings")
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	c := DefaultConfig()
	c.NumEpisodes = -1
	c.ActorSettings.EGreedy = 2
	c.CriticSettings.DiscountFactor = -0.5
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number of episodes")
	assert.Contains(t, err.Error(), "actor settings")
	assert.Contains(t, err.Error(), "critic settings")
}

func TestNewLearnerErrors(t *testing.T) {
	c := DefaultConfig()
	c.GameSettings.EmptyStartPegs = [][2]int{{9, 9}}
	_, err := NewLearner(c, WithLogger(quietLogger()))
	assert.Error(t, err)

	c = DefaultConfig()
	c.NumEpisodes = 0
	_, err = NewLearner(c, WithLogger(quietLogger()))
	assert.Error(t, err)

	board, err := pegsolitaire.New(pegsolitaire.DefaultConfig())
	require.NoError(t, err)
	_, err = NewLearner(c, WithLogger(quietLogger()), WithEnvironment(board))
	assert.Error(t, err)
}

func TestEpisodeTermination(t *testing.T) {
	c := smallConfig(50)
	lengths := trackers.NewEpisodeLength(filepath.Join(t.TempDir(), "l.bin"))
	l := newLearner(t, c, WithTrackers(lengths))

	// A 4-row triangle has 10 holes, one of which starts empty
	initialPegs := 9
	remaining := l.Train()
	require.Len(t, remaining, c.NumEpisodes)

	steps := lengths.Data()
	require.Len(t, steps, c.NumEpisodes)
	for i := range remaining {
		assert.LessOrEqual(t, steps[i], initialPegs-1)
		assert.GreaterOrEqual(t, remaining[i], 1)
		assert.Equal(t, initialPegs-steps[i], remaining[i])
	}
}

func TestTablesOnlyGrow(t *testing.T) {
	l := newLearner(t, smallConfig(40))

	states, saps := 0, 0
	for i := 0; i < l.config.NumEpisodes; i++ {
		l.runEpisode()
		assert.GreaterOrEqual(t, l.Critic().Len(), states)
		assert.GreaterOrEqual(t, l.Actor().Len(), saps)
		states, saps = l.Critic().Len(), l.Actor().Len()
	}
	assert.Greater(t, states, 1)
	assert.Greater(t, saps, 1)
}

func TestEligibilitiesResetEachEpisode(t *testing.T) {
	lengths := trackers.NewEpisodeLength(filepath.Join(t.TempDir(), "l.bin"))
	l := newLearner(t, smallConfig(20), WithTrackers(lengths))

	// Pegs strictly decrease within an episode so that no state is
	// visited twice, and only the current episode's SAPs and states may
	// carry eligibility
	for i := 0; i < l.config.NumEpisodes; i++ {
		l.runEpisode()
		steps := lengths.Data()[i]
		assert.Equal(t, steps, l.Actor().NumEligibilities())
		assert.Equal(t, steps, l.Critic().NumEligibilities())
	}
}

func TestEpsilonDecaysAcrossTraining(t *testing.T) {
	c := smallConfig(5)
	l := newLearner(t, c)

	start := l.Actor().Epsilon()
	assert.Equal(t, c.ActorSettings.EGreedy, start)

	l.Train()
	assert.Equal(t, c.NumEpisodes, l.Actor().Episodes())
	assert.Equal(t, 0.0, l.Actor().Epsilon())
}

func TestReproducible(t *testing.T) {
	c := smallConfig(100)
	c.Seed = 42

	first := newLearner(t, c).Train()
	second := newLearner(t, c).Train()
	assert.Equal(t, first, second)
}

func TestTestDoesNotLearn(t *testing.T) {
	l := newLearner(t, smallConfig(100))
	l.Train()

	remaining, trace := l.Test()
	require.NotEmpty(t, trace)
	assert.False(t, l.Actor().IsEval())

	states, saps := l.Critic().Len(), l.Actor().Len()
	preferences := make([]float64, len(trace))
	values := make([]float64, len(trace))
	for i, sap := range trace {
		preferences[i] = l.Actor().Preference(sap)
		values[i] = l.Critic().Value(sap.State)
	}

	again, againTrace := l.Test()
	assert.Equal(t, remaining, again)
	assert.Equal(t, trace, againTrace)
	assert.Equal(t, states, l.Critic().Len())
	assert.Equal(t, saps, l.Actor().Len())
	for i, sap := range trace {
		assert.Equal(t, preferences[i], l.Actor().Preference(sap))
		assert.Equal(t, values[i], l.Critic().Value(sap.State))
	}
}

func TestLearnerUsesAgentInterfaces(t *testing.T) {
	l := newLearner(t, smallConfig(1))

	assert.Implements(t, (*agent.Actor)(nil), l.Actor())
	assert.Implements(t, (*agent.Critic)(nil), l.Critic())
	assert.Same(t, l.Actor(), l.actor)
	assert.Same(t, l.Critic(), l.critic)
}

func TestTestKeepsEvalMode(t *testing.T) {
	l := newLearner(t, smallConfig(1))
	l.Actor().Eval()
	l.Test()
	assert.True(t, l.Actor().IsEval())
}

func TestTrackersAndSave(t *testing.T) {
	dir := t.TempDir()
	c := smallConfig(30)

	pegs := trackers.NewRemainingPegs(filepath.Join(dir, "remaining.bin"))
	l := newLearner(t, c, WithTrackers(pegs))

	returns := trackers.NewReturn(filepath.Join(dir, "returns.bin"))
	l.Register(returns)

	remaining := l.Train()
	assert.Equal(t, remaining, pegs.Data())
	assert.Equal(t, remaining, l.Performance())

	// Rewards are only given at the end of an episode
	for i, r := range returns.Data() {
		if remaining[i] == 1 {
			assert.Equal(t, pegsolitaire.WinReward, r)
		} else {
			assert.Equal(t, pegsolitaire.LossRewardPerPeg*float64(remaining[i]),
				r)
		}
	}

	require.NoError(t, l.Save())
	data, err := trackers.LoadData(filepath.Join(dir, "remaining.bin"))
	require.NoError(t, err)
	assert.Equal(t, remaining, data)
}

func TestSaveCollectsErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing", "dir")
	l := newLearner(t, smallConfig(2),
		WithTrackers(trackers.NewRemainingPegs(filepath.Join(missing, "a.bin")),
			trackers.NewEpisodeLength(filepath.Join(missing, "b.bin"))))
	l.Train()

	err := l.Save()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors")
}

// stuckEnv is an environment in which no move can ever be made
type stuckEnv struct{}

func (stuckEnv) Reset() error { return nil }

func (stuckEnv) BoardState() environment.Snapshot {
	return environment.Snapshot{
		{Row: 0, Col: 0}: environment.Peg,
		{Row: 1, Col: 0}: environment.Hole,
		{Row: 1, Col: 1}: environment.Peg,
	}
}

func (stuckEnv) LegalMoves() []environment.Move    { return nil }
func (stuckEnv) MakeMove(m environment.Move) error { return nil }
func (stuckEnv) Reinforcement() float64            { return -2 }
func (stuckEnv) RemainingPegs() int                { return 2 }

func TestNoLegalMovesAtStart(t *testing.T) {
	lengths := trackers.NewEpisodeLength(filepath.Join(t.TempDir(), "l.bin"))
	returns := trackers.NewReturn(filepath.Join(t.TempDir(), "r.bin"))
	l := newLearner(t, smallConfig(3), WithEnvironment(stuckEnv{}),
		WithTrackers(lengths, returns))

	assert.Equal(t, []int{2, 2, 2}, l.Train())
	assert.Equal(t, []int{0, 0, 0}, lengths.Data())
	assert.Equal(t, []float64{0, 0, 0}, returns.Data())
	assert.Equal(t, 1, l.Critic().Len())
	assert.Equal(t, 0, l.Actor().Len())
	assert.Equal(t, statekey.Key("101"), statekey.Encode(stuckEnv{}.BoardState()))

	remaining, trace := l.Test()
	assert.Equal(t, 2, remaining)
	assert.Equal(t, agent.Trace(nil), trace)
}

func TestLearningImprovesPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full training run in short mode")
	}

	// 6-row triangle with the top hole empty, trained for 2000 episodes
	l := newLearner(t, DefaultConfig())

	performance := intutils.ToFloat(l.Train())
	first := stat.Mean(performance[:SummaryWindow], nil)
	last := stat.Mean(performance[len(performance)-SummaryWindow:], nil)
	assert.Less(t, last, first)

	remaining, _ := l.Test()
	assert.LessOrEqual(t, float64(remaining), floats.Min(performance))
}

func BenchmarkTrain(b *testing.B) {
	c := smallConfig(100)
	c.GameSettings.Size = 5

	for i := 0; i < b.N; i++ {
		l, err := NewLearner(c, WithLogger(quietLogger()))
		if err != nil {
			b.Fatal(err)
		}
		l.Train()
	}
}
