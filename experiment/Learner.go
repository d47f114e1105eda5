package experiment

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/samuelfneumann/pegsolitaire/agent"
	"github.com/samuelfneumann/pegsolitaire/agent/tabular/actorcritic"
	"github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"github.com/samuelfneumann/pegsolitaire/experiment/trackers"
	"github.com/samuelfneumann/pegsolitaire/statekey"
	ts "github.com/samuelfneumann/pegsolitaire/timestep"
	"github.com/samuelfneumann/pegsolitaire/utils/intutils"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SummaryWindow is the number of episodes at the start and at the end
// of training whose mean remaining pegs are logged after training
const SummaryWindow = 50

// Learner trains an Actor and a Critic on a board environment.
//
// Each episode, the Actor selects moves ε-greedily, the Critic computes
// the TD error of each move, and both update their eligibility traces
// and tables with that TD error, Critic first. The Learner owns its
// Actor, Critic, environment, and random source for its whole
// lifetime; nothing is shared between Learners.
type Learner struct {
	config Config
	env    environment.Environment
	actor  agent.Actor
	critic agent.Critic

	// The tabular learners behind actor and critic, kept for diagnostics
	tabularActor  *actorcritic.Actor
	tabularCritic *actorcritic.Critic

	trackers    []trackers.Tracker
	log         logrus.FieldLogger
	performance []int
	episode     int
}

var _ Experiment = (*Learner)(nil)

// Option configures a Learner
type Option func(*Learner)

// WithLogger sets the logger of a Learner
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Learner) {
		l.log = log
	}
}

// WithEnvironment sets the environment a Learner is trained on. By
// default, the Learner creates a peg solitaire board from the game
// settings of its Config.
func WithEnvironment(env environment.Environment) Option {
	return func(l *Learner) {
		l.env = env
	}
}

// WithTrackers registers Trackers with a Learner
func WithTrackers(t ...trackers.Tracker) Option {
	return func(l *Learner) {
		l.trackers = append(l.trackers, t...)
	}
}

// NewLearner returns a new Learner. Configuration errors, including
// those raised when constructing the environment, are returned and
// no Learner is created.
func NewLearner(c Config, opts ...Option) (*Learner, error) {
	l := &Learner{config: c}
	for _, opt := range opts {
		opt(l)
	}

	if l.log == nil {
		log := logrus.New()
		log.SetLevel(logrus.WarnLevel)
		l.log = log
	}

	if l.env == nil {
		if err := c.Validate(); err != nil {
			return nil, errors.Wrap(err, "newLearner")
		}

		env, err := pegsolitaire.New(c.GameSettings)
		if err != nil {
			return nil, errors.Wrap(err, "newLearner: could not create "+
				"environment")
		}
		l.env = env
	} else if c.NumEpisodes < 1 {
		return nil, fmt.Errorf("newLearner: number of episodes must be "+
			"positive, have %d", c.NumEpisodes)
	}

	// A single source is shared by the whole run so that runs with the
	// same seed are reproducible
	source := rand.NewSource(c.Seed)

	actor, err := actorcritic.NewActor(c.ActorSettings, c.NumEpisodes, source)
	if err != nil {
		return nil, errors.Wrap(err, "newLearner")
	}
	l.actor, l.tabularActor = actor, actor

	critic, err := actorcritic.NewCritic(c.CriticSettings)
	if err != nil {
		return nil, errors.Wrap(err, "newLearner")
	}
	l.critic, l.tabularCritic = critic, critic

	return l, nil
}

// Register registers a Tracker with the Learner so that data generated
// during training can be tracked and saved
func (l *Learner) Register(t trackers.Tracker) {
	l.trackers = append(l.trackers, t)
}

// Train runs all training episodes and returns the number of pegs
// remaining at the end of each episode
func (l *Learner) Train() []int {
	remaining := make([]int, 0, l.config.NumEpisodes)

	for i := 0; i < l.config.NumEpisodes; i++ {
		remaining = append(remaining, l.runEpisode())
	}
	l.performance = remaining

	l.summarize(remaining)
	return l.Performance()
}

// runEpisode runs a single training episode and returns the number of
// pegs remaining on the board at its end
func (l *Learner) runEpisode() int {
	state, moves := l.initGame()
	l.actor.ResetEligibilities()
	l.critic.ResetEligibilities()

	// Add SAPs to the actor policy and the state to the critic
	l.actor.HandleState(state, moves)
	l.critic.HandleState(state)

	firstType := ts.First
	if len(moves) == 0 {
		firstType = ts.Last
	}
	l.track(ts.New(firstType, 0, state, l.env.RemainingPegs(), l.episode, 0))

	// Record SAPs performed by the learner, which are used to update the
	// eligibility traces
	var trace agent.Trace

	for len(moves) > 0 {
		move := l.actor.SelectMove(state, moves)
		newState, reinforcement, newMoves := l.performMove(move)

		trace = append(trace, agent.SAP{State: state, Move: move})

		tdError := l.critic.TdError(newState, state, reinforcement)
		l.critic.Update(trace, tdError)
		l.actor.Update(trace, tdError)

		state, moves = newState, newMoves
		l.actor.HandleState(state, moves)
		l.critic.HandleState(state)

		stepType := ts.Mid
		if len(moves) == 0 {
			stepType = ts.Last
		}
		l.track(ts.New(stepType, reinforcement, state, l.env.RemainingPegs(),
			l.episode, len(trace)))
	}

	remaining := l.env.RemainingPegs()
	l.log.WithFields(logrus.Fields{
		"episode":   l.episode,
		"remaining": remaining,
		"epsilon":   l.tabularActor.Epsilon(),
		"steps":     len(trace),
	}).Debug("episode finished")

	l.actor.UpdateGreediness()
	l.episode++

	return remaining
}

// Test runs a single episode in which the Actor acts greedily and
// returns the number of pegs remaining at its end along with the SAPs
// visited. No values, preferences, or eligibilities are changed, so
// consecutive calls to Test return the same results. Unseen states are
// still registered with the Actor so that moves can be selected in
// them.
//
// If the environment is an environment.Renderer, each board of the
// episode is rendered.
func (l *Learner) Test() (int, agent.Trace) {
	if !l.actor.IsEval() {
		l.actor.Eval()
		defer l.actor.Train()
	}

	state, moves := l.initGame()
	l.actor.HandleState(state, moves)
	l.render()

	var trace agent.Trace
	for len(moves) > 0 {
		move := l.actor.SelectMove(state, moves)
		newState, _, newMoves := l.performMove(move)

		trace = append(trace, agent.SAP{State: state, Move: move})

		state, moves = newState, newMoves
		l.actor.HandleState(state, moves)
		l.render()
	}

	remaining := l.env.RemainingPegs()
	l.log.WithFields(logrus.Fields{
		"remaining": remaining,
		"steps":     len(trace),
	}).Info("test episode finished")

	return remaining, trace
}

// initGame resets the environment and returns its starting state and
// legal moves
func (l *Learner) initGame() (statekey.Key, []environment.Move) {
	if err := l.env.Reset(); err != nil {
		panic(fmt.Sprintf("initGame: could not reset environment: %v", err))
	}

	state := statekey.Encode(l.env.BoardState())
	return state, l.env.LegalMoves()
}

// performMove performs a move in the environment and returns the new
// state, the reinforcement for the move, and the new legal moves
func (l *Learner) performMove(move environment.Move) (statekey.Key, float64,
	[]environment.Move) {
	if err := l.env.MakeMove(move); err != nil {
		panic(fmt.Sprintf("performMove: %v", err))
	}

	newState := statekey.Encode(l.env.BoardState())
	newMoves := l.env.LegalMoves()
	reinforcement := l.env.Reinforcement()

	return newState, reinforcement, newMoves
}

// render renders the environment if it can be rendered
func (l *Learner) render() {
	r, ok := l.env.(environment.Renderer)
	if !ok {
		return
	}
	if err := r.Render(); err != nil {
		l.log.WithError(err).Warn("could not render board")
	}
}

// track sends a TimeStep to each Tracker
func (l *Learner) track(t ts.TimeStep) {
	for _, tracker := range l.trackers {
		tracker.Track(t)
	}
}

// summarize logs the mean remaining pegs over the first and last
// episodes of training, and the fewest pegs remaining in any episode
func (l *Learner) summarize(remaining []int) {
	if len(remaining) == 0 {
		return
	}

	window := intutils.Min(SummaryWindow, len(remaining))
	performance := intutils.ToFloat(remaining)

	l.log.WithFields(logrus.Fields{
		"episodes":   len(remaining),
		"first_mean": stat.Mean(performance[:window], nil),
		"last_mean":  stat.Mean(performance[len(performance)-window:], nil),
		"best":       floats.Min(performance),
		"states":     l.tabularCritic.Len(),
		"saps":       l.tabularActor.Len(),
	}).Info("training finished")
}

// Save saves the data cached by all Trackers
func (l *Learner) Save() error {
	var errs error
	for _, tracker := range l.trackers {
		if err := tracker.Save(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

// Performance returns the number of pegs remaining at the end of each
// episode of the most recent call to Train
func (l *Learner) Performance() []int {
	performance := make([]int, len(l.performance))
	copy(performance, l.performance)
	return performance
}

// Actor returns the Learner's Actor
func (l *Learner) Actor() *actorcritic.Actor {
	return l.tabularActor
}

// Critic returns the Learner's Critic
func (l *Learner) Critic() *actorcritic.Critic {
	return l.tabularCritic
}
