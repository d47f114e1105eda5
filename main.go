package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/pegsolitaire/environment"
	"github.com/samuelfneumann/pegsolitaire/environment/pegsolitaire"
	"github.com/samuelfneumann/pegsolitaire/experiment"
	"github.com/samuelfneumann/pegsolitaire/experiment/trackers"
	"github.com/samuelfneumann/pegsolitaire/plot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pegsolitaire",
		Short: "Learn to play peg solitaire with a tabular actor-critic",
		Long: `Trains an actor-critic learner with eligibility traces to leave as
few pegs as possible on a triangular or diamond peg solitaire board.`,
		SilenceUsage: true,
	}
	trainCmd = &cobra.Command{
		Use:   "train",
		Short: "Train a learner and run a greedy test episode",
		Long: `Trains a learner for the configured number of episodes, saves the
tracked data and the performance plot, then plays a single greedy episode
and prints the moves made.`,
		Args: cobra.NoArgs,
		RunE: runTrain,
	}
	boardCmd = &cobra.Command{
		Use:   "board",
		Short: "Render a starting board",
		Args:  cobra.NoArgs,
		RunE:  runBoard,
	}

	// train flags
	configFile string
	episodes   int
	seed       uint64
	plotFile   string
	renderDir  string
	dataDir    string
	progress   bool
	logLevel   string

	// board flags
	boardType string
	boardSize int
	emptyPegs []string
	boardFile string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Logging level (debug, info, warn, error)")

	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().StringVarP(&configFile, "config", "c", "",
		"YAML or JSON configuration file, defaults are used if not given")
	trainCmd.Flags().IntVarP(&episodes, "episodes", "n", 0,
		"Number of training episodes, overrides the configuration")
	trainCmd.Flags().Uint64Var(&seed, "seed", 0,
		"Seed of the random source, overrides the configuration")
	trainCmd.Flags().StringVar(&plotFile, "plot", "performance.png",
		"File to save the performance plot to, empty to skip plotting")
	trainCmd.Flags().StringVar(&renderDir, "render-dir", "",
		"Directory to render the boards of the test episode to")
	trainCmd.Flags().StringVar(&dataDir, "data", "",
		"Directory to save tracked data to, empty to skip saving")
	trainCmd.Flags().BoolVar(&progress, "progress", true,
		"Display a progress bar while training")

	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().StringVarP(&boardType, "type", "t", "triangle",
		"Board type (triangle, diamond)")
	boardCmd.Flags().IntVarP(&boardSize, "size", "s", 6, "Board size")
	boardCmd.Flags().StringArrayVarP(&emptyPegs, "empty", "e",
		[]string{"0,0"}, "Empty start hole as row,col; may be repeated")
	boardCmd.Flags().StringVarP(&boardFile, "out", "o", "board.png",
		"File to save the rendered board to")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(level)
	return log, nil
}

func runTrain(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	c := experiment.DefaultConfig()
	if configFile != "" {
		if c, err = experiment.LoadConfig(configFile); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("episodes") {
		c.NumEpisodes = episodes
	}
	if cmd.Flags().Changed("seed") {
		c.Seed = seed
	}
	if renderDir != "" {
		if err := os.MkdirAll(renderDir, 0o755); err != nil {
			return errors.Wrap(err, "could not create render directory")
		}
		c.GameSettings.DisplayGame = true
		c.GameSettings.RenderDir = renderDir
	}

	var opts []experiment.Option
	opts = append(opts, experiment.WithLogger(log))
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return errors.Wrap(err, "could not create data directory")
		}
		opts = append(opts, experiment.WithTrackers(
			trackers.NewRemainingPegs(filepath.Join(dataDir, "remaining.bin")),
			trackers.NewReturn(filepath.Join(dataDir, "returns.bin")),
			trackers.NewEpisodeLength(filepath.Join(dataDir, "lengths.bin")),
		))
	}
	if progress {
		opts = append(opts, experiment.WithTrackers(
			trackers.NewProgress(cmd.ErrOrStderr(), c.NumEpisodes)))
	}

	learner, err := experiment.NewLearner(c, opts...)
	if err != nil {
		return err
	}

	performance := learner.Train()
	if err := learner.Save(); err != nil {
		return errors.Wrap(err, "could not save data")
	}
	if plotFile != "" {
		if err := plot.Performance(performance, plotFile); err != nil {
			return errors.Wrap(err, "could not plot performance")
		}
		log.WithField("file", plotFile).Info("saved performance plot")
	}

	remaining, trace := learner.Test()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Greedy test episode: %d pegs remaining after %d moves\n",
		remaining, len(trace))
	for i, sap := range trace {
		fmt.Fprintf(out, "%3d  %v  %v\n", i+1, sap.State, sap.Move)
	}
	return nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	t, err := pegsolitaire.ParseBoardType(boardType)
	if err != nil {
		return err
	}

	c := pegsolitaire.DefaultConfig()
	c.BoardType = t
	c.Size = boardSize
	c.EmptyStartPegs = make([][2]int, len(emptyPegs))
	for i, e := range emptyPegs {
		var p environment.Position
		if _, err := fmt.Sscanf(e, "%d,%d", &p.Row, &p.Col); err != nil {
			return errors.Wrapf(err, "invalid empty start hole %q", e)
		}
		c.EmptyStartPegs[i] = [2]int{p.Row, p.Col}
	}

	board, err := pegsolitaire.New(c)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), board)
	fmt.Fprintf(cmd.OutOrStdout(), "%d legal moves\n", len(board.LegalMoves()))
	return pegsolitaire.RenderSnapshot(board.BoardState(),
		board.Config().BoardType, board.Config().Size, boardFile)
}
