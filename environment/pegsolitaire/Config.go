package pegsolitaire

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/samuelfneumann/pegsolitaire/environment"
)

// Config represents a configuration of a peg solitaire board. Configs
// are JSON and YAML serializable; empty start pegs are given as
// [row, col] pairs.
type Config struct {
	BoardType      BoardType `json:"board_type" yaml:"board_type"`
	Size           int       `json:"size" yaml:"size"`
	EmptyStartPegs [][2]int  `json:"empty_start_pegs" yaml:"empty_start_pegs"`

	// DisplayGame turns on rendering of board frames. It has no effect
	// on learning.
	DisplayGame bool `json:"display_game" yaml:"display_game"`

	// RenderDir is the directory that rendered frames are saved in
	RenderDir string `json:"render_dir" yaml:"render_dir"`
}

// DefaultConfig returns the configuration of a triangular board with
// 6 rows and a single empty hole at the top
func DefaultConfig() Config {
	return Config{
		BoardType:      Triangle,
		Size:           6,
		EmptyStartPegs: [][2]int{{0, 0}},
		DisplayGame:    false,
		RenderDir:      ".",
	}
}

// emptyStart returns the empty start pegs as Positions
func (c Config) emptyStart() []environment.Position {
	positions := make([]environment.Position, len(c.EmptyStartPegs))
	for i, p := range c.EmptyStartPegs {
		positions[i] = environment.Position{Row: p[0], Col: p[1]}
	}
	return positions
}

// Validate returns an error describing every problem with the
// configuration, or nil if the configuration can be used to create a
// board
func (c Config) Validate() error {
	var errs error

	if c.Size < MinSize || c.Size > MaxSize {
		errs = multierror.Append(errs, fmt.Errorf("size %d not in [%d, %d]",
			c.Size, MinSize, MaxSize))
	}

	s, err := newShape(c.BoardType, c.Size)
	if err != nil {
		// Without a shape the start pegs cannot be checked
		return multierror.Append(errs, err)
	}

	if len(c.EmptyStartPegs) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("no empty start pegs "+
			"given, no moves could ever be made"))
	}

	seen := make(map[environment.Position]bool)
	for _, p := range c.emptyStart() {
		if !s.onBoard[p] {
			errs = multierror.Append(errs, fmt.Errorf("empty start peg %v "+
				"is not on a %v board of size %d", p, c.BoardType, c.Size))
		}
		if seen[p] {
			errs = multierror.Append(errs, fmt.Errorf("empty start peg %v "+
				"given more than once", p))
		}
		seen[p] = true
	}

	if len(seen) >= len(s.positions) {
		errs = multierror.Append(errs, fmt.Errorf("start configuration "+
			"has no pegs"))
	}

	return errs
}
