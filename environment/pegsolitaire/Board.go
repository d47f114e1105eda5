// Package pegsolitaire implements the peg solitaire board game as an
// environment.Environment
package pegsolitaire

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/pegsolitaire/environment"
)

// Rewards given on the final move of a game. All other moves give a
// reward of 0.
const (
	// WinReward is given when a single peg remains on the board
	WinReward float64 = 10.0

	// LossRewardPerPeg is scaled by the number of remaining pegs when
	// more than one peg remains on the board
	LossRewardPerPeg float64 = -1.0
)

// Board is a peg solitaire board
//
// A Board starts with every hole holding a peg except for the holes
// listed as empty start pegs in its Config. Each move jumps a peg over
// a neighbouring peg into a hole, removing the jumped peg, so each
// move removes exactly one peg from the board.
type Board struct {
	config Config
	*shape
	state environment.Snapshot

	remaining int
	moved     bool
	frame     int
}

// New returns a new Board in its starting configuration
func New(c Config) (*Board, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "new: invalid board configuration")
	}

	s, err := newShape(c.BoardType, c.Size)
	if err != nil {
		return nil, errors.Wrap(err, "new")
	}

	b := &Board{config: c, shape: s}
	if err := b.Reset(); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset resets the board to its starting configuration
func (b *Board) Reset() error {
	b.state = make(environment.Snapshot, len(b.positions))
	for _, p := range b.positions {
		b.state[p] = environment.Peg
	}
	for _, p := range b.config.emptyStart() {
		b.state[p] = environment.Hole
	}

	b.remaining = len(b.positions) - len(b.config.EmptyStartPegs)
	b.moved = false
	b.frame = 0
	return nil
}

// BoardState returns a copy of the occupancy of every hole on the board
func (b *Board) BoardState() environment.Snapshot {
	snapshot := make(environment.Snapshot, len(b.state))
	for p, o := range b.state {
		snapshot[p] = o
	}
	return snapshot
}

// Positions returns every position on the board in row-major order
func (b *Board) Positions() []environment.Position {
	positions := make([]environment.Position, len(b.positions))
	copy(positions, b.positions)
	return positions
}

// LegalMoves returns all legal moves on the board. Moves are ordered by
// the row-major order of the jumping peg, then by direction, so that
// the same board always produces the same sequence of moves.
func (b *Board) LegalMoves() []environment.Move {
	var moves []environment.Move

	for _, from := range b.positions {
		if b.state[from] != environment.Peg {
			continue
		}

		for _, d := range b.directions {
			over := b.step(from, d, 1)
			to := b.step(from, d, 2)

			if !b.onBoard[to] {
				continue
			}
			if b.state[over] == environment.Peg &&
				b.state[to] == environment.Hole {
				moves = append(moves, environment.Move{
					From: from,
					Over: over,
					To:   to,
				})
			}
		}
	}

	return moves
}

// MakeMove performs a move on the board. An error is returned if the
// move is not legal, in which case the board is left unchanged.
func (b *Board) MakeMove(m environment.Move) error {
	if err := b.check(m); err != nil {
		return fmt.Errorf("makeMove: illegal move %v: %v", m, err)
	}

	b.state[m.From] = environment.Hole
	b.state[m.Over] = environment.Hole
	b.state[m.To] = environment.Peg
	b.remaining--
	b.moved = true

	return nil
}

// check returns an error if m cannot be made on the current board
func (b *Board) check(m environment.Move) error {
	for _, p := range []environment.Position{m.From, m.Over, m.To} {
		if !b.onBoard[p] {
			return fmt.Errorf("position %v is not on the board", p)
		}
	}

	var adjacent bool
	for _, d := range b.directions {
		if b.step(m.From, d, 1) == m.Over && b.step(m.From, d, 2) == m.To {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return fmt.Errorf("positions are not in a line")
	}

	if b.state[m.From] != environment.Peg {
		return fmt.Errorf("no peg at %v", m.From)
	}
	if b.state[m.Over] != environment.Peg {
		return fmt.Errorf("no peg to jump at %v", m.Over)
	}
	if b.state[m.To] != environment.Hole {
		return fmt.Errorf("hole %v is not empty", m.To)
	}
	return nil
}

// Reinforcement returns the reward for the most recent move. Only the
// move which ends the game is rewarded.
func (b *Board) Reinforcement() float64 {
	if !b.moved || len(b.LegalMoves()) > 0 {
		return 0.0
	}

	if b.remaining == 1 {
		return WinReward
	}
	return LossRewardPerPeg * float64(b.remaining)
}

// RemainingPegs returns the number of pegs left on the board
func (b *Board) RemainingPegs() int {
	return b.remaining
}

// Config returns the configuration the board was created with
func (b *Board) Config() Config {
	return b.config
}

func (b *Board) String() string {
	return fmt.Sprintf("PegSolitaire | Type: %v  |  Size: %d  |  "+
		"Remaining: %d", b.config.BoardType, b.config.Size, b.remaining)
}
