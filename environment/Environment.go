// Package environment outlines the interfaces and structs needed to
// implement board environments that a learner can be trained on
package environment

import "fmt"

// Occupancy describes whether a hole on the board holds a peg
type Occupancy int

const (
	Hole Occupancy = iota
	Peg
)

func (o Occupancy) String() string {
	if o == Peg {
		return "Peg"
	}
	return "Hole"
}

// Position is a (row, column) coordinate on a board
type Position struct {
	Row, Col int
}

// Less reports whether p comes before q in row-major order
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Snapshot is the full occupancy status of every position on a board
type Snapshot map[Position]Occupancy

// Move describes a single jump: the peg at From jumps over the peg at
// Over, which is removed, and lands in the hole at To.
//
// Moves are comparable so that they can be used in map keys.
type Move struct {
	From, Over, To Position
}

func (m Move) String() string {
	return fmt.Sprintf("%v -> %v (over %v)", m.From, m.To, m.Over)
}

// Environment implements a board game which a learner interacts with.
//
// LegalMoves returning an empty slice signals the end of an episode.
// MakeMove must only be called with a move taken from the most recent
// call to LegalMoves.
type Environment interface {
	Reset() error // Resets the board to its starting configuration
	BoardState() Snapshot
	LegalMoves() []Move
	MakeMove(m Move) error
	Reinforcement() float64 // Reward for the most recently made move
	RemainingPegs() int
}

// Renderer is an Environment which can render its current board
type Renderer interface {
	Environment
	Render() error
}
