// Package statekey encodes board snapshots as immutable keys which
// learners use to index their value, policy, and trace tables
package statekey

import (
	"sort"
	"strings"

	"github.com/samuelfneumann/pegsolitaire/environment"
)

// Symbols used in a Key for each position on the board
const (
	PegSymbol  byte = '1'
	HoleSymbol byte = '0'
)

// Key uniquely identifies a board configuration. Keys are bit strings
// with one symbol per board position, where positions are taken in
// row-major order: (0, 0) is the first symbol, (1, 0) the second, (1, 1)
// the third, and so on.
type Key string

// Encode returns the Key of a board snapshot. The snapshot must contain
// every position of the board; a snapshot with missing positions is a
// precondition violation and produces the Key of a different, smaller
// board.
func Encode(s environment.Snapshot) Key {
	positions := make([]environment.Position, 0, len(s))
	for p := range s {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Less(positions[j])
	})

	var key strings.Builder
	key.Grow(len(positions))
	for _, p := range positions {
		if s[p] == environment.Peg {
			key.WriteByte(PegSymbol)
		} else {
			key.WriteByte(HoleSymbol)
		}
	}

	return Key(key.String())
}

// Pegs returns the number of occupied positions in the Key
func (k Key) Pegs() int {
	return strings.Count(string(k), string(PegSymbol))
}

// Len returns the number of positions encoded in the Key
func (k Key) Len() int {
	return len(k)
}

func (k Key) String() string {
	return string(k)
}
