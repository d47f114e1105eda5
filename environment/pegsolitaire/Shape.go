package pegsolitaire

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samuelfneumann/pegsolitaire/environment"
)

// BoardType determines the topology of the board
type BoardType string

const (
	Triangle BoardType = "triangle"
	Diamond  BoardType = "diamond"
)

// Bounds on the board size for each board type
const (
	MinSize = 3
	MaxSize = 10
)

// ParseBoardType returns the BoardType named by s, ignoring case
func ParseBoardType(s string) (BoardType, error) {
	switch BoardType(strings.ToLower(s)) {
	case Triangle:
		return Triangle, nil
	case Diamond:
		return Diamond, nil
	}
	return "", fmt.Errorf("parseBoardType: no such board type %q", s)
}

// direction is a unit step between neighbouring holes
type direction struct {
	dRow, dCol int
}

// Neighbourhoods for each board type. The order of directions fixes the
// order in which legal moves are generated.
var (
	triangleDirections = []direction{
		{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, 0}, {1, 1},
	}
	diamondDirections = []direction{
		{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0},
	}
)

// shape describes the set of holes of a board along with the
// neighbourhood structure between holes
type shape struct {
	positions  []environment.Position // Sorted in row-major order
	onBoard    map[environment.Position]bool
	directions []direction
}

// newShape returns the shape of a board with the given type and size
func newShape(t BoardType, size int) (*shape, error) {
	var positions []environment.Position
	var directions []direction

	switch t {
	case Triangle:
		directions = triangleDirections
		for r := 0; r < size; r++ {
			for c := 0; c <= r; c++ {
				positions = append(positions, environment.Position{Row: r, Col: c})
			}
		}

	case Diamond:
		directions = diamondDirections
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				positions = append(positions, environment.Position{Row: r, Col: c})
			}
		}

	default:
		return nil, fmt.Errorf("newShape: no such board type %q", t)
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Less(positions[j])
	})

	onBoard := make(map[environment.Position]bool, len(positions))
	for _, p := range positions {
		onBoard[p] = true
	}

	return &shape{positions, onBoard, directions}, nil
}

// step returns the position n steps away from p in direction d
func (s *shape) step(p environment.Position, d direction,
	n int) environment.Position {
	return environment.Position{Row: p.Row + n*d.dRow, Col: p.Col + n*d.dCol}
}
