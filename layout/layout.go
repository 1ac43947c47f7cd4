package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

// ErrInvalidTopology means a topology does not map the grid one-to-one onto
// the strip.
var ErrInvalidTopology = errors.New("invalid topology")

// Topology maps a logical (row, col) to a position on the strip.
type Topology interface {
	Index(row, col int) int
}

// TopologyFunc adapts a plain function to Topology.
type TopologyFunc func(row, col int) int

func (f TopologyFunc) Index(row, col int) int { return f(row, col) }

// Wiring describes the common ways a single strip is run across the panel.
type Wiring struct {
	// Serpentine reverses every odd row (zig-zag).
	Serpentine bool
	// FlipCols runs the first row right-to-left.
	FlipCols bool
	// Reverse feeds data in at the last LED of the last row.
	Reverse bool
}

var (
	Serpentine  = Wiring{Serpentine: true}
	Progressive = Wiring{}
	// Pixiboo is the board as shipped: data enters bottom-right and every row
	// runs right-to-left.
	Pixiboo = Wiring{FlipCols: true, Reverse: true}
)

// Index maps row, col -> linear LED index (0..48)
func (w Wiring) Index(row, col int) int {
	c := col
	if w.FlipCols {
		c = model.Cols - 1 - c
	}
	if w.Serpentine && row%2 == 1 {
		c = model.Cols - 1 - c
	}
	i := row*model.Cols + c
	if w.Reverse {
		i = model.LedCount - 1 - i
	}
	return i
}

// ParseWiring resolves a wiring preset by name.
func ParseWiring(name string) (Wiring, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "serpentine", "zigzag", "":
		return Serpentine, nil
	case "progressive", "straight", "linear":
		return Progressive, nil
	case "pixiboo":
		return Pixiboo, nil
	default:
		return Wiring{}, fmt.Errorf("unknown wiring %q", name)
	}
}

// AddressMap is the precomputed, read-only translation between logical
// coordinates and physical strip indices.
type AddressMap struct {
	fwd [model.Rows][model.Cols]int
	inv [model.LedCount]model.Coord
}

// New evaluates t once for every coordinate and checks that the result is a
// bijection onto 0..LedCount-1.
func New(t Topology) (*AddressMap, error) {
	if t == nil {
		return nil, fmt.Errorf("nil topology: %w", ErrInvalidTopology)
	}
	m := &AddressMap{}
	var seen [model.LedCount]bool
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			i := t.Index(r, c)
			if i < 0 || i >= model.LedCount {
				return nil, fmt.Errorf("(%d,%d) -> %d outside strip: %w", r, c, i, ErrInvalidTopology)
			}
			if seen[i] {
				prev := m.inv[i]
				return nil, fmt.Errorf("(%d,%d) and (%d,%d) both map to %d: %w",
					prev.Row, prev.Col, r, c, i, ErrInvalidTopology)
			}
			seen[i] = true
			m.fwd[r][c] = i
			m.inv[i] = model.Coord{Row: r, Col: c}
		}
	}
	// every coordinate landed on a distinct in-range slot, so no gaps remain
	return m, nil
}

// MustNew panics on an invalid topology.
func MustNew(t Topology) *AddressMap {
	m, err := New(t)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *AddressMap) PhysicalIndex(row, col int) (int, error) {
	if !model.InBounds(row, col) {
		return 0, fmt.Errorf("coordinate (%d,%d): %w", row, col, model.ErrOutOfRange)
	}
	return m.fwd[row][col], nil
}

// Coord is the inverse of PhysicalIndex.
func (m *AddressMap) Coord(index int) (model.Coord, error) {
	if index < 0 || index >= model.LedCount {
		return model.Coord{}, fmt.Errorf("strip index %d: %w", index, model.ErrOutOfRange)
	}
	return m.inv[index], nil
}

// Count is the number of LEDs on the strip.
func (m *AddressMap) Count() int { return model.LedCount }
