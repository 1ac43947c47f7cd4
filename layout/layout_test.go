package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-pixiboo/model"
)

func TestPresetsAreBijections(t *testing.T) {
	for name, w := range map[string]Wiring{
		"serpentine":  Serpentine,
		"progressive": Progressive,
		"pixiboo":     Pixiboo,
		"all-flags":   {Serpentine: true, FlipCols: true, Reverse: true},
	} {
		t.Run(name, func(t *testing.T) {
			m, err := New(w)
			require.NoError(t, err)

			seen := map[int]bool{}
			for r := 0; r < model.Rows; r++ {
				for c := 0; c < model.Cols; c++ {
					i, err := m.PhysicalIndex(r, c)
					require.NoError(t, err)
					assert.False(t, seen[i], "index %d hit twice", i)
					seen[i] = true

					back, err := m.Coord(i)
					require.NoError(t, err)
					assert.Equal(t, model.Coord{Row: r, Col: c}, back)
				}
			}
			assert.Len(t, seen, model.LedCount)
			for i := 0; i < model.LedCount; i++ {
				assert.True(t, seen[i], "index %d never produced", i)
			}
		})
	}
}

func TestSerpentineRows(t *testing.T) {
	m := MustNew(Serpentine)
	idx := func(r, c int) int {
		i, err := m.PhysicalIndex(r, c)
		require.NoError(t, err)
		return i
	}
	assert.Equal(t, 0, idx(0, 0))
	assert.Equal(t, 6, idx(0, 6))
	assert.Equal(t, 13, idx(1, 0), "odd rows run backwards")
	assert.Equal(t, 7, idx(1, 6))
	assert.Equal(t, 14, idx(2, 0))
	assert.Equal(t, 48, idx(6, 6))
}

func TestProgressiveRows(t *testing.T) {
	m := MustNew(Progressive)
	i, err := m.PhysicalIndex(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 7, i)
	i, err = m.PhysicalIndex(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 24, i)
}

func TestPixibooBoard(t *testing.T) {
	m := MustNew(Pixiboo)
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			i, err := m.PhysicalIndex(r, c)
			require.NoError(t, err)
			assert.Equal(t, 42-7*r+c, i)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	m := MustNew(Serpentine)
	for _, rc := range [][2]int{{7, 0}, {0, -1}, {-1, -1}, {0, 7}} {
		_, err := m.PhysicalIndex(rc[0], rc[1])
		assert.ErrorIs(t, err, model.ErrOutOfRange)
	}
	_, err := m.Coord(49)
	assert.ErrorIs(t, err, model.ErrOutOfRange)
	_, err = m.Coord(-1)
	assert.ErrorIs(t, err, model.ErrOutOfRange)
}

func TestInvalidTopologies(t *testing.T) {
	collide := TopologyFunc(func(r, c int) int { return r * model.Cols })
	_, err := New(collide)
	assert.ErrorIs(t, err, ErrInvalidTopology)

	overflow := TopologyFunc(func(r, c int) int { return r*model.Cols + c + 1 })
	_, err = New(overflow)
	assert.ErrorIs(t, err, ErrInvalidTopology)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrInvalidTopology)

	assert.Panics(t, func() { MustNew(collide) })
}

func TestParseWiring(t *testing.T) {
	w, err := ParseWiring("Pixiboo")
	require.NoError(t, err)
	assert.Equal(t, Pixiboo, w)

	w, err = ParseWiring("")
	require.NoError(t, err)
	assert.Equal(t, Serpentine, w)

	_, err = ParseWiring("spiral")
	assert.Error(t, err)
}
