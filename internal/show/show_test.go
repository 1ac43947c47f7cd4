package show

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-pixiboo/layout"
	"github.com/coreman2200/funtimes-pixiboo/led"
	"github.com/coreman2200/funtimes-pixiboo/matrix"
	"github.com/coreman2200/funtimes-pixiboo/model"
)

func newMatrix(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(led.NewSim(model.LedCount), layout.MustNew(layout.Pixiboo))
	require.NoError(t, err)
	return m
}

func at(t *testing.T, m *matrix.Matrix, row, col int) model.Color {
	t.Helper()
	c, err := m.Pixel(row, col)
	require.NoError(t, err)
	return c
}

const demo = `
version: show.v1
loop: true
seed: 3
clips:
  - name: beat
    kind: sprite
    sprite: heart
    color: pink
    durationS: 2
    params:
      brightness:
        - {t: 0, v: 0.1, ease: smooth}
        - {t: 1, v: 0.6}
  - name: slide
    kind: scroll
    sprite: arrow-left
    dir: left
    stepS: 0.5
    durationS: 4
    xFadeS: 1
  - name: words
    kind: marquee
    sprites: [heart, smile]
    stepS: 0.1
    durationS: 3
    flags:
      blank: 0
`

func TestParseProgram(t *testing.T) {
	prog, err := Parse([]byte(demo))
	require.NoError(t, err)
	require.Len(t, prog.Clips, 3)
	assert.True(t, prog.Loop)
	assert.Equal(t, int64(3), prog.Seed)

	env := prog.Clips[0].Params[ParamBrightness]
	require.Len(t, env.Keys, 2)
	assert.Equal(t, "smooth", env.Keys[0].Ease)
	assert.Equal(t, Keyframe{V: 0}, prog.Clips[2].Flags[FlagBlank].Keys[0])
	require.NoError(t, Validate(prog))

	out, err := yaml.Marshal(prog)
	require.NoError(t, err)
	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, prog, again)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("clips: [unterminated"))
	assert.Error(t, err)

	_, err = Parse([]byte("clips:\n  - params:\n      brightness: {a: 1}\n"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demo), 0644))
	prog, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "beat", prog.Clips[0].Name)
}

func TestValidate(t *testing.T) {
	ok := Clip{Name: "x", Kind: KindFill, Color: "red", DurationS: 1}
	assert.NoError(t, Validate(Program{Clips: []Clip{ok}}))

	bad := []Clip{
		{Kind: KindFill, Color: "red"},
		{Kind: KindFill, Color: "red", DurationS: 1, XFadeS: 2},
		{Kind: KindFill, Color: "mauve", DurationS: 1},
		{Kind: KindSprite, Sprite: "dragon", DurationS: 1},
		{Kind: KindEffect, Effect: "strobe", DurationS: 1},
		{Kind: KindScroll, Sprite: "heart", Dir: "sideways", DurationS: 1},
		{Kind: KindMarquee, DurationS: 1},
		{Kind: "video", DurationS: 1},
		{Kind: KindFill, Color: "red", DurationS: 1, Params: map[string]Envelope{
			ParamBrightness: {Keys: []Keyframe{{V: 1.5}}},
		}},
	}
	for i, c := range bad {
		assert.Error(t, Validate(Program{Clips: []Clip{c}}), "case %d", i)
	}
	assert.Error(t, Validate(Program{}))
	assert.Error(t, Validate(Program{Version: "seq.v1", Clips: []Clip{ok}}))
}

func TestShowPaintsSpriteWithBrightness(t *testing.T) {
	m := newMatrix(t)
	prog, err := Parse([]byte(demo))
	require.NoError(t, err)
	s, err := New(m, prog)
	require.NoError(t, err)
	s.Start()

	require.True(t, s.Tick(0.5))
	heart := model.Heart.Tint(model.Pink)
	assert.Equal(t, heart.At(1, 1), at(t, m, 1, 1))
	assert.Equal(t, model.Off, at(t, m, 0, 0))
	assert.InDelta(t, 0.35, m.Brightness(), 1e-9)
}

func TestShowScrollAndCrossfade(t *testing.T) {
	m := newMatrix(t)
	prog := Program{Clips: []Clip{
		{Name: "r", Kind: KindScroll, Sprite: "heart", Dir: "right", StepS: 1, DurationS: 4, XFadeS: 2},
		{Name: "w", Kind: KindFill, Color: "white", DurationS: 1},
	}}
	s, err := New(m, prog)
	require.NoError(t, err)
	s.Start()

	s.Tick(1)
	ref := newMatrix(t)
	ref.Draw(model.Heart)
	ref.ScrollRight()
	assert.Equal(t, ref.Snapshot(), m.Snapshot())

	s.Tick(2) // t=3: half way through the fade, three steps right
	ref.ScrollRight()
	ref.ScrollRight()
	want := model.Blend(at(t, ref, 0, 0), model.White, 0.5)
	assert.Equal(t, want, at(t, m, 0, 0))

	s.Tick(1)
	assert.Equal(t, model.White, at(t, m, 3, 3))
	assert.True(t, s.Tick(0.5))
	assert.False(t, s.Tick(0.5), "finished")
}

func TestMarquee(t *testing.T) {
	m := newMatrix(t)
	var strip [][model.Rows]model.Color
	strip = appendColumns(strip, model.Heart)
	require.Len(t, strip, model.Cols+1)

	paintMarquee(m, strip, 0)
	for _, px := range m.Snapshot() {
		assert.Equal(t, model.Off, px.Color)
	}

	// one column in: sprite column 0 sits on the right edge
	paintMarquee(m, strip, 1)
	for row := 0; row < model.Rows; row++ {
		assert.Equal(t, model.Heart.At(row, 0), at(t, m, row, 6))
	}

	// fully in
	paintMarquee(m, strip, model.Cols)
	for row := 0; row < model.Rows; row++ {
		for col := 0; col < model.Cols; col++ {
			assert.Equal(t, model.Heart.At(row, col), at(t, m, row, col))
		}
	}

	// wraps after the strip has left
	paintMarquee(m, strip, len(strip)+model.Cols+1)
	for row := 0; row < model.Rows; row++ {
		assert.Equal(t, model.Heart.At(row, 0), at(t, m, row, 6))
	}
}

func TestStageBlankFlag(t *testing.T) {
	m := newMatrix(t)
	st := NewStage(m, 1)
	h := st.Hooks()
	h.SetClip(Clip{Kind: KindFill, Color: "red", DurationS: 1})
	st.Paint(0)
	assert.Equal(t, model.Red, at(t, m, 2, 2))

	h.SetFlag(FlagBlank, true)
	st.Paint(0.1)
	assert.Equal(t, model.Off, at(t, m, 2, 2))

	h.SetClip(Clip{Kind: "bogus"})
	m.Fill(model.Blue)
	st.Paint(0)
	assert.Equal(t, model.Off, at(t, m, 2, 2), "unpaintable clips clear")
}
