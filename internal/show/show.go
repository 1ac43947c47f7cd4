// Package show sequences clips of sprites, effects and scrolls on a matrix.
// A Show is ticked by the caller's frame loop and never renders by itself.
package show

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-pixiboo/matrix"
)

// Version is the program format this package reads.
const Version = "show.v1"

type Show struct {
	*Player
	stage *Stage
}

// New validates prog and loads it. The show starts Idle; call Start.
func New(m *matrix.Matrix, prog Program) (*Show, error) {
	if err := Validate(prog); err != nil {
		return nil, err
	}
	st := NewStage(m, prog.Seed)
	p := NewPlayer(st.Hooks())
	if err := p.Load(prog); err != nil {
		return nil, err
	}
	return &Show{Player: p, stage: st}, nil
}

// Tick advances by dt seconds and paints the resulting frame into the
// matrix. It reports false once a non-looping program has finished.
func (s *Show) Tick(dt float64) bool {
	s.Player.Tick(dt)
	if s.State == Idle {
		return false
	}
	_, t := s.Current()
	s.stage.Paint(t)
	return true
}

// Validate checks every clip can be painted.
func Validate(prog Program) error {
	if prog.Version != "" && prog.Version != Version {
		return fmt.Errorf("unsupported program version %q", prog.Version)
	}
	if len(prog.Clips) == 0 {
		return errors.New("program has no clips")
	}
	var errs []error
	for i, c := range prog.Clips {
		if err := validateClip(c, prog.Seed); err != nil {
			errs = append(errs, fmt.Errorf("clip %d (%s): %w", i, c.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateClip(c Clip, seed int64) error {
	if err := checkTiming(c); err != nil {
		return err
	}
	if env, ok := c.Params[ParamBrightness]; ok {
		if lo, hi := env.Range(); lo < 0 || hi > 1 {
			return fmt.Errorf("brightness keys must be within [0,1], got [%v,%v]", lo, hi)
		}
	}
	_, err := compile(c, seed)
	return err
}

// Parse reads a YAML program.
func Parse(data []byte) (Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Program{}, fmt.Errorf("parse show: %w", err)
	}
	return p, nil
}

func LoadFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Program{}, err
	}
	return Parse(data)
}
