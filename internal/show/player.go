package show

import (
	"errors"
	"fmt"
	"math"
)

func NewPlayer(h Hooks) *Player {
	return &Player{
		State:      Idle,
		hooks:      h,
		armedIndex: -1,
	}
}

// Load replaces the current program and rewinds to Idle. Every clip needs a
// finite positive duration and a crossfade that fits inside it; Tick relies
// on both to make progress.
func (p *Player) Load(prog Program) error {
	if len(prog.Clips) == 0 {
		return errors.New("program has no clips")
	}
	for i, c := range prog.Clips {
		if err := checkTiming(c); err != nil {
			return fmt.Errorf("clip %d (%s): %w", i, c.Name, err)
		}
	}
	p.prog = prog
	p.nowS = 0
	p.idx = 0
	p.State = Idle
	p.disarm()
	return nil
}

func checkTiming(c Clip) error {
	if !(c.DurationS > 0) || math.IsInf(c.DurationS, 0) {
		return errors.New("durationS must be positive")
	}
	if math.IsNaN(c.XFadeS) || c.XFadeS < 0 || c.XFadeS > c.DurationS {
		return errors.New("xFadeS must be within the clip")
	}
	return nil
}

func (p *Player) Program() Program { return p.prog }

// Start moves to Running and activates the current clip.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Clips) == 0 {
		return
	}
	p.State = Running
	p.activate()
}

func (p *Player) Pause() { p.State = Paused }

func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop rewinds to the start of the program.
func (p *Player) Stop() {
	p.State = Idle
	p.nowS = 0
	p.idx = 0
	p.disarm()
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
}

// Seek jumps to absolute program time t, clamped into [0, total).
func (p *Player) Seek(t float64) {
	if len(p.prog.Clips) == 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	total := p.TotalDuration()
	if total > 0 && t >= total {
		t = math.Nextafter(total, -1)
	}
	acc := 0.0
	idx := 0
	for i, c := range p.prog.Clips {
		if t < acc+c.DurationS {
			idx = i
			break
		}
		acc += c.DurationS
	}
	p.idx = idx
	p.nowS = t
	p.disarm()
	p.activate()
}

// Tick advances the program by dt seconds and emits hooks.
func (p *Player) Tick(dt float64) {
	if p.State != Running || len(p.prog.Clips) == 0 || dt <= 0 {
		return
	}
	p.nowS += dt

	clip, localT := p.Current()
	for name, env := range clip.Params {
		if p.hooks.SetParam != nil {
			p.hooks.SetParam(name, env.Eval(localT))
		}
	}
	for name, env := range clip.Flags {
		if p.hooks.SetFlag != nil {
			p.hooks.SetFlag(name, env.BoolEval(localT))
		}
	}
	if clip.XFadeS > 0 {
		remain := clip.DurationS - localT
		if remain <= clip.XFadeS && remain >= 0 {
			next := p.nextIndex()
			if !p.armed && next != -1 && p.hooks.ArmNext != nil {
				p.hooks.ArmNext(p.prog.Clips[next])
				p.armed = true
				p.armedIndex = next
			}
			alpha := clamp01(1.0 - remain/clip.XFadeS)
			if p.armed && p.hooks.SetCrossfade != nil && alpha != p.lastAlpha {
				p.hooks.SetCrossfade(alpha)
				p.lastAlpha = alpha
			}
		}
	}

	// a long dt can cross several short clips
	for p.State == Running && localT >= clip.DurationS {
		p.advanceClip()
		clip, localT = p.Current()
	}
}

// Current returns the active clip and the time into it.
func (p *Player) Current() (Clip, float64) {
	acc := 0.0
	for i := 0; i < p.idx; i++ {
		acc += p.prog.Clips[i].DurationS
	}
	return p.prog.Clips[p.idx], p.nowS - acc
}

// Index is the position of the active clip in the program.
func (p *Player) Index() int { return p.idx }

func (p *Player) TotalDuration() float64 {
	total := 0.0
	for _, c := range p.prog.Clips {
		total += c.DurationS
	}
	return total
}

func (p *Player) nextIndex() int {
	ni := p.idx + 1
	if ni >= len(p.prog.Clips) {
		if p.prog.Loop {
			return 0
		}
		return -1
	}
	return ni
}

func (p *Player) advanceClip() {
	next := p.nextIndex()
	if next == -1 {
		p.State = Idle
		if p.hooks.SetCrossfade != nil {
			p.hooks.SetCrossfade(0)
		}
		return
	}
	if next == 0 {
		// looped: keep the overshoot into the first clip
		p.nowS -= p.TotalDuration()
	}
	p.idx = next
	p.disarm()
	p.activate()
}

func (p *Player) activate() {
	if p.hooks.SetClip != nil {
		p.hooks.SetClip(p.prog.Clips[p.idx])
	}
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
}

func (p *Player) disarm() {
	p.armed = false
	p.armedIndex = -1
	p.lastAlpha = 0
}
