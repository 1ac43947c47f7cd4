package show

// Keyframe is a value at time T (seconds). Ease applies to the segment that
// starts at this key: "linear" (default), "smooth" or "cubic".
type Keyframe struct {
	T    float64 `yaml:"t"`
	V    float64 `yaml:"v"`
	Ease string  `yaml:"ease,omitempty"`
}

// Envelope is a time-sorted list of keyframes.
type Envelope struct {
	Keys []Keyframe
}

// Clip kinds.
const (
	KindSprite  = "sprite"
	KindEffect  = "effect"
	KindScroll  = "scroll"
	KindMarquee = "marquee"
	KindFill    = "fill"
)

// Param and flag names understood by the stage.
const (
	ParamBrightness = "brightness"
	FlagBlank       = "blank"
)

// Clip is one segment of a show. What it paints depends on Kind:
//
//	sprite:  Sprite, optionally tinted with Color
//	effect:  Effect by name
//	scroll:  Sprite moved one cell every StepS seconds towards Dir
//	marquee: Sprites entering from the right one column every StepS seconds
//	fill:    Color everywhere
type Clip struct {
	Name      string              `yaml:"name"`
	Kind      string              `yaml:"kind"`
	Sprite    string              `yaml:"sprite,omitempty"`
	Sprites   []string            `yaml:"sprites,omitempty"`
	Effect    string              `yaml:"effect,omitempty"`
	Color     string              `yaml:"color,omitempty"`
	Dir       string              `yaml:"dir,omitempty"`
	StepS     float64             `yaml:"stepS,omitempty"`
	DurationS float64             `yaml:"durationS"`
	XFadeS    float64             `yaml:"xFadeS,omitempty"`
	Params    map[string]Envelope `yaml:"params,omitempty"`
	Flags     map[string]Envelope `yaml:"flags,omitempty"`
}

// Program is a full sequence of clips.
type Program struct {
	Version string `yaml:"version"`
	Loop    bool   `yaml:"loop,omitempty"`
	Seed    int64  `yaml:"seed,omitempty"`
	Clips   []Clip `yaml:"clips"`
}

type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are callbacks into whatever paints the clips.
type Hooks struct {
	// SetClip makes c the active clip immediately.
	SetClip func(c Clip)
	// SetParam and SetFlag address the active clip.
	SetParam func(name string, v float64)
	SetFlag  func(name string, b bool)
	// ArmNext prepares the next clip for a crossfade.
	ArmNext      func(c Clip)
	SetCrossfade func(alpha float64)
}

// Player owns the program timeline and drives Hooks. It has no clock of its
// own; the caller advances it with Tick.
type Player struct {
	State PlayerState

	prog Program
	nowS float64
	idx  int

	armedIndex int
	armed      bool
	lastAlpha  float64

	hooks Hooks
}
