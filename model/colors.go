package model

import "strings"

// DefaultBrightness is the level a new matrix starts at. Full white at 1.0
// is uncomfortably bright on the board.
const DefaultBrightness = 0.2

// The named palette. Treat these as constants: Go has no const structs, so
// they are vars, but nothing in this module assigns to them and Named
// resolves names from its own copy taken at start-up.
var (
	Off    = Color{0, 0, 0}
	Black  = Off
	Red    = Color{255, 0, 0}
	Green  = Color{0, 255, 0}
	Blue   = Color{0, 0, 255}
	White  = Color{255, 255, 255}
	Yellow = Color{255, 255, 0}
	Orange = Color{255, 165, 0}
	Purple = Color{128, 0, 128}
	Cyan   = Color{170, 216, 245}
	Pink   = Color{255, 192, 203}
)

var namedColors = map[string]Color{
	"off":    Off,
	"black":  Black,
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"white":  White,
	"yellow": Yellow,
	"orange": Orange,
	"purple": Purple,
	"cyan":   Cyan,
	"pink":   Pink,
}

// Named looks up a color by name ("red", "Blue", ...). Strings starting with
// '#' are parsed as hex.
func Named(name string) (Color, bool) {
	if strings.HasPrefix(name, "#") {
		c, err := ParseHex(name)
		return c, err == nil
	}
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
