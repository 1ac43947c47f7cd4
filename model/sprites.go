package model

import "strings"

// The built-in sprites. They are read-only by convention; SpriteByName
// hands out copies from its own table, so reassigning one of these vars
// does not change what a name resolves to.
var (
	Heart = MustSprite("heart", []string{
		"0110110",
		"1111111",
		"1111111",
		"1111111",
		"0111110",
		"0011100",
		"0001000",
	}, Red)

	Smile = MustSprite("smile", []string{
		"0000000",
		"0100010",
		"0100010",
		"0000000",
		"1000001",
		"0100010",
		"0011100",
	}, Yellow)

	Cross = MustSprite("cross", []string{
		"1000001",
		"0100010",
		"0010100",
		"0001000",
		"0010100",
		"0100010",
		"1000001",
	}, Red)

	ArrowLeft = MustSprite("arrow-left", []string{
		"0001000",
		"0010000",
		"0100000",
		"1111111",
		"0100000",
		"0010000",
		"0001000",
	}, Green)

	ArrowRight = MustSprite("arrow-right", []string{
		"0001000",
		"0000100",
		"0000010",
		"1111111",
		"0000010",
		"0000100",
		"0001000",
	}, Green)
)

var namedSprites = map[string]Sprite{}

func init() {
	for _, s := range []Sprite{Heart, Smile, Cross, ArrowLeft, ArrowRight} {
		namedSprites[s.Name()] = s
	}
}

// SpriteByName returns one of the built-in sprites.
func SpriteByName(name string) (Sprite, bool) {
	s, ok := namedSprites[strings.ToLower(name)]
	return s, ok
}

// SpriteNames lists the built-in sprites.
func SpriteNames() []string {
	return []string{"heart", "smile", "cross", "arrow-left", "arrow-right"}
}
