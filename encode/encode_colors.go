package encode

import (
	"fmt"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	ValueColor ColorAttr = iota
	StringColor
	NumberColor
	KeyColor
	IndexColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			StringColor: color.RGB(128, 216, 128).SprintfFunc(),
			NumberColor: color.RGB(128, 216, 236).SprintfFunc(),
			KeyColor:    color.RGB(196, 96, 16).SprintfFunc(),
			IndexColor:  color.RGB(74, 92, 138).SprintfFunc(),
			SepColor:    color.RGB(255, 0, 196).SprintfFunc(),
		},
	}
}

func colorDefault(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

func (c *Colors) Color(attr ColorAttr, v string) string {
	f, ok := c.Map[attr]
	if !ok {
		f = c.Default
	}
	return f("%s", v)
}
