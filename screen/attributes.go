package screen

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
)

// AttrFlags selects the decorations attached to an item when it is placed.
type AttrFlags uint32

const (
	AttrBlinking     AttrFlags = 0x0001
	AttrBorderRight  AttrFlags = 0x0002
	AttrBorderLeft   AttrFlags = 0x0004
	AttrBorderTop    AttrFlags = 0x0008
	AttrBorderBottom AttrFlags = 0x0010
	AttrAutoWall     AttrFlags = 0x0020

	AttrBorderAll = AttrBorderRight | AttrBorderLeft | AttrBorderTop | AttrBorderBottom

	attrKnown = AttrBlinking | AttrBorderAll | AttrAutoWall
)

// DefaultBlinkRate is used when AttrBlinking is set without a rate.
const DefaultBlinkRate = 500 * time.Millisecond

// Keys accepted by ParseAttributeArgs.
const (
	ArgBorderColor         = "BorderColorArgument"
	ArgBorderTopColor      = "BorderTopColor"
	ArgBorderRightColor    = "BorderRightColor"
	ArgBorderBottomColor   = "BorderBottomColor"
	ArgBorderLeftColor     = "BorderLeftColor"
	ArgBlinkRate           = "BlinkRate"
	ArgWallSingleLine      = "WallSingleLine"
	ArgWallDoubleLine      = "WallDoubleLine"
	ArgWallBorderOnly      = "WallBorderOnly"
	ArgWallBorderInclusive = "WallBorderInclusive"
)

// Attributes is the placement-time decoration request. Colors left at
// tcell.ColorDefault are unset and fall back along the border color chain.
type Attributes struct {
	Flags     AttrFlags
	BlinkRate time.Duration

	BorderColor       tcell.Color
	BorderTopColor    tcell.Color
	BorderRightColor  tcell.Color
	BorderBottomColor tcell.Color
	BorderLeftColor   tcell.Color

	WallSingleLine      bool
	WallDoubleLine      bool
	WallBorderOnly      bool
	WallBorderInclusive bool
}

// Edge names one side of an item's footprint.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft

	edgeCount
)

func (e Edge) String() string {
	return [...]string{"top", "right", "bottom", "left"}[e]
}

var edgeFlags = [edgeCount]AttrFlags{AttrBorderTop, AttrBorderRight, AttrBorderBottom, AttrBorderLeft}
var edgeArgs = [edgeCount]string{ArgBorderTopColor, ArgBorderRightColor, ArgBorderBottomColor, ArgBorderLeftColor}

// Border is the resolved state of one edge.
type Border struct {
	Enabled bool
	Color   tcell.Color
}

// WallLine is the box-drawing style of an auto-wall.
type WallLine uint8

const (
	WallLineDefault WallLine = iota
	WallLineSingle
	WallLineDouble
)

// WallExtent controls what an auto-wall connects to.
type WallExtent uint8

const (
	// WallExtentDefault connects to other auto-walls only.
	WallExtentDefault WallExtent = iota
	// WallExtentBorderOnly is the explicit form of the default.
	WallExtentBorderOnly
	// WallExtentBorderInclusive also connects to items that carry a border.
	WallExtentBorderInclusive
)

// Decorations is the normalized decoration state stored on an item. It is
// computed once at placement and never recomputed.
type Decorations struct {
	Blink      bool
	BlinkRate  time.Duration
	Borders    [edgeCount]Border
	Wall       bool
	WallLine   WallLine
	WallExtent WallExtent
}

// HasBorder reports whether any edge is drawn.
func (d *Decorations) HasBorder() bool {
	for _, b := range d.Borders {
		if b.Enabled {
			return true
		}
	}
	return false
}

// BuildDecorations turns an attribute request into decoration state. It
// always produces the permissive result: offending arguments are dropped and
// defaults used. Every dropped argument is reported in issues so strict
// callers can reject the placement instead.
func BuildDecorations(a Attributes, bg tcell.Color) (Decorations, []error) {
	var d Decorations
	var issues []error
	reject := func(key, expected, reason string) {
		issues = append(issues, &AttributeError{Key: key, Expected: expected, Reason: reason})
	}

	flags := a.Flags
	if unknown := flags &^ attrKnown; unknown != 0 {
		reject("flags", "", fmt.Sprintf("unknown flag bits 0x%04X", uint32(unknown)))
		flags &= attrKnown
	}

	switch {
	case a.BlinkRate < 0:
		reject(ArgBlinkRate, "non-negative duration", fmt.Sprintf("got %s", a.BlinkRate))
	case a.BlinkRate > 0 && flags&AttrBlinking == 0:
		reject(ArgBlinkRate, "", "set without AttrBlinking")
	}
	if flags&AttrBlinking != 0 {
		d.Blink = true
		d.BlinkRate = DefaultBlinkRate
		if a.BlinkRate > 0 {
			d.BlinkRate = a.BlinkRate
		}
	}

	all := a.BorderColor
	if !colorUsable(all) {
		reject(ArgBorderColor, "color", fmt.Sprintf("invalid color %d", int64(all)))
		all = tcell.ColorDefault
	}
	if all != tcell.ColorDefault && flags&AttrBorderAll == 0 {
		reject(ArgBorderColor, "", "set without any border flag")
	}
	edgeColors := [edgeCount]tcell.Color{a.BorderTopColor, a.BorderRightColor, a.BorderBottomColor, a.BorderLeftColor}
	for e := range edgeCount {
		c := edgeColors[e]
		if !colorUsable(c) {
			reject(edgeArgs[e], "color", fmt.Sprintf("invalid color %d", int64(c)))
			c = tcell.ColorDefault
		}
		if flags&edgeFlags[e] == 0 {
			if c != tcell.ColorDefault {
				reject(edgeArgs[e], "", fmt.Sprintf("set without the %s border flag", e))
			}
			continue
		}
		d.Borders[e] = Border{Enabled: true, Color: firstColor(c, all, bg)}
	}

	wallPrefs := a.WallSingleLine || a.WallDoubleLine || a.WallBorderOnly || a.WallBorderInclusive
	if flags&AttrAutoWall == 0 {
		if wallPrefs {
			reject("wall", "", "wall preferences set without AttrAutoWall")
		}
		return d, issues
	}

	d.Wall = true
	switch {
	case a.WallSingleLine && a.WallDoubleLine:
		reject(ArgWallDoubleLine, "", "conflicts with "+ArgWallSingleLine)
	case a.WallSingleLine:
		d.WallLine = WallLineSingle
	case a.WallDoubleLine:
		d.WallLine = WallLineDouble
	}
	switch {
	case a.WallBorderOnly && a.WallBorderInclusive:
		reject(ArgWallBorderInclusive, "", "conflicts with "+ArgWallBorderOnly)
	case a.WallBorderOnly:
		d.WallExtent = WallExtentBorderOnly
	case a.WallBorderInclusive:
		d.WallExtent = WallExtentBorderInclusive
	}
	return d, issues
}

func colorUsable(c tcell.Color) bool {
	return c == tcell.ColorDefault || c.Valid()
}

func firstColor(colors ...tcell.Color) tcell.Color {
	for _, c := range colors {
		if c != tcell.ColorDefault {
			return c
		}
	}
	return tcell.ColorDefault
}

// ParseAttributeArgs converts the string-keyed argument map form into
// Attributes. Values of the wrong type and unknown keys are dropped and
// reported in issues.
func ParseAttributeArgs(flags AttrFlags, args map[string]any) (Attributes, []error) {
	a := Attributes{Flags: flags}
	var issues []error

	for _, key := range slices.Sorted(maps.Keys(args)) {
		val := args[key]
		var err error
		switch key {
		case ArgBorderColor:
			a.BorderColor, err = argColor(key, val)
		case ArgBorderTopColor:
			a.BorderTopColor, err = argColor(key, val)
		case ArgBorderRightColor:
			a.BorderRightColor, err = argColor(key, val)
		case ArgBorderBottomColor:
			a.BorderBottomColor, err = argColor(key, val)
		case ArgBorderLeftColor:
			a.BorderLeftColor, err = argColor(key, val)
		case ArgBlinkRate:
			a.BlinkRate, err = argDuration(key, val)
		case ArgWallSingleLine:
			a.WallSingleLine, err = argBool(key, val)
		case ArgWallDoubleLine:
			a.WallDoubleLine, err = argBool(key, val)
		case ArgWallBorderOnly:
			a.WallBorderOnly, err = argBool(key, val)
		case ArgWallBorderInclusive:
			a.WallBorderInclusive, err = argBool(key, val)
		default:
			err = &AttributeError{Key: key, Reason: "unknown attribute argument"}
		}
		if err != nil {
			issues = append(issues, err)
		}
	}
	return a, issues
}

func argColor(key string, v any) (tcell.Color, error) {
	switch c := v.(type) {
	case tcell.Color:
		return c, nil
	case string:
		col := tcell.GetColor(c)
		if col == tcell.ColorDefault && c != "default" {
			return tcell.ColorDefault, &AttributeError{Key: key, Expected: "color", Reason: fmt.Sprintf("unknown color name %q", c)}
		}
		return col, nil
	case int:
		return hexColor(key, int64(c))
	case int32:
		return hexColor(key, int64(c))
	}
	return tcell.ColorDefault, &AttributeError{Key: key, Expected: "color", Reason: fmt.Sprintf("got %T", v)}
}

func hexColor(key string, v int64) (tcell.Color, error) {
	if v < 0 || v > 0xFFFFFF {
		return tcell.ColorDefault, &AttributeError{Key: key, Expected: "color", Reason: fmt.Sprintf("%#x is outside 24-bit RGB", v)}
	}
	return tcell.NewHexColor(int32(v)), nil
}

func argDuration(key string, v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case int:
		return time.Duration(d) * time.Millisecond, nil
	case int64:
		return time.Duration(d) * time.Millisecond, nil
	case float64:
		return time.Duration(d * float64(time.Millisecond)), nil
	}
	return 0, &AttributeError{Key: key, Expected: "duration or milliseconds", Reason: fmt.Sprintf("got %T", v)}
}

func argBool(key string, v any) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, &AttributeError{Key: key, Expected: "bool", Reason: fmt.Sprintf("got %T", v)}
}
