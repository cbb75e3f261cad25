package screen_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/glyphgrid/screen"
)

func TestBuildDecorations(t *testing.T) {
	bg := tcell.ColorNavy

	t.Run("all-edges color applies to the flagged edges only", func(t *testing.T) {
		d, issues := screen.BuildDecorations(screen.Attributes{
			Flags:       screen.AttrBorderTop | screen.AttrBorderLeft,
			BorderColor: tcell.ColorFuchsia,
		}, bg)
		require.Empty(t, issues)

		assert.Equal(t, screen.Border{Enabled: true, Color: tcell.ColorFuchsia}, d.Borders[screen.EdgeTop])
		assert.Equal(t, screen.Border{Enabled: true, Color: tcell.ColorFuchsia}, d.Borders[screen.EdgeLeft])
		assert.False(t, d.Borders[screen.EdgeRight].Enabled)
		assert.False(t, d.Borders[screen.EdgeBottom].Enabled)
		assert.True(t, d.HasBorder())
	})

	t.Run("edge color beats all-edges color beats background", func(t *testing.T) {
		d, issues := screen.BuildDecorations(screen.Attributes{
			Flags:          screen.AttrBorderAll,
			BorderColor:    tcell.ColorRed,
			BorderTopColor: tcell.ColorBlue,
		}, bg)
		require.Empty(t, issues)
		assert.Equal(t, tcell.ColorBlue, d.Borders[screen.EdgeTop].Color)
		assert.Equal(t, tcell.ColorRed, d.Borders[screen.EdgeRight].Color)

		d, _ = screen.BuildDecorations(screen.Attributes{Flags: screen.AttrBorderBottom}, bg)
		assert.Equal(t, bg, d.Borders[screen.EdgeBottom].Color)
	})

	t.Run("blink rate", func(t *testing.T) {
		d, issues := screen.BuildDecorations(screen.Attributes{Flags: screen.AttrBlinking}, bg)
		require.Empty(t, issues)
		assert.True(t, d.Blink)
		assert.Equal(t, screen.DefaultBlinkRate, d.BlinkRate)

		d, _ = screen.BuildDecorations(screen.Attributes{Flags: screen.AttrBlinking, BlinkRate: 250 * time.Millisecond}, bg)
		assert.Equal(t, 250*time.Millisecond, d.BlinkRate)

		d, issues = screen.BuildDecorations(screen.Attributes{Flags: screen.AttrBlinking, BlinkRate: -time.Second}, bg)
		assert.Len(t, issues, 1)
		assert.Equal(t, screen.DefaultBlinkRate, d.BlinkRate)
	})

	t.Run("conflicting wall preferences fall back to the default style", func(t *testing.T) {
		d, issues := screen.BuildDecorations(screen.Attributes{
			Flags:               screen.AttrAutoWall,
			WallSingleLine:      true,
			WallDoubleLine:      true,
			WallBorderOnly:      true,
			WallBorderInclusive: true,
		}, bg)
		require.Len(t, issues, 2)
		var attrErr *screen.AttributeError
		require.ErrorAs(t, issues[0], &attrErr)
		assert.Equal(t, screen.ArgWallDoubleLine, attrErr.Key)
		assert.Contains(t, attrErr.Error(), screen.ArgWallSingleLine)

		assert.True(t, d.Wall)
		assert.Equal(t, screen.WallLineDefault, d.WallLine)
		assert.Equal(t, screen.WallExtentDefault, d.WallExtent)
	})

	t.Run("arguments without their flag are dropped", func(t *testing.T) {
		d, issues := screen.BuildDecorations(screen.Attributes{
			Flags:            screen.AttrBorderTop | 0x8000,
			BorderRightColor: tcell.ColorGreen,
			WallDoubleLine:   true,
			BlinkRate:        time.Second,
		}, bg)
		assert.Len(t, issues, 4)
		assert.True(t, d.Borders[screen.EdgeTop].Enabled)
		assert.False(t, d.Borders[screen.EdgeRight].Enabled)
		assert.False(t, d.Wall)
		assert.False(t, d.Blink)
	})
}

func TestParseAttributeArgs(t *testing.T) {
	t.Run("heterogeneous values", func(t *testing.T) {
		a, issues := screen.ParseAttributeArgs(screen.AttrBorderAll|screen.AttrBlinking|screen.AttrAutoWall, map[string]any{
			screen.ArgBorderColor:       "red",
			screen.ArgBorderTopColor:    0x00FF00,
			screen.ArgBorderLeftColor:   tcell.ColorYellow,
			screen.ArgBlinkRate:         250,
			screen.ArgWallDoubleLine:    true,
			screen.ArgWallBorderOnly:    false,
			screen.ArgBorderBottomColor: "default",
		})
		require.Empty(t, issues)
		assert.Equal(t, tcell.ColorRed, a.BorderColor)
		assert.Equal(t, tcell.NewHexColor(0x00FF00), a.BorderTopColor)
		assert.Equal(t, tcell.ColorYellow, a.BorderLeftColor)
		assert.Equal(t, tcell.ColorDefault, a.BorderBottomColor)
		assert.Equal(t, 250*time.Millisecond, a.BlinkRate)
		assert.True(t, a.WallDoubleLine)
	})

	t.Run("wrong types and unknown keys", func(t *testing.T) {
		a, issues := screen.ParseAttributeArgs(screen.AttrBlinking, map[string]any{
			screen.ArgBlinkRate:      "fast",
			screen.ArgWallSingleLine: 1,
			"Sparkle":                true,
		})
		require.Len(t, issues, 3)
		assert.Zero(t, a.BlinkRate)

		// Keys are checked in sorted order.
		var attrErr *screen.AttributeError
		require.ErrorAs(t, issues[0], &attrErr)
		assert.Equal(t, screen.ArgBlinkRate, attrErr.Key)
		assert.Equal(t, "duration or milliseconds", attrErr.Expected)
		require.ErrorAs(t, issues[1], &attrErr)
		assert.Equal(t, "Sparkle", attrErr.Key)
		require.ErrorAs(t, issues[2], &attrErr)
		assert.Equal(t, screen.ArgWallSingleLine, attrErr.Key)
		assert.Equal(t, "bool", attrErr.Expected)
	})

	t.Run("numeric colors outside 24-bit RGB", func(t *testing.T) {
		a, issues := screen.ParseAttributeArgs(screen.AttrBorderAll, map[string]any{
			screen.ArgBorderTopColor:    0x1000000,
			screen.ArgBorderRightColor:  int32(-1),
			screen.ArgBorderBottomColor: 0xFFFFFF,
		})
		require.Len(t, issues, 2)
		assert.Equal(t, tcell.ColorDefault, a.BorderTopColor)
		assert.Equal(t, tcell.ColorDefault, a.BorderRightColor)
		assert.Equal(t, tcell.NewHexColor(0xFFFFFF), a.BorderBottomColor)

		var attrErr *screen.AttributeError
		require.ErrorAs(t, issues[0], &attrErr)
		assert.Equal(t, screen.ArgBorderRightColor, attrErr.Key)
		assert.Equal(t, "color", attrErr.Expected)
		require.ErrorAs(t, issues[1], &attrErr)
		assert.Equal(t, screen.ArgBorderTopColor, attrErr.Key)
	})
}

func TestPlaceAttributes(t *testing.T) {
	conflict := screen.WithAttributeArgs(screen.AttrAutoWall, map[string]any{
		screen.ArgWallSingleLine: true,
		screen.ArgWallDoubleLine: true,
	})

	t.Run("strict rejects a conflicting wall style", func(t *testing.T) {
		s := newScreen(t, 10, 10)
		h, err := s.Place(screen.GlyphWall, 1, 1, conflict)
		require.Error(t, err)
		var attrErr *screen.AttributeError
		require.ErrorAs(t, err, &attrErr)
		assert.Equal(t, screen.ArgWallDoubleLine, attrErr.Key)
		assert.False(t, h.Valid())
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("strict rejects an out of range color", func(t *testing.T) {
		s := newScreen(t, 10, 10)
		_, err := s.Place(screen.MustGlyph('b'), 1, 1, screen.WithAttributeArgs(screen.AttrBorderTop, map[string]any{
			screen.ArgBorderTopColor: -5,
		}))
		var attrErr *screen.AttributeError
		require.ErrorAs(t, err, &attrErr)
		assert.Equal(t, screen.ArgBorderTopColor, attrErr.Key)
		assert.Equal(t, 0, s.Pending())
	})

	t.Run("permissive places with the default wall style", func(t *testing.T) {
		s := newScreen(t, 10, 10, permissive)
		h, err := s.Place(screen.GlyphWall, 1, 1, conflict)
		require.NoError(t, err)
		render(t, s, nil)

		d := h.Decorations()
		assert.True(t, d.Wall)
		assert.Equal(t, screen.WallLineDefault, d.WallLine)
		assert.Equal(t, h.Id(), occupant(t, s, screen.LayerPlay, 1, 1))
	})

	t.Run("strict rejects wrong argument types", func(t *testing.T) {
		s := newScreen(t, 10, 10)
		_, err := s.Place(screen.GlyphWall, 1, 1, screen.WithAttributeArgs(screen.AttrBlinking, map[string]any{
			screen.ArgBlinkRate: "soon",
		}))
		var attrErr *screen.AttributeError
		require.ErrorAs(t, err, &attrErr)
		assert.Equal(t, screen.ArgBlinkRate, attrErr.Key)
	})
}
