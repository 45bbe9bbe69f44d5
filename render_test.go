package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockfall/engine"
)

func TestThemeIndexByName(t *testing.T) {
	assert.Equal(t, 0, themeIndexByName(themes[0].Name))
	assert.Equal(t, len(themes)-1, themeIndexByName(themes[len(themes)-1].Name))
	assert.Equal(t, -1, themeIndexByName("No Such Theme"))
}

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, 1, clampScale(0))
	assert.Equal(t, 3, clampScale(7))
	assert.Equal(t, 2, clampScale(2))
	assert.Equal(t, 0, clampVolumePercent(-5))
	assert.Equal(t, 100, clampVolumePercent(120))
	assert.Equal(t, 4, cellWidth(2))
	assert.Equal(t, 2, cellWidth(-1))
}

func TestRenderMiniPieceDimensions(t *testing.T) {
	theme := themes[0]
	for kind := engine.Kind(0); kind < engine.KindCount; kind++ {
		out := renderMiniPiece(kind, theme, 1)
		require.NotEmpty(t, out, kind.String())
		lines := strings.Split(out, "\n")
		assert.LessOrEqual(t, len(lines), 4, kind.String())
	}
}

func TestRenderBoardCoversGrid(t *testing.T) {
	g := engine.New()
	out := renderBoard(g, themes[0], 1, false)
	lines := strings.Split(out, "\n")
	// Top border, one line per row, bottom border.
	assert.Len(t, lines, g.Height()+2)
}

func TestSoundForLock(t *testing.T) {
	tests := []struct {
		cleared int
		want    SoundEvent
	}{
		{0, SoundLock},
		{1, SoundLine1},
		{2, SoundLine2},
		{3, SoundLine3},
		{4, SoundLine4},
	}
	for _, tt := range tests {
		result := engine.StepResult{Locked: true, Cleared: tt.cleared}
		assert.Equal(t, tt.want, soundForLock(result))
	}
}
