package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateCounts(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindI, 2},
		{KindO, 1},
		{KindT, 4},
		{KindS, 2},
		{KindZ, 2},
		{KindJ, 4},
		{KindL, 4},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.StateCount())
		})
	}
}

func TestEveryStateHasFourCells(t *testing.T) {
	for kind := Kind(0); kind < KindCount; kind++ {
		for rotation := 0; rotation < kind.StateCount(); rotation++ {
			p := Piece{Kind: kind, Rotation: rotation}
			cells := p.Cells()
			require.Len(t, cells, 4, "%s rotation %d", kind, rotation)
			for _, c := range cells {
				assert.True(t, c.X >= 0 && c.X < 5, "%s rotation %d cell %v", kind, rotation, c)
				assert.True(t, c.Y >= 0 && c.Y < 5, "%s rotation %d cell %v", kind, rotation, c)
			}
		}
	}
}

func TestCellsAreAnchorRelative(t *testing.T) {
	p := Piece{Kind: KindO, X: 3, Y: 0}
	assert.ElementsMatch(t, []Point{{4, 2}, {5, 2}, {4, 3}, {5, 3}}, p.Cells())

	p = Piece{Kind: KindI, X: 0, Y: 0, Rotation: 1}
	assert.ElementsMatch(t, []Point{{0, 2}, {1, 2}, {2, 2}, {3, 2}}, p.Cells())
}

func TestRotationIndexNormalized(t *testing.T) {
	base := Piece{Kind: KindS, X: 2, Y: 4, Rotation: 1}
	wrapped := base
	wrapped.Rotation = 3
	assert.Equal(t, base.Cells(), wrapped.Cells())

	negative := base
	negative.Rotation = -1
	assert.Equal(t, base.Cells(), negative.Cells())
}

func TestPreviewCellsMatchSpawnOrientation(t *testing.T) {
	for kind := Kind(0); kind < KindCount; kind++ {
		p := Piece{Kind: kind}
		assert.Equal(t, p.Cells(), PreviewCells(kind), kind.String())
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "I", KindI.String())
	assert.Equal(t, "L", KindL.String())
	assert.Equal(t, "?", Kind(42).String())
}
