// Package engine implements the falling-block simulation: a bounded
// playfield, piece movement and rotation, line clearing and the
// score/level progression. It has no presentation dependencies and no
// internal timer; the caller advances it with Tick.
//
// The engine is single-threaded by design. Callers that need concurrent
// access must serialize every call themselves.
package engine

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

const (
	initialFallInterval = 500 * time.Millisecond
	fallIntervalStep    = 50 * time.Millisecond
	minFallInterval     = 50 * time.Millisecond
	linesPerLevel       = 10
	pointsPerLine       = 100
)

// Game owns the playfield and both piece instances. All state changes go
// through its methods; once Over reports true every mutating method is a
// no-op until Reset.
type Game struct {
	width  int
	height int
	grid   [][]Cell

	current Piece
	next    Piece

	score        int
	level        int
	lines        int
	fallAccum    time.Duration
	fallInterval time.Duration
	over         bool

	rng *rand.Rand
}

// StepResult reports what a single Tick did, so the caller can react to
// locks and clears without polling the whole state.
type StepResult struct {
	Locked     bool
	Cleared    int
	ScoreDelta int
}

// New returns a game on the standard 10x20 grid.
func New() *Game {
	g, err := NewSized(DefaultWidth, DefaultHeight)
	if err != nil {
		panic(err)
	}
	return g
}

// NewSized returns a game on a width x height grid. Dimensions must be
// positive; the grid never changes size afterwards.
func NewSized(width, height int) (*Game, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("engine: invalid grid size %dx%d", width, height)
	}
	g := &Game{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	g.start()
	return g, nil
}

func (g *Game) start() {
	grid := make([][]Cell, g.height)
	for y := range grid {
		row := make([]Cell, g.width)
		for x := range row {
			row[x] = CellEmpty
		}
		grid[y] = row
	}
	g.grid = grid
	g.score = 0
	g.level = 1
	g.lines = 0
	g.fallAccum = 0
	g.fallInterval = initialFallInterval
	g.over = false
	g.current = g.spawnPiece()
	g.next = g.spawnPiece()
}

// Reset reinitializes the game to its construction state.
func (g *Game) Reset() {
	g.start()
}

// spawnPiece draws a kind uniformly at random, independent per spawn, and
// places it at the centered spawn anchor in rotation 0.
func (g *Game) spawnPiece() Piece {
	return Piece{
		Kind: Kind(g.rng.Intn(KindCount)),
		X:    g.width/2 - 2,
		Y:    0,
	}
}

// IsValidPosition reports whether the piece, translated by (dx, dy), fits
// the grid: inside the side walls and floor, and not overlapping occupied
// cells. Cells above the visible grid are exempt from the occupancy check
// but still bounded in x. Pure: neither the piece nor the grid is touched.
func (g *Game) IsValidPosition(p Piece, dx, dy int) bool {
	return g.isValidAt(p, dx, dy, p.Rotation)
}

func (g *Game) isValidAt(p Piece, dx, dy, rotation int) bool {
	candidate := p
	candidate.X += dx
	candidate.Y += dy
	candidate.Rotation = rotation
	for _, c := range candidate.Cells() {
		if c.X < 0 || c.X >= g.width || c.Y >= g.height {
			return false
		}
		if c.Y >= 0 && g.grid[c.Y][c.X] != CellEmpty {
			return false
		}
	}
	return true
}

// placePiece writes the piece's kind tag into every visible cell it
// occupies. Cells above the grid are dropped.
func (g *Game) placePiece(p Piece) {
	for _, c := range p.Cells() {
		if c.Y >= 0 {
			g.grid[c.Y][c.X] = p.Kind.Cell()
		}
	}
}

// clearLines removes every complete row, inserts the same number of empty
// rows at the top and applies the score, level and fall-speed updates.
// A no-op returning 0 when no row is complete.
func (g *Game) clearLines() int {
	kept := make([][]Cell, 0, g.height)
	for _, row := range g.grid {
		if rowComplete(row) {
			continue
		}
		kept = append(kept, row)
	}
	cleared := g.height - len(kept)
	if cleared == 0 {
		return 0
	}
	grid := make([][]Cell, 0, g.height)
	for i := 0; i < cleared; i++ {
		grid = append(grid, emptyRow(g.width))
	}
	g.grid = append(grid, kept...)

	g.lines += cleared
	g.score += cleared * pointsPerLine * g.level
	g.level = g.lines/linesPerLevel + 1
	interval := initialFallInterval - time.Duration(g.level-1)*fallIntervalStep
	if interval < minFallInterval {
		interval = minFallInterval
	}
	g.fallInterval = interval
	return cleared
}

func rowComplete(row []Cell) bool {
	for _, c := range row {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

func emptyRow(width int) []Cell {
	row := make([]Cell, width)
	for x := range row {
		row[x] = CellEmpty
	}
	return row
}

// Tick advances game time by dt. When the accumulated time crosses the
// fall interval the current piece falls one row; if it cannot, it locks,
// complete rows clear and the next piece spawns. At most one gravity step
// is applied per call and the accumulator resets to zero after it.
// Spawning into an invalid position ends the game.
func (g *Game) Tick(dt time.Duration) StepResult {
	if g.over || dt < 0 {
		return StepResult{}
	}
	g.fallAccum += dt
	if g.fallAccum < g.fallInterval {
		return StepResult{}
	}
	g.fallAccum = 0

	if g.IsValidPosition(g.current, 0, 1) {
		g.current.Y++
		return StepResult{}
	}

	scoreBefore := g.score
	g.placePiece(g.current)
	cleared := g.clearLines()
	g.current = g.next
	g.next = g.spawnPiece()
	if !g.IsValidPosition(g.current, 0, 0) {
		g.over = true
	}
	return StepResult{
		Locked:     true,
		Cleared:    cleared,
		ScoreDelta: g.score - scoreBefore,
	}
}

// Move shifts the current piece horizontally by dx when the target
// position is valid. Reports whether the piece moved.
func (g *Game) Move(dx int) bool {
	if g.over {
		return false
	}
	if !g.IsValidPosition(g.current, dx, 0) {
		return false
	}
	g.current.X += dx
	return true
}

// Rotate advances the current piece to its next rotation state when that
// state is valid in place. There is no wall-kick fallback.
func (g *Game) Rotate() bool {
	if g.over {
		return false
	}
	next := (g.current.Rotation + 1) % g.current.Kind.StateCount()
	if !g.isValidAt(g.current, 0, 0, next) {
		return false
	}
	g.current.Rotation = next
	return true
}

// SoftDrop moves the current piece down one row when possible. It never
// locks the piece; only the gravity step in Tick does.
func (g *Game) SoftDrop() bool {
	if g.over {
		return false
	}
	if !g.IsValidPosition(g.current, 0, 1) {
		return false
	}
	g.current.Y++
	return true
}

// HardDrop sinks the current piece to its maximum legal depth. The piece
// locks on the next gravity step, not here.
func (g *Game) HardDrop() int {
	if g.over {
		return 0
	}
	distance := 0
	for g.IsValidPosition(g.current, 0, 1) {
		g.current.Y++
		distance++
	}
	return distance
}

// Width returns the grid width in cells.
func (g *Game) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Game) Height() int { return g.height }

// Grid returns a copy of the playfield, row 0 at the top. The current
// piece is not stamped into it.
func (g *Game) Grid() [][]Cell {
	grid := make([][]Cell, g.height)
	for y, row := range g.grid {
		grid[y] = make([]Cell, g.width)
		copy(grid[y], row)
	}
	return grid
}

// Current returns the falling piece.
func (g *Game) Current() Piece { return g.current }

// Next returns the piece that spawns after the current one locks.
func (g *Game) Next() Piece { return g.next }

// Score returns the accumulated score.
func (g *Game) Score() int { return g.score }

// Level returns the current level, a function of total cleared lines.
func (g *Game) Level() int { return g.level }

// Lines returns the cumulative number of cleared lines.
func (g *Game) Lines() int { return g.lines }

// Over reports whether the board has topped out. Only Reset clears it.
func (g *Game) Over() bool { return g.over }

// FallInterval returns the current gravity interval.
func (g *Game) FallInterval() time.Duration { return g.fallInterval }
