package engine

// Kind identifies one of the seven tetromino shapes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

func (k Kind) String() string {
	if k < 0 || k >= KindCount {
		return "?"
	}
	return [...]string{"I", "O", "T", "S", "Z", "J", "L"}[k]
}

// Cell is the occupancy value of a single grid square. CellEmpty marks a
// free square; any other value is the ordinal of the kind locked there.
// Kept separate from rendering colors on purpose.
type Cell int8

const CellEmpty Cell = -1

// Cell returns the occupancy tag written to the grid when a piece of
// this kind locks.
func (k Kind) Cell() Cell { return Cell(k) }

type Point struct {
	X int
	Y int
}

// Rotation states as 5x5 masks relative to the piece anchor. The rotation
// sequence per kind is fixed: one state for O, two for I/S/Z, four for
// T/J/L.
var maskTables = [KindCount][][]string{
	// I
	{
		{
			".....",
			"..#..",
			"..#..",
			"..#..",
			"..#..",
		},
		{
			".....",
			".....",
			"####.",
			".....",
			".....",
		},
	},
	// O
	{
		{
			".....",
			".....",
			".##..",
			".##..",
			".....",
		},
	},
	// T
	{
		{
			".....",
			".....",
			".#...",
			"###..",
			".....",
		},
		{
			".....",
			".....",
			".#...",
			".##..",
			".#...",
		},
		{
			".....",
			".....",
			".....",
			"###..",
			".#...",
		},
		{
			".....",
			".....",
			".#...",
			"##...",
			".#...",
		},
	},
	// S
	{
		{
			".....",
			".....",
			".##..",
			"##...",
			".....",
		},
		{
			".....",
			".....",
			".#...",
			".##..",
			"..#..",
		},
	},
	// Z
	{
		{
			".....",
			".....",
			"##...",
			".##..",
			".....",
		},
		{
			".....",
			".....",
			"..#..",
			".##..",
			".#...",
		},
	},
	// J
	{
		{
			".....",
			".....",
			".#...",
			".#...",
			"##...",
		},
		{
			".....",
			".....",
			".....",
			"#....",
			"###..",
		},
		{
			".....",
			".....",
			".##..",
			".#...",
			".#...",
		},
		{
			".....",
			".....",
			".....",
			"###..",
			"..#..",
		},
	},
	// L
	{
		{
			".....",
			".....",
			".#...",
			".#...",
			".##..",
		},
		{
			".....",
			".....",
			".....",
			"###..",
			"#....",
		},
		{
			".....",
			".....",
			"##...",
			".#...",
			".#...",
		},
		{
			".....",
			".....",
			".....",
			"..#..",
			"###..",
		},
	},
}

// rotationOffsets holds the parsed cell offsets per kind and rotation
// state. Built once at init and never mutated afterwards.
var rotationOffsets [KindCount][][]Point

func init() {
	for kind, states := range maskTables {
		offsets := make([][]Point, 0, len(states))
		for _, mask := range states {
			offsets = append(offsets, parseMask(mask))
		}
		rotationOffsets[kind] = offsets
	}
}

func parseMask(mask []string) []Point {
	points := make([]Point, 0, 4)
	for y, row := range mask {
		for x, ch := range row {
			if ch == '#' {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// StateCount returns the number of rotation states of the kind.
func (k Kind) StateCount() int {
	return len(rotationOffsets[k])
}

// Piece is a tetromino instance: kind, grid anchor and rotation index.
// The anchor may sit partially above the visible grid right after spawn.
type Piece struct {
	Kind     Kind
	X        int
	Y        int
	Rotation int
}

// Cells returns the absolute grid coordinates occupied by the piece. The
// rotation index is normalized modulo the kind's state count, so any int
// value is safe.
func (p Piece) Cells() []Point {
	offsets := p.offsets()
	cells := make([]Point, len(offsets))
	for i, off := range offsets {
		cells[i] = Point{X: p.X + off.X, Y: p.Y + off.Y}
	}
	return cells
}

func (p Piece) offsets() []Point {
	states := rotationOffsets[p.Kind]
	index := p.Rotation % len(states)
	if index < 0 {
		index += len(states)
	}
	return states[index]
}

// PreviewCells returns the spawn-orientation cells of a kind relative to
// the mask origin, for next-piece previews.
func PreviewCells(k Kind) []Point {
	offsets := rotationOffsets[k][0]
	cells := make([]Point, len(offsets))
	copy(cells, offsets)
	return cells
}
