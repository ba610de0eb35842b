package grid

import "strings"

// ChunkSize is the edge length of one chunk. Chunk (0,0) covers rows and
// columns 0..63, chunk (1,0) covers rows 64..127, and so on. Negative
// positions floor toward the neighboring negative chunk.
const ChunkSize = 64

type chunkKey struct {
	row, col int
}

// chunk is one lazily allocated square region. occupied counts non-zero
// cells so the grid can drop the chunk the moment it empties.
type chunk struct {
	cells    [ChunkSize * ChunkSize]Cell
	occupied int
}

// Grid is the sparse chunked store. The zero value is not usable; call New.
type Grid struct {
	chunks map[chunkKey]*chunk
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{chunks: make(map[chunkKey]*chunk)}
}

// floorDiv divides rounding toward negative infinity, so chunk keys are
// correct for negative positions too.
func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

func floorMod(a, n int) int {
	m := a % n
	if m != 0 && (m < 0) != (n < 0) {
		m += n
	}
	return m
}

func split(p Pos) (chunkKey, int) {
	key := chunkKey{row: floorDiv(p.Row, ChunkSize), col: floorDiv(p.Col, ChunkSize)}
	idx := floorMod(p.Row, ChunkSize)*ChunkSize + floorMod(p.Col, ChunkSize)
	return key, idx
}

// Get returns the cell at p, or the zero Cell if nothing was ever written
// there. Never allocates.
func (g *Grid) Get(p Pos) Cell {
	key, idx := split(p)
	c, ok := g.chunks[key]
	if !ok {
		return Cell{}
	}
	return c.cells[idx]
}

// Set writes the cell at p, materializing the chunk on demand. Writing the
// zero Cell deletes the stored cell; doing so into an absent chunk is a
// no-op so probing empty space never allocates. A chunk whose last cell is
// deleted is removed from the map.
func (g *Grid) Set(p Pos, c Cell) {
	key, idx := split(p)
	ch, ok := g.chunks[key]
	if !ok {
		if c.IsZero() {
			return
		}
		ch = &chunk{}
		g.chunks[key] = ch
	}
	prev := ch.cells[idx]
	ch.cells[idx] = c
	switch {
	case prev.IsZero() && !c.IsZero():
		ch.occupied++
	case !prev.IsZero() && c.IsZero():
		ch.occupied--
		if ch.occupied == 0 {
			delete(g.chunks, key)
		}
	}
}

// Clear drops all content.
func (g *Grid) Clear() {
	g.chunks = make(map[chunkKey]*chunk)
}

// ClearRegion deletes every cell inside r.
func (g *Grid) ClearRegion(r Rect) {
	for row := r.MinRow; row <= r.MaxRow; row++ {
		for col := r.MinCol; col <= r.MaxCol; col++ {
			g.Set(Pos{Row: row, Col: col}, Cell{})
		}
	}
}

// IterRegion calls fn for every non-zero cell inside r, in row-major order,
// visiting only materialized chunks. Iteration stops early if fn returns
// false.
func (g *Grid) IterRegion(r Rect, fn func(Pos, Cell) bool) {
	minCK := floorDiv(r.MinRow, ChunkSize)
	maxCK := floorDiv(r.MaxRow, ChunkSize)
	minCC := floorDiv(r.MinCol, ChunkSize)
	maxCC := floorDiv(r.MaxCol, ChunkSize)
	for row := r.MinRow; row <= r.MaxRow; row++ {
		ck := floorDiv(row, ChunkSize)
		if ck < minCK || ck > maxCK {
			continue
		}
		for cc := minCC; cc <= maxCC; cc++ {
			ch, ok := g.chunks[chunkKey{row: ck, col: cc}]
			if !ok {
				continue
			}
			base := cc * ChunkSize
			lo := max(r.MinCol, base)
			hi := min(r.MaxCol, base+ChunkSize-1)
			rowOff := floorMod(row, ChunkSize) * ChunkSize
			for col := lo; col <= hi; col++ {
				cell := ch.cells[rowOff+floorMod(col, ChunkSize)]
				if cell.IsZero() {
					continue
				}
				if !fn(Pos{Row: row, Col: col}, cell) {
					return
				}
			}
		}
	}
}

// Bounds returns the tight rectangle around all written cells. ok is false
// when the grid is empty.
func (g *Grid) Bounds() (Rect, bool) {
	first := true
	var r Rect
	for key, ch := range g.chunks {
		if ch.occupied == 0 {
			continue
		}
		for i, cell := range ch.cells {
			if cell.IsZero() {
				continue
			}
			p := Pos{
				Row: key.row*ChunkSize + i/ChunkSize,
				Col: key.col*ChunkSize + i%ChunkSize,
			}
			if first {
				r = Rect{MinRow: p.Row, MaxRow: p.Row, MinCol: p.Col, MaxCol: p.Col}
				first = false
				continue
			}
			r.MinRow = min(r.MinRow, p.Row)
			r.MaxRow = max(r.MaxRow, p.Row)
			r.MinCol = min(r.MinCol, p.Col)
			r.MaxCol = max(r.MaxCol, p.Col)
		}
	}
	return r, !first
}

// RowExtent returns the first and last written column on a row. ok is false
// when the row holds no cells.
func (g *Grid) RowExtent(row int) (lo, hi int, ok bool) {
	ck := floorDiv(row, ChunkSize)
	rowOff := floorMod(row, ChunkSize) * ChunkSize
	for key, ch := range g.chunks {
		if key.row != ck {
			continue
		}
		for i := 0; i < ChunkSize; i++ {
			if ch.cells[rowOff+i].IsZero() {
				continue
			}
			col := key.col*ChunkSize + i
			if !ok {
				lo, hi, ok = col, col, true
				continue
			}
			lo = min(lo, col)
			hi = max(hi, col)
		}
	}
	return lo, hi, ok
}

// CellCount returns the number of written cells.
func (g *Grid) CellCount() int {
	n := 0
	for _, ch := range g.chunks {
		n += ch.occupied
	}
	return n
}

// ChunkCount returns the number of materialized chunks.
func (g *Grid) ChunkCount() int {
	return len(g.chunks)
}

// Line renders one row between columns lo and hi inclusive as text.
func (g *Grid) Line(row, lo, hi int) string {
	var b strings.Builder
	b.Grow(hi - lo + 1)
	for col := lo; col <= hi; col++ {
		b.WriteRune(g.Get(Pos{Row: row, Col: col}).Display())
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines serializes the content area to text lines, one per row from the top
// of content to the bottom, columns starting at 0 so saved notes keep their
// indentation. An empty grid serializes to a single empty line.
func (g *Grid) Lines() []string {
	b, ok := g.Bounds()
	if !ok {
		return []string{""}
	}
	lines := make([]string, 0, b.MaxRow-min(b.MinRow, 0)+1)
	start := min(b.MinRow, 0)
	for row := start; row <= b.MaxRow; row++ {
		lines = append(lines, g.Line(row, 0, b.MaxCol))
	}
	return lines
}

// LoadLines replaces the grid content with the given text lines, row 0 at
// the top. Spaces are not stored; indentation survives through positioning.
func (g *Grid) LoadLines(lines []string) {
	g.Clear()
	for row, line := range lines {
		col := 0
		for _, r := range line {
			if r != ' ' && r != '\t' {
				g.Set(Pos{Row: row, Col: col}, Cell{Rune: r})
			}
			col++
		}
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := New()
	for key, ch := range g.chunks {
		cp := *ch
		out.chunks[key] = &cp
	}
	return out
}
