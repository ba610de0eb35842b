package grid

// Pos is a grid coordinate. Row and Col are signed so that coordinate
// arithmetic is total; the editor clamps to non-negative positions before
// writing, and scroll-past-origin is handled by the viewport, never here.
type Pos struct {
	Row, Col int
}

// Add returns p offset by (dRow, dCol).
func (p Pos) Add(dRow, dCol int) Pos {
	return Pos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Before reports whether p precedes q in linear (row-major) order.
func (p Pos) Before(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Rect is an inclusive rectangle of grid positions, stored normalized
// (Min <= Max on both axes).
type Rect struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

// NewRect builds a normalized rectangle from two arbitrary corners, in
// whatever order a drag produced them.
func NewRect(a, b Pos) Rect {
	r := Rect{MinRow: a.Row, MaxRow: b.Row, MinCol: a.Col, MaxCol: b.Col}
	if r.MinRow > r.MaxRow {
		r.MinRow, r.MaxRow = r.MaxRow, r.MinRow
	}
	if r.MinCol > r.MaxCol {
		r.MinCol, r.MaxCol = r.MaxCol, r.MinCol
	}
	return r
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Pos) bool {
	return p.Row >= r.MinRow && p.Row <= r.MaxRow &&
		p.Col >= r.MinCol && p.Col <= r.MaxCol
}

// Rows returns the number of rows the rectangle spans.
func (r Rect) Rows() int { return r.MaxRow - r.MinRow + 1 }

// Cols returns the number of columns the rectangle spans.
func (r Rect) Cols() int { return r.MaxCol - r.MinCol + 1 }
