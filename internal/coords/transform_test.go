package coords

import (
	"testing"

	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/viewport"
)

func TestToGrid(t *testing.T) {
	v := viewport.New(80, 24)
	v.SetContentSize(200, 100)
	v.ScrollTo(10, 5)

	tr := Transformer{
		PaneOriginX: 4, PaneOriginY: 1,
		PaneWidth: 80, PaneHeight: 24,
		View: v,
	}

	tests := []struct {
		name   string
		x, y   int
		want   grid.Pos
		wantOK bool
	}{
		{
			name: "pane origin maps to scroll offset",
			x:    4, y: 1,
			want: grid.Pos{Row: 5, Col: 10}, wantOK: true,
		},
		{
			name: "interior position",
			x:    10, y: 3,
			want: grid.Pos{Row: 7, Col: 16}, wantOK: true,
		},
		{
			name: "left of pane rejected",
			x:    3, y: 5,
			wantOK: false,
		},
		{
			name: "above pane rejected, not clamped to row 0",
			x:    10, y: 0,
			wantOK: false,
		},
		{
			name: "right edge exclusive",
			x:    4 + 80, y: 5,
			wantOK: false,
		},
		{
			name: "bottom edge exclusive",
			x:    10, y: 1 + 24,
			wantOK: false,
		},
		{
			name: "last valid cell",
			x:    4 + 79, y: 1 + 23,
			want: grid.Pos{Row: 28, Col: 89}, wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tr.ToGrid(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("ToGrid(%d, %d) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ToGrid(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestToGridNilViewport(t *testing.T) {
	tr := Transformer{PaneOriginX: 2, PaneOriginY: 2}

	got, ok := tr.ToGrid(5, 7)
	if !ok || got != (grid.Pos{Row: 5, Col: 3}) {
		t.Errorf("ToGrid(5, 7) = %v, %v; want {5 3}, true", got, ok)
	}
}

// Re-feeding a transformed coordinate must be detectable, never silently
// shifted a second time. With a pane origin beyond the pane extent, the
// output space and input space are disjoint, so a double transform is
// always caught.
func TestDoubleTransformRejected(t *testing.T) {
	v := viewport.New(40, 20)
	v.SetContentSize(400, 200)
	v.ScrollTo(0, 0)

	tr := Transformer{
		PaneOriginX: 50, PaneOriginY: 30,
		PaneWidth: 40, PaneHeight: 20,
		View: v,
	}

	p, ok := tr.ToGrid(55, 35)
	if !ok {
		t.Fatal("in-pane coordinate rejected")
	}
	if _, ok := tr.ToGrid(p.Col, p.Row); ok {
		t.Error("transformed output accepted as raw input; double transform not detected")
	}
}

func TestRoundTrip(t *testing.T) {
	v := viewport.New(80, 24)
	v.SetContentSize(200, 100)
	v.ScrollTo(7, 3)

	tr := Transformer{PaneOriginX: 4, PaneOriginY: 1, PaneWidth: 80, PaneHeight: 24, View: v}

	for _, raw := range []struct{ x, y int }{{4, 1}, {40, 12}, {83, 24}} {
		p, ok := tr.ToGrid(raw.x, raw.y)
		if !ok {
			t.Fatalf("ToGrid(%d, %d) rejected", raw.x, raw.y)
		}
		x, y, vis := tr.ToScreen(p)
		if !vis || x != raw.x || y != raw.y {
			t.Errorf("ToScreen(ToGrid(%d, %d)) = (%d, %d, %v)", raw.x, raw.y, x, y, vis)
		}
	}
}

func TestToScreenScrolledOut(t *testing.T) {
	v := viewport.New(80, 24)
	v.SetContentSize(200, 100)
	v.ScrollTo(50, 50)

	tr := Transformer{PaneWidth: 80, PaneHeight: 24, View: v}

	if _, _, vis := tr.ToScreen(grid.Pos{Row: 0, Col: 0}); vis {
		t.Error("position above the scroll offset reported visible")
	}
}
