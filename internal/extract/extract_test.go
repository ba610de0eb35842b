package extract

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/layout"
)

const sampleFeed = `{"char":"H","x":0,"y":0,"w":1,"h":1,"size":12,"color":"#ff0000"}
{"char":"i","x":1,"y":0,"w":1,"h":1,"size":12}
`

func TestDecodeFeed(t *testing.T) {
	chars, malformed, err := DecodeFeed(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatalf("DecodeFeed: %v", err)
	}
	if malformed != 0 {
		t.Errorf("malformed = %d, want 0", malformed)
	}
	if len(chars) != 2 {
		t.Fatalf("decoded %d chars, want 2", len(chars))
	}
	if chars[0].Rune != 'H' || chars[1].Rune != 'i' {
		t.Errorf("runes = %q %q, want 'H' 'i'", chars[0].Rune, chars[1].Rune)
	}
	want := color.RGBA{R: 0xff, A: 0xff}
	if chars[0].Color != want {
		t.Errorf("color = %v, want %v", chars[0].Color, want)
	}
	if chars[1].Color != nil {
		t.Errorf("color = %v, want nil for unstyled char", chars[1].Color)
	}
}

func TestDecodeFeedSkipsMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"broken json", `{"char":"a","x":`},
		{"empty char", `{"char":"","x":0,"y":0,"w":1,"h":1}`},
		{"multi-rune char", `{"char":"ab","x":0,"y":0,"w":1,"h":1}`},
		{"bad color", `{"char":"a","x":0,"y":0,"w":1,"h":1,"color":"red"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := tt.line + "\n" + `{"char":"z","x":0,"y":0,"w":1,"h":1}` + "\n"
			chars, malformed, err := DecodeFeed(strings.NewReader(feed))
			if err != nil {
				t.Fatalf("DecodeFeed: %v", err)
			}
			if malformed != 1 {
				t.Errorf("malformed = %d, want 1", malformed)
			}
			if len(chars) != 1 || chars[0].Rune != 'z' {
				t.Errorf("decode did not continue past the bad line: %v", chars)
			}
		})
	}
}

func TestDecodeFeedSkipsBlankLines(t *testing.T) {
	feed := "\n" + `{"char":"a","x":0,"y":0,"w":1,"h":1}` + "\n\n"
	chars, malformed, err := DecodeFeed(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("DecodeFeed: %v", err)
	}
	if malformed != 0 || len(chars) != 1 {
		t.Errorf("malformed = %d, chars = %d; want 0 and 1", malformed, len(chars))
	}
}

func TestPopulate(t *testing.T) {
	o := layout.DefaultOptions()
	g, rep, err := Populate(context.Background(), strings.NewReader(sampleFeed), o)
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if rep.Placed != 2 {
		t.Errorf("Placed = %d, want 2", rep.Placed)
	}
	_, hi, ok := g.RowExtent(0)
	if !ok {
		t.Fatal("row 0 empty")
	}
	if got := g.Line(0, 0, hi); got != "Hi" {
		t.Errorf("row 0 = %q, want %q", got, "Hi")
	}
}

func TestPopulateReportsMalformed(t *testing.T) {
	feed := `{"char":"ab"}` + "\n" + sampleFeed
	_, rep, err := Populate(context.Background(), strings.NewReader(feed), layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if rep.SkippedMalformed != 1 {
		t.Errorf("SkippedMalformed = %d, want 1", rep.SkippedMalformed)
	}
	if !rep.LowFidelity() {
		t.Error("LowFidelity() = false with malformed input")
	}
}

func TestPopulateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g, _, err := Populate(ctx, strings.NewReader(sampleFeed), layout.DefaultOptions())
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
	if g != nil {
		t.Error("canceled population returned a grid")
	}
}

func TestPopulateGridIsDetached(t *testing.T) {
	live := grid.New()
	live.Set(grid.Pos{Row: 0, Col: 0}, grid.Cell{Rune: 'L'})

	g, _, err := Populate(context.Background(), strings.NewReader(sampleFeed), layout.DefaultOptions())
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if g == live {
		t.Fatal("Populate returned the live grid")
	}
	if got := live.Get(grid.Pos{Row: 0, Col: 0}).Rune; got != 'L' {
		t.Errorf("live grid mutated during population: (0,0) = %q", got)
	}
}
