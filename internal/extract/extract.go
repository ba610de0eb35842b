// Package extract consumes the positioned-character feed produced by the
// external document extractor and turns it into grid content. Decoding and
// placement run off the update loop; the populated grid is handed back for
// an atomic swap so a slow or cancelled extraction never touches live state.
package extract

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/layout"
)

// ErrCanceled is returned by Populate when the context ends before placement
// finishes. The partial grid is discarded.
var ErrCanceled = errors.New("extract: population canceled")

// record is one line of the extractor's JSON-lines feed.
type record struct {
	Char     string  `json:"char"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"w"`
	Height   float64 `json:"h"`
	FontSize float64 `json:"size"`
	Color    string  `json:"color"`
	Rotation float64 `json:"rotation"`
}

// parseColor reads a #rrggbb hex color. Empty means unstyled.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("color %q: want rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// DecodeFeed reads the extractor's JSON-lines feed. Malformed lines are
// counted and skipped rather than aborting the page; the count surfaces in
// the population Report.
func DecodeFeed(r io.Reader) (chars []layout.PositionedChar, malformed int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			malformed++
			continue
		}
		runes := []rune(rec.Char)
		if len(runes) != 1 {
			malformed++
			continue
		}
		fg, err := parseColor(rec.Color)
		if err != nil {
			malformed++
			continue
		}
		chars = append(chars, layout.PositionedChar{
			Rune:     runes[0],
			X:        rec.X,
			Y:        rec.Y,
			Width:    rec.Width,
			Height:   rec.Height,
			FontSize: rec.FontSize,
			Color:    fg,
			Rotation: rec.Rotation,
		})
	}
	if err := sc.Err(); err != nil {
		return chars, malformed, fmt.Errorf("reading feed: %w", err)
	}
	return chars, malformed, nil
}

// Populate decodes the feed and lays it out into a fresh grid on the calling
// goroutine, checking ctx between stages. Callers run it inside a worker and
// swap the returned grid in on success; on cancellation the partial grid is
// dropped and the live grid is untouched.
func Populate(ctx context.Context, feed io.Reader, o layout.Options) (*grid.Grid, layout.Report, error) {
	chars, malformed, err := DecodeFeed(feed)
	if err != nil {
		return nil, layout.Report{SkippedMalformed: malformed}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, layout.Report{}, ErrCanceled
	}

	g := grid.New()
	rep := layout.Apply(g, nil, chars, o)
	rep.SkippedMalformed += malformed

	if err := ctx.Err(); err != nil {
		return nil, rep, ErrCanceled
	}
	return g, rep, nil
}
