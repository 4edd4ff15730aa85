package vectortext

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// FontSize is the em size, in SVG user units, text is laid out at.
	FontSize = 72
	// PathDecimals is the precision of the emitted path data.
	PathDecimals = 5
)

var ErrEmptyText = errors.New("text is empty")

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// TextPath shapes text and lays it out on one line with its origin at (x, y),
// y being the baseline. The glyph outlines are returned as one path.
func (f *Font) TextPath(text string, x, y float64, size int) (*Path, error) {
	return f.layout(f.Shape(text, size), x, y, size)
}

// layout draws glyphs left to right from the pen position, moving the pen by
// each glyph's advance.
func (f *Font) layout(glyphs []Glyph, x, y float64, size int) (*Path, error) {
	var buf sfnt.Buffer
	ppem := fixed.I(size)
	path := &Path{}

	for _, g := range glyphs {
		segments, err := f.sf.LoadGlyph(&buf, g.ID, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load glyph %d: %w", g.ID, err)
		}
		appendSegments(path, segments, x+toFloat(g.XOffset), y-toFloat(g.YOffset))
		x += toFloat(g.XAdvance)
	}
	return path, nil
}

// appendSegments converts sfnt segments (y already pointing down) to path
// commands, closing every contour.
func appendSegments(p *Path, segments sfnt.Segments, dx, dy float64) {
	open := false
	pt := func(v fixed.Point26_6) (float64, float64) {
		return dx + toFloat(v.X), dy + toFloat(v.Y)
	}
	for _, s := range segments {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := pt(s.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(s.Args[0])
			x, y := pt(s.Args[1])
			p.QuadTo(x1, y1, x, y)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(s.Args[0])
			x2, y2 := pt(s.Args[1])
			x, y := pt(s.Args[2])
			p.CubeTo(x1, y1, x2, y2, x, y)
		}
	}
	if open {
		p.Close()
	}
}

// GenerateSVG renders text as a standalone SVG document made of one black path.
func GenerateSVG(text string, f *Font) (string, error) {
	if f == nil {
		return "", errors.New("font is not loaded")
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	path, err := f.TextPath(text, 0, FontSize, FontSize)
	if err != nil {
		return "", err
	}
	box := path.BoundingBox()

	width := int(math.Ceil(box.Width()))
	height := int(math.Ceil(box.Height()))
	viewBox := fmt.Sprintf("%d %d %d %d", int(math.Floor(box.X1)), int(math.Floor(box.Y1)), width, height)

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s" width="%d" height="%d"><path d="%s" fill="black"/></svg>`,
		viewBox, width, height, path.PathData(PathDecimals)), nil
}
