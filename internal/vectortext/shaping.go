package vectortext

import (
	"math"
	"sort"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Glyph is one shaped glyph. Offsets point up, as in the font.
type Glyph struct {
	ID sfnt.GlyphIndex
	// Cluster is the index of the first rune the glyph was made from.
	Cluster  int
	XAdvance fixed.Int26_6
	XOffset  fixed.Int26_6
	YOffset  fixed.Int26_6
}

var persian = language.NewLanguage("fa")

// singleFace resolves every rune to the loaded font; missing code points
// become glyph 0.
type singleFace struct{ face *tsfont.Face }

func (s singleFace) ResolveFace(rune) *tsfont.Face { return s.face }

// paragraphDirection follows the first strong character and defaults to LTR.
func paragraphDirection(runes []rune) di.Direction {
	for _, r := range runes {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return di.DirectionLTR
		case bidi.R, bidi.AL:
			return di.DirectionRTL
		}
	}
	return di.DirectionLTR
}

// Shape shapes text at size pixels per em and returns its glyphs in visual
// order, left to right.
//
// The text is split into runs by bidi level and script. Each run goes through
// HarfBuzz, which picks Arabic joining forms and ligatures from GSUB, applies
// GPOS and kern positioning and mirrors brackets in RTL runs. Runs are then
// ordered by the line wrapper's bidi reordering.
func (f *Font) Shape(text string, size int) []Glyph {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	dir := paragraphDirection(runes)

	f.mu.Lock()
	defer f.mu.Unlock()

	var seg shaping.Segmenter
	runs := seg.Split(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      f.face,
		Size:      fixed.I(size),
		Language:  persian,
	}, singleFace{f.face})

	outs := make([]shaping.Output, len(runs))
	for i, run := range runs {
		outs[i] = f.shaper.Shape(run)
	}

	var wrapper shaping.LineWrapper
	lines, _ := wrapper.WrapParagraph(shaping.WrapConfig{
		Direction:                     dir,
		BreakPolicy:                   shaping.Never,
		DisableTrailingWhitespaceTrim: true,
	}, math.MaxInt32, runes, shaping.NewSliceIterator(outs))

	var glyphs []Glyph
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].VisualIndex < line[j].VisualIndex })
		for _, out := range line {
			for _, g := range out.Glyphs {
				glyphs = append(glyphs, Glyph{
					ID:       sfnt.GlyphIndex(g.GlyphID),
					Cluster:  g.ClusterIndex,
					XAdvance: g.XAdvance,
					XOffset:  g.XOffset,
					YOffset:  g.YOffset,
				})
			}
		}
	}
	return glyphs
}
