package vectortext

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Command is one absolute drawing command. Unused control points are zero.
type Command struct {
	Op     byte // 'M', 'L', 'Q', 'C' or 'Z'
	X1, Y1 float64
	X2, Y2 float64
	X, Y   float64
}

// Path is a list of outline commands in SVG space (y grows down).
type Path struct {
	Commands []Command
}

func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, Command{Op: 'M', X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	p.Commands = append(p.Commands, Command{Op: 'L', X: x, Y: y})
}

func (p *Path) QuadTo(x1, y1, x, y float64) {
	p.Commands = append(p.Commands, Command{Op: 'Q', X1: x1, Y1: y1, X: x, Y: y})
}

func (p *Path) CubeTo(x1, y1, x2, y2, x, y float64) {
	p.Commands = append(p.Commands, Command{Op: 'C', X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}

func (p *Path) Close() {
	p.Commands = append(p.Commands, Command{Op: 'Z'})
}

// BoundingBox is an axis aligned box.
type BoundingBox struct {
	X1, Y1, X2, Y2 float64
	empty          bool
}

func newBox() BoundingBox {
	return BoundingBox{X1: math.Inf(1), Y1: math.Inf(1), X2: math.Inf(-1), Y2: math.Inf(-1), empty: true}
}

func (b *BoundingBox) addX(x float64) {
	b.X1 = math.Min(b.X1, x)
	b.X2 = math.Max(b.X2, x)
}

func (b *BoundingBox) addY(y float64) {
	b.Y1 = math.Min(b.Y1, y)
	b.Y2 = math.Max(b.Y2, y)
}

func (b *BoundingBox) addPoint(x, y float64) {
	b.addX(x)
	b.addY(y)
	b.empty = false
}

// Width of the box.
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height of the box.
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// BoundingBox returns the exact extent of the path, curve extrema included.
// An empty path yields a zero box at the origin.
func (p *Path) BoundingBox() BoundingBox {
	box := newBox()
	var startX, startY, prevX, prevY float64
	for _, c := range p.Commands {
		switch c.Op {
		case 'M':
			box.addPoint(c.X, c.Y)
			startX, startY = c.X, c.Y
			prevX, prevY = c.X, c.Y
		case 'L':
			box.addPoint(c.X, c.Y)
			prevX, prevY = c.X, c.Y
		case 'Q':
			box.addPoint(c.X, c.Y)
			for _, t := range quadExtrema(prevX, c.X1, c.X) {
				box.addX(quadAt(prevX, c.X1, c.X, t))
			}
			for _, t := range quadExtrema(prevY, c.Y1, c.Y) {
				box.addY(quadAt(prevY, c.Y1, c.Y, t))
			}
			prevX, prevY = c.X, c.Y
		case 'C':
			box.addPoint(c.X, c.Y)
			for _, t := range cubeExtrema(prevX, c.X1, c.X2, c.X) {
				box.addX(cubeAt(prevX, c.X1, c.X2, c.X, t))
			}
			for _, t := range cubeExtrema(prevY, c.Y1, c.Y2, c.Y) {
				box.addY(cubeAt(prevY, c.Y1, c.Y2, c.Y, t))
			}
			prevX, prevY = c.X, c.Y
		case 'Z':
			prevX, prevY = startX, startY
		}
	}
	if box.empty {
		return BoundingBox{}
	}
	return box
}

func quadAt(p0, p1, p2, t float64) float64 {
	mt := 1 - t
	return mt*mt*p0 + 2*mt*t*p1 + t*t*p2
}

// quadExtrema returns the t in (0,1) where the derivative vanishes.
func quadExtrema(p0, p1, p2 float64) []float64 {
	d := p0 - 2*p1 + p2
	if d == 0 {
		return nil
	}
	t := (p0 - p1) / d
	if t > 0 && t < 1 {
		return []float64{t}
	}
	return nil
}

func cubeAt(p0, p1, p2, p3, t float64) float64 {
	mt := 1 - t
	return mt*mt*mt*p0 + 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t*p3
}

func cubeExtrema(p0, p1, p2, p3 float64) []float64 {
	// derivative: a t^2 + b t + c
	a := 3 * (-p0 + 3*p1 - 3*p2 + p3)
	b := 6 * (p0 - 2*p1 + p2)
	c := 3 * (p1 - p0)

	var roots []float64
	if math.Abs(a) < 1e-12 {
		if b != 0 {
			roots = append(roots, -c/b)
		}
	} else {
		disc := b*b - 4*a*c
		switch {
		case disc == 0:
			roots = append(roots, -b/(2*a))
		case disc > 0:
			sq := math.Sqrt(disc)
			roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
		}
	}

	var ts []float64
	for _, t := range roots {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

// PathData renders the commands as an SVG path "d" attribute. Integral values
// are written without a fraction, others with the given number of decimals.
// A separating space is only written before non-negative values.
func (p *Path) PathData(decimals int) string {
	var sb strings.Builder
	for _, c := range p.Commands {
		sb.WriteByte(c.Op)
		switch c.Op {
		case 'M', 'L':
			packValues(&sb, decimals, c.X, c.Y)
		case 'Q':
			packValues(&sb, decimals, c.X1, c.Y1, c.X, c.Y)
		case 'C':
			packValues(&sb, decimals, c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y)
		}
	}
	return sb.String()
}

func packValues(sb *strings.Builder, decimals int, values ...float64) {
	for i, v := range values {
		if v >= 0 && i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatFloat(v, decimals))
	}
}

// formatFloat writes v with a fixed number of decimals. Exact halves round away
// from zero, and whole numbers are written without a fraction.
func formatFloat(v float64, decimals int) string {
	if v == 0 {
		return "0"
	}
	if r := math.Round(v); r == v || math.IsNaN(v) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}

	// Round the exact binary value; scaling in float64 would blur ties.
	r := new(big.Rat).SetFloat64(math.Abs(v))
	scaled := new(big.Int).Mul(r.Num(), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	q, rem := new(big.Int).QuoRem(scaled, r.Denom(), new(big.Int))
	if rem.Lsh(rem, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	digits := q.String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	point := len(digits) - decimals
	out := digits[:point]
	if decimals > 0 {
		out += "." + digits[point:]
	}
	if v < 0 {
		out = "-" + out
	}
	return out
}
