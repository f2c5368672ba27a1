// Package captcha issues four-digit visual challenges.
package captcha

import (
	"bytes"
	"crypto/rand"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/big"
	mrand "math/rand/v2"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	CodeLength = 4
	digits     = "0123456789"

	width       = 100
	height      = 40
	distractors = 5
	textX       = 20
	textY       = 10
	textScale   = 2
)

var (
	background = color.White
	ink        = color.Black
	lineColor  = color.Gray{Y: 0x80}
)

// Challenge is a code and the PNG that shows it.
type Challenge struct {
	Code  string
	Image []byte
}

// Generator issues challenges. The zero value is not usable; call New.
type Generator struct {
	source func() string
}

type Option func(*Generator)

// WithSource replaces the random code source. Tests use it to fix codes.
func WithSource(source func() string) Option {
	return func(g *Generator) {
		g.source = source
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{source: randomCode}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Issue draws a fresh code and renders it. It never fails: if encoding the
// image fails the challenge carries no image and the caller still has a code.
func (g *Generator) Issue() Challenge {
	code := g.source()
	return Challenge{Code: code, Image: render(code)}
}

// randomCode draws each digit independently and uniformly.
func randomCode() string {
	out := make([]byte, CodeLength)
	alphabet := big.NewInt(int64(len(digits)))
	for i := range out {
		n, err := rand.Int(rand.Reader, alphabet)
		if err != nil {
			out[i] = digits[mrand.IntN(len(digits))]
			continue
		}
		out[i] = digits[n.Int64()]
	}
	return string(out)
}

func render(code string) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for range distractors {
		line(img,
			mrand.IntN(width), mrand.IntN(height),
			mrand.IntN(width), mrand.IntN(height),
			lineColor)
	}
	drawText(img, code)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// drawText renders code with the 7x13 bitmap face into a mask, then blits the
// mask scaled up at (textX, textY).
func drawText(dst *image.RGBA, code string) {
	face := basicfont.Face7x13
	mask := image.NewAlpha(image.Rect(0, 0, face.Advance*len(code), face.Height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(code)

	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 0 {
				continue
			}
			for dy := range textScale {
				for dx := range textScale {
					dst.Set(textX+x*textScale+dx, textY+y*textScale+dy, ink)
				}
			}
		}
	}
}

// line draws a segment with Bresenham's algorithm.
func line(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
