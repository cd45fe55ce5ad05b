// Package annotate renders recognition results onto frames: a bounding box
// per detected face plus the resolved name, in pure Go so the streaming path
// does not depend on OpenCV.
package annotate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Box is one labeled detection on a frame.
type Box struct {
	Rect    image.Rectangle
	Label   string
	Matched bool
}

const outlineThickness = 2

var (
	boxColor       = color.RGBA{B: 255, A: 255}         // blue outline
	matchedColor   = color.RGBA{G: 255, A: 255}         // green label text
	unmatchedColor = color.RGBA{R: 255, A: 255}         // red label text
)

// Draw copies the frame and renders every box onto the copy.
func Draw(frame image.Image, boxes []Box) *image.RGBA {
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), frame, b.Min, draw.Src)

	for _, box := range boxes {
		rect := box.Rect.Sub(b.Min).Intersect(out.Bounds())
		if rect.Empty() {
			continue
		}
		drawOutline(out, rect)

		textColor := unmatchedColor
		if box.Matched {
			textColor = matchedColor
		}
		drawLabel(out, box.Label, rect.Min.X, rect.Min.Y-4, textColor)
	}
	return out
}

// drawOutline draws a hollow rectangle of fixed thickness.
func drawOutline(img *image.RGBA, r image.Rectangle) {
	for t := range outlineThickness {
		inner := r.Inset(t)
		if inner.Empty() {
			return
		}
		for x := inner.Min.X; x < inner.Max.X; x++ {
			img.SetRGBA(x, inner.Min.Y, boxColor)
			img.SetRGBA(x, inner.Max.Y-1, boxColor)
		}
		for y := inner.Min.Y; y < inner.Max.Y; y++ {
			img.SetRGBA(inner.Min.X, y, boxColor)
			img.SetRGBA(inner.Max.X-1, y, boxColor)
		}
	}
}

// drawLabel renders text just above the box. If the box touches the top of
// the frame the text moves inside it instead of being clipped away.
func drawLabel(img *image.RGBA, text string, x, y int, c color.RGBA) {
	face := basicfont.Face7x13
	if y-face.Ascent < img.Bounds().Min.Y {
		y += face.Height + 4
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
