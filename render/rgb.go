package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termrain/terminal"
)

// RGB is an alias to terminal.RGB so render callers need not import terminal for colors
type RGB = terminal.RGB

// Predefined default color
var (
	RGBBlack = RGB{R: 0, G: 0, B: 0}
	RGBWhite = RGB{R: 255, G: 255, B: 255}
)

// toColorful converts to go-colorful's float representation
func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// fromColorful clamps and quantizes back to 24-bit
func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// BlendLab interpolates a toward b in CIE-Lab, t in [0,1]
func BlendLab(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t))
}

// Lightness returns the CIE-Lab L component in [0,1]
func Lightness(c RGB) float64 {
	l, _, _ := toColorful(c).Lab()
	return l
}
