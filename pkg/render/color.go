package render

import (
	"image/color"
)

// RatioColor maps a normalised ratio in [-1, 1] onto a blue-white-red
// scale: white at zero, saturating red for over-representation and
// blue for under-representation. Out-of-range input is clamped.
func RatioColor(ratio float64) color.RGBA {

	if ratio > 1.0 {
		ratio = 1.0
	}
	if ratio < -1.0 {
		ratio = -1.0
	}

	switch {
	case ratio > 0.0:
		c := uint8((1.0 - ratio) * 255.0)
		return color.RGBA{R: 255, G: c, B: c, A: 255}
	case ratio < 0.0:
		c := uint8((1.0 + ratio) * 255.0)
		return color.RGBA{R: c, G: c, B: 255, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}
