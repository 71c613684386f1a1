package luvrange

import "math"

// D65 reference white in the u'v' chromaticity plane.
const (
	refU = 0.19783982482140777
	refV = 0.46833630293240974
)

// RGBToLuv converts an sRGB colour with components in [0, 1] to CIE L*u*v*
// under the D65 white point. L* is in [0, 100]; u* and v* are roughly in
// [-100, 100] for displayable colours.
func RGBToLuv(r, g, b float64) (l, u, v float64) {
	r = srgbToLinear(r)
	g = srgbToLinear(g)
	b = srgbToLinear(b)

	x := 0.4124564*r + 0.3575761*g + 0.1804375*b
	y := 0.2126729*r + 0.7151522*g + 0.0721750*b
	z := 0.0193339*r + 0.1191920*g + 0.9503041*b

	if y > 0.008856451679035631 { // (6/29)^3
		l = 116*math.Cbrt(y) - 16
	} else {
		l = 903.2962962962963 * y // (29/3)^3
	}

	denom := x + 15*y + 3*z
	if denom > 0 {
		up := 4 * x / denom
		vp := 9 * y / denom
		u = 13 * l * (up - refU)
		v = 13 * l * (vp - refV)
	}
	return l, u, v
}

// srgbToLinear removes the sRGB transfer curve from one component.
func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
