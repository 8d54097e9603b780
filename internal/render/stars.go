package render

import "math"

// starVertices returns the ten corners of a five-pointed star centred on
// (cx, cy), top point first. y grows downwards.
func starVertices(cx, cy, outer float64) [][2]float64 {
	inner := outer * 0.382
	pts := make([][2]float64, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, [2]float64{cx + r*math.Cos(angle), cy + r*math.Sin(angle)})
	}
	return pts
}

// ratingFilled splits a rating string into its filled flags.
func ratingFilled(rating string) []bool {
	out := make([]bool, 0, 5)
	for _, r := range rating {
		out = append(out, r == FilledGlyph)
	}
	return out
}
