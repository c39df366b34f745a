package service

import "math"

// percentage returns part/whole*100 rounded to one decimal place, or 0 when
// whole is not positive. Halves round away from zero.
func percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return roundTenth(float64(part) / float64(whole) * 100)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
