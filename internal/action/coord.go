package action

// MapCoord converts a normalized axis value in 0..1000 to a pixel
// coordinate on a surface of the given extent. Out-of-range input is
// clamped before scaling; the result truncates toward zero, so
// MapCoord(1000, e) == e and drawing code is expected to bounds-check.
func MapCoord(v, extent int) int {
	if v < 0 {
		v = 0
	} else if v > 1000 {
		v = 1000
	}
	return int(float64(v) / 1000.0 * float64(extent))
}
