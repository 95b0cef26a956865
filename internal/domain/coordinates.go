package domain

// ToPageSpace converts an overlay position (top-left origin, y down) into
// PDF page space (bottom-left origin, y up) for content of the given height,
// so that the top-left corner of the drawn content lands where the overlay
// showed it.
func ToPageSpace(p Point, pageHeight, contentHeight float64) Point {
	return Point{
		X: p.X,
		Y: pageHeight - p.Y - contentHeight,
	}
}
