package preview

import (
	"image"
	"image/color"
)

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if (image.Point{X: x1, Y: y1}).In(bounds) {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillSquare fills a square of side 2*r+1 centred on (x, y), clipped to the
// image
func fillSquare(img *image.RGBA, x, y, r int, col color.RGBA) {
	rect := image.Rect(x-r, y-r, x+r+1, y+r+1).Intersect(img.Bounds())
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			img.SetRGBA(px, py, col)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
