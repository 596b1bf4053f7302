package render

// HalfBlock is the upper half block; fg paints the top pixel, bg the bottom
const HalfBlock = '▀'

// Cell is a single terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// CellSize returns the terminal grid needed to show a pw x ph pixel canvas
func CellSize(pw, ph int) (width, height int) {
	return pw, (ph + 1) / 2
}

// PixelSizeForCells returns the canvas size backing a width x height terminal
func PixelSizeForCells(width, height int) (pw, ph int) {
	return width, height * 2
}

// Cells converts the canvas to row-major half-block cells, reusing dst when it has capacity
// An odd trailing pixel row is paired with black
func Cells(c *Canvas, dst []Cell) ([]Cell, int, int) {
	w, h := CellSize(c.pw, c.ph)
	size := w * h
	if cap(dst) < size {
		dst = make([]Cell, size)
	} else {
		dst = dst[:size]
	}

	for row := 0; row < h; row++ {
		top := row * 2
		for x := 0; x < w; x++ {
			dst[row*w+x] = Cell{
				Rune: HalfBlock,
				Fg:   c.At(x, top),
				Bg:   c.At(x, top+1),
			}
		}
	}
	return dst, w, h
}
