package render

import (
	"github.com/gdamore/tcell/v2"
)

// tcellColor converts RGB to a tcell true color
func tcellColor(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FlushToScreen writes row-major cells to the screen and shows the result
// Cells outside the current screen size are skipped
func FlushToScreen(screen tcell.Screen, cells []Cell, width, height int) {
	if len(cells) < width*height {
		return
	}
	sw, sh := screen.Size()
	for y := 0; y < height && y < sh; y++ {
		for x := 0; x < width && x < sw; x++ {
			cell := cells[y*width+x]
			style := tcell.StyleDefault.Foreground(tcellColor(cell.Fg)).Background(tcellColor(cell.Bg))
			screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	screen.Show()
}
