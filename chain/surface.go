package chain

import (
	"github.com/lixenwraith/waving-simulation/render"
)

// Dimensions reports the current drawable size in world units
type Dimensions interface {
	Width() int
	Height() int
}

// Context is the canvas-style drawing API segments render through
type Context interface {
	// Save pushes the transform and fill state
	Save()
	// Restore pops the last saved state
	Restore()
	Translate(dx, dy float64)
	// Rotate rotates subsequent drawing by angle radians
	Rotate(angle float64)
	SetFill(fill render.RGBA)
	// FillRect fills a rectangle in local coordinates
	FillRect(x, y, w, h float64)
}

// Surface is a drawable with known dimensions
type Surface interface {
	Dimensions
	Context
}

var _ Surface = (*render.Canvas)(nil)
