package chain

import (
	"github.com/lixenwraith/waving-simulation/render"
	"github.com/lixenwraith/waving-simulation/vmath"
)

// Fixed link geometry, identical for every segment
const (
	SegmentLength    = 10.0
	SegmentThickness = 3.0

	// parentNudge is added to Y for every non-root segment to avoid degenerate stacking
	parentNudge = 0.2
)

// DefaultSegmentColor is used when a caller has no color of its own
var DefaultSegmentColor = render.RGBRed.Opaque()

// Segment is one rigid link; all fields are fixed at construction
type Segment struct {
	Position vmath.Vector2 // world anchor
	Rotation float64       // radians
	Scale    vmath.Vector2 // (length, thickness)
	Origin   vmath.Vector2 // local pivot offset
	Color    render.RGBA
}

// NewSegment derives a segment from its predecessor
// With no parent the segment anchors at the surface center; otherwise it is offset from
// the parent's anchor by the parent's thickness along the parent's rotation.
// parent is only read during the call.
func NewSegment(surface Dimensions, parent *Segment, rotationDeg float64, color render.RGBA) Segment {
	scale := vmath.V2(SegmentLength, SegmentThickness)
	s := Segment{
		Rotation: vmath.DegToRad(rotationDeg),
		Scale:    scale,
		Origin:   vmath.V2(-scale.X/2, -scale.Y),
		Color:    color,
	}

	if parent == nil {
		s.Position = vmath.V2(float64(surface.Width())/2, float64(surface.Height())/2)
		return s
	}

	// Straight up by the parent's thickness, turned with the parent
	offset := vmath.V2(0, -parent.Scale.Y).Rotate(parent.Rotation)
	s.Position = parent.Position.Add(offset).Add(vmath.V2(0, parentNudge))
	return s
}

// Show draws the segment as a filled rectangle centered on its anchor and rotated about it
// The context's state is left exactly as found
func (s Segment) Show(ctx Context) {
	ctx.Save()
	ctx.Translate(s.Position.X, s.Position.Y)
	ctx.Rotate(s.Rotation)

	ctx.Save()
	ctx.Translate(s.Origin.X, s.Origin.Y)
	ctx.SetFill(s.Color)
	ctx.FillRect(0, 0, s.Scale.X, s.Scale.Y)
	ctx.Restore()

	ctx.Restore()
}
