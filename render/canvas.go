package render

import (
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/waving-simulation/vmath"
)

// subSamples is the per-axis supersampling grid used for rectangle coverage
const subSamples = 4

// canvasState is the part of the context captured by Save
type canvasState struct {
	transform mgl64.Mat3
	fill      RGBA
}

// Canvas is a software 2D drawing surface with a canvas-style context
// Drawing happens in world units; the base transform scales world units to pixels by zoom
type Canvas struct {
	pixels []RGB
	pw, ph int

	zoom  float64
	base  mgl64.Mat3
	state canvasState
	stack []canvasState

	digestBuf []byte
}

// NewCanvas creates a canvas of pw x ph pixels cleared to black
// zoom <= 0 is treated as 1
func NewCanvas(pw, ph int, zoom float64) *Canvas {
	c := &Canvas{stack: make([]canvasState, 0, 8)}
	c.Resize(pw, ph)
	c.SetZoom(zoom)
	return c
}

// Resize reallocates the framebuffer only if capacity is insufficient and clears it
// Transform state is preserved
func (c *Canvas) Resize(pw, ph int) {
	pw = max(pw, 0)
	ph = max(ph, 0)
	size := pw * ph
	if cap(c.pixels) < size {
		c.pixels = make([]RGB, size)
	} else {
		c.pixels = c.pixels[:size]
	}
	c.pw = pw
	c.ph = ph
	c.Clear(RGBBlack)
}

// SetZoom replaces the world-to-pixel scale and resets the context transform
func (c *Canvas) SetZoom(zoom float64) {
	if zoom <= 0 || !vmath.IsFinite(zoom) {
		zoom = 1
	}
	c.zoom = zoom
	c.base = mgl64.Scale2D(zoom, zoom)
	c.Reset()
}

// Zoom returns the world-to-pixel scale
func (c *Canvas) Zoom() float64 {
	return c.zoom
}

// Reset drops all saved states and restores the base transform
func (c *Canvas) Reset() {
	c.stack = c.stack[:0]
	c.state = canvasState{transform: c.base, fill: RGBBlack.Opaque()}
}

// Width returns the surface width in world units
func (c *Canvas) Width() int {
	return int(float64(c.pw) / c.zoom)
}

// Height returns the surface height in world units
func (c *Canvas) Height() int {
	return int(float64(c.ph) / c.zoom)
}

// PixelSize returns framebuffer dimensions
func (c *Canvas) PixelSize() (int, int) {
	return c.pw, c.ph
}

// Depth returns the number of saved, not yet restored, states
func (c *Canvas) Depth() int {
	return len(c.stack)
}

// At returns the pixel at (x, y), black when out of bounds
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || x >= c.pw || y < 0 || y >= c.ph {
		return RGBBlack
	}
	return c.pixels[y*c.pw+x]
}

// Clear fills every pixel with bg using exponential copy
func (c *Canvas) Clear(bg RGB) {
	if len(c.pixels) == 0 {
		return
	}
	c.pixels[0] = bg
	for filled := 1; filled < len(c.pixels); filled *= 2 {
		copy(c.pixels[filled:], c.pixels[:filled])
	}
}

// ===== CONTEXT API =====

// Save pushes the current transform and fill
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved state; no-op on an empty stack
func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.state = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

// Translate appends a translation; non-finite arguments are ignored
func (c *Canvas) Translate(dx, dy float64) {
	if !vmath.IsFinite(dx) || !vmath.IsFinite(dy) {
		return
	}
	c.state.transform = c.state.transform.Mul3(mgl64.Translate2D(dx, dy))
}

// Rotate appends a rotation in radians; non-finite angles are ignored
func (c *Canvas) Rotate(angle float64) {
	if !vmath.IsFinite(angle) {
		return
	}
	c.state.transform = c.state.transform.Mul3(mgl64.HomogRotate2D(angle))
}

// SetFill sets the color used by FillRect
func (c *Canvas) SetFill(fill RGBA) {
	c.state.fill = fill
}

// FillRect composites the rectangle (x, y, w, h) in local coordinates using the current fill
// Coverage is estimated on a subSamples x subSamples grid per pixel and scales the fill alpha
func (c *Canvas) FillRect(x, y, w, h float64) {
	fill := c.state.fill
	if fill.A <= 0 || w == 0 || h == 0 {
		return
	}
	if !vmath.IsFinite(x) || !vmath.IsFinite(y) || !vmath.IsFinite(w) || !vmath.IsFinite(h) {
		return
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}

	m := c.state.transform
	if math.Abs(m.Det()) < 1e-12 {
		return
	}
	inv := m.Inv()

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}} {
		p := m.Mul3x1(mgl64.Vec3{corner[0], corner[1], 1})
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}

	x0 := max(int(math.Floor(minX)), 0)
	y0 := max(int(math.Floor(minY)), 0)
	x1 := min(int(math.Ceil(maxX)), c.pw)
	y1 := min(int(math.Ceil(maxY)), c.ph)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	src := fill.RGB()
	const step = 1.0 / subSamples
	const total = subSamples * subSamples

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			hits := 0
			for sy := 0; sy < subSamples; sy++ {
				for sx := 0; sx < subSamples; sx++ {
					sample := mgl64.Vec3{
						float64(px) + (float64(sx)+0.5)*step,
						float64(py) + (float64(sy)+0.5)*step,
						1,
					}
					l := inv.Mul3x1(sample)
					if l[0] >= x && l[0] < x+w && l[1] >= y && l[1] < y+h {
						hits++
					}
				}
			}
			if hits == 0 {
				continue
			}
			idx := py*c.pw + px
			c.pixels[idx] = Blend(c.pixels[idx], src, fill.A*float64(hits)/total)
		}
	}
}

// Digest returns an xxhash64 of the framebuffer contents and dimensions
func (c *Canvas) Digest() uint64 {
	need := 8 + len(c.pixels)*3
	if cap(c.digestBuf) < need {
		c.digestBuf = make([]byte, need)
	}
	buf := c.digestBuf[:need]
	buf[0], buf[1], buf[2], buf[3] = byte(c.pw), byte(c.pw>>8), byte(c.pw>>16), byte(c.pw>>24)
	buf[4], buf[5], buf[6], buf[7] = byte(c.ph), byte(c.ph>>8), byte(c.ph>>16), byte(c.ph>>24)
	for i, p := range c.pixels {
		o := 8 + i*3
		buf[o], buf[o+1], buf[o+2] = p.R, p.G, p.B
	}
	return xxhash.Sum64(buf)
}
