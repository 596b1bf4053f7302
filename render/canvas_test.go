package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func white() RGBA { return RGBWhite.Opaque() }

func TestCanvas_Dimensions(t *testing.T) {
	c := NewCanvas(80, 60, 1)
	require.Equal(t, 80, c.Width())
	require.Equal(t, 60, c.Height())

	c.SetZoom(0.5)
	require.Equal(t, 160, c.Width())
	require.Equal(t, 120, c.Height())

	pw, ph := c.PixelSize()
	require.Equal(t, 80, pw)
	require.Equal(t, 60, ph)

	c.SetZoom(-3)
	require.Equal(t, 1.0, c.Zoom(), "non-positive zoom falls back to 1")
}

func TestCanvas_SaveRestoreBalance(t *testing.T) {
	c := NewCanvas(10, 10, 1)
	initial := c.state.transform

	c.Save()
	c.Translate(3, 4)
	c.Save()
	c.Rotate(1)
	c.SetFill(RGBA{R: 1, A: 1})
	require.Equal(t, 2, c.Depth())

	c.Restore()
	require.Equal(t, 1, c.Depth())
	require.Equal(t, RGBBlack.Opaque(), c.state.fill, "fill restored with the transform")

	c.Restore()
	require.Equal(t, 0, c.Depth())
	require.Equal(t, initial, c.state.transform)

	// Unbalanced restore is a no-op
	c.Restore()
	require.Equal(t, 0, c.Depth())
	require.Equal(t, initial, c.state.transform)
}

func TestCanvas_NonFiniteIgnored(t *testing.T) {
	c := NewCanvas(10, 10, 1)
	before := c.state.transform

	c.Translate(math.NaN(), 5)
	c.Translate(1, math.Inf(1))
	c.Rotate(math.NaN())
	require.Equal(t, before, c.state.transform)

	c.SetFill(white())
	c.FillRect(math.NaN(), 0, 1, 1)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			require.Equal(t, RGBBlack, c.At(x, y))
		}
	}
}

func TestCanvas_FillRectAxisAligned(t *testing.T) {
	c := NewCanvas(10, 10, 1)
	c.SetFill(white())
	c.FillRect(2, 3, 4, 2)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 6 && y >= 3 && y < 5
			if inside {
				assert.Equal(t, RGBWhite, c.At(x, y), "pixel (%d,%d)", x, y)
			} else {
				assert.Equal(t, RGBBlack, c.At(x, y), "pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestCanvas_FillRectNegativeSize(t *testing.T) {
	c := NewCanvas(10, 10, 1)
	c.SetFill(white())
	c.FillRect(6, 5, -4, -2)

	assert.Equal(t, RGBWhite, c.At(2, 3))
	assert.Equal(t, RGBWhite, c.At(5, 4))
	assert.Equal(t, RGBBlack, c.At(6, 4))
}

func TestCanvas_TranslateThenFill(t *testing.T) {
	c := NewCanvas(10, 10, 1)
	c.SetFill(white())
	c.Translate(3, 0)
	c.FillRect(0, 0, 1, 1)

	assert.Equal(t, RGBWhite, c.At(3, 0))
	assert.Equal(t, RGBBlack, c.At(0, 0))
}

func TestCanvas_RotateThenFill(t *testing.T) {
	c := NewCanvas(10, 10, 1)
	c.SetFill(white())
	c.Translate(5, 5)
	c.Rotate(math.Pi / 2)
	// Local +X maps to screen +Y, local +Y maps to screen -X
	c.FillRect(0, 0, 2, 1)

	assert.Equal(t, RGBWhite, c.At(4, 5))
	assert.Equal(t, RGBWhite, c.At(4, 6))
	assert.Equal(t, RGBBlack, c.At(5, 5))
	assert.Equal(t, RGBBlack, c.At(4, 7))
}

func TestCanvas_ZoomScalesWorld(t *testing.T) {
	c := NewCanvas(10, 10, 2)
	c.SetFill(white())
	c.FillRect(1, 1, 1, 1)

	for _, p := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		assert.Equal(t, RGBWhite, c.At(p[0], p[1]))
	}
	assert.Equal(t, RGBBlack, c.At(1, 1))
	assert.Equal(t, RGBBlack, c.At(4, 4))
}

func TestCanvas_AlphaAndCoverage(t *testing.T) {
	c := NewCanvas(4, 1, 1)

	c.SetFill(RGBA{R: 255, G: 255, B: 255, A: 0.5})
	c.FillRect(0, 0, 1, 1)
	assert.Equal(t, RGB{128, 128, 128}, c.At(0, 0))

	// Half the samples covered at full alpha
	c.SetFill(white())
	c.FillRect(2, 0, 0.5, 1)
	assert.Equal(t, RGB{128, 128, 128}, c.At(2, 0))

	// Zero alpha draws nothing
	c.SetFill(RGBA{R: 255, A: 0})
	c.FillRect(3, 0, 1, 1)
	assert.Equal(t, RGBBlack, c.At(3, 0))
}

func TestCanvas_ClipsToBounds(t *testing.T) {
	c := NewCanvas(4, 4, 1)
	c.SetFill(white())
	require.NotPanics(t, func() {
		c.FillRect(-10, -10, 100, 100)
	})
	assert.Equal(t, RGBWhite, c.At(0, 0))
	assert.Equal(t, RGBWhite, c.At(3, 3))
	assert.Equal(t, RGBBlack, c.At(4, 4), "out of bounds reads are black")
}

func TestCanvas_ClearAndResize(t *testing.T) {
	c := NewCanvas(3, 3, 1)
	c.Clear(RGBBackground)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, RGBBackground, c.At(x, y))
		}
	}

	c.Translate(1, 1)
	c.Resize(5, 2)
	pw, ph := c.PixelSize()
	require.Equal(t, 5, pw)
	require.Equal(t, 2, ph)
	require.Equal(t, RGBBlack, c.At(4, 1))
	require.NotEqual(t, NewCanvas(5, 2, 1).state.transform, c.state.transform, "resize keeps the transform")
}

func TestCanvas_Digest(t *testing.T) {
	a := NewCanvas(8, 8, 1)
	b := NewCanvas(8, 8, 1)
	require.Equal(t, a.Digest(), b.Digest())

	a.SetFill(white())
	a.FillRect(1, 1, 1, 1)
	require.NotEqual(t, a.Digest(), b.Digest())

	b.SetFill(white())
	b.FillRect(1, 1, 1, 1)
	require.Equal(t, a.Digest(), b.Digest())

	// Same pixels, different shape
	require.NotEqual(t, NewCanvas(4, 2, 1).Digest(), NewCanvas(2, 4, 1).Digest())
}
