package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector2_Set(t *testing.T) {
	v := V2(1, 2)
	v.Set(V2(-3, 4.5))
	require.Equal(t, Vector2{X: -3, Y: 4.5}, v)

	v.UpdateValue(Vector2{})
	require.Equal(t, Vector2{}, v)
}

func TestVector2_Arithmetic(t *testing.T) {
	a := V2(1, 2)
	b := V2(3, -1)

	assert.Equal(t, V2(4, 1), a.Add(b))

	// Value semantics: operands untouched
	assert.Equal(t, V2(1, 2), a)
}

func TestVector2_Rotate(t *testing.T) {
	r := V2(1, 0).Rotate(math.Pi / 2)
	assert.True(t, r.ApproxEqual(V2(0, 1), 1e-12), "got %v", r)

	r = V2(0, -3).Rotate(math.Pi)
	assert.True(t, r.ApproxEqual(V2(0, 3), 1e-12), "got %v", r)
}

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, math.Pi, DegToRad(180), 1e-15)
	assert.InDelta(t, -math.Pi/9, DegToRad(-20), 1e-15)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(-1e300))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
}
