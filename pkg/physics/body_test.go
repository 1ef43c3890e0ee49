package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{-1, 2}

	assert.Equal(t, Vec2{2, 6}, a.Add(b))
	assert.Equal(t, Vec2{4, 2}, a.Sub(b))
	assert.Equal(t, Vec2{6, 8}, a.Mul(2))
	assert.Equal(t, Vec2{1.5, 2}, a.Div(2))
	assert.Equal(t, Vec2{-3, -4}, a.Neg())
	assert.Equal(t, 5.0, a.Dot(b))
	assert.Equal(t, 25.0, a.Len2())
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, Vec2{0.6, 0.8}, a.Normalize())
}

func TestNormalizeZero(t *testing.T) {
	n := Vec2{}.Normalize()
	assert.Equal(t, Vec2{}, n)
	assert.False(t, math.IsNaN(n.X))
}

func TestTotalMomentum(t *testing.T) {
	bodies := []Body{
		{Mass: 2, Vel: Vec2{1, 0}},
		{Mass: 1, Vel: Vec2{-2, 3}},
	}
	assert.Equal(t, Vec2{0, 3}, TotalMomentum(bodies))
}

func TestTotalEnergy(t *testing.T) {
	k := Kernel{G: 1, Min2: 0.5}
	bodies := []Body{
		{Mass: 2, Vel: Vec2{1, 0}},
		{Mass: 1, Pos: Vec2{2, 0}},
		{Mass: 1, Pos: Vec2{0.5, 0}}, // inside cutoff of body 0
	}

	// kinetic 1, body0-body1 -1, body1-body2 -1/1.5, body0-body2 skipped
	expected := 1.0 - 1.0 - 1.0/1.5
	assert.InDelta(t, expected, TotalEnergy(bodies, k), 1e-12)
}
