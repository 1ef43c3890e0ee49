package physics

import (
	"image/color"
	"math"
)

// --- Wektor 2D ---
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len2() float64 {
	return v.Dot(v)
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.Len2())
}

// Normalize returns the unit vector along v. The zero vector has no
// direction and normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{0, 0}
	}
	return Vec2{v.X / l, v.Y / l}
}

// --- Ciało fizyczne ---

// Body is one simulated particle. Radius and ColorC are cosmetic and never
// enter the physics.
type Body struct {
	Mass   float64
	Pos    Vec2
	Vel    Vec2
	Radius float64
	ColorC color.RGBA
}

func (b Body) Color() color.Color {
	return b.ColorC
}

func (b Body) Momentum() Vec2 {
	return b.Vel.Mul(b.Mass)
}

func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.Len2()
}

// TotalMomentum sums mass*velocity over all bodies.
func TotalMomentum(bodies []Body) Vec2 {
	var p Vec2
	for i := range bodies {
		p = p.Add(bodies[i].Momentum())
	}
	return p
}

// TotalEnergy is kinetic plus unsoftened pairwise potential energy. Pairs
// inside the kernel cutoff are skipped, matching what the kernel feels.
func TotalEnergy(bodies []Body, k Kernel) float64 {
	e := 0.0
	for i := range bodies {
		e += bodies[i].KineticEnergy()
		for j := i + 1; j < len(bodies); j++ {
			d2 := bodies[i].Pos.Sub(bodies[j].Pos).Len2()
			if d2 <= k.Min2 {
				continue
			}
			e -= k.G * bodies[i].Mass * bodies[j].Mass / math.Sqrt(d2)
		}
	}
	return e
}
