package simulation

import (
	"image/color"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
)

const (
	SunMass      = 1e15
	SunRadius    = 5.0
	PlanetMass   = 1e9
	PlanetRadius = 2.0
)

// OrbitOptions controls GenerateOrbits.
type OrbitOptions struct {
	Bodies        int
	Width, Height float64
	Seed          uint64
	G             float64
}

// GenerateOrbits places a heavy sun at the centre of the frame and puts
// every other body on a circular orbit around it at a random radius and
// angle. The same seed always yields the same bodies.
func GenerateOrbits(o OrbitOptions) []physics.Body {
	if o.Bodies <= 0 {
		return nil
	}
	g := o.G
	if g == 0 {
		g = physics.G
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15)}

	cx, cy := o.Width/2, o.Height/2
	bodies := make([]physics.Body, o.Bodies)
	bodies[0] = physics.Body{
		Mass:   SunMass,
		Pos:    physics.Vec2{X: cx, Y: cy},
		Radius: SunRadius,
		ColorC: color.RGBA{255, 200, 0, 255},
	}

	for i := 1; i < o.Bodies; i++ {
		r := (u.Rand() + 0.1) * o.Height / 2
		theta := u.Rand() * 2 * math.Pi
		v := math.Sqrt(g * (SunMass + PlanetMass) / r)

		sin, cos := math.Sincos(theta)
		bodies[i] = physics.Body{
			Mass:   PlanetMass,
			Pos:    physics.Vec2{X: cx + r*cos, Y: cy + r*sin},
			Vel:    physics.Vec2{X: -sin * v, Y: cos * v},
			Radius: PlanetRadius,
			ColorC: color.RGBA{255, 0, 0, 255},
		}
	}
	return bodies
}
