package simulation

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
)

// --- Struktura konfiguracji środowiska ---

// EnvironmentConfig is a scene file. JSON and YAML are both accepted.
type EnvironmentConfig struct {
	Name      string       `json:"name"`
	Dt        float64      `json:"dt"`
	Steps     int          `json:"steps,omitempty"`
	G         float64      `json:"g,omitempty"`
	Min2      float64      `json:"min2,omitempty"`
	Bodies    []BodyConfig `json:"bodies"`
	AutoOrbit bool         `json:"auto_orbit,omitempty"`
}

type BodyConfig struct {
	Mass   float64    `json:"mass"`
	Pos    [2]float64 `json:"pos"`
	Vel    [2]float64 `json:"vel"`
	Color  string     `json:"color,omitempty"`
	Radius float64    `json:"radius,omitempty"`
}

// Kernel returns the force kernel the scene asks for, falling back to the
// package defaults for unset constants.
func (c EnvironmentConfig) Kernel() physics.Kernel {
	k := physics.DefaultKernel()
	if c.G != 0 {
		k.G = c.G
	}
	if c.Min2 != 0 {
		k.Min2 = c.Min2
	}
	return k
}

func (c EnvironmentConfig) Validate() error {
	if c.Dt <= 0 {
		return errors.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Steps < 0 {
		return errors.Errorf("steps cannot be negative, got %d", c.Steps)
	}
	if c.Min2 < 0 {
		return errors.Errorf("min2 cannot be negative, got %g", c.Min2)
	}
	if len(c.Bodies) == 0 {
		return errors.New("scene has no bodies")
	}
	for i, b := range c.Bodies {
		if !(b.Mass > 0) {
			return errors.Errorf("body %d: mass must be positive, got %g", i, b.Mass)
		}
	}
	return nil
}

// BuildBodies converts the scene into the body slice the engine advances.
func (c EnvironmentConfig) BuildBodies() []physics.Body {
	bodies := make([]physics.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = physics.Body{
			Mass:   b.Mass,
			Pos:    physics.Vec2{X: b.Pos[0], Y: b.Pos[1]},
			Vel:    physics.Vec2{X: b.Vel[0], Y: b.Vel[1]},
			Radius: b.Radius,
			ColorC: parseColor(b.Color),
		}
	}
	return bodies
}

// SetOrbitalVelocities gives every body at rest a circular orbit around
// body 0, perpendicular to the line joining them.
func SetOrbitalVelocities(bodies []BodyConfig, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0] // pierwsze ciało traktujemy jako centralne
	for i := 1; i < len(bodies); i++ {
		if bodies[i].Vel[0] != 0 || bodies[i].Vel[1] != 0 {
			continue
		}

		dx := bodies[i].Pos[0] - central.Pos[0]
		dy := bodies[i].Pos[1] - central.Pos[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * (central.Mass + bodies[i].Mass) / r)
		bodies[i].Vel[0] = central.Vel[0] - dy/r*v
		bodies[i].Vel[1] = central.Vel[1] + dx/r*v
	}
}

// --- Wczytanie pliku konfiguracyjnego ---
func LoadConfig(path string) (*EnvironmentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scene %s", path)
	}

	var env EnvironmentConfig
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrapf(err, "parsing scene %s", path)
	}
	if err := env.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid scene %s", path)
	}

	if env.AutoOrbit {
		SetOrbitalVelocities(env.Bodies, env.Kernel().G)
	}
	return &env, nil
}

// --- Parser koloru HEX ---
func parseColor(hex string) color.RGBA {
	var r, g, b uint8
	if len(hex) == 7 && hex[0] == '#' {
		n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
		if err == nil && n == 3 {
			return color.RGBA{r, g, b, 255}
		}
	}
	return color.RGBA{200, 200, 255, 255}
}
