package simulation

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
)

func writeScene(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeScene(t, "binary.json", `{
  "name": "binary",
  "dt": 0.01,
  "steps": 200,
  "bodies": [
    {"mass": 1e15, "pos": [0, 0], "vel": [0, 0], "color": "#ffcc00", "radius": 5},
    {"mass": 1e9, "pos": [500, 0], "vel": [0, 44.7], "radius": 2}
  ]
}`)

	env, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "binary", env.Name)
	assert.Equal(t, 0.01, env.Dt)
	assert.Equal(t, 200, env.Steps)
	assert.Equal(t, physics.DefaultKernel(), env.Kernel())

	bodies := env.BuildBodies()
	require.Len(t, bodies, 2)
	assert.Equal(t, physics.Vec2{X: 500}, bodies[1].Pos)
	assert.Equal(t, physics.Vec2{Y: 44.7}, bodies[1].Vel)
	assert.Equal(t, 2.0, bodies[1].Radius)
	assert.Equal(t, color.RGBA{255, 204, 0, 255}, bodies[0].ColorC)
	assert.Equal(t, color.RGBA{200, 200, 255, 255}, bodies[1].ColorC)
}

func TestLoadConfigYAMLAutoOrbit(t *testing.T) {
	path := writeScene(t, "orbit.yaml", `
name: orbit
dt: 0.05
g: 1
min2: 0.5
auto_orbit: true
bodies:
  - mass: 100
    pos: [10, 10]
    vel: [1, 0]
  - mass: 1
    pos: [10, 14]
    vel: [0, 0]
  - mass: 1
    pos: [0, 0]
    vel: [3, 3]
`)

	env, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, physics.Kernel{G: 1, Min2: 0.5}, env.Kernel())

	// body 1 at rest gets a circular orbit around body 0, offset by its velocity
	v := math.Sqrt(1 * 101 / 4.0)
	assert.InDelta(t, 1-v, env.Bodies[1].Vel[0], 1e-12)
	assert.InDelta(t, 0, env.Bodies[1].Vel[1], 1e-12)

	// body 2 already moves and keeps its velocity
	assert.Equal(t, [2]float64{3, 3}, env.Bodies[2].Vel)
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "malformed", content: `{"name": `, errMsg: "parsing scene"},
		{name: "no dt", content: `{"bodies": [{"mass": 1}]}`, errMsg: "dt must be positive"},
		{name: "no bodies", content: `{"dt": 0.1}`, errMsg: "scene has no bodies"},
		{name: "zero mass", content: `{"dt": 0.1, "bodies": [{"mass": 1}, {"mass": 0}]}`, errMsg: "body 1: mass must be positive"},
		{name: "negative min2", content: `{"dt": 0.1, "min2": -1, "bodies": [{"mass": 1}]}`, errMsg: "min2 cannot be negative"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeScene(t, "scene.json", tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading scene")
	})
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.RGBA{0x12, 0xab, 0xff, 255}, parseColor("#12abff"))
	assert.Equal(t, color.RGBA{200, 200, 255, 255}, parseColor("red"))
	assert.Equal(t, color.RGBA{200, 200, 255, 255}, parseColor(""))
}

func TestShippedScenes(t *testing.T) {
	for _, name := range []string{"solar.json", "binary.yaml"} {
		t.Run(name, func(t *testing.T) {
			env, err := LoadConfig(filepath.Join("..", "assets", name))
			require.NoError(t, err)
			assert.NotEmpty(t, env.Name)
			assert.Positive(t, env.Steps)
			for i, b := range env.BuildBodies()[1:] {
				assert.NotEqual(t, physics.Vec2{}, b.Vel, "body %d has no velocity", i+1)
			}
		})
	}
}
