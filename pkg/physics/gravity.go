package physics

const (
	G    = 1e-9 // stała grawitacji w jednostkach symulacji
	Min2 = 2.0  // minimalny kwadrat odległości, poniżej para nie oddziałuje
)

// Kernel computes softened pairwise gravity. The zero value is useless; use
// DefaultKernel or fill both fields.
type Kernel struct {
	G    float64
	Min2 float64
}

func DefaultKernel() Kernel {
	return Kernel{G: G, Min2: Min2}
}

// Pair returns the accelerations bi and bj impart on each other. Pairs with
// squared separation at or below Min2 do not interact. Between Min2 and
// 2*Min2 the force is ramped in with a smoothstep so there is no jump at
// the cutoff.
func (k Kernel) Pair(bi, bj *Body) (ai, aj Vec2) {
	dx := bi.Pos.Sub(bj.Pos)
	d2 := dx.Len2()
	if d2 <= k.Min2 {
		return Vec2{}, Vec2{}
	}

	x := Smoothstep(k.Min2, 2*k.Min2, d2)
	f := -k.G * bi.Mass * bj.Mass / d2
	uf := dx.Normalize().Mul(f)

	ai = uf.Div(bi.Mass).Mul(x)
	aj = uf.Div(bj.Mass).Mul(x).Neg()
	return ai, aj
}

// Smoothstep is the clamped cubic Hermite ramp: 0 at edge0, 1 at edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}
