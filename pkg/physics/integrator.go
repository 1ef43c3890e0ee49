package physics

// AccelField holds one acceleration per body packed as x0, y0, x1, y1, ...
// so whole fields can be summed with flat slice routines.
type AccelField []float64

func NewAccelField(n int) AccelField {
	return make(AccelField, 2*n)
}

// Len is the number of bodies the field covers.
func (a AccelField) Len() int {
	return len(a) / 2
}

func (a AccelField) At(i int) Vec2 {
	return Vec2{a[2*i], a[2*i+1]}
}

func (a AccelField) Add(i int, v Vec2) {
	a[2*i] += v.X
	a[2*i+1] += v.Y
}

func (a AccelField) Reset() {
	for i := range a {
		a[i] = 0
	}
}

// Integrate advances every body by dt. Position moves with the velocity the
// body had at the start of the step; only then is the velocity updated.
func Integrate(bodies []Body, acc AccelField, dt float64) {
	for i := range bodies {
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Mul(dt))
		bodies[i].Vel = bodies[i].Vel.Add(acc.At(i).Mul(dt))
	}
}
