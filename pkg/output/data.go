// Package output writes simulation results: raw position dumps, rendered
// frames, and comparisons against reference runs.
package output

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
)

var ErrBodyCount = errors.New("body count mismatch")

// WriteData writes every body position as two little-endian float64s.
func WriteData(w io.Writer, bodies []physics.Body) error {
	bw := bufio.NewWriter(w)
	var buf [16]byte
	for i := range bodies {
		binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(bodies[i].Pos.X))
		binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(bodies[i].Pos.Y))
		if _, err := bw.Write(buf[:]); err != nil {
			return errors.Wrapf(err, "writing body %d", i)
		}
	}
	return errors.Wrap(bw.Flush(), "flushing positions")
}

// ReadData reads positions written by WriteData.
func ReadData(r io.Reader) ([]physics.Vec2, error) {
	br := bufio.NewReader(r)
	var positions []physics.Vec2
	var buf [16]byte
	for {
		_, err := io.ReadFull(br, buf[:])
		if err == io.EOF {
			return positions, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading body %d", len(positions))
		}
		positions = append(positions, physics.Vec2{
			X: math.Float64frombits(binary.LittleEndian.Uint64(buf[0:8])),
			Y: math.Float64frombits(binary.LittleEndian.Uint64(buf[8:16])),
		})
	}
}

func WriteDataFile(path string, bodies []physics.Body) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := WriteData(f, bodies); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

func ReadDataFile(path string) ([]physics.Vec2, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	positions, err := ReadData(f)
	return positions, errors.Wrapf(err, "reading %s", path)
}

// MaxDifference is the largest absolute coordinate difference between the
// bodies and a reference set of positions.
func MaxDifference(bodies []physics.Body, reference []physics.Vec2) (float64, error) {
	if len(bodies) != len(reference) {
		return 0, errors.Wrapf(ErrBodyCount, "%d bodies, %d reference positions", len(bodies), len(reference))
	}
	got := make([]float64, 0, 2*len(bodies))
	want := make([]float64, 0, 2*len(reference))
	for i := range bodies {
		got = append(got, bodies[i].Pos.X, bodies[i].Pos.Y)
		want = append(want, reference[i].X, reference[i].Y)
	}
	if len(got) == 0 {
		return 0, nil
	}
	return floats.Distance(got, want, math.Inf(1)), nil
}
