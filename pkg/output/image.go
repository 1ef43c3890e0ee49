package output

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jamiehughes5926/nbody-simulator-a3/pkg/physics"
)

var (
	background = color.RGBA{0, 0, 0, 255}
	bodyColor  = color.RGBA{255, 0, 0, 255}
	textColor  = color.RGBA{200, 200, 200, 255}
)

// Frame draws one red pixel per body inside a width x height frame, with an
// optional caption in the top left corner. offset is added to every position.
func Frame(bodies []physics.Body, width, height int, offset physics.Vec2, caption string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	for i := range bodies {
		p := bodies[i].Pos.Add(offset)
		if p.X >= 0 && p.X < float64(width) && p.Y >= 0 && p.Y < float64(height) {
			img.SetRGBA(int(p.X), int(p.Y), bodyColor)
		}
	}

	if caption != "" {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(textColor),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(8, 16),
		}
		d.DrawString(caption)
	}
	return img
}

func RenderPNG(w io.Writer, bodies []physics.Body, width, height int, offset physics.Vec2, caption string) error {
	return errors.Wrap(png.Encode(w, Frame(bodies, width, height, offset, caption)), "encoding png")
}

func RenderPNGFile(path string, bodies []physics.Body, width, height int, offset physics.Vec2, caption string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := RenderPNG(f, bodies, width, height, offset, caption); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}
