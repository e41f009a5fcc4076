package output

import (
	"bufio"
	"fmt"
	"image"
	"io"
)

// WritePPM writes img as an ASCII (P3) portable pixmap, one "R G B" line per
// pixel in row-major order starting at the top row. Alpha is dropped.
func WritePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
