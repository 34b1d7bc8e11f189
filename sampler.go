package sylva

import (
	"errors"
	"image"
	"math/rand/v2"

	xdraw "golang.org/x/image/draw"
)

// ErrEmptySample is returned by Sample when no pixel passes the
// alpha/brightness test (for example a fully transparent or fully light
// image). Callers must not build a Cloud from an empty result.
var ErrEmptySample = errors.New("sylva: sample produced no seeds")

// Thresholds for the dark-pixel test. A pixel becomes a seed iff its alpha
// exceeds alphaThreshold and its mean channel brightness, composited over the
// light background, falls below brightnessThreshold.
const (
	alphaThreshold      = 128
	brightnessThreshold = 128

	// sampleBackground is the brightness of the opaque backdrop the
	// silhouette is composited against. Light, so partially transparent
	// pixels lighten instead of reading as false darkness.
	sampleBackground = 245
)

// Sample converts the dark pixels of img into origin-centered 3D seeds.
//
// The image is rescaled (aspect preserved, centered) onto a square canvas of
// cfg.Resolution pixels and scanned at cfg.Stride intervals. Seed X/Y are the
// canvas pixel coordinates translated so the canvas center is the origin,
// with Y flipped to grow upward. Seed Z is uniform in
// [-cfg.DepthRange/2, cfg.DepthRange/2], redrawn per call — intentional
// noise so the silhouette does not render as a flat sheet.
//
// Seed count and planar positions are deterministic for a fixed image and
// config; only Z varies between calls.
func Sample(img image.Image, cfg Config) ([]Vec3, error) {
	cfg.applyDefaults()

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptySample
	}

	res := cfg.Resolution
	canvas := image.NewRGBA(image.Rect(0, 0, res, res))

	// Aspect-preserving fit, centered on the canvas. Alpha is preserved
	// (xdraw.Src) so the threshold test sees the source coverage; the light
	// backdrop is applied arithmetically during the scan.
	scale := float64(res) / float64(b.Dx())
	if s := float64(res) / float64(b.Dy()); s < scale {
		scale = s
	}
	dw := int(float64(b.Dx()) * scale)
	dh := int(float64(b.Dy()) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	ox := (res - dw) / 2
	oy := (res - dh) / 2
	xdraw.ApproxBiLinear.Scale(canvas, image.Rect(ox, oy, ox+dw, oy+dh), img, b, xdraw.Src, nil)

	half := float64(res-1) / 2
	var seeds []Vec3
	for py := 0; py < res; py += cfg.Stride {
		row := canvas.Pix[py*canvas.Stride : py*canvas.Stride+res*4]
		for px := 0; px < res; px += cfg.Stride {
			i := px * 4
			a := uint32(row[i+3])
			if a <= alphaThreshold {
				continue
			}
			// Pix is premultiplied; composite over the light backdrop.
			bg := sampleBackground * (255 - a) / 255
			r := uint32(row[i]) + bg
			g := uint32(row[i+1]) + bg
			bl := uint32(row[i+2]) + bg
			if (r+g+bl)/3 >= brightnessThreshold {
				continue
			}
			seeds = append(seeds, Vec3{
				X: float64(px) - half,
				Y: half - float64(py),
				Z: (rand.Float64() - 0.5) * cfg.DepthRange,
			})
		}
	}

	if len(seeds) == 0 {
		return nil, ErrEmptySample
	}
	return seeds, nil
}
