package sylva

import "github.com/hajimehoshi/ebiten/v2"

// maxQuadsPerDraw keeps each DrawTriangles call under ebiten's 65536-vertex
// limit (4 vertices per quad).
const maxQuadsPerDraw = 16000

// minVisibleOpacity is the submission floor; points dimmer than this are
// skipped entirely instead of burning fill rate on invisible quads.
const minVisibleOpacity = 1.0 / 255

// quadIndices is the static chunk-local index pattern (0,1,2, 0,2,3 per
// quad), shared by every flush.
var quadIndices []uint16

func init() {
	quadIndices = make([]uint16, 0, maxQuadsPerDraw*6)
	for q := 0; q < maxQuadsPerDraw; q++ {
		base := uint16(q * 4)
		quadIndices = append(quadIndices, base, base+1, base+2, base, base+2, base+3)
	}
}

// PointRenderer submits a cloud's flat buffers as screen-space quads, one
// per particle, textured with WhitePixel. World coordinates are
// screen-centered with Y up; the renderer applies the flip.
//
// Prepare rebuilds the vertex array from the buffers; Flush draws it. The
// engine calls Prepare only when the cloud's dirty flag is set, so an idle
// figure costs a few draw calls and no vertex work. Vertex storage grows to
// a high-water mark and is reused across frames.
type PointRenderer struct {
	// PointSize is the base quad size in pixels.
	PointSize float64
	// Color is the point tint; per-particle opacity multiplies its alpha.
	Color Color
	// Blend is the compositing operation for the whole cloud.
	Blend BlendMode

	width, height float64
	depthScale    float64
	verts         []ebiten.Vertex
	quads         int
}

// NewPointRenderer creates a renderer for a viewport of the given pixel size.
func NewPointRenderer(cfg Config, width, height int) *PointRenderer {
	cfg.applyDefaults()
	return &PointRenderer{
		PointSize:  cfg.PointSize,
		Color:      cfg.PointColor,
		Blend:      cfg.Blend,
		width:      float64(width),
		height:     float64(height),
		depthScale: 0.5 / cfg.DepthRange,
	}
}

// Resize updates the viewport size used for the world-to-screen mapping.
func (r *PointRenderer) Resize(width, height int) {
	r.width = float64(width)
	r.height = float64(height)
}

// QuadCount returns the number of quads built by the last Prepare.
func (r *PointRenderer) QuadCount() int {
	return r.quads
}

// Prepare rebuilds the vertex array from the flat buffers. alpha multiplies
// every point's opacity (used for the engine's intro fade). Call after the
// buffers have been mutated; Flush then draws the prepared vertices.
func (r *PointRenderer) Prepare(positions, opacities []float32, alpha float64) {
	r.verts = r.verts[:0]
	r.quads = 0
	if alpha <= 0 {
		return
	}

	for i := range opacities {
		a := float64(opacities[i]) * alpha
		if a < minVisibleOpacity {
			continue
		}

		x := float64(positions[i*3])
		y := float64(positions[i*3+1])
		z := float64(positions[i*3+2])

		// Nearer points render slightly larger — a cheap depth cue that
		// keeps the cloud from reading as a flat sheet.
		size := r.PointSize * (1 + z*r.depthScale)
		if size <= 0 {
			continue
		}
		half := float32(size / 2)

		sx := float32(r.width/2 + x)
		sy := float32(r.height/2 - y)

		cr := float32(r.Color.R * a)
		cg := float32(r.Color.G * a)
		cb := float32(r.Color.B * a)
		ca := float32(r.Color.A * a)

		r.verts = append(r.verts,
			ebiten.Vertex{DstX: sx - half, DstY: sy - half, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: sx + half, DstY: sy - half, SrcX: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: sx + half, DstY: sy + half, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: sx - half, DstY: sy + half, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		)
		r.quads++
	}
}

// Flush draws the prepared vertices to dst in chunks below ebiten's vertex
// limit. Safe to call repeatedly without re-preparing.
func (r *PointRenderer) Flush(dst *ebiten.Image) {
	if r.quads == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = r.Blend.EbitenBlend()

	for start := 0; start < r.quads; start += maxQuadsPerDraw {
		n := r.quads - start
		if n > maxQuadsPerDraw {
			n = maxQuadsPerDraw
		}
		verts := r.verts[start*4 : (start+n)*4]
		dst.DrawTriangles(verts, quadIndices[:n*6], WhitePixel, &op)
	}
}
