package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"vtk-polydata/internal/mesh"
)

// DefaultColor is used when the mesh has no color layer.
var DefaultColor = [4]float64{160.0 / 255, 160.0 / 255, 170.0 / 255, 1}

// Options control a preview render.
type Options struct {
	Size        int        // output edge in pixels before supersampling
	Supersample int        // render at Size*Supersample
	View        mgl64.Mat3 // scene to screen rotation (Y up, Z towards viewer)
	ColorLayer  string     // "" = first layer
}

// Render draws m orthographically, framed to fit the render target.
// The result is Size*Supersample pixels square; callers downsample.
func Render(m *mesh.Mesh, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := opts.Size * ss
	fb := NewFrameBuffer(renderSize)
	if len(m.Verts) == 0 || len(m.Polys) == 0 {
		return fb.Image()
	}

	// View transform and bounds
	tv := make([]mgl64.Vec3, len(m.Verts))
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, v := range m.Verts {
		t := opts.View.Mul3x1(v)
		tv[i] = t
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], t[k])
			hi[k] = math.Max(hi[k], t[k])
		}
	}
	center := lo.Add(hi).Mul(0.5)
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 1e-3 {
		span = 1e-3
	}
	margin := float64(8 * ss)
	scale := (float64(renderSize) - 2*margin) / span
	half := float64(renderSize) / 2

	var colors [][4]float64
	if opts.ColorLayer != "" {
		if cl := m.Layer(opts.ColorLayer); cl != nil {
			colors = cl.Data
		}
	} else if len(m.ColorLayers) > 0 {
		colors = m.ColorLayers[0].Data
	}
	if len(colors) != len(m.Loops) {
		colors = nil
	}

	lc := DefaultLightConfig()
	var corners []mgl64.Vec3
	var proj []Vertex
	for _, p := range m.Polys {
		corners = corners[:0]
		proj = proj[:0]
		for li := p.LoopStart; li < p.LoopStart+p.LoopTotal; li++ {
			vi := m.Loops[li].Vert
			if vi < 0 || vi >= len(tv) {
				continue
			}
			t := tv[vi]
			c := DefaultColor
			if colors != nil {
				c = colors[li]
			}
			corners = append(corners, t)
			proj = append(proj, Vertex{
				X: (t[0]-center[0])*scale + half,
				Y: -(t[1]-center[1])*scale + half,
				Z: t[2],
				C: c,
			})
		}
		for _, tri := range Triangulate(corners) {
			RasterizeTriangle(fb, [3]Vertex{proj[tri[0]], proj[tri[1]], proj[tri[2]]}, &lc)
		}
	}

	return fb.Image()
}
