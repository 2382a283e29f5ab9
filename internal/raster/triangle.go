package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is a projected corner: screen X/Y in pixels, depth Z, and an RGBA
// color with channels in 0..1.
type Vertex struct {
	X, Y, Z float64
	C       [4]float64
}

// RasterizeTriangle fills one triangle with Gouraud-interpolated vertex
// colors, flat lighting from the face normal, z-buffering and ACES tone
// mapping. Fragments with alpha below 8/255 are discarded.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, lc *LightConfig) {
	a, b, c := v[0], v[1], v[2]

	e1 := mgl64.Vec3{b.X - a.X, b.Y - a.Y, b.Z - a.Z}
	e2 := mgl64.Vec3{c.X - a.X, c.Y - a.Y, c.Z - a.Z}
	n := e1.Cross(e2)
	nl := n.Len()
	if nl < 1e-8 {
		return
	}
	shade := lc.Shade(n.Mul(1/nl)) * lc.Exposure

	size := fb.Size
	minX := int(math.Max(math.Floor(math.Min(math.Min(a.X, b.X), c.X)), 0))
	maxX := int(math.Min(math.Ceil(math.Max(math.Max(a.X, b.X), c.X)), float64(size-1)))
	minY := int(math.Max(math.Floor(math.Min(math.Min(a.Y, b.Y), c.Y)), 0))
	maxY := int(math.Min(math.Ceil(math.Max(math.Max(a.Y, b.Y), c.Y)), float64(size-1)))
	if minX > maxX || minY > maxY {
		return
	}

	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Corner colors in linear light.
	var lin [3][3]float64
	for i, p := range v {
		for k := 0; k < 3; k++ {
			lin[i][k] = toLinear(p.C[k])
		}
	}

	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5 - c.Y
		row := sy * size
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5 - c.X
			w0 := ((b.Y-c.Y)*px + (c.X-b.X)*py) * invDet
			w1 := ((c.Y-a.Y)*px + (a.X-c.X)*py) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			zi := row + sx
			if z <= fb.Depth[zi] {
				continue
			}
			alpha := w0*a.C[3] + w1*b.C[3] + w2*c.C[3]
			if alpha < 8.0/255 {
				continue
			}
			fb.Depth[zi] = z

			pi := zi * 4
			for k := 0; k < 3; k++ {
				l := (w0*lin[0][k] + w1*lin[1][k] + w2*lin[2][k]) * shade
				fb.Color[pi+k] = clamp255(math.Pow(ACESTonemap(l), lc.InvGamma) * 255)
			}
			fb.Color[pi+3] = clamp255(alpha * 255)
		}
	}
}
