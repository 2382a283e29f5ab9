package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	libtess2 "github.com/hajimehoshi/go-libtess2"
)

// Triangulate splits a polygon into triangles of corner indices (0-based
// positions within pts). Convex polygons are fanned from the first corner;
// concave or self-intersecting ones go through libtess2 with the odd winding
// rule. Vertices libtess2 adds at intersections snap to the nearest corner.
func Triangulate(pts []mgl64.Vec3) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	if n == 3 || isConvex(pts) {
		tris := make([][3]int, 0, n-2)
		for i := 1; i+1 < n; i++ {
			tris = append(tris, [3]int{0, i, i + 1})
		}
		return tris
	}

	contour := make(libtess2.Contour, n)
	for i, p := range pts {
		contour[i] = libtess2.Vertex{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])}
	}
	elems, verts, err := libtess2.Tesselate([]libtess2.Contour{contour}, libtess2.WindingRuleOdd)
	if err != nil {
		return nil
	}

	corner := make([]int, len(verts))
	for i, tv := range verts {
		corner[i] = nearestCorner(pts, mgl64.Vec3{float64(tv.X), float64(tv.Y), float64(tv.Z)})
	}
	tris := make([][3]int, 0, len(elems)/3)
	for i := 0; i+2 < len(elems); i += 3 {
		tri := [3]int{corner[elems[i]], corner[elems[i+1]], corner[elems[i+2]]}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			continue
		}
		tris = append(tris, tri)
	}
	return tris
}

// newellNormal is the (unnormalized) area-weighted normal of a polygon.
func newellNormal(pts []mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		n[0] += (p[1] - q[1]) * (p[2] + q[2])
		n[1] += (p[2] - q[2]) * (p[0] + q[0])
		n[2] += (p[0] - q[0]) * (p[1] + q[1])
	}
	return n
}

// isConvex reports whether every corner turns the same way around the
// polygon normal.
func isConvex(pts []mgl64.Vec3) bool {
	n := newellNormal(pts)
	if n.Len() < 1e-12 {
		return false
	}
	count := len(pts)
	for i := range pts {
		a, b, c := pts[i], pts[(i+1)%count], pts[(i+2)%count]
		if b.Sub(a).Cross(c.Sub(b)).Dot(n) < -1e-12 {
			return false
		}
	}
	return true
}

func nearestCorner(pts []mgl64.Vec3, v mgl64.Vec3) int {
	best, bestD := 0, math.Inf(1)
	for i, p := range pts {
		if d := p.Sub(v).LenSqr(); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
