package mathutil

import "github.com/go-gl/mathgl/mgl64"

// PreviewView is the three-quarter camera used for mesh previews: the scene
// (Z up) is turned to screen space (Y up, Z towards the viewer), yawed 30°
// and tilted 20° so the top and two sides of a box are visible.
var PreviewView = mgl64.Rotate3DX(mgl64.DegToRad(20)).
	Mul3(mgl64.Rotate3DY(mgl64.DegToRad(-30))).
	Mul3(zUpToYUp)

// zUpToYUp maps scene axes to screen axes: X stays, Z becomes Y, -Y becomes Z.
var zUpToYUp = mgl64.Rotate3DX(mgl64.DegToRad(-90))
