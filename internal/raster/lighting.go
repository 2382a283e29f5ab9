package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightConfig holds the preview lighting rig, in screen space.
type LightConfig struct {
	LightDir mgl64.Vec3
	RimDir   mgl64.Vec3
	HalfMain mgl64.Vec3 // Blinn-Phong half vector of LightDir and the view
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig is a key light from the upper right plus a cool rim.
func DefaultLightConfig() LightConfig {
	lightDir := mgl64.Vec3{180, 260, 140}.Normalize()
	viewDir := mgl64.Vec3{0, 0, -1}
	return LightConfig{
		LightDir: lightDir,
		RimDir:   mgl64.Vec3{-160, 130, -210}.Normalize(),
		HalfMain: lightDir.Sub(viewDir).Normalize(),
		Ambient:  0.35,
		Hemi:     0.30,
		Direct:   0.90,
		Rim:      0.30,
		SpecInt:  0.25,
		SpecPow:  16.0,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the light scalar for a unit face normal. Faces are lit on
// both sides since VTK winding is not guaranteed to be outward.
func (lc *LightConfig) Shade(n mgl64.Vec3) float64 {
	ndl := math.Abs(n.Dot(lc.LightDir))
	rim := math.Abs(n.Dot(lc.RimDir))
	hemi := ((1.0-math.Abs(n[1]))*0.5 + 0.5) * lc.Hemi
	ndh := math.Abs(n.Dot(lc.HalfMain))
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt
	return lc.Ambient + hemi + ndl*lc.Direct + rim*lc.Rim + spec
}

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies the ACES filmic curve to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// toLinear decodes a 0..1 sRGB channel through the LUT.
func toLinear(c float64) float64 {
	return srgbToLinear[clamp255(c*255)]
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
