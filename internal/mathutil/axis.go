package mathutil

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis names one signed coordinate axis: "X", "Y", "Z", "-X", "-Y" or "-Z".
type Axis string

// Default scene orientation: Y forward, Z up.
const (
	DefaultForward Axis = "Y"
	DefaultUp      Axis = "Z"
)

// ParseAxis normalizes an axis name ("y", "-z", " X ").
func ParseAxis(s string) (Axis, error) {
	a := Axis(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := a.Vec(); err != nil {
		return "", err
	}
	return a, nil
}

// Vec returns the unit vector of the axis.
func (a Axis) Vec() (mgl64.Vec3, error) {
	switch a {
	case "X":
		return mgl64.Vec3{1, 0, 0}, nil
	case "Y":
		return mgl64.Vec3{0, 1, 0}, nil
	case "Z":
		return mgl64.Vec3{0, 0, 1}, nil
	case "-X":
		return mgl64.Vec3{-1, 0, 0}, nil
	case "-Y":
		return mgl64.Vec3{0, -1, 0}, nil
	case "-Z":
		return mgl64.Vec3{0, 0, -1}, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("mathutil: unknown axis %q", string(a))
}

// Orientation is a forward/up axis pair describing a file's coordinate frame.
type Orientation struct {
	Forward Axis
	Up      Axis
}

// DefaultOrientation is the scene frame; converting to it is the identity.
var DefaultOrientation = Orientation{Forward: DefaultForward, Up: DefaultUp}

// basis returns the rotation whose columns are forward, up and forward×up.
func (o Orientation) basis() (mgl64.Mat3, error) {
	f, err := o.Forward.Vec()
	if err != nil {
		return mgl64.Mat3{}, err
	}
	u, err := o.Up.Vec()
	if err != nil {
		return mgl64.Mat3{}, err
	}
	if f.Dot(u) != 0 {
		return mgl64.Mat3{}, fmt.Errorf("mathutil: forward %s and up %s share an axis", o.Forward, o.Up)
	}
	return mgl64.Mat3FromCols(f, u, f.Cross(u)), nil
}

// AxisConversion returns the rotation taking vectors expressed in the from
// frame to the to frame: from.Forward maps to to.Forward, from.Up to to.Up.
func AxisConversion(from, to Orientation) (mgl64.Mat3, error) {
	bf, err := from.basis()
	if err != nil {
		return mgl64.Mat3{}, err
	}
	bt, err := to.basis()
	if err != nil {
		return mgl64.Mat3{}, err
	}
	// Bases are orthonormal, so the transpose is the inverse.
	return bt.Mul3(bf.Transpose()), nil
}
