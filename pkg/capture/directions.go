package capture

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// Direction identifies one face of the cubemap. The enumeration order is the
// stream's block order and must not change.
type Direction int

const (
	PosX Direction = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Directions lists the six cube faces in stream order.
var Directions = [6]Direction{PosX, NegX, PosY, NegY, PosZ, NegZ}

// FOV is the camera field of view for a cube face: exactly a quarter turn so
// the six faces tile the sphere.
const FOV = math.Pi / 2

func (d Direction) String() string {
	switch d {
	case PosX:
		return "posx"
	case NegX:
		return "negx"
	case PosY:
		return "posy"
	case NegY:
		return "negy"
	case PosZ:
		return "posz"
	case NegZ:
		return "negz"
	}
	return "unknown"
}

const sqrtHalf = 0.7071067811865476

// Orientation returns the camera rotation for this cube face. The camera
// convention looks down its local -Z axis with +Y up.
func (d Direction) Orientation() mgl64.Quat {
	switch d {
	case PosX:
		return mgl64.Quat{W: 0.5, V: mgl64.Vec3{0.5, -0.5, -0.5}}
	case NegX:
		return mgl64.Quat{W: 0.5, V: mgl64.Vec3{0.5, 0.5, 0.5}}
	case PosY:
		return mgl64.Quat{W: 0, V: mgl64.Vec3{0, -1, 0}}
	case NegY:
		return mgl64.Quat{W: 0, V: mgl64.Vec3{0, 0, -1}}
	case PosZ:
		return mgl64.Quat{W: 0, V: mgl64.Vec3{0, -sqrtHalf, -sqrtHalf}}
	case NegZ:
		return mgl64.Quat{W: -sqrtHalf, V: mgl64.Vec3{-sqrtHalf, 0, 0}}
	}
	return mgl64.QuatIdent()
}

// Pose builds the camera pose for this face at the probe's position.
func (d Direction) Pose(position core.Vec3) CameraPose {
	return CameraPose{
		Position:    position,
		Orientation: d.Orientation(),
		FOV:         FOV,
	}
}
