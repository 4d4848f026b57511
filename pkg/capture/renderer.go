// Package capture drives an opaque renderer through a multi-frame,
// six-direction cubemap capture, one chunk per scheduler tick, writing a
// length-prefixed binary stream.
package capture

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// CameraPose positions the capture camera for one render invocation.
type CameraPose struct {
	Position    core.Vec3
	Orientation mgl64.Quat
	FOV         float64 // vertical field of view in radians
}

// Renderer is the opaque image-producing collaborator. Given a frame number,
// a camera pose and a square output resolution it returns the encoded image
// bytes. The encoding is treated as an uninterpreted blob by this package.
type Renderer interface {
	Render(frame int, pose CameraPose, size int) ([]byte, error)
}

// SceneController applies the temporary scene state a capture needs (hiding
// the probe object itself, and everything but the sky when skyOnly is set).
// The returned restore function undoes every change; the job guarantees it
// runs on completion, cancellation and failure alike.
type SceneController interface {
	Acquire(skyOnly bool) (restore func(), err error)
}
