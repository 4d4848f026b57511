package capture

import (
	"fmt"

	"github.com/amoffat/go-lightprobe/pkg/core"
)

// Config describes one cubemap capture. The frame range is validated against
// the scene's own range through the setters rather than at use time.
type Config struct {
	sceneStart int
	sceneEnd   int
	startFrame int
	endFrame   int

	Position  core.Vec3 // probe location, world units
	Size      int       // square face resolution
	NativeFPS float64   // the scene's frame rate
	TargetFPS float64   // playback rate of the captured sequence
	Gamma     float64   // display gamma recorded in the stream header
	SkyOnly   bool      // hide everything but the sky while capturing
}

// NewConfig creates a capture config spanning the scene's full frame range,
// with stock defaults: 256px faces, gamma 2.2, capture at the native rate.
func NewConfig(sceneStart, sceneEnd int, nativeFPS float64) Config {
	return Config{
		sceneStart: sceneStart,
		sceneEnd:   sceneEnd,
		startFrame: sceneStart,
		endFrame:   sceneEnd,
		Size:       256,
		NativeFPS:  nativeFPS,
		TargetFPS:  nativeFPS,
		Gamma:      2.2,
	}
}

// SetStartFrame sets the first captured frame.
// Precondition: any value. Postcondition: clamped to [sceneStart, sceneEnd].
func (c *Config) SetStartFrame(frame int) {
	c.startFrame = min(max(frame, c.sceneStart), c.sceneEnd)
}

// SetEndFrame sets the last captured frame.
// Precondition: any value. Postcondition: clamped to [sceneStart, sceneEnd].
func (c *Config) SetEndFrame(frame int) {
	c.endFrame = min(max(frame, c.sceneStart), c.sceneEnd)
}

// StartFrame returns the clamped first frame.
func (c *Config) StartFrame() int { return c.startFrame }

// EndFrame returns the clamped last frame.
func (c *Config) EndFrame() int { return c.endFrame }

// Validate checks the parts of the config the setters cannot guard.
func (c *Config) Validate() error {
	if c.endFrame < c.startFrame {
		return fmt.Errorf("end frame %d before start frame %d", c.endFrame, c.startFrame)
	}
	if c.NativeFPS <= 0 || c.TargetFPS <= 0 {
		return fmt.Errorf("frame rates must be positive (native %f, target %f)", c.NativeFPS, c.TargetFPS)
	}
	if c.Size <= 0 {
		return fmt.Errorf("face size must be positive, got %d", c.Size)
	}
	return nil
}
