package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

var ErrInvalidCamera = errors.New("invalid camera configuration")

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Camera position (look from)
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the plane in focus, 0 = distance to LookAt
	Time0, Time1  float64   // Shutter interval
}

// Validate rejects configurations that produce a degenerate basis
func (c CameraConfig) Validate() error {
	switch {
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("%w: vfov must be in (0, 180) degrees", ErrInvalidCamera)
	case !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio must be positive", ErrInvalidCamera)
	case c.Aperture < 0 || c.FocusDistance < 0:
		return fmt.Errorf("%w: aperture and focus distance must not be negative", ErrInvalidCamera)
	case c.Center.Subtract(c.LookAt).NearZero():
		return fmt.Errorf("%w: look-from and look-at coincide", ErrInvalidCamera)
	case c.Up.Cross(c.Center.Subtract(c.LookAt)).NearZero():
		return fmt.Errorf("%w: up vector is parallel to the view direction", ErrInvalidCamera)
	case c.Time1 < c.Time0:
		return fmt.Errorf("%w: shutter closes before it opens", ErrInvalidCamera)
	}
	return nil
}

// Camera is a thin-lens camera that generates rays for normalized
// screen coordinates, (0,0) at the bottom-left of the image
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3 // lens basis
	lensRadius      float64
	time0, time1    float64
}

// NewCamera creates a camera from the config. Call Validate first.
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	origin := config.Center
	horizontal := u.Multiply(focusDistance * viewportWidth)
	vertical := v.Multiply(focusDistance * viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// The sampler is drawn from only for lens jitter and shutter time.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	time := c.time0
	if c.time1 > c.time0 {
		time = c.time0 + sampler.Get1D()*(c.time1-c.time0)
	}

	return core.NewRayAtTime(origin, direction, time)
}
