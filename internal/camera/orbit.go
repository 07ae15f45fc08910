package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit distance limits and input scaling.
const (
	MinDistance float32 = 1
	MaxDistance float32 = 100

	sensitivity = 0.1
	zoomStep    = 0.1
	maxPitch    = 89.0
)

// Orbit rotates the eye around the target on a sphere. It is driven by
// cursor and scroll input and reset whenever new Parameters arrive.
type Orbit struct {
	Target   mgl32.Vec3
	Yaw      float64 // degrees around +y
	Pitch    float64 // degrees above the horizon
	Distance float32

	Dragging   bool
	firstMouse bool
	lastX      float64
	lastY      float64
}

// NewOrbit places the orbit so that it reproduces p's eye position.
func NewOrbit(p Parameters) *Orbit {
	o := &Orbit{}
	o.Reset(p)
	return o
}

// Reset re-derives yaw, pitch and distance from p.
func (o *Orbit) Reset(p Parameters) {
	o.Target = p.Target
	offset := p.Position.Sub(p.Target)
	dist := offset.Len()
	o.Distance = mgl32.Clamp(dist, MinDistance, MaxDistance)
	if dist < 1e-6 {
		o.Yaw, o.Pitch = 0, 0
	} else {
		o.Yaw = float64(mgl32.RadToDeg(float32(math.Atan2(float64(offset.X()), float64(offset.Z())))))
		o.Pitch = float64(mgl32.RadToDeg(float32(math.Asin(float64(offset.Y() / dist)))))
		o.Pitch = clampPitch(o.Pitch)
	}
	o.firstMouse = true
}

// HandleMouseMovement turns cursor motion into yaw and pitch while
// dragging. The first sample after a press only records the position.
func (o *Orbit) HandleMouseMovement(xpos, ypos float64) {
	if !o.Dragging {
		o.firstMouse = true
		return
	}
	if o.firstMouse {
		o.lastX, o.lastY = xpos, ypos
		o.firstMouse = false
		return
	}

	xoffset := (xpos - o.lastX) * sensitivity
	yoffset := (ypos - o.lastY) * sensitivity
	o.lastX, o.lastY = xpos, ypos

	o.Yaw -= xoffset
	o.Pitch = clampPitch(o.Pitch + yoffset)
}

// HandleScroll zooms in for positive offsets.
func (o *Orbit) HandleScroll(yoffset float64) {
	d := float64(o.Distance) * (1 - yoffset*zoomStep)
	o.Distance = mgl32.Clamp(float32(d), MinDistance, MaxDistance)
}

// Eye returns the current eye position.
func (o *Orbit) Eye() mgl32.Vec3 {
	yaw := mgl32.DegToRad(float32(o.Yaw))
	pitch := mgl32.DegToRad(float32(o.Pitch))
	cp := float32(math.Cos(float64(pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(yaw))),
		float32(math.Sin(float64(pitch))),
		cp * float32(math.Cos(float64(yaw))),
	}
	return o.Target.Add(offset.Mul(o.Distance))
}

// Apply returns p with the eye replaced by the orbit position.
func (o *Orbit) Apply(p Parameters) Pose {
	p.Position = o.Eye()
	p.Target = o.Target
	return NewPose(p)
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}
