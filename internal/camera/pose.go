package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	minFieldOfView float32 = 1
	maxFieldOfView float32 = 179
)

// Pose is the renderable form of Parameters: a look-at view and the
// projection settings, with degenerate inputs already corrected.
type Pose struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32
}

// NewPose builds a pose from p. A zero or parallel up vector is replaced so
// the view matrix stays invertible, and the field of view and far plane are
// pulled into a usable range.
func NewPose(p Parameters) Pose {
	pose := Pose{
		Eye:    p.Position,
		Center: p.Target,
		Up:     p.Up,
		FovY:   mgl32.Clamp(p.FieldOfViewY, minFieldOfView, maxFieldOfView),
		Near:   ZNear,
		Far:    p.ZFar,
	}
	if !(pose.Far > ZNear) {
		pose.Far = ZNear * 2
	}

	dir := pose.Center.Sub(pose.Eye)
	if dir.Len() < 1e-6 {
		pose.Center = pose.Eye.Sub(mgl32.Vec3{0, 0, 1})
		dir = pose.Center.Sub(pose.Eye)
	}
	if pose.Up.Len() < 1e-6 || dir.Normalize().Cross(pose.Up.Normalize()).Len() < 1e-4 {
		pose.Up = fallbackUp(dir)
	}
	return pose
}

// fallbackUp picks +y unless the view direction is vertical, then +z.
func fallbackUp(dir mgl32.Vec3) mgl32.Vec3 {
	if dir.Normalize().Cross(mgl32.Vec3{0, 1, 0}).Len() < 1e-4 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

// View returns the world-to-camera matrix.
func (p Pose) View() mgl32.Mat4 {
	return mgl32.LookAtV(p.Eye, p.Center, p.Up)
}

// Projection returns the perspective matrix for the given viewport aspect
// ratio. A non-positive aspect is treated as square.
func (p Pose) Projection(aspect float32) mgl32.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FovY), aspect, p.Near, p.Far)
}

// ViewProjection returns Projection(aspect) * View().
func (p Pose) ViewProjection(aspect float32) mgl32.Mat4 {
	return p.Projection(aspect).Mul4(p.View())
}
