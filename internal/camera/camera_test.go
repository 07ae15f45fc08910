package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultParametersFinite(t *testing.T) {
	p := DefaultParameters()
	if !p.Finite() {
		t.Fatal("default camera should be finite")
	}
	p.Up[1] = float32(math.NaN())
	if p.Finite() {
		t.Error("NaN up component should not be finite")
	}
	p = DefaultParameters()
	p.ZFar = float32(math.Inf(1))
	if p.Finite() {
		t.Error("infinite far plane should not be finite")
	}
}

func TestNewPoseKeepsValidInput(t *testing.T) {
	p := DefaultParameters()
	pose := NewPose(p)
	if pose.Eye != p.Position || pose.Center != p.Target || pose.Up != p.Up {
		t.Errorf("pose changed valid vectors: %+v", pose)
	}
	if pose.FovY != 45 || pose.Near != ZNear || pose.Far != 100 {
		t.Errorf("unexpected projection settings: %+v", pose)
	}
}

func TestNewPoseDegenerateInputs(t *testing.T) {
	p := DefaultParameters()
	p.Up = mgl32.Vec3{}
	p.ZFar = 0
	p.FieldOfViewY = 0
	pose := NewPose(p)
	if pose.Up.Len() == 0 {
		t.Error("zero up vector should be replaced")
	}
	if !(pose.Far > pose.Near) {
		t.Errorf("far %v should exceed near %v", pose.Far, pose.Near)
	}
	if pose.FovY <= 0 {
		t.Errorf("fov %v should be positive", pose.FovY)
	}

	// Looking straight down with a +y up vector.
	p = DefaultParameters()
	p.Position = mgl32.Vec3{0, 10, 0}
	p.Target = mgl32.Vec3{0, 0, 0}
	p.Up = mgl32.Vec3{0, 1, 0}
	pose = NewPose(p)
	if pose.Up != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("parallel up should fall back to +z, got %v", pose.Up)
	}
}

func TestViewMatrixIsFinite(t *testing.T) {
	cases := []Parameters{DefaultParameters()}
	p := DefaultParameters()
	p.Target = p.Position
	cases = append(cases, p)
	p = DefaultParameters()
	p.Position, p.Target, p.Up = mgl32.Vec3{0, 5, 0}, mgl32.Vec3{}, mgl32.Vec3{0, -3, 0}
	cases = append(cases, p)

	for i, c := range cases {
		m := NewPose(c).ViewProjection(16.0 / 9)
		for _, v := range m {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("case %d: matrix has non-finite entry: %v", i, m)
			}
		}
	}
}

func TestProjectionAspectFallback(t *testing.T) {
	pose := NewPose(DefaultParameters())
	if pose.Projection(0) != pose.Projection(1) {
		t.Error("zero aspect should behave like a square viewport")
	}
}

func TestViewMapsTargetOntoAxis(t *testing.T) {
	pose := NewPose(DefaultParameters())
	v := pose.View().Mul4x1(pose.Center.Vec4(1))
	if math.Abs(float64(v.X())) > 1e-3 || math.Abs(float64(v.Y())) > 1e-3 || v.Z() >= 0 {
		t.Errorf("target should sit on the -z axis in view space, got %v", v)
	}
}

func TestOrbitResetReproducesPosition(t *testing.T) {
	p := DefaultParameters()
	o := NewOrbit(p)
	if !o.Eye().ApproxEqualThreshold(p.Position, 1e-3) {
		t.Errorf("orbit eye %v, want %v", o.Eye(), p.Position)
	}
}

func TestOrbitMouseMovement(t *testing.T) {
	o := NewOrbit(DefaultParameters())
	yaw, pitch := o.Yaw, o.Pitch

	o.HandleMouseMovement(10, 10)
	if o.Yaw != yaw || o.Pitch != pitch {
		t.Fatal("movement without dragging should not rotate")
	}

	o.Dragging = true
	o.HandleMouseMovement(100, 100)
	if o.Yaw != yaw || o.Pitch != pitch {
		t.Fatal("first drag sample should only record the cursor")
	}
	o.HandleMouseMovement(110, 100)
	if math.Abs(o.Yaw-(yaw-1)) > 1e-9 {
		t.Errorf("yaw = %v, want %v", o.Yaw, yaw-1)
	}

	o.HandleMouseMovement(110, 100000)
	if o.Pitch != maxPitch {
		t.Errorf("pitch = %v, want clamp at %v", o.Pitch, maxPitch)
	}
	o.HandleMouseMovement(110, -100000)
	if o.Pitch != -maxPitch {
		t.Errorf("pitch = %v, want clamp at %v", o.Pitch, -maxPitch)
	}
}

func TestOrbitScrollClamps(t *testing.T) {
	o := NewOrbit(DefaultParameters())
	for range 200 {
		o.HandleScroll(1)
	}
	if o.Distance != MinDistance {
		t.Errorf("distance = %v, want %v", o.Distance, MinDistance)
	}
	for range 200 {
		o.HandleScroll(-1)
	}
	if o.Distance != MaxDistance {
		t.Errorf("distance = %v, want %v", o.Distance, MaxDistance)
	}
}

func TestOrbitApplyKeepsProjection(t *testing.T) {
	p := DefaultParameters()
	o := NewOrbit(p)
	o.Yaw += 90
	pose := o.Apply(p)
	if pose.Center != p.Target || pose.FovY != p.FieldOfViewY || pose.Far != p.ZFar {
		t.Errorf("orbit should only move the eye: %+v", pose)
	}
	if pose.Eye.ApproxEqualThreshold(p.Position, 1e-2) {
		t.Error("eye should have moved")
	}
	d := pose.Eye.Sub(pose.Center).Len()
	if math.Abs(float64(d-o.Distance)) > 1e-3 {
		t.Errorf("eye distance %v, want %v", d, o.Distance)
	}
}
