package camera

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func approxVec(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, epsilon)
}

func checkBasis(t *testing.T, c *Camera) {
	t.Helper()

	f, r, u := c.Front(), c.Right(), c.Up()
	for name, v := range map[string]mgl32.Vec3{"front": f, "right": r, "up": u} {
		if math.Abs(float64(v.Len())-1) > epsilon {
			t.Errorf("%s is not a unit vector: %v (len %f)", name, v, v.Len())
		}
	}
	if d := f.Dot(r); math.Abs(float64(d)) > epsilon {
		t.Errorf("front·right = %f, want 0", d)
	}
	if d := f.Dot(u); math.Abs(float64(d)) > epsilon {
		t.Errorf("front·up = %f, want 0", d)
	}
	if d := r.Dot(u); math.Abs(float64(d)) > epsilon {
		t.Errorf("right·up = %f, want 0", d)
	}
	// right-handed: right × up points backwards
	if !approxVec(r.Cross(u), f.Mul(-1)) {
		t.Errorf("basis is not right-handed: right×up = %v, front = %v", r.Cross(u), f)
	}
}

func TestNewDefault(t *testing.T) {
	cam := NewDefault()

	if cam.Position() != (mgl32.Vec3{0, 0, 0}) {
		t.Errorf("expected position at origin, got %v", cam.Position())
	}
	if cam.WorldUp() != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected +Y world up, got %v", cam.WorldUp())
	}
	if cam.Yaw() != -90 || cam.Pitch() != 0 {
		t.Errorf("expected yaw -90 pitch 0, got %f %f", cam.Yaw(), cam.Pitch())
	}
	if cam.MovementSpeed() != 2.5 {
		t.Errorf("expected speed 2.5, got %f", cam.MovementSpeed())
	}
	if cam.MouseSensitivity() != 0.1 {
		t.Errorf("expected sensitivity 0.1, got %f", cam.MouseSensitivity())
	}
	if cam.Zoom() != 45 {
		t.Errorf("expected zoom 45, got %f", cam.Zoom())
	}

	if !approxVec(cam.Front(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("expected front (0,0,-1), got %v", cam.Front())
	}
	if !approxVec(cam.Right(), mgl32.Vec3{1, 0, 0}) {
		t.Errorf("expected right (1,0,0), got %v", cam.Right())
	}
	if !approxVec(cam.Up(), mgl32.Vec3{0, 1, 0}) {
		t.Errorf("expected up (0,1,0), got %v", cam.Up())
	}
}

func TestNewFromScalars(t *testing.T) {
	a := NewFromScalars(1, 2, 3, 0, 1, 0, -45, 10)
	b := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}, -45, 10)

	if a.Position() != b.Position() || a.Front() != b.Front() || a.Up() != b.Up() {
		t.Errorf("scalar and vector constructors disagree: %v vs %v", a, b)
	}
	checkBasis(t, a)
}

func TestOptions(t *testing.T) {
	cam := New(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch,
		WithMovementSpeed(10),
		WithMouseSensitivity(0.5),
		WithZoom(90),
	)

	if cam.MovementSpeed() != 10 {
		t.Errorf("expected speed 10, got %f", cam.MovementSpeed())
	}
	if cam.MouseSensitivity() != 0.5 {
		t.Errorf("expected sensitivity 0.5, got %f", cam.MouseSensitivity())
	}
	if cam.Zoom() != MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", float32(MaxZoom), cam.Zoom())
	}
}

func TestBasisStaysOrthonormal(t *testing.T) {
	for yaw := float32(-360); yaw <= 360; yaw += 17.5 {
		for pitch := float32(-89); pitch <= 89; pitch += 11 {
			cam := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}, yaw, pitch)
			checkBasis(t, cam)

			cam.ProcessMouseMovement(123, -45, true)
			checkBasis(t, cam)

			cam.MoveInSphere(40, 25, mgl32.Vec3{})
			checkBasis(t, cam)

			cam.MoveInEllipsoid(-40, -25, mgl32.Vec3{})
			checkBasis(t, cam)

			cam.ProcessKeyboard(Forward, 0.5)
			checkBasis(t, cam)
		}
	}
}

func TestPitchIsConstrained(t *testing.T) {
	cam := NewDefault()

	cam.ProcessMouseMovement(0, 10000, true)
	if cam.Pitch() != MaxPitch {
		t.Errorf("expected pitch %f, got %f", float32(MaxPitch), cam.Pitch())
	}
	checkBasis(t, cam)

	cam.ProcessMouseMovement(0, -100000, true)
	if cam.Pitch() != MinPitch {
		t.Errorf("expected pitch %f, got %f", float32(MinPitch), cam.Pitch())
	}
	checkBasis(t, cam)
}

func TestPitchUnconstrained(t *testing.T) {
	cam := NewDefault()

	cam.ProcessMouseMovement(0, 1000, false)
	if cam.Pitch() != 100 {
		t.Errorf("expected unconstrained pitch 100, got %f", cam.Pitch())
	}
}

func TestMouseMovementUsesSensitivity(t *testing.T) {
	cam := NewDefault()
	cam.ProcessMouseMovement(100, 50, true)

	if math.Abs(float64(cam.Yaw()-(-80))) > epsilon {
		t.Errorf("expected yaw -80, got %f", cam.Yaw())
	}
	if math.Abs(float64(cam.Pitch()-5)) > epsilon {
		t.Errorf("expected pitch 5, got %f", cam.Pitch())
	}
}

func TestZoomIsClamped(t *testing.T) {
	cam := NewDefault()

	offsets := []float32{10, 20, 30, 1000, -5, -1e6, 3, 44, -0.5, 1e9}
	for _, off := range offsets {
		cam.ProcessMouseScroll(off)
		if cam.Zoom() < MinZoom || cam.Zoom() > MaxZoom {
			t.Fatalf("zoom %f out of range after scroll %f", cam.Zoom(), off)
		}
	}

	cam = NewDefault()
	cam.ProcessMouseScroll(100)
	if cam.Zoom() != MinZoom {
		t.Errorf("expected zoom %f, got %f", float32(MinZoom), cam.Zoom())
	}
	cam.ProcessMouseScroll(-100)
	if cam.Zoom() != MaxZoom {
		t.Errorf("expected zoom %f, got %f", float32(MaxZoom), cam.Zoom())
	}
	cam.ProcessMouseScroll(5)
	if cam.Zoom() != 40 {
		t.Errorf("expected zoom 40, got %f", cam.Zoom())
	}
}

func TestKeyboardRoundTrip(t *testing.T) {
	for _, dt := range []float32{0, 0.016, 0.5, 3} {
		cam := New(mgl32.Vec3{1, -2, 7}, mgl32.Vec3{0, 1, 0}, 30, 20)
		start := cam.Position()

		cam.ProcessKeyboard(Forward, dt)
		cam.ProcessKeyboard(Backward, dt)
		if !approxVec(cam.Position(), start) {
			t.Errorf("dt=%f forward/backward: expected %v, got %v", dt, start, cam.Position())
		}

		cam.ProcessKeyboard(Left, dt)
		cam.ProcessKeyboard(Right, dt)
		if !approxVec(cam.Position(), start) {
			t.Errorf("dt=%f left/right: expected %v, got %v", dt, start, cam.Position())
		}

		cam.ProcessKeyboard(Up, dt)
		cam.ProcessKeyboard(Down, dt)
		if !approxVec(cam.Position(), start) {
			t.Errorf("dt=%f up/down: expected %v, got %v", dt, start, cam.Position())
		}
	}
}

func TestKeyboardDirections(t *testing.T) {
	cam := NewDefault()
	front, right := cam.Front(), cam.Right()

	cam.ProcessKeyboard(Forward, 2)
	if !approxVec(cam.Position(), front.Mul(5)) {
		t.Errorf("expected %v, got %v", front.Mul(5), cam.Position())
	}
	if cam.Front() != front {
		t.Errorf("keyboard movement changed the basis")
	}

	cam.SetPosition(mgl32.Vec3{})
	cam.ProcessKeyboard(Right, 1)
	if !approxVec(cam.Position(), right.Mul(2.5)) {
		t.Errorf("expected %v, got %v", right.Mul(2.5), cam.Position())
	}

	cam.SetPosition(mgl32.Vec3{})
	cam.ProcessKeyboard(Down, 1)
	if !approxVec(cam.Position(), mgl32.Vec3{0, -2.5, 0}) {
		t.Errorf("expected (0,-2.5,0), got %v", cam.Position())
	}
}

func TestMoveInSphereZeroOffset(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 1, 0}, -90, 0)

	cam.MoveInSphere(0, 0, mgl32.Vec3{0, 0, 0})
	if !approxVec(cam.Position(), mgl32.Vec3{0, 0, 5}) {
		t.Errorf("expected position unchanged, got %v", cam.Position())
	}
}

func TestMoveInSpherePreservesDistance(t *testing.T) {
	target := mgl32.Vec3{1, 2, -3}
	cam := New(mgl32.Vec3{4, 6, 9}, mgl32.Vec3{0, 1, 0}, -90, 0)
	dist := cam.Position().Sub(target).Len()

	for i := 0; i < 50; i++ {
		cam.MoveInSphere(37, -11, target)
		got := cam.Position().Sub(target).Len()
		if math.Abs(float64(got-dist)) > 1e-3 {
			t.Fatalf("step %d: distance %f, want %f", i, got, dist)
		}
	}
}

func TestMoveInSphereInvertsLook(t *testing.T) {
	cam := NewDefault()
	cam.SetPosition(mgl32.Vec3{0, 0, 5})

	cam.MoveInSphere(100, 50, mgl32.Vec3{})
	// sensitivity 0.1 * 0.1 damping
	if math.Abs(float64(cam.Yaw()-(-91))) > epsilon {
		t.Errorf("expected yaw -91, got %f", cam.Yaw())
	}
	if math.Abs(float64(cam.Pitch()-(-0.5))) > epsilon {
		t.Errorf("expected pitch -0.5, got %f", cam.Pitch())
	}
}

func TestMoveInEllipsoidMatchesSphere(t *testing.T) {
	target := mgl32.Vec3{0, 1, 0}
	sphere := New(mgl32.Vec3{2, 3, 4}, mgl32.Vec3{0, 1, 0}, -60, 15)
	ellipsoid := New(mgl32.Vec3{2, 3, 4}, mgl32.Vec3{0, 1, 0}, -60, 15)

	sphere.MoveInSphere(12, 34, target)
	ellipsoid.MoveInEllipsoid(12, 34, target)

	if sphere.Position() != ellipsoid.Position() {
		t.Errorf("expected identical positions, got %v and %v", sphere.Position(), ellipsoid.Position())
	}
}

func TestViewMatrix(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 1, 0}, -90, 0)

	expected := mgl32.Translate3D(0, 0, -3)
	view := cam.ViewMatrix()
	if !view.ApproxEqualThreshold(expected, 1e-5) {
		t.Errorf("expected\n%v\ngot\n%v", expected, view)
	}

	// a point in front of the camera ends up on -Z in eye space
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !p.ApproxEqualThreshold(mgl32.Vec4{0, 0, -3, 1}, 1e-5) {
		t.Errorf("expected origin at (0,0,-3) in eye space, got %v", p)
	}
}

func TestProjectionMatrixUsesZoom(t *testing.T) {
	cam := NewDefault()
	expected := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 100)

	if !cam.ProjectionMatrix(4.0/3.0, 0.1, 100).ApproxEqual(expected) {
		t.Errorf("projection does not use the zoom as field of view")
	}
}

func TestLookAt(t *testing.T) {
	cam := New(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 1, 0}, 0, 0)
	cam.LookAt(mgl32.Vec3{0, 0, 0})

	if !approxVec(cam.Front(), mgl32.Vec3{0, 0, -1}) {
		t.Errorf("expected front (0,0,-1), got %v", cam.Front())
	}

	cam.LookAt(mgl32.Vec3{0, 100, 5})
	if cam.Pitch() != MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", float32(MaxPitch), cam.Pitch())
	}
	checkBasis(t, cam)
}

func TestSetRotation(t *testing.T) {
	cam := NewDefault()
	cam.SetRotation(0, -120)

	yaw, pitch := cam.Orientation()
	if yaw != 0 || pitch != MinPitch {
		t.Errorf("expected (0, %f), got (%f, %f)", float32(MinPitch), yaw, pitch)
	}
	checkBasis(t, cam)
}

func TestPrintInfo(t *testing.T) {
	cam := New(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0}, -90, 12.5)

	var buf bytes.Buffer
	cam.PrintInfo(&buf)

	out := buf.String()
	for _, want := range []string{"(1.000, 2.000, 3.000)", "(0.000, 1.000, 0.000)", "yaw: -90.000", "pitch: 12.500"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected trailing newline in %q", out)
	}
}

func TestMovementString(t *testing.T) {
	if Forward.String() != "forward" || Down.String() != "down" {
		t.Errorf("unexpected names %q %q", Forward, Down)
	}
	if Movement(42).String() != "Movement(42)" {
		t.Errorf("unexpected name for unknown movement: %q", Movement(42))
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5.0, 1, 4) != 4 || Clamp(-5.0, 1, 4) != 1 || Clamp(float32(2), 1, 4) != 2 {
		t.Errorf("clamp returned wrong values")
	}
}

func TestSetZoomClamps(t *testing.T) {
	cam := NewDefault()

	for _, tc := range []struct{ zoom, want float32 }{
		{30, 30},
		{0, MinZoom},
		{90, MaxZoom},
	} {
		cam.SetZoom(tc.zoom)
		if cam.Zoom() != tc.want {
			t.Errorf("SetZoom(%f): expected %f, got %f", tc.zoom, tc.want, cam.Zoom())
		}
	}
}
