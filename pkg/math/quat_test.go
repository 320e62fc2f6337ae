package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Up, float32(math.Pi/2))
	if got := q.Rotate(Right); !got.ApproxEqual(Vec3{0, 0, -1}, 0.0001) {
		t.Errorf("rotate Y 90: got %v, want (0, 0, -1)", got)
	}

	q = QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 1.1)
	v := Vec3{0.5, -2, 4}
	if got := q.Conjugate().Rotate(q.Rotate(v)); !got.ApproxEqual(v, 0.0001) {
		t.Errorf("conjugate round trip: got %v, want %v", got, v)
	}
}

func TestQuatLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward Vec3
		up      Vec3
	}{
		{"identity", Forward, Up},
		{"right", Right, Up},
		{"tilted", Vec3{1, 1, 1}, Up},
		{"backward", Back, Up},
		{"forward along up", Up, Up},
		{"custom up", Vec3{0, 0, 1}, Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatLookRotation(tt.forward, tt.up)
			got := q.Rotate(Forward)
			want := tt.forward.Normalize()
			if !got.ApproxEqual(want, 0.0001) {
				t.Errorf("local Z maps to %v, want %v", got, want)
			}
		})
	}

	if q := QuatLookRotation(Forward, Up); !q.Rotate(Up).ApproxEqual(Up, 0.0001) {
		t.Errorf("identity look rotation should keep up, got %v", q.Rotate(Up))
	}
	if q := QuatLookRotation(Zero, Up); q != QuatIdentity() {
		t.Errorf("zero forward should be identity, got %v", q)
	}
}

func TestQuatFromToRotation(t *testing.T) {
	pairs := [][2]Vec3{
		{Forward, Right},
		{Up, Down},
		{Vec3{1, 2, 3}, Vec3{-3, 0, 1}},
	}
	for _, p := range pairs {
		got := QuatFromToRotation(p[0], p[1]).Rotate(p[0].Normalize())
		if !got.ApproxEqual(p[1].Normalize(), 0.0001) {
			t.Errorf("FromTo(%v, %v) maps to %v", p[0], p[1], got)
		}
	}
}
