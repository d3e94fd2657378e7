package core

import "testing"

func TestAABBHitCenterRay(t *testing.T) {
	box := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRayInterval(Vec3{X: 0, Y: 0, Z: -5}, Vec3{X: 0, Y: 0, Z: 1}, 0, 1000)

	if !box.Hit(ray, 0, 1000) {
		t.Fatal("expected ray through box center to hit")
	}
}

func TestAABBMissGrazingEdge(t *testing.T) {
	// A ray running parallel to X just outside the box on Y (0.001 above
	// its top face) should miss.
	box := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRayInterval(Vec3{X: -5, Y: 1.001, Z: 0}, Vec3{X: 1, Y: 0, Z: 0}, 0, 1000)

	if box.Hit(ray, 0, 1000) {
		t.Fatal("expected grazing ray outside box to miss")
	}
}

func TestAABBHitIntervalClipsToBounds(t *testing.T) {
	box := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1})
	ray := NewRayInterval(Vec3{X: 0, Y: 0, Z: -5}, Vec3{X: 0, Y: 0, Z: 1}, 0, 1000)

	ok, tEnter, tExit := box.HitInterval(ray, 0, 1000)
	if !ok {
		t.Fatal("expected hit")
	}
	if tEnter != 4 || tExit != 6 {
		t.Errorf("interval = [%v, %v], want [4, 6]", tEnter, tExit)
	}
}

func TestAABBUnionEnclosesBoth(t *testing.T) {
	a := NewAABB(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 1, Y: 1, Z: 1})
	b := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 0.5, Y: 0.5, Z: 0.5})

	u := a.Union(b)
	want := NewAABB(Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1})
	if u != want {
		t.Errorf("Union = %v, want %v", u, want)
	}
}

func TestAABBLongestAxisTieBreaksLow(t *testing.T) {
	box := NewAABB(Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 1, Y: 1, Z: 1})
	if axis := box.LongestAxis(); axis != 0 {
		t.Errorf("LongestAxis on a cube = %v, want 0 (tie breaks to X)", axis)
	}
}

func TestAABBFromPointsEnclosesAll(t *testing.T) {
	box := NewAABBFromPoints(
		Vec3{X: 1, Y: -2, Z: 3},
		Vec3{X: -1, Y: 5, Z: 0},
		Vec3{X: 0, Y: 0, Z: -4},
	)
	want := NewAABB(Vec3{X: -1, Y: -2, Z: -4}, Vec3{X: 1, Y: 5, Z: 3})
	if box != want {
		t.Errorf("NewAABBFromPoints = %v, want %v", box, want)
	}
}
