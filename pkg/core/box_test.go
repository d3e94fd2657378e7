package core

import "testing"

func TestNewBoxMeshBoundingBoxMatchesCorners(t *testing.T) {
	mat := NewDiffuseMaterial(Vec3{}, Vec3{X: 1, Y: 1, Z: 1}, Vec3{}, 0)
	mesh := NewBoxMesh("box", Vec3{X: -1, Y: -2, Z: -3}, Vec3{X: 1, Y: 2, Z: 3}, &mat)

	if len(mesh.Faces) != 12 {
		t.Fatalf("len(Faces) = %d, want 12 (six quads of two triangles)", len(mesh.Faces))
	}

	box := mesh.BoundingBox()
	if box.Min != (Vec3{X: -1, Y: -2, Z: -3}) || box.Max != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("box = %v..%v, want {-1,-2,-3}..{1,2,3}", box.Min, box.Max)
	}
}

func TestNewBoxMeshFrontFaceHitByCenteredRay(t *testing.T) {
	mat := NewDiffuseMaterial(Vec3{}, Vec3{X: 1, Y: 1, Z: 1}, Vec3{}, 0)
	mesh := NewBoxMesh("box", Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1}, &mat)

	accel := NewBruteForceAccelerator([]*Mesh{mesh})
	ray := NewRay(Vec3{X: 0, Y: 0, Z: 5}, Vec3{X: 0, Y: 0, Z: -1})

	result, ok := accel.Hit(ray, 0.001, 1e9)
	if !ok {
		t.Fatal("expected ray through box center to hit a face")
	}
	if got := result.Point.Z; got < 0.99 || got > 1.01 {
		t.Errorf("hit point Z = %v, want ~1 (near face)", got)
	}
}

func TestNewBoxMeshMissesRayAbovePassingOver(t *testing.T) {
	mat := NewDiffuseMaterial(Vec3{}, Vec3{X: 1, Y: 1, Z: 1}, Vec3{}, 0)
	mesh := NewBoxMesh("box", Vec3{X: -1, Y: -1, Z: -1}, Vec3{X: 1, Y: 1, Z: 1}, &mat)

	accel := NewBruteForceAccelerator([]*Mesh{mesh})
	ray := NewRay(Vec3{X: 0, Y: 10, Z: 5}, Vec3{X: 0, Y: 0, Z: -1})

	if _, ok := accel.Hit(ray, 0.001, 1e9); ok {
		t.Error("expected a ray passing well above the box to miss")
	}
}
