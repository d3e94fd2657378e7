package core

// NewBoxMesh builds an axis-aligned box as a renderable Mesh: six faces,
// each a quad split into two triangles sharing the given material. Unlike
// the original Python reference's Box, which intersects analytically via
// the slab test and derives its normal from nearest-face distance, this
// box is just twelve triangles — it needs no bespoke Hit/normal logic and
// is walked by the same accelerators and integrator as any OBJ-loaded mesh.
func NewBoxMesh(name string, min, max Vec3, material *Material) *Mesh {
	corners := [8]Vec3{
		{X: min.X, Y: min.Y, Z: min.Z}, // 0: ---
		{X: max.X, Y: min.Y, Z: min.Z}, // 1: +--
		{X: max.X, Y: max.Y, Z: min.Z}, // 2: ++-
		{X: min.X, Y: max.Y, Z: min.Z}, // 3: -+-
		{X: min.X, Y: min.Y, Z: max.Z}, // 4: --+
		{X: max.X, Y: min.Y, Z: max.Z}, // 5: +-+
		{X: max.X, Y: max.Y, Z: max.Z}, // 6: +++
		{X: min.X, Y: max.Y, Z: max.Z}, // 7: -++
	}

	// Each quad is listed with outward-facing winding order.
	quads := [6][4]int{
		{0, 3, 2, 1}, // -Z (front, looking from +Z into -Z)
		{5, 6, 7, 4}, // +Z (back)
		{4, 7, 3, 0}, // -X (left)
		{1, 2, 6, 5}, // +X (right)
		{4, 0, 1, 5}, // -Y (bottom)
		{3, 7, 6, 2}, // +Y (top)
	}

	faces := make([]*Triangle, 0, 12)
	for _, q := range quads {
		a, b, c, d := corners[q[0]], corners[q[1]], corners[q[2]], corners[q[3]]
		faces = append(faces, NewTriangle(a, b, c, material), NewTriangle(a, c, d, material))
	}

	return NewMesh(name, faces)
}
