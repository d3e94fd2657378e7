package core

// Mesh is a named set of triangles with a tight AABB. Meshes are produced
// by the scene loader (OBJ/MTL, or glTF — see pkg/loaders) and are
// immutable once built.
type Mesh struct {
	Name    string
	Faces   []*Triangle
	BBoxMin Vec3
	BBoxMax Vec3
}

// NewMesh builds a mesh from a name and its triangles, computing the
// enclosing AABB. An empty face list produces a degenerate (zero-size)
// AABB, which is harmless: it simply never intersects any ray.
func NewMesh(name string, faces []*Triangle) *Mesh {
	m := &Mesh{Name: name, Faces: faces}
	if len(faces) == 0 {
		return m
	}
	box := faces[0].BoundingBox()
	for _, f := range faces[1:] {
		box = box.Union(f.BoundingBox())
	}
	m.BBoxMin = box.Min
	m.BBoxMax = box.Max
	return m
}

// BoundingBox returns the mesh's cached AABB.
func (m *Mesh) BoundingBox() AABB {
	return NewAABB(m.BBoxMin, m.BBoxMax)
}
