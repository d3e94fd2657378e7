package loaders

import (
	"fmt"
	"math"

	"github.com/df07/go-accel-tracer/pkg/core"
	"github.com/qmuntal/gltf"
)

// LoadGLTF parses a glTF/GLB document into meshes of triangles, as an
// alternative input format to OBJ+MTL. Per-primitive base color factor
// becomes the triangle material's diffuse; glTF carries no Phong
// shininess or illum tag, so every imported mesh is illum=2 (diffuse).
// Only embedded (GLB) buffers are supported.
func LoadGLTF(path string) ([]*core.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: open gltf %q: %w", path, err)
	}

	var meshes []*core.Mesh
	for meshIndex, gltfMesh := range doc.Meshes {
		name := gltfMesh.Name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", meshIndex)
		}

		var faces []*core.Triangle
		for _, primitive := range gltfMesh.Primitives {
			tris, err := triangulatePrimitive(doc, primitive)
			if err != nil {
				return nil, fmt.Errorf("loaders: gltf %q mesh %q: %w", path, name, err)
			}
			faces = append(faces, tris...)
		}
		if len(faces) == 0 {
			continue
		}
		meshes = append(meshes, core.NewMesh(name, faces))
	}

	return meshes, nil
}

func triangulatePrimitive(doc *gltf.Document, primitive *gltf.Primitive) ([]*core.Triangle, error) {
	positionIdx, ok := primitive.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}

	positions, err := readVec3Accessor(doc, positionIdx)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	material := gltfMaterial(doc, primitive)

	var indices []int
	if primitive.Indices != nil {
		indices, err = readIndexAccessor(doc, *primitive.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]int, len(positions))
		for i := range indices {
			indices[i] = i
		}
	}

	var tris []*core.Triangle
	for i := 0; i+2 < len(indices); i += 3 {
		v0 := positions[indices[i]]
		v1 := positions[indices[i+1]]
		v2 := positions[indices[i+2]]
		tris = append(tris, core.NewTriangle(v0, v1, v2, material))
	}
	return tris, nil
}

// accessorBuffer resolves an accessor's backing byte slice and start
// offset. Only embedded (GLB) buffer data is supported — external-URI
// buffers are a loader failure (§7, taxonomy 6).
func accessorBuffer(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, *gltf.BufferView, error) {
	if accessor.BufferView == nil {
		return nil, 0, nil, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, nil, fmt.Errorf("external glTF buffers are not supported")
	}
	start := bv.ByteOffset + accessor.ByteOffset
	return buf.Data, start, bv, nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx uint32) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	data, start, bv, err := accessorBuffer(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := bv.ByteStride
	if stride == 0 {
		stride = 12
	}

	result := make([]core.Vec3, accessor.Count)
	for i := 0; i < int(accessor.Count); i++ {
		offset := start + i*stride
		x := readFloat32LE(data[offset:])
		y := readFloat32LE(data[offset+4:])
		z := readFloat32LE(data[offset+8:])
		result[i] = core.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}
	}
	return result, nil
}

func readIndexAccessor(doc *gltf.Document, accessorIdx uint32) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	buf, start, _, err := accessorBuffer(doc, accessor)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		for i := 0; i < int(accessor.Count); i++ {
			result[i] = int(buf[start+i])
		}
	case gltf.ComponentUshort:
		for i := 0; i < int(accessor.Count); i++ {
			o := start + i*2
			result[i] = int(uint16(buf[o]) | uint16(buf[o+1])<<8)
		}
	case gltf.ComponentUint:
		for i := 0; i < int(accessor.Count); i++ {
			o := start + i*4
			result[i] = int(uint32(buf[o]) | uint32(buf[o+1])<<8 | uint32(buf[o+2])<<16 | uint32(buf[o+3])<<24)
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	return result, nil
}

func readFloat32LE(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

func gltfMaterial(doc *gltf.Document, primitive *gltf.Primitive) *core.Material {
	diffuse := core.Vec3{X: 0.8, Y: 0.8, Z: 0.8}

	if primitive.Material != nil {
		gm := doc.Materials[*primitive.Material]
		if gm.PBRMetallicRoughness != nil && gm.PBRMetallicRoughness.BaseColorFactor != nil {
			c := gm.PBRMetallicRoughness.BaseColorFactor
			diffuse = core.Vec3{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2])}
		}
	}

	mat := core.NewDiffuseMaterial(
		diffuse.Multiply(0.1),
		diffuse,
		core.Vec3{X: 0, Y: 0, Z: 0},
		1,
	)
	return &mat
}
