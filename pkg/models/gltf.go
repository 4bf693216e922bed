package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/meshkit/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into flattened meshes, one per triangle
// primitive.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Model, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Model.
func (l *GLTFLoader) Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	model := &Model{Name: filepath.Base(path)}
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			mesh, err := l.processPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
			if mesh == nil {
				continue
			}

			mesh.Name = m.Name
			if len(m.Primitives) > 1 {
				mesh.Name = fmt.Sprintf("%s.%d", m.Name, i)
			}
			model.Meshes = append(model.Meshes, mesh)
		}
	}

	return model, nil
}

// processPrimitive feeds one primitive through a MeshBuilder so glTF input
// is flattened exactly like OBJ input. Non-triangle primitives yield nil.
func (l *GLTFLoader) processPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*Mesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return nil, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}

	var b MeshBuilder

	positions, err := readFloatAccessor(doc, posIdx, gltf.AccessorVec3)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	for i := 0; i+2 < len(positions); i += 3 {
		b.Vertices = append(b.Vertices, math3d.V4(positions[i], positions[i+1], positions[i+2], 1))
	}

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := readFloatAccessor(doc, normIdx, gltf.AccessorVec3)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		for i := 0; i+2 < len(normals); i += 3 {
			b.Normals = append(b.Normals, math3d.V4(normals[i], normals[i+1], normals[i+2], 1))
		}
	}

	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err := readFloatAccessor(doc, uvIdx, gltf.AccessorVec2)
		if err != nil {
			return nil, fmt.Errorf("read uvs: %w", err)
		}
		for i := 0; i+1 < len(uvs); i += 2 {
			// GLTF puts V=0 at the top; OBJ and our meshes put it at the bottom.
			b.UVs = append(b.UVs, math3d.V2(uvs[i], 1-uvs[i+1]))
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = readIndices(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		// No indices, assume sequential triangles
		indices = make([]uint32, len(b.Vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	indices = indices[:len(indices)/3*3]

	b.VertexIndices = indices
	if len(b.Normals) > 0 {
		b.NormalIndices = indices
	}
	if len(b.UVs) > 0 {
		b.UVIndices = indices
	}

	mesh, err := b.Build()
	if err != nil {
		return nil, err
	}
	if l.CalculateNormals && !mesh.HasNormals {
		mesh.CalculateNormals()
	}
	return mesh, nil
}

// accessorView returns the bytes backing an accessor, the offset of its
// first element and the element stride.
func accessorView(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer %d has no data", bufferView.Buffer)
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}

	end := start
	if accessor.Count > 0 {
		end = start + (accessor.Count-1)*stride + elemSize
	}
	if end > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("accessor reads %d bytes past buffer end", end-len(buffer.Data))
	}

	return buffer.Data, start, stride, nil
}

// readFloatAccessor reads a float VEC2/VEC3 accessor into a flat slice.
func readFloatAccessor(doc *gltf.Document, accessorIdx int, want gltf.AccessorType) ([]float32, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != want {
		return nil, fmt.Errorf("expected %v, got %v", want, accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported component type %v", accessor.ComponentType)
	}

	comps := 3
	if want == gltf.AccessorVec2 {
		comps = 2
	}

	data, start, stride, err := accessorView(doc, accessor, comps*4)
	if err != nil {
		return nil, err
	}

	out := make([]float32, 0, accessor.Count*comps)
	for i := range accessor.Count {
		offset := start + i*stride
		for j := range comps {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			out = append(out, math.Float32frombits(bits))
		}
	}
	return out, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]uint32, error) {
	accessor := doc.Accessors[accessorIdx]

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorView(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, accessor.Count)
	for i := range out {
		offset := start + i*stride
		switch size {
		case 1:
			out[i] = uint32(data[offset])
		case 2:
			out[i] = uint32(binary.LittleEndian.Uint16(data[offset:]))
		default:
			out[i] = binary.LittleEndian.Uint32(data[offset:])
		}
	}
	return out, nil
}

// ExportGLB writes model as a binary glTF file with one node per mesh.
func ExportGLB(model *Model, path string) error {
	if err := gltf.SaveBinary(NewGLTFDocument(model), path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// NewGLTFDocument converts model into a glTF document whose single buffer
// holds every mesh's positions, normals, UVs and indices. Position weights
// are dropped since glTF positions are three-component. Empty meshes are
// skipped.
func NewGLTFDocument(model *Model) *gltf.Document {
	doc := &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: "meshkit"},
	}
	scene := &gltf.Scene{Name: model.Name}

	var buf []byte
	addAccessor := func(data []byte, target gltf.Target, count int, typ gltf.AccessorType, comp gltf.ComponentType) int {
		view := len(doc.BufferViews)
		doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
			Buffer:     0,
			ByteOffset: len(buf),
			ByteLength: len(data),
			Target:     target,
		})
		buf = append(buf, data...)

		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    &view,
			ComponentType: comp,
			Count:         count,
			Type:          typ,
		})
		return len(doc.Accessors) - 1
	}

	for _, mesh := range model.Meshes {
		n := mesh.VertexCount()
		if n == 0 {
			continue
		}

		positions := make([]float32, 0, n*3)
		for _, v := range mesh.Vertices {
			positions = append(positions, v.X, v.Y, v.Z)
		}
		pos := addAccessor(Float32Bytes(positions), gltf.TargetArrayBuffer, n, gltf.AccessorVec3, gltf.ComponentFloat)
		doc.Accessors[pos].Min = []float64{float64(mesh.BoundsMin.X), float64(mesh.BoundsMin.Y), float64(mesh.BoundsMin.Z)}
		doc.Accessors[pos].Max = []float64{float64(mesh.BoundsMax.X), float64(mesh.BoundsMax.Y), float64(mesh.BoundsMax.Z)}

		attributes := map[string]int{gltf.POSITION: pos}

		if mesh.HasNormals {
			normals := make([]float32, 0, n*3)
			for _, v := range mesh.Normals {
				normals = append(normals, v.X, v.Y, v.Z)
			}
			attributes[gltf.NORMAL] = addAccessor(Float32Bytes(normals), gltf.TargetArrayBuffer, n, gltf.AccessorVec3, gltf.ComponentFloat)
		}

		if mesh.HasUVs {
			uvs := make([]float32, 0, n*2)
			for _, uv := range mesh.UVs {
				uvs = append(uvs, uv.X, 1-uv.Y)
			}
			attributes[gltf.TEXCOORD_0] = addAccessor(Float32Bytes(uvs), gltf.TargetArrayBuffer, n, gltf.AccessorVec2, gltf.ComponentFloat)
		}

		indices := addAccessor(Uint32Bytes(mesh.Indices), gltf.TargetElementArrayBuffer, len(mesh.Indices), gltf.AccessorScalar, gltf.ComponentUint)

		meshIdx := len(doc.Meshes)
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: mesh.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: attributes,
				Indices:    &indices,
				Mode:       gltf.PrimitiveTriangles,
			}},
		})

		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: mesh.Name, Mesh: &meshIdx})
		scene.Nodes = append(scene.Nodes, len(doc.Nodes)-1)
	}

	doc.Buffers = []*gltf.Buffer{{ByteLength: len(buf), Data: buf}}
	doc.Scenes = []*gltf.Scene{scene}
	sceneIdx := 0
	doc.Scene = &sceneIdx
	return doc
}
