package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // glTF base color textures
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // EXT_texture_webp

	"github.com/Faultbox/goonie-buddy/internal/logger"
	"github.com/Faultbox/goonie-buddy/pkg/math"
)

// Load reads a .glb or .gltf file and flattens its default scene into
// world-space parts.
func Load(path string) (*Description, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	desc, err := fromDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	desc.Name = filepath.Base(path)

	box := desc.BoundingBox()
	logger.Info("model loaded",
		zap.String("model", desc.Name),
		zap.Int("parts", len(desc.Parts)),
		zap.Int("triangles", desc.TriangleCount()),
		zap.Any("bounds_min", box.Min),
		zap.Any("bounds_max", box.Max),
		zap.Any("center", box.Center()),
	)
	return desc, nil
}

// fromDocument converts a decoded document. dir resolves external image URIs.
func fromDocument(doc *gltf.Document, dir string) (*Description, error) {
	desc := &Description{}
	desc.Materials = loadMaterials(doc, dir)

	roots, ok := sceneRoots(doc)
	if ok {
		for _, n := range roots {
			if err := walkNode(doc, n, math.Identity(), desc, 0); err != nil {
				return nil, err
			}
		}
	} else {
		// No scene graph: every mesh sits at the origin.
		for i := range doc.Meshes {
			if err := addMesh(doc, i, math.Identity(), desc); err != nil {
				return nil, err
			}
		}
	}

	if len(desc.Parts) == 0 {
		return nil, ErrNoGeometry
	}
	return desc, nil
}

func sceneRoots(doc *gltf.Document) ([]int, bool) {
	if len(doc.Scenes) == 0 {
		return nil, false
	}
	idx := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		idx = *doc.Scene
	}
	return doc.Scenes[idx].Nodes, true
}

// maxNodeDepth bounds recursion on malformed node graphs with cycles.
const maxNodeDepth = 64

func walkNode(doc *gltf.Document, idx int, parent math.Mat4, desc *Description, depth int) error {
	if idx < 0 || idx >= len(doc.Nodes) || depth > maxNodeDepth {
		return nil
	}
	node := doc.Nodes[idx]
	world := parent.Mul(localMatrix(node))

	if node.Mesh != nil {
		if err := addMesh(doc, *node.Mesh, world, desc); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}
	for _, child := range node.Children {
		if err := walkNode(doc, child, world, desc, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// localMatrix returns the node transform. An all-zero matrix or rotation
// and an all-zero scale are treated as unset.
func localMatrix(n *gltf.Node) math.Mat4 {
	if n.Matrix != ([16]float64{}) && n.Matrix != gltf.DefaultMatrix {
		var m math.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := math.V3(float32(n.Translation[0]), float32(n.Translation[1]), float32(n.Translation[2]))
	r := [4]float32{0, 0, 0, 1}
	if n.Rotation != ([4]float64{}) {
		r = [4]float32{float32(n.Rotation[0]), float32(n.Rotation[1]), float32(n.Rotation[2]), float32(n.Rotation[3])}
	}
	s := math.Splat(1)
	if n.Scale != ([3]float64{}) {
		s = math.V3(float32(n.Scale[0]), float32(n.Scale[1]), float32(n.Scale[2]))
	}
	return math.FromTRS(t, r, s)
}

func addMesh(doc *gltf.Document, meshIdx int, world math.Mat4, desc *Description) error {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIdx)
	}
	mesh := doc.Meshes[meshIdx]

	for i, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		part, ok, err := buildPart(doc, prim, world)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		if !ok {
			continue
		}
		part.Name = fmt.Sprintf("%s#%d", mesh.Name, i)
		desc.Parts = append(desc.Parts, part)
	}
	return nil
}

func buildPart(doc *gltf.Document, prim *gltf.Primitive, world math.Mat4) (Part, bool, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return Part{}, false, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return Part{}, false, fmt.Errorf("read positions: %w", err)
	}
	if len(positions) < 3 {
		return Part{}, false, nil
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return Part{}, false, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return Part{}, false, fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return Part{}, false, fmt.Errorf("read indices: %w", err)
		}
		for _, idx := range indices {
			if int(idx) >= len(positions) {
				return Part{}, false, fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
			}
		}
	} else {
		indices = make([]uint32, len(positions)-len(positions)%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	part := Part{
		Vertices: make([]Vertex, len(positions)),
		Indices:  indices,
		Material: -1,
		Bounds:   math.EmptyAABB(),
	}
	if prim.Material != nil {
		part.Material = *prim.Material
	}

	for i, p := range positions {
		wp := world.TransformPoint(math.FromArray(p))
		part.Bounds.Extend(wp)

		v := Vertex{Position: wp.Array()}
		if i < len(normals) {
			v.Normal = world.TransformNormal(math.FromArray(normals[i])).Normalize().Array()
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		part.Vertices[i] = v
	}

	if len(normals) == 0 {
		computeSmoothNormals(part.Vertices, part.Indices)
	}
	return part, true, nil
}

func loadMaterials(doc *gltf.Document, dir string) []Material {
	materials := make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		mat := DefaultMaterial
		mat.Name = m.Name
		mat.BaseColor = [4]float32{1, 1, 1, 1}

		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if f := pbr.BaseColorFactor; f != nil {
				mat.BaseColor = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
			}
			if tex := pbr.BaseColorTexture; tex != nil {
				img, err := loadTextureImage(doc, tex.Index, dir)
				if err != nil {
					logger.Warn("base color texture skipped",
						zap.String("material", m.Name),
						zap.Error(err),
					)
				} else {
					mat.BaseImage = img
				}
			}
		}
		materials[i] = mat
	}
	return materials
}

func loadTextureImage(doc *gltf.Document, texIdx int, dir string) (image.Image, error) {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return nil, fmt.Errorf("texture %d out of range", texIdx)
	}
	tex := doc.Textures[texIdx]
	if tex.Source == nil || *tex.Source < 0 || *tex.Source >= len(doc.Images) {
		return nil, fmt.Errorf("texture %d has no image source", texIdx)
	}
	img := doc.Images[*tex.Source]

	data, err := imageBytes(doc, img, dir)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", img.Name, err)
	}
	return decoded, nil
}

func imageBytes(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		if *img.BufferView < 0 || *img.BufferView >= len(doc.BufferViews) {
			return nil, fmt.Errorf("image %q: buffer view %d out of range", img.Name, *img.BufferView)
		}
		bv := doc.BufferViews[*img.BufferView]
		if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
			return nil, fmt.Errorf("image %q: buffer %d out of range", img.Name, bv.Buffer)
		}
		buf := doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if bv.ByteOffset < 0 || end > len(buf.Data) {
			return nil, fmt.Errorf("image %q: buffer view out of range", img.Name)
		}
		return buf.Data[bv.ByteOffset:end], nil
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		return os.ReadFile(filepath.Join(dir, img.URI))
	default:
		return nil, fmt.Errorf("image %q has no data", img.Name)
	}
}
