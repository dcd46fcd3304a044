package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/goonie-buddy/pkg/math"
)

// triangleDoc returns a document with one unindexed triangle in the XY plane
// attached to a single root node.
func triangleDoc(t *testing.T) *gltf.Document {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 4, 0}})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}
	return doc
}

func TestFromDocumentTriangle(t *testing.T) {
	desc, err := fromDocument(triangleDoc(t), "")
	require.NoError(t, err)
	require.Len(t, desc.Parts, 1)

	p := desc.Parts[0]
	assert.Equal(t, "tri#0", p.Name)
	assert.Equal(t, []uint32{0, 1, 2}, p.Indices)
	assert.Equal(t, -1, p.Material)
	assert.Equal(t, math.V3(0, 0, 0), p.Bounds.Min)
	assert.Equal(t, math.V3(2, 4, 0), p.Bounds.Max)

	// Counter-clockwise in XY faces +Z.
	for _, v := range p.Vertices {
		assert.InDelta(t, 1, v.Normal[2], 1e-6)
	}
	assert.Equal(t, 1, desc.TriangleCount())
}

func TestFromDocumentNodeTransforms(t *testing.T) {
	t.Run("translation and scale", func(t *testing.T) {
		doc := triangleDoc(t)
		doc.Nodes[0].Translation = [3]float64{10, 0, 0}
		doc.Nodes[0].Scale = [3]float64{2, 2, 2}

		desc, err := fromDocument(doc, "")
		require.NoError(t, err)
		box := desc.BoundingBox()
		assert.Equal(t, math.V3(10, 0, 0), box.Min)
		assert.Equal(t, math.V3(14, 8, 0), box.Max)
	})

	t.Run("parent chain", func(t *testing.T) {
		doc := triangleDoc(t)
		doc.Nodes = []*gltf.Node{
			{Name: "parent", Translation: [3]float64{0, 5, 0}, Children: []int{1}},
			{Name: "child", Translation: [3]float64{1, 0, 0}, Mesh: gltf.Index(0)},
		}
		desc, err := fromDocument(doc, "")
		require.NoError(t, err)
		box := desc.BoundingBox()
		assert.Equal(t, math.V3(1, 5, 0), box.Min)
		assert.Equal(t, math.V3(3, 9, 0), box.Max)
	})

	t.Run("cycle terminates", func(t *testing.T) {
		doc := triangleDoc(t)
		doc.Nodes[0].Children = []int{0}
		desc, err := fromDocument(doc, "")
		require.NoError(t, err)
		assert.NotEmpty(t, desc.Parts)
	})
}

func TestFromDocumentIndexed(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, 1, 1}, {-1, 1, 1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})
	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: pos},
			Indices:    gltf.Index(idx),
		}},
	}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = []int{0}

	desc, err := fromDocument(doc, "")
	require.NoError(t, err)
	require.Len(t, desc.Parts, 1)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, desc.Parts[0].Indices)
	assert.Equal(t, 2, desc.TriangleCount())

	box := desc.BoundingBox()
	assert.Equal(t, math.Splat(0), box.Center())
	assert.Equal(t, math.Splat(2), box.Size())
}

func TestFromDocumentIndexOutOfRange(t *testing.T) {
	doc := triangleDoc(t)
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 900})
	doc.Meshes[0].Primitives[0].Indices = gltf.Index(idx)

	_, err := fromDocument(doc, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 900 out of range (3 vertices)")
}

func TestFromDocumentNonUniformScaleNormals(t *testing.T) {
	doc := triangleDoc(t)
	s := float32(0.70710677)
	nrm := modeler.WriteNormal(doc, [][3]float32{{s, s, 0}, {s, s, 0}, {s, s, 0}})
	doc.Meshes[0].Primitives[0].Attributes[gltf.NORMAL] = nrm
	doc.Nodes[0].Scale = [3]float64{2, 1, 1}

	desc, err := fromDocument(doc, "")
	require.NoError(t, err)

	// x+y=0 stretched along X is x+2y=0.
	want := math.V3(1, 2, 0).Normalize()
	for _, v := range desc.Parts[0].Vertices {
		assert.InDelta(t, want.X, v.Normal[0], 1e-5)
		assert.InDelta(t, want.Y, v.Normal[1], 1e-5)
		assert.InDelta(t, 0, v.Normal[2], 1e-5)
	}
}

func TestFromDocumentWithoutScenes(t *testing.T) {
	doc := triangleDoc(t)
	doc.Scenes = nil
	doc.Scene = nil
	doc.Nodes = nil

	desc, err := fromDocument(doc, "")
	require.NoError(t, err)
	assert.Len(t, desc.Parts, 1)
}

func TestFromDocumentNoGeometry(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := fromDocument(gltf.NewDocument(), "")
		assert.ErrorIs(t, err, ErrNoGeometry)
	})

	t.Run("lines only", func(t *testing.T) {
		doc := triangleDoc(t)
		doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines
		_, err := fromDocument(doc, "")
		assert.ErrorIs(t, err, ErrNoGeometry)
	})

	t.Run("missing positions", func(t *testing.T) {
		doc := triangleDoc(t)
		doc.Meshes[0].Primitives[0].Attributes = map[string]int{}
		_, err := fromDocument(doc, "")
		assert.ErrorIs(t, err, ErrNoGeometry)
	})
}

func TestFromDocumentMaterials(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	require.NoError(t, png.Encode(&buf, img))

	doc := triangleDoc(t)
	imgIdx, err := modeler.WriteImage(doc, "skin", "image/png", &buf)
	require.NoError(t, err)
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(imgIdx)}}
	doc.Materials = []*gltf.Material{
		{
			Name: "tinted",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor:  &[4]float64{0.5, 0.25, 1, 1},
				BaseColorTexture: &gltf.TextureInfo{Index: 0},
			},
		},
		{Name: "plain"},
	}
	doc.Meshes[0].Primitives[0].Material = gltf.Index(0)

	desc, err := fromDocument(doc, "")
	require.NoError(t, err)
	require.Len(t, desc.Materials, 2)

	tinted := desc.Material(&desc.Parts[0])
	assert.Equal(t, "tinted", tinted.Name)
	assert.Equal(t, [4]float32{0.5, 0.25, 1, 1}, tinted.BaseColor)
	require.NotNil(t, tinted.BaseImage)
	assert.Equal(t, 2, tinted.BaseImage.Bounds().Dx())

	assert.Equal(t, [4]float32{1, 1, 1, 1}, desc.Materials[1].BaseColor)
	assert.Nil(t, desc.Materials[1].BaseImage)
}

func TestFromDocumentBrokenTextureSkipped(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc *gltf.Document)
	}{
		{
			name: "buffer view out of range",
			mutate: func(doc *gltf.Document) {
				doc.Images = []*gltf.Image{{Name: "skin", MimeType: "image/png", BufferView: gltf.Index(42)}}
			},
		},
		{
			name: "buffer out of range",
			mutate: func(doc *gltf.Document) {
				doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: 7, ByteLength: 4})
				bv := len(doc.BufferViews) - 1
				doc.Images = []*gltf.Image{{Name: "skin", MimeType: "image/png", BufferView: gltf.Index(bv)}}
			},
		},
		{
			name: "image source out of range",
			mutate: func(doc *gltf.Document) {
				doc.Textures[0].Source = gltf.Index(5)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDoc(t)
			doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
			doc.Materials = []*gltf.Material{{
				Name: "skinned",
				PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
					BaseColorTexture: &gltf.TextureInfo{Index: 0},
				},
			}}
			doc.Meshes[0].Primitives[0].Material = gltf.Index(0)
			tt.mutate(doc)

			var desc *Description
			var err error
			require.NotPanics(t, func() { desc, err = fromDocument(doc, "") })
			require.NoError(t, err)
			require.Len(t, desc.Materials, 1)
			assert.Nil(t, desc.Materials[0].BaseImage)
			assert.Equal(t, [4]float32{1, 1, 1, 1}, desc.Materials[0].BaseColor)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.glb"))
		assert.Error(t, err)
	})

	t.Run("round trip glb", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tri.glb")
		require.NoError(t, gltf.SaveBinary(triangleDoc(t), path))

		desc, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "tri.glb", desc.Name)
		assert.Len(t, desc.Parts, 1)
	})
}

func TestDescriptionMaterialFallback(t *testing.T) {
	d := &Description{Materials: []Material{{Name: "only"}}}
	assert.Equal(t, DefaultMaterial, d.Material(&Part{Material: -1}))
	assert.Equal(t, DefaultMaterial, d.Material(&Part{Material: 3}))
	assert.Equal(t, "only", d.Material(&Part{Material: 0}).Name)
}

func TestBoundingBoxEmpty(t *testing.T) {
	assert.True(t, (&Description{}).BoundingBox().IsEmpty())
}
