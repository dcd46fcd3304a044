// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ModelVertexShader transforms baked world-space vertices.
//
//go:embed model.vert
var ModelVertexShader string

// ModelFragmentShader applies directional lighting and the color-key guard.
//
//go:embed model.frag
var ModelFragmentShader string

// LineVertexShader is used for debug wireframes.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is used for debug wireframes.
//
//go:embed line.frag
var LineFragmentShader string
