// Package gpu holds the GL-free types shared by the render session and the
// OpenGL backend.
package gpu

import "errors"

// ErrContext is returned when no usable GL context is current on the
// calling thread.
var ErrContext = errors.New("gpu: no usable OpenGL context")

// Target is a framebuffer handle plus its size. FBO 0 is the window's
// default framebuffer.
type Target struct {
	FBO    uint32
	Width  int32
	Height int32
}

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float32
}

// Transparent is the clear color used when a host toolkit composites the
// canvas itself.
var Transparent = Color{}
