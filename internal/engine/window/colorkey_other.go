//go:build !windows

package window

import "github.com/veandco/go-sdl2/sdl"

func setColorKey(*sdl.SysWMInfo, uint32) error {
	return ErrColorKeyUnsupported
}
