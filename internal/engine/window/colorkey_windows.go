//go:build windows

package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sys/windows"
)

const (
	wsExLayered  = 0x00080000
	lwaColorKey  = 0x00000001
	gwlExStyle   = -20
	errorSuccess = 0
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	procGetWindowLongPtrW      = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW      = user32.NewProc("SetWindowLongPtrW")
	procSetLayeredWindowAttrib = user32.NewProc("SetLayeredWindowAttributes")
)

// setColorKey turns the window into a layered window keyed on colorref.
func setColorKey(info *sdl.SysWMInfo, colorref uint32) error {
	if info.Subsystem != sdl.SYSWM_WINDOWS {
		return fmt.Errorf("%w: subsystem %d", ErrColorKeyUnsupported, info.Subsystem)
	}
	hwnd := uintptr(info.GetWindowsInfo().Window)
	index := int32(gwlExStyle)

	style, _, _ := procGetWindowLongPtrW.Call(hwnd, uintptr(index))
	if r, _, err := procSetWindowLongPtrW.Call(hwnd, uintptr(index), style|wsExLayered); r == 0 && err != windows.Errno(errorSuccess) {
		return fmt.Errorf("SetWindowLongPtrW: %w", err)
	}
	if r, _, err := procSetLayeredWindowAttrib.Call(hwnd, uintptr(colorref), 0, lwaColorKey); r == 0 {
		return fmt.Errorf("SetLayeredWindowAttributes: %w", err)
	}
	return nil
}
