// Package input turns SDL2 events into the per-frame shell signals.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/goonie-buddy/internal/shell"
)

// Input polls SDL events once per frame.
type Input struct {
	resized bool
}

// New creates an input handler.
func New() *Input {
	return &Input{}
}

// Poll drains the SDL queue and folds it into one frame of signals:
// window close or Escape quits, a right button press is a secondary click,
// F12 requests a snapshot.
func (i *Input) Poll() shell.Signals {
	var sig shell.Signals
	i.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			sig.Quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_CLOSE:
				sig.Quit = true
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				i.resized = true
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				sig.Quit = true
			case sdl.SCANCODE_F12:
				sig.Snapshot = true
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_RIGHT {
				sig.SecondaryClick = true
			}
		}
	}
	return sig
}

// Resized reports whether the window changed size during the last Poll.
func (i *Input) Resized() bool {
	return i.resized
}
