package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/contribscape/internal/engine/input"
)

var keyMap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE:    input.KeyEscape,
	sdl.SCANCODE_TAB:       input.KeyTab,
	sdl.SCANCODE_RETURN:    input.KeyEnter,
	sdl.SCANCODE_KP_ENTER:  input.KeyEnter,
	sdl.SCANCODE_BACKSPACE: input.KeyBackspace,
	sdl.SCANCODE_R:         input.KeyR,
	sdl.SCANCODE_O:         input.KeyO,
	sdl.SCANCODE_SPACE:     input.KeySpace,
	sdl.SCANCODE_F12:       input.KeyF12,
}

// PollEvents drains the SDL queue, appending translated events to dst.
// Returns the extended slice and true if the window should close.
func PollEvents(dst []input.Event) ([]input.Event, bool) {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			dst = append(dst, input.Event{Type: input.EventQuit})
			quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				dst = append(dst, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_LEAVE:
				dst = append(dst, input.Event{Type: input.EventMouseLeave})
			}

		case *sdl.KeyboardEvent:
			ev := input.Event{
				Key:  keyMap[e.Keysym.Scancode],
				Ctrl: uint32(e.Keysym.Mod)&uint32(sdl.KMOD_CTRL|sdl.KMOD_GUI) != 0,
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = input.EventKeyDown
			} else {
				ev.Type = input.EventKeyUp
			}
			dst = append(dst, ev)

		case *sdl.TextInputEvent:
			dst = append(dst, input.Event{Type: input.EventTextInput, Text: e.GetText()})

		case *sdl.MouseMotionEvent:
			dst = append(dst, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = input.EventMouseDown
			} else {
				ev.Type = input.EventMouseUp
			}
			dst = append(dst, ev)

		case *sdl.MouseWheelEvent:
			y := float32(e.Y)
			if e.Direction == uint32(sdl.MOUSEWHEEL_FLIPPED) {
				y = -y
			}
			dst = append(dst, input.Event{Type: input.EventMouseWheel, WheelY: y})
		}
	}

	return dst, quit
}
