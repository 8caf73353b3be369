package ui2d

import "github.com/Faultbox/contribscape/internal/engine/input"

// InputState holds the current input state for the UI.
type InputState struct {
	// Mouse state
	MouseX      float32
	MouseY      float32
	MouseDeltaX float32
	MouseDeltaY float32

	// Mouse buttons (current frame)
	MouseLeftDown bool

	// Mouse buttons (pressed/released this frame)
	MouseLeftPressed  bool
	MouseLeftReleased bool

	// MouseLeftClicked is set by a button-down event and survives until a
	// widget consumes it, so clicks shorter than a frame are not lost.
	MouseLeftClicked bool

	// Text input
	TextInput string

	// Keys pressed this frame
	KeyBackspacePressed bool
	KeyEnterPressed     bool
	KeyEscapePressed    bool

	// Previous frame state for edge detection
	prevMouseLeft bool
	prevMouseX    float32
	prevMouseY    float32
}

// Feed folds one input event into the state.
func (i *InputState) Feed(e input.Event) {
	switch e.Type {
	case input.EventMouseMove:
		i.MouseX, i.MouseY = float32(e.MouseX), float32(e.MouseY)
	case input.EventMouseDown:
		i.MouseX, i.MouseY = float32(e.MouseX), float32(e.MouseY)
		if e.Button == input.ButtonLeft {
			i.MouseLeftDown = true
			i.MouseLeftClicked = true
		}
	case input.EventMouseUp:
		i.MouseX, i.MouseY = float32(e.MouseX), float32(e.MouseY)
		if e.Button == input.ButtonLeft {
			i.MouseLeftDown = false
		}
	case input.EventTextInput:
		i.TextInput += e.Text
	case input.EventKeyDown:
		switch e.Key {
		case input.KeyBackspace:
			i.KeyBackspacePressed = true
		case input.KeyEnter:
			i.KeyEnterPressed = true
		case input.KeyEscape:
			i.KeyEscapePressed = true
		}
	}
}

// Update prepares input state for a new frame.
// Call this at the start of each frame after feeding the frame's events.
func (i *InputState) Update() {
	i.MouseDeltaX = i.MouseX - i.prevMouseX
	i.MouseDeltaY = i.MouseY - i.prevMouseY

	i.MouseLeftPressed = i.MouseLeftDown && !i.prevMouseLeft
	i.MouseLeftReleased = !i.MouseLeftDown && i.prevMouseLeft

	i.prevMouseLeft = i.MouseLeftDown
	i.prevMouseX = i.MouseX
	i.prevMouseY = i.MouseY
}

// EndFrame clears per-frame input state.
// Call this at the end of each frame.
func (i *InputState) EndFrame() {
	i.TextInput = ""
	i.MouseLeftClicked = false
	i.KeyBackspacePressed = false
	i.KeyEnterPressed = false
	i.KeyEscapePressed = false
}

// IsMouseInRect checks if the mouse is within a rectangle.
func (i *InputState) IsMouseInRect(x, y, w, h float32) bool {
	return Rect{x, y, w, h}.Contains(i.MouseX, i.MouseY)
}
