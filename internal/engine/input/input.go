// Package input defines the viewer's input events and the bus that fans
// them out to subscribers.
package input

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
	EventMouseLeave
	EventTextInput
)

var eventNames = [...]string{
	EventNone:         "none",
	EventQuit:         "quit",
	EventWindowResize: "resize",
	EventKeyDown:      "key_down",
	EventKeyUp:        "key_up",
	EventMouseMove:    "mouse_move",
	EventMouseDown:    "mouse_down",
	EventMouseUp:      "mouse_up",
	EventMouseWheel:   "mouse_wheel",
	EventMouseLeave:   "mouse_leave",
	EventTextInput:    "text_input",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Key identifies the keys the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyTab
	KeyEnter
	KeyBackspace
	KeyR
	KeyO
	KeySpace
	KeyF12
)

// Mouse buttons.
const (
	ButtonLeft   uint8 = 1
	ButtonMiddle uint8 = 2
	ButtonRight  uint8 = 3
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Ctrl   bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32
	Text   string
}
