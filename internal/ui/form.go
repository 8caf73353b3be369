package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/Faultbox/contribscape/internal/engine/input"
	"github.com/Faultbox/contribscape/internal/engine/ui2d"
)

const (
	formID    = "username"
	fieldID   = "input"
	formWidth = float32(320)
	formTop   = float32(160)
	formRight = float32(24)

	// MaxUsernameLength matches GitHub's login limit.
	MaxUsernameLength = 39
)

// UsernameForm edits a GitHub username and submits it once per request.
//
// While loading, further submissions are ignored until Done is called.
type UsernameForm struct {
	// OnSubmit receives the trimmed, non-empty username.
	OnSubmit func(username string)

	value   string
	focused bool
	loading bool
	err     string
	phase   float32
}

// NewUsernameForm creates a form prefilled with initial.
func NewUsernameForm(initial string, onSubmit func(string)) *UsernameForm {
	return &UsernameForm{OnSubmit: onSubmit, value: initial}
}

// Value returns the edit buffer as typed.
func (f *UsernameForm) Value() string {
	return f.value
}

// SetValue replaces the edit buffer.
func (f *UsernameForm) SetValue(s string) {
	f.value = s
}

// Focus directs keyboard input to the form.
func (f *UsernameForm) Focus() {
	f.focused = true
}

// Blur stops directing keyboard input to the form.
func (f *UsernameForm) Blur() {
	f.focused = false
}

// Focused reports whether the form receives keyboard input.
func (f *UsernameForm) Focused() bool {
	return f.focused
}

// Loading reports whether a submission is in flight.
func (f *UsernameForm) Loading() bool {
	return f.loading
}

// Error returns the message from the last failed submission.
func (f *UsernameForm) Error() string {
	return f.err
}

// HandleEvent edits the buffer from keyboard events while focused and
// reports whether the event was consumed.
func (f *UsernameForm) HandleEvent(e input.Event) bool {
	if !f.focused {
		return false
	}
	switch e.Type {
	case input.EventTextInput:
		f.insert(e.Text)
		return true
	case input.EventKeyDown:
		switch e.Key {
		case input.KeyBackspace:
			if !f.loading && f.value != "" {
				_, size := utf8.DecodeLastRuneInString(f.value)
				f.value = f.value[:len(f.value)-size]
			}
		case input.KeyEnter:
			f.Submit()
		case input.KeyEscape, input.KeyTab:
			f.Blur()
		}
		return true
	case input.EventKeyUp:
		return true
	}
	return false
}

func (f *UsernameForm) insert(text string) {
	if f.loading {
		return
	}
	for _, r := range text {
		if r < 0x20 || utf8.RuneCountInString(f.value) >= MaxUsernameLength {
			continue
		}
		f.value += string(r)
	}
}

// Submit calls OnSubmit with the trimmed buffer and enters the loading
// state. Blank input and submissions while loading are ignored.
func (f *UsernameForm) Submit() bool {
	username := strings.TrimSpace(f.value)
	if username == "" || f.loading {
		return false
	}
	f.loading = true
	f.err = ""
	f.focused = false
	if f.OnSubmit != nil {
		f.OnSubmit(username)
	}
	return true
}

// Done ends the loading state. A non-nil err is shown under the form.
func (f *UsernameForm) Done(err error) {
	f.loading = false
	if err != nil {
		f.err = err.Error()
	} else {
		f.err = ""
	}
}

// Update advances the loading animation.
func (f *UsernameForm) Update(dt float32) {
	if f.loading {
		f.phase += dt * 0.8
		f.phase -= float32(int(f.phase))
	}
}

// Draw renders the form anchored to the top-right corner.
func (f *UsernameForm) Draw(ctx *ui2d.Context) {
	sw, _ := ctx.GetScreenSize()
	x := max(sw-formWidth-formRight, 0)

	h := float32(118)
	if f.loading {
		h += 52
	}
	if f.err != "" {
		h += 26
	}

	if !ctx.BeginWindow(formID, x, formTop, formWidth, h, "GitHub Username") {
		return
	}

	if f.focused {
		ctx.Focus(formID, fieldID)
	} else if ctx.Focused(formID, fieldID) {
		ctx.Blur()
	}

	ctx.Row(32)
	if ctx.TextField(fieldID, 0, f.value, "Enter GitHub username") {
		f.Focus()
	}

	ctx.Row(32)
	if f.loading {
		ctx.ButtonDisabled("submit", 0, "Visualize")
	} else if ctx.Button("submit", 0, "Visualize") {
		f.Submit()
	}

	if f.loading {
		ctx.Row(16)
		ctx.ProgressBar(-f.phase, 0, 16, "")
		ctx.LabelColored("Loading...", ui2d.ColorTextDim)
	}
	if f.err != "" {
		ctx.Row(20)
		ctx.LabelColored(f.err, ui2d.ColorError)
	}
	ctx.EndWindow()
}
