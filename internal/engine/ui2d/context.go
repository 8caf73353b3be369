// Package ui2d provides a small immediate-mode 2D overlay: windows,
// labels, buttons and text fields laid out in pixel space.
package ui2d

// Painter draws pixel-space primitives queued between Begin and End.
// The GL implementation lives in ui2d/glrender.
type Painter interface {
	Begin()
	End()
	ScreenSize() (int, int)
	DrawRect(x, y, width, height float32, color Color)
	DrawRectOutline(x, y, width, height, thickness float32, color Color)
	DrawPanel(x, y, width, height float32, bg, border Color)
	DrawText(x, y float32, text string, scale float32, color Color)
	MeasureText(text string, scale float32) (float32, float32)
}

// titleBarH is the height of a window's title bar.
const titleBarH = float32(25)

// Context is the main UI context that manages rendering and input.
type Context struct {
	painter Painter
	input   *InputState

	// TextScale multiplies every glyph quad.
	TextScale float32

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	// Window state
	windows map[string]*WindowState
	// Rects of windows drawn this frame, for pointer hit testing.
	drawn []Rect

	// Current window being drawn
	currentWindow *WindowState

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool
}

// NewContext creates a UI context drawing through p.
func NewContext(p Painter) *Context {
	return &Context{
		painter:   p,
		input:     &InputState{},
		TextScale: 1,
		windows:   make(map[string]*WindowState),
	}
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Painter returns the underlying painter.
func (c *Context) Painter() Painter {
	return c.painter
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.drawn = c.drawn[:0]
	c.hotWidget = ""
	c.painter.Begin()
}

// End finishes the UI frame.
func (c *Context) End() {
	c.painter.End()
	c.input.EndFrame()
}

// Contains reports whether (x, y) lies over any window drawn this frame.
func (c *Context) Contains(x, y float32) bool {
	for _, r := range c.drawn {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// BeginWindow starts a movable window with a title bar.
// Returns false if the window is closed.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws := c.window(id, x, y, w, h)
	if !ws.Open {
		return false
	}

	// Handle window dragging by the title bar
	titleBarRect := Rect{ws.X, ws.Y, ws.W, titleBarH}
	if c.input.MouseLeftPressed && titleBarRect.Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		c.activeWidget = id + "_titlebar"
	}
	if ws.Moving && c.input.MouseLeftDown {
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
	}
	if c.input.MouseLeftReleased {
		ws.Moving = false
		if c.activeWidget == id+"_titlebar" {
			c.activeWidget = ""
		}
	}

	c.begin(ws)
	c.painter.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)

	_, textH := c.painter.MeasureText(title, c.TextScale)
	c.painter.DrawText(ws.X+8, ws.Y+(titleBarH-textH)/2, title, c.TextScale, ColorText)

	c.cursorY = ws.Y + titleBarH + 8
	return true
}

// BeginPanel starts a fixed, untitled window, such as a tooltip.
func (c *Context) BeginPanel(id string, x, y, w, h float32) {
	ws := c.window(id, x, y, w, h)
	ws.Moving = false
	c.begin(ws)
}

func (c *Context) window(id string, x, y, w, h float32) *WindowState {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y, W: w, H: h, Open: true}
		c.windows[id] = ws
	} else if !ws.Moving {
		// Follow the caller's layout so windows re-anchor on resize
		ws.X, ws.Y, ws.W, ws.H = x, y, w, h
	}
	return ws
}

func (c *Context) begin(ws *WindowState) {
	c.currentWindow = ws
	c.drawn = append(c.drawn, Rect{ws.X, ws.Y, ws.W, ws.H})
	c.painter.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)

	c.cursorX = ws.X + 8
	c.cursorY = ws.Y + 8
	c.rowH = 0
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + 8
	c.cursorY += c.rowH + 4
	c.rowH = height
}

// Focus makes the widget id of the current window the active one.
func (c *Context) Focus(windowID, id string) {
	c.activeWidget = windowID + "_" + id
}

// Blur clears the active widget.
func (c *Context) Blur() {
	c.activeWidget = ""
}

// Focused reports whether widget id of window windowID is active.
func (c *Context) Focused(windowID, id string) bool {
	return c.activeWidget == windowID+"_"+id
}

// Button draws a button and returns true if clicked.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowHeight()
	if width == 0 {
		width = c.currentWindow.W - 16
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	// Click on press for better responsiveness
	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	clicked := false
	if hovered {
		c.hotWidget = fullID
		if c.input.MouseLeftPressed || c.input.MouseLeftClicked {
			c.activeWidget = fullID
			clicked = true
			// Consume the click so only one button gets it
			c.input.MouseLeftClicked = false
		}
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}
	c.painter.DrawRect(x, y, width, h, color)
	c.painter.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)
	c.centeredText(rect, label, ColorText)

	c.cursorX += width + 4
	return clicked
}

// ButtonDisabled draws a button that cannot be clicked.
func (c *Context) ButtonDisabled(id string, width float32, label string) {
	if c.currentWindow == nil {
		return
	}
	x, y, h := c.cursorX, c.cursorY, c.rowHeight()
	if width == 0 {
		width = c.currentWindow.W - 16
	}

	c.painter.DrawRect(x, y, width, h, ColorButtonOff)
	c.painter.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)
	c.centeredText(Rect{x, y, width, h}, label, ColorTextDim)

	c.cursorX += width + 4
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.painter.DrawText(c.cursorX, c.cursorY, text, c.TextScale, color)

	w, _ := c.painter.MeasureText(text, c.TextScale)
	c.cursorX += w + 4
}

// Swatch draws a small filled square, used as a color key.
func (c *Context) Swatch(size float32, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.painter.DrawRect(c.cursorX, c.cursorY, size, size, color)
	c.painter.DrawRectOutline(c.cursorX, c.cursorY, size, size, 1, ColorPanelBorder)
	c.cursorX += size + 6
}

// TextField draws a single-line field showing value. Editing is left to
// the caller; clicking the field focuses it. Returns true when clicked.
func (c *Context) TextField(id string, width float32, value, placeholder string) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowHeight()
	if width == 0 {
		width = c.currentWindow.W - 16
	}

	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, width, h}

	clicked := false
	if rect.Contains(c.input.MouseX, c.input.MouseY) && (c.input.MouseLeftPressed || c.input.MouseLeftClicked) {
		c.activeWidget = fullID
		c.input.MouseLeftClicked = false
		clicked = true
	}
	focused := c.activeWidget == fullID

	c.painter.DrawRect(x, y, width, h, ColorInputBg)
	border := ColorInputBorder
	if focused {
		border = ColorHighlight
	}
	c.painter.DrawRectOutline(x, y, width, h, 1, border)

	shown, color := value, ColorText
	if value == "" && !focused {
		shown, color = placeholder, ColorTextDim
	}
	_, textH := c.painter.MeasureText(shown, c.TextScale)
	textY := y + (h-textH)/2
	c.painter.DrawText(x+6, textY, shown, c.TextScale, color)

	if focused {
		textW, _ := c.painter.MeasureText(value, c.TextScale)
		c.painter.DrawRect(x+6+textW, y+4, 2, h-8, ColorText)
	}

	c.cursorX += width + 4
	return clicked
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.cursorY += height
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + 4
	c.rowH = 0
	x := c.currentWindow.X + 8
	c.painter.DrawRect(x, c.cursorY, c.currentWindow.W-16, 1, ColorPanelBorder)
	c.cursorY += 8
	c.cursorX = x
}

// ProgressBar draws a progress bar. A negative fraction draws an
// indeterminate bar whose segment position is given by -fraction mod 1.
func (c *Context) ProgressBar(fraction float32, width, height float32, label string) {
	if c.currentWindow == nil {
		return
	}

	x, y := c.cursorX, c.cursorY
	if height == 0 {
		height = 20
	}
	if width == 0 {
		width = c.currentWindow.W - 16
	}

	c.painter.DrawRect(x, y, width, height, ColorInputBg)
	c.painter.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)

	inner := width - 2
	if fraction < 0 {
		pos := -fraction
		pos -= float32(int(pos))
		seg := inner / 4
		start := pos * (inner - seg)
		c.painter.DrawRect(x+1+start, y+1, seg, height-2, ColorHighlight)
	} else if fill := inner * min(fraction, 1); fill > 0 {
		c.painter.DrawRect(x+1, y+1, fill, height-2, ColorHighlight)
	}

	if label != "" {
		c.centeredText(Rect{x, y, width, height}, label, ColorText)
	}

	c.cursorX = c.currentWindow.X + 8
	c.cursorY += height + 4
}

// Checkbox draws a checkbox and returns the new checked state.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x, y := c.cursorX, c.cursorY
	boxSize := float32(18)

	fullID := c.currentWindow.ID + "_" + id
	hovered := Rect{x, y, boxSize, boxSize}.Contains(c.input.MouseX, c.input.MouseY)

	if hovered && c.input.MouseLeftPressed {
		c.activeWidget = fullID
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bg := ColorInputBg
	if hovered {
		bg = ColorButtonHover
	}
	c.painter.DrawRect(x, y, boxSize, boxSize, bg)
	c.painter.DrawRectOutline(x, y, boxSize, boxSize, 1, ColorPanelBorder)
	if checked {
		c.painter.DrawRect(x+4, y+4, boxSize-8, boxSize-8, ColorHighlight)
	}

	labelW, textH := c.painter.MeasureText(label, c.TextScale)
	c.painter.DrawText(x+boxSize+8, y+(boxSize-textH)/2, label, c.TextScale, ColorText)

	c.cursorX += boxSize + 8 + labelW + 8
	return checked
}

// GetScreenSize returns the current screen dimensions.
func (c *Context) GetScreenSize() (float32, float32) {
	w, h := c.painter.ScreenSize()
	return float32(w), float32(h)
}

func (c *Context) rowHeight() float32 {
	if c.rowH == 0 {
		return 28
	}
	return c.rowH
}

func (c *Context) centeredText(r Rect, text string, color Color) {
	w, h := c.painter.MeasureText(text, c.TextScale)
	c.painter.DrawText(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, text, c.TextScale, color)
}

// Rect represents a rectangle for hit testing.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
