package ui

import (
	"fmt"

	"github.com/Faultbox/contribscape/internal/engine/ui2d"
)

const (
	hudID     = "hud"
	hudWidth  = float32(300)
	hudMargin = float32(16)

	statusTTL = float32(4)
)

// HUD is the status panel in the bottom-left corner: the current label,
// the auto-rotate toggle, key hints and transient status messages.
type HUD struct {
	Label      string
	AutoRotate bool
	ShowFPS    bool

	fps     float32
	frames  int
	elapsed float32

	status    string
	statusAge float32
}

// NewHUD creates a HUD.
func NewHUD(autoRotate, showFPS bool) *HUD {
	return &HUD{AutoRotate: autoRotate, ShowFPS: showFPS}
}

// SetStatus shows s for a few seconds.
func (h *HUD) SetStatus(s string) {
	h.status = s
	h.statusAge = 0
}

// Status returns the visible status message.
func (h *HUD) Status() string {
	return h.status
}

// FPS returns the frame rate averaged over the last second.
func (h *HUD) FPS() float32 {
	return h.fps
}

// Update advances the frame counter and status timer.
func (h *HUD) Update(dt float32) {
	h.frames++
	h.elapsed += dt
	if h.elapsed >= 1 {
		h.fps = float32(h.frames) / h.elapsed
		h.frames = 0
		h.elapsed = 0
	}

	if h.status != "" {
		h.statusAge += dt
		if h.statusAge >= statusTTL {
			h.status = ""
		}
	}
}

// Rect returns the panel rectangle for a screen sh pixels tall.
func (h *HUD) Rect(sh float32) ui2d.Rect {
	height := float32(128)
	if h.ShowFPS {
		height += 24
	}
	if h.status != "" {
		height += 24
	}
	return ui2d.Rect{X: hudMargin, Y: max(sh-height-hudMargin, 0), W: hudWidth, H: height}
}

// Draw renders the panel. It reports whether the auto-rotate toggle changed.
func (h *HUD) Draw(ctx *ui2d.Context) bool {
	_, sh := ctx.GetScreenSize()
	r := h.Rect(sh)
	ctx.BeginPanel(hudID, r.X, r.Y, r.W, r.H)

	label := h.Label
	if label == "" {
		label = "No data loaded"
	}
	ctx.Row(20)
	ctx.Label(label)

	ctx.Row(20)
	changed := false
	if v := ctx.Checkbox("autorotate", "Auto-rotate", h.AutoRotate); v != h.AutoRotate {
		h.AutoRotate = v
		changed = true
	}

	ctx.Separator()
	ctx.Row(18)
	ctx.LabelColored("Drag: orbit   Wheel: zoom   R: reset", ui2d.ColorTextDim)
	ctx.Row(18)
	ctx.LabelColored("Tab: username   Ctrl+O: open   F12: snapshot", ui2d.ColorTextDim)

	if h.ShowFPS {
		ctx.Row(18)
		ctx.LabelColored(fmt.Sprintf("%.0f fps", h.fps), ui2d.ColorTextDim)
	}
	if h.status != "" {
		ctx.Row(18)
		ctx.Label(h.status)
	}
	ctx.EndWindow()
	return changed
}
