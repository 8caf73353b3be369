// Package ui holds the viewer's overlay widgets: the hover tooltip and the
// username form. Both keep their state here and draw through ui2d.
package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Faultbox/contribscape/internal/engine/picking"
	"github.com/Faultbox/contribscape/internal/engine/ui2d"
)

const (
	tooltipMinWidth = float32(220)
	tooltipPadding  = float32(12)
	swatchSize      = float32(14)
)

// Tooltip shows the date and contribution count of the hovered cell.
// It implements picking.TooltipPresenter.
type Tooltip struct {
	printer *message.Printer

	visible bool
	x, y    float32
	payload picking.TooltipPayload
}

var _ picking.TooltipPresenter = (*Tooltip)(nil)

// NewTooltip creates a hidden tooltip formatting numbers for tag.
func NewTooltip(tag language.Tag) *Tooltip {
	return &Tooltip{printer: message.NewPrinter(tag)}
}

// Show anchors the tooltip at (x, y) window pixels.
func (t *Tooltip) Show(x, y float32, p picking.TooltipPayload) {
	t.visible = true
	t.x, t.y = x, y
	t.payload = p
}

// Hide hides the tooltip.
func (t *Tooltip) Hide() {
	t.visible = false
}

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool {
	return t.visible
}

// Anchor returns the last position passed to Show.
func (t *Tooltip) Anchor() (float32, float32) {
	return t.x, t.y
}

// Payload returns the last payload passed to Show.
func (t *Tooltip) Payload() picking.TooltipPayload {
	return t.payload
}

// Title formats the date line, e.g. "Tuesday, March 5, 2024".
func (t *Tooltip) Title() string {
	return t.payload.Weekday + ", " + t.payload.Date.Format("January 2, 2006")
}

// CountText formats the count line, e.g. "1 contribution" or "1,204 contributions".
func (t *Tooltip) CountText() string {
	n := max(t.payload.Count, 0)
	if n == 1 {
		return "1 contribution"
	}
	return t.printer.Sprintf("%d contributions", n)
}

// BucketColor returns the indicator color for a day with count contributions.
func BucketColor(count int) ui2d.Color {
	switch {
	case count <= 0:
		return ui2d.ColorLevelNone
	case count <= 3:
		return ui2d.ColorLevelLow
	case count <= 6:
		return ui2d.ColorLevelMid
	default:
		return ui2d.ColorLevelHigh
	}
}

// Rect returns where the tooltip is drawn: centered above the anchor and
// kept on screen.
func (t *Tooltip) Rect(p ui2d.Painter, scale float32) ui2d.Rect {
	titleW, lineH := p.MeasureText(t.Title(), scale)
	countW, _ := p.MeasureText(t.CountText(), scale)

	w := max(tooltipMinWidth, titleW+2*tooltipPadding, countW+swatchSize+6+2*tooltipPadding)
	h := 2*lineH + 3*tooltipPadding

	x := t.x - w/2
	y := t.y - h*1.2

	sw, sh := p.ScreenSize()
	x = clamp(x, 0, float32(sw)-w)
	if y < 0 {
		// No room above the pointer, so drop below it.
		y = t.y + tooltipPadding*2
	}
	y = clamp(y, 0, float32(sh)-h)

	return ui2d.Rect{X: x, Y: y, W: w, H: h}
}

// Draw renders the tooltip when visible.
func (t *Tooltip) Draw(ctx *ui2d.Context) {
	if !t.visible {
		return
	}
	r := t.Rect(ctx.Painter(), ctx.TextScale)
	_, lineH := ctx.Painter().MeasureText("0", ctx.TextScale)

	ctx.BeginPanel("tooltip", r.X, r.Y, r.W, r.H)
	ctx.Spacer(tooltipPadding - 8)
	ctx.Row(lineH)
	ctx.Label(t.Title())
	ctx.Spacer(tooltipPadding - 4)
	ctx.Row(lineH)
	ctx.Swatch(swatchSize, BucketColor(t.payload.Count))
	ctx.LabelColored(t.CountText(), ui2d.ColorText)
	ctx.EndWindow()
}

func clamp(v, lo, hi float32) float32 {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
