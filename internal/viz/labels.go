package viz

import (
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/text/message"

	"github.com/Faultbox/contribscape/internal/contrib"
	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/internal/engine/text"
)

var (
	nameplateColor = color.RGBA{R: 235, G: 245, B: 235, A: 255}
	statsColor     = color.RGBA{R: 150, G: 215, B: 160, A: 255}
)

// StatsLine formats stats for the label under the nameplate.
func StatsLine(p *message.Printer, s contrib.Stats) string {
	return p.Sprintf("%d contributions · max %d/day · %d day streak",
		s.TotalContributions, s.MaxContribution, s.LongestStreak)
}

// buildLabels places the nameplate and optional stats line above the
// terrain's center, sized in cells.
func buildLabels(face font.Face, p *message.Printer, mesh *terrain.Mesh, name string, stats *contrib.Stats) []text.Label {
	if face == nil || mesh == nil {
		return nil
	}
	b := mesh.Bounds
	cs := mesh.CellSize
	cx := (b.Min[0] + b.Max[0]) / 2
	cz := (b.Min[2] + b.Max[2]) / 2
	top := b.Max[1]

	var labels []text.Label
	if l, ok := text.NewLabel(face, name, nameplateColor, [3]float32{cx, top + 3*cs, cz}, 2.5*cs); ok {
		labels = append(labels, l)
	}
	if stats != nil {
		if l, ok := text.NewLabel(face, StatsLine(p, *stats), statsColor, [3]float32{cx, top + 1.5*cs, cz}, 1.2*cs); ok {
			labels = append(labels, l)
		}
	}
	return labels
}
