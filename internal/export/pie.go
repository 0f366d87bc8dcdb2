package export

import (
	"fmt"
	"math"
	"sort"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	pieSize   = 600
	pieRadius = 180
)

// pie slice palette, cycled when a department spans more areas.
var pieColors = [][3]float64{
	{0.27, 0.51, 0.71},
	{0.85, 0.37, 0.01},
	{0.17, 0.63, 0.17},
	{0.84, 0.15, 0.16},
	{0.58, 0.40, 0.74},
	{0.55, 0.34, 0.29},
	{0.89, 0.47, 0.76},
	{0.50, 0.50, 0.50},
}

// PieChart writes a PNG pie chart of one department's adjusted publication
// counts per area. Zero and negative values are dropped; an all-zero map is
// an error.
func PieChart(areaCounts map[string]float64, title string, path string) error {
	type slice struct {
		label string
		value float64
	}
	var slices []slice
	total := 0.0
	for label, v := range areaCounts {
		if v <= 0 {
			continue
		}
		slices = append(slices, slice{label: label, value: v})
		total += v
	}
	if total == 0 {
		return fmt.Errorf("no positive area counts to chart")
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].value != slices[j].value {
			return slices[i].value > slices[j].value
		}
		return slices[i].label < slices[j].label
	})

	dc := gg.NewContext(pieSize, pieSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, pieSize/2, 24, 0.5, 0.5)

	cx, cy := float64(pieSize)/2, float64(pieSize)/2+10
	angle := -math.Pi / 2
	for i, s := range slices {
		frac := s.value / total
		end := angle + frac*2*math.Pi

		c := pieColors[i%len(pieColors)]
		dc.SetRGB(c[0], c[1], c[2])
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, pieRadius, angle, end)
		dc.ClosePath()
		dc.Fill()

		// Label outside the slice midpoint.
		mid := (angle + end) / 2
		lx := cx + (pieRadius+30)*math.Cos(mid)
		ly := cy + (pieRadius+30)*math.Sin(mid)
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(fmt.Sprintf("%s (%.0f%%)", s.label, frac*100), lx, ly, 0.5, 0.5)

		angle = end
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write pie chart: %w", err)
	}
	return nil
}
